package model

import (
	"strconv"
	"strings"
	"time"
)

// TrackStatus values match the numeric codes used by the timing feed.
// A lap's raw status string may contain several codes (e.g. "12" = green+yellow).
type TrackStatus int

const (
	StatusGreen     TrackStatus = 1
	StatusYellow    TrackStatus = 2
	StatusSafetyCar TrackStatus = 4
	StatusRedFlag   TrackStatus = 5
	StatusVSC       TrackStatus = 6
	StatusVSCEnding TrackStatus = 7
)

func TrackStatuses() []TrackStatus {
	return []TrackStatus{
		StatusGreen, StatusYellow, StatusSafetyCar,
		StatusRedFlag, StatusVSC, StatusVSCEnding,
	}
}

func (ts TrackStatus) String() string {
	switch ts {
	case StatusGreen:
		return "GREEN"
	case StatusYellow:
		return "YELLOW"
	case StatusSafetyCar:
		return "SAFETY_CAR"
	case StatusRedFlag:
		return "RED_FLAG"
	case StatusVSC:
		return "VIRTUAL_SAFETY_CAR"
	case StatusVSCEnding:
		return "VSC_ENDING"
	}
	return "UNKNOWN"
}

// StatusSet holds the track statuses active during a lap. Non-exclusive.
type StatusSet uint16

func (s StatusSet) Has(ts TrackStatus) bool {
	return s&(1<<uint(ts)) != 0
}

// HasCaution reports whether any flag other than green was active.
func (s StatusSet) HasCaution() bool {
	for _, ts := range TrackStatuses() {
		if ts != StatusGreen && s.Has(ts) {
			return true
		}
	}
	return false
}

// ParseStatusSet expands a raw multi-code status string like "12" or "6".
// A status is active when its numeric code occurs in the string.
func ParseStatusSet(code string) StatusSet {
	var ret StatusSet
	for _, ts := range TrackStatuses() {
		if strings.Contains(code, strconv.Itoa(int(ts))) {
			ret |= 1 << uint(ts)
		}
	}
	return ret
}

type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
)

// IsWet reports whether the compound indicates a rain affected session.
func (c Compound) IsWet() bool {
	return c == CompoundIntermediate || c == CompoundWet
}

// Lap is one cleaned lap of one driver.
// LapTime is zero when the timing feed did not record a time for the lap.
// LapTimeApprox is always set: it equals LapTime when recorded, otherwise the
// span of the lap's telemetry samples.
type Lap struct {
	Driver        string
	LapNumber     int
	LapTime       time.Duration
	LapTimeApprox time.Duration
	Stint         int
	Compound      Compound
	TyreLife      int
	Position      int
	PitIn         bool
	PitOut        bool
	Status        StatusSet
}
