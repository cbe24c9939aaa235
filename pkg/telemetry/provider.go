// Package telemetry abstracts the external session archive that supplies
// historical lap and telemetry data.
package telemetry

import (
	"context"
	"errors"
	"time"
)

type SessionKind string

const (
	KindRace       SessionKind = "R"
	KindQualifying SessionKind = "Q"
)

// ErrNotLoaded is returned when lap data is read before Load completed.
var ErrNotLoaded = errors.New("session data not loaded")

type (
	// RawLap is one lap as delivered by the archive, before cleaning.
	// LapTime is zero when the timing feed has no recorded time for the lap.
	// PitInTime/PitOutTime are session times; zero means no pit entry/exit.
	RawLap struct {
		Driver      string
		LapNumber   int
		LapTime     time.Duration
		Stint       int
		Compound    string
		TyreLife    int
		Position    int
		PitInTime   time.Duration
		PitOutTime  time.Duration
		TrackStatus string
	}

	// TelemetrySample is one sample of the per-lap telemetry series.
	// Time is monotonic within a lap.
	TelemetrySample struct {
		Time  time.Duration
		Speed float64
	}

	// Session is a loadable race session. Load must complete before any
	// lap data is read.
	Session interface {
		Load(ctx context.Context) error
		// Laps returns all laps of all drivers.
		Laps() ([]RawLap, error)
		// DriverLaps returns the laps of a single driver.
		DriverLaps(driver string) ([]RawLap, error)
		// Telemetry returns the telemetry series of one lap.
		Telemetry(ctx context.Context, driver string, lapNumber int) ([]TelemetrySample, error)
	}

	// Provider resolves sessions by year, race and session kind.
	Provider interface {
		Session(ctx context.Context, year int, race string, kind SessionKind) (Session, error)
	}
)
