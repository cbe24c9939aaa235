// Package sessiondata provides in-memory telemetry sessions for tests.
package sessiondata

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
)

type Provider struct {
	sessions map[string]*Session
	// Fallback serves years without an explicit session (e.g. long
	// backward searches). Leave nil to fail such requests.
	Fallback func(year int, race string) (*Session, error)
	// SessionCalls counts Session() invocations, keyed like sessions.
	SessionCalls map[string]int
}

func NewProvider() *Provider {
	return &Provider{
		sessions:     make(map[string]*Session),
		SessionCalls: make(map[string]int),
	}
}

func key(year int, race string) string {
	return fmt.Sprintf("%d-%s", year, race)
}

func (p *Provider) AddSession(year int, race string, s *Session) *Provider {
	p.sessions[key(year, race)] = s
	return p
}

//nolint:whitespace // readability
func (p *Provider) Session(
	_ context.Context, year int, race string, _ telemetry.SessionKind,
) (telemetry.Session, error) {
	k := key(year, race)
	p.SessionCalls[k]++
	if s, ok := p.sessions[k]; ok {
		return s, nil
	}
	if p.Fallback != nil {
		s, err := p.Fallback(year, race)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("no session data for %s %d", race, year)
}

type Session struct {
	RawLaps []telemetry.RawLap
	// keyed by "driver-lapNumber"
	TelemetryData map[string][]telemetry.TelemetrySample
	LoadErr       error
	LoadCalls     int

	loaded bool
}

func (s *Session) Load(_ context.Context) error {
	s.LoadCalls++
	if s.LoadErr != nil {
		return s.LoadErr
	}
	s.loaded = true
	return nil
}

func (s *Session) Laps() ([]telemetry.RawLap, error) {
	if !s.loaded {
		return nil, telemetry.ErrNotLoaded
	}
	return s.RawLaps, nil
}

func (s *Session) DriverLaps(driver string) ([]telemetry.RawLap, error) {
	if !s.loaded {
		return nil, telemetry.ErrNotLoaded
	}
	return lo.Filter(s.RawLaps, func(rl telemetry.RawLap, _ int) bool {
		return rl.Driver == driver
	}), nil
}

//nolint:whitespace // readability
func (s *Session) Telemetry(
	_ context.Context, driver string, lapNumber int,
) ([]telemetry.TelemetrySample, error) {
	if !s.loaded {
		return nil, telemetry.ErrNotLoaded
	}
	samples, ok := s.TelemetryData[fmt.Sprintf("%s-%d", driver, lapNumber)]
	if !ok {
		return nil, fmt.Errorf("no telemetry for %s lap %d", driver, lapNumber)
	}
	return samples, nil
}

// Lap builds a green flag lap with a recorded time.
func Lap(driver string, lapNumber, stint int, compound string, seconds float64) telemetry.RawLap {
	return telemetry.RawLap{
		Driver:      driver,
		LapNumber:   lapNumber,
		LapTime:     time.Duration(seconds * float64(time.Second)),
		Stint:       stint,
		Compound:    compound,
		TyreLife:    lapNumber,
		Position:    1,
		TrackStatus: "1",
	}
}

// DegradingStint builds laps laps starting at startLap whose times increase
// linearly by degPerLap seconds per lap from baseSeconds.
//
//nolint:whitespace // readability
func DegradingStint(
	driver string, startLap, stint, laps int, compound string,
	baseSeconds, degPerLap float64,
) []telemetry.RawLap {
	ret := make([]telemetry.RawLap, 0, laps)
	for i := 0; i < laps; i++ {
		ret = append(ret, Lap(driver, startLap+i, stint, compound,
			baseSeconds+float64(i)*degPerLap))
	}
	return ret
}
