// Package history locates past race editions suitable for dry-weather
// degradation analysis.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/cleaner"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
)

// FloorYear bounds the backward season search. The championship started 1950.
const FloorYear = 1950

var ErrNoDryRace = errors.New("no dry race found")

func NewSelector(opts ...Option) *Selector {
	ret := &Selector{l: log.Default().Named("history")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type Selector struct {
	provider telemetry.Provider
	l        *log.Logger
}

type Option func(*Selector)

func WithProvider(p telemetry.Provider) Option {
	return func(s *Selector) { s.provider = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Selector) { s.l = l }
}

// LastDryRace walks backward from year and returns the cleaned laps of the
// requested driver for the most recent edition of race in which no driver
// used an intermediate or wet compound, along with the chosen year.
// Provider failures propagate as-is; passing the floor year yields
// ErrNoDryRace.
//
//nolint:whitespace // readability
func (s *Selector) LastDryRace(
	ctx context.Context, race string, year int, driver string,
) ([]model.Lap, int, error) {
	for y := year; y >= FloorYear; y-- {
		session, err := s.provider.Session(ctx, y, race, telemetry.KindRace)
		if err != nil {
			return nil, 0, err
		}
		if err = session.Load(ctx); err != nil {
			return nil, 0, err
		}
		raws, err := session.Laps()
		if err != nil {
			return nil, 0, err
		}
		wet := lo.SomeBy(raws, func(rl telemetry.RawLap) bool {
			return model.Compound(rl.Compound).IsWet()
		})
		if wet {
			s.l.Debug("rain affected edition, skipping",
				log.String("race", race), log.Int("year", y))
			continue
		}
		laps, err := cleaner.Clean(ctx, session, driver)
		if err != nil {
			return nil, 0, err
		}
		s.l.Debug("dry edition found",
			log.String("race", race), log.Int("year", y), log.Int("laps", len(laps)))
		return laps, y, nil
	}
	return nil, 0, fmt.Errorf("%w: race=%s driver=%s searched down to %d",
		ErrNoDryRace, race, driver, FloorYear)
}
