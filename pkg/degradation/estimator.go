// Package degradation estimates per-compound tyre degradation and pace from
// historical race data.
package degradation

import (
	"context"
	"math"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/history"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
)

// FuelCorrectionSeconds compensates the fuel-burn pace gain that would
// otherwise be attributed to tyre wear.
const FuelCorrectionSeconds = 0.05

// minimum qualifying laps for a stable per-stint fit
const minStintLaps = 3

// Estimate holds the per-compound results. Both values are NaN when the
// reference race contains no eligible data for the compound.
type Estimate struct {
	DegPerLap  float64 // seconds lost per lap of tyre age
	AvgLapTime float64 // mean green lap time in seconds
}

func NewEstimator(opts ...Option) *Estimator {
	ret := &Estimator{l: log.Default().Named("degradation")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type Estimator struct {
	selector *history.Selector
	l        *log.Logger
}

type Option func(*Estimator)

func WithSelector(s *history.Selector) Option {
	return func(e *Estimator) { e.selector = s }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Estimator) { e.l = l }
}

// CompoundEstimate computes degradation and pace for one compound, based on
// the most recent dry edition of the race before the given year.
//
//nolint:whitespace // readability
func (e *Estimator) CompoundEstimate(
	ctx context.Context, driver, race string, year int, compound model.Compound,
) (*Estimate, error) {
	laps, usedYear, err := e.selector.LastDryRace(ctx, race, year-1, driver)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		DegPerLap:  e.degradation(laps, driver, race, usedYear, compound),
		AvgLapTime: avgLapTime(laps, compound),
	}, nil
}

// degradation fits a linear trend of lap time over lap number for each stint
// with enough green-flag laps and averages the slopes. Pit-in/out laps, the
// opening lap and laps under any caution flag are excluded.
//
//nolint:whitespace // readability
func (e *Estimator) degradation(
	laps []model.Lap, driver, race string, year int, compound model.Compound,
) float64 {
	eligible := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.Compound == compound &&
			!l.Status.HasCaution() &&
			!l.PitIn && !l.PitOut &&
			l.LapNumber != 1
	})
	stints := lo.GroupBy(eligible, func(l model.Lap) int { return l.Stint })

	slopes := make([]float64, 0, len(stints))
	for stint, stintLaps := range stints {
		if len(stintLaps) < minStintLaps {
			e.l.Debug("stint skipped, too few laps",
				log.Int("stint", stint), log.Int("laps", len(stintLaps)))
			continue
		}
		slopes = append(slopes, fitSlope(stintLaps))
	}
	if len(slopes) == 0 {
		e.l.Warn("no valid stint data",
			log.String("driver", driver),
			log.String("race", race),
			log.Int("year", year),
			log.String("compound", string(compound)))
		return math.NaN()
	}
	return mean(slopes) + FuelCorrectionSeconds
}

// avgLapTime is the mean approximated lap time over all laps of the compound,
// without further filtering.
func avgLapTime(laps []model.Lap, compound model.Compound) float64 {
	compoundLaps := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.Compound == compound
	})
	return mean(lo.Map(compoundLaps, func(l model.Lap, _ int) float64 {
		return l.LapTimeApprox.Seconds()
	}))
}

// fitSlope is the least squares slope of approximated lap seconds over lap
// number.
func fitSlope(laps []model.Lap) float64 {
	n := float64(len(laps))
	var sumX, sumY, sumXY, sumXX float64
	for _, l := range laps {
		x := float64(l.LapNumber)
		y := l.LapTimeApprox.Seconds()
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return math.NaN()
	}
	return (n*sumXY - sumX*sumY) / denom
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return lo.Sum(values) / float64(len(values))
}
