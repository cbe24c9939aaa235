package simulation

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mpapenbr/f1-strategy-sim-go/log"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/degradation"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/track"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/utils/cache/loadercache"
)

func NewSimulator(opts ...Option) *Simulator {
	ret := &Simulator{l: log.Default().Named("simulation")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type Simulator struct {
	estimator *degradation.Estimator
	l         *log.Logger
}

type Option func(*Simulator)

func WithEstimator(e *degradation.Estimator) Option {
	return func(s *Simulator) { s.estimator = e }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.l = l }
}

// CompareStrategies projects the total race time of every strategy and
// returns name -> seconds. Totals are NaN when a referenced compound had no
// usable degradation data; callers must check finiteness before trusting a
// projection.
//
//nolint:whitespace // readability
func (s *Simulator) CompareStrategies(
	ctx context.Context, driver, race string, year int, strategies []model.Strategy,
) (map[string]float64, error) {
	results, err := s.CompareStrategiesDetailed(ctx, driver, race, year, strategies)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(results, func(r *Result) (string, float64) {
		return r.Name, r.TotalSeconds
	}), nil
}

// CompareStrategiesDetailed is CompareStrategies with the per-strategy stint
// and pit breakdown retained.
//
//nolint:whitespace // readability
func (s *Simulator) CompareStrategiesDetailed(
	ctx context.Context, driver, race string, year int, strategies []model.Strategy,
) ([]*Result, error) {
	totalLaps, err := track.LapCount(race)
	if err != nil {
		return nil, err
	}
	pitLoss, err := track.PitStopLoss(race)
	if err != nil {
		return nil, err
	}
	for i := range strategies {
		if err := strategies[i].Validate(totalLaps); err != nil {
			return nil, err
		}
	}

	runID := uuid.New().String()
	s.l.Info("comparing strategies",
		log.String("runId", runID),
		log.String("driver", driver),
		log.String("race", race),
		log.Int("year", year),
		log.Int("strategies", len(strategies)),
		log.Int("laps", totalLaps))

	// estimates are computed once per compound and shared across all
	// strategies of this run; the cache dies with the run
	estimates := loadercache.New(
		loadercache.WithLogger[model.Compound, degradation.Estimate](s.l.Named("cache")),
		loadercache.WithLoader(
			func(ctx context.Context, c model.Compound) (*degradation.Estimate, error) {
				return s.estimator.CompoundEstimate(ctx, driver, race, year, c)
			}),
	)

	ret := make([]*Result, 0, len(strategies))
	for i := range strategies {
		strategy := &strategies[i]
		result, err := projectStrategy(strategy, totalLaps, pitLoss,
			func(c model.Compound) (*degradation.Estimate, error) {
				return estimates.Get(ctx, c)
			})
		if err != nil {
			return nil, err
		}
		s.l.Debug("strategy projected",
			log.String("runId", runID),
			log.String("strategy", result.Name),
			log.Float64("totalSeconds", result.TotalSeconds))
		ret = append(ret, result)
	}
	return ret, nil
}
