package degradation

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/history"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
	"github.com/mpapenbr/f1-strategy-sim-go/testsupport/sessiondata"
)

func newTestEstimator(laps []telemetry.RawLap) *Estimator {
	provider := sessiondata.NewProvider().
		AddSession(2023, "Netherlands", &sessiondata.Session{RawLaps: laps})
	return NewEstimator(WithSelector(
		history.NewSelector(history.WithProvider(provider))))
}

func estimate(t *testing.T, e *Estimator, compound model.Compound) *Estimate {
	t.Helper()
	est, err := e.CompoundEstimate(
		context.Background(), "VER", "Netherlands", 2024, compound)
	require.NoError(t, err)
	return est
}

func TestCompoundEstimateLinearStint(t *testing.T) {
	// laps 2..6, lap time grows 0.1s per lap
	laps := sessiondata.DegradingStint("VER", 2, 1, 5, "MEDIUM", 90, 0.1)
	est := estimate(t, newTestEstimator(laps), model.CompoundMedium)

	assert.InDelta(t, 0.1+FuelCorrectionSeconds, est.DegPerLap, 1e-6)
	assert.InDelta(t, 90.2, est.AvgLapTime, 1e-6)
}

func TestCompoundEstimateShortStintIgnored(t *testing.T) {
	laps := sessiondata.DegradingStint("VER", 2, 1, 5, "MEDIUM", 90, 0.1)
	// second stint has only two laps with a wild trend; it must not
	// influence the averaged slope
	laps = append(laps,
		sessiondata.Lap("VER", 10, 2, "MEDIUM", 90),
		sessiondata.Lap("VER", 11, 2, "MEDIUM", 130))
	est := estimate(t, newTestEstimator(laps), model.CompoundMedium)

	assert.InDelta(t, 0.1+FuelCorrectionSeconds, est.DegPerLap, 1e-6)
}

func TestCompoundEstimateNoQualifyingStint(t *testing.T) {
	// two laps only: below the stint minimum
	laps := sessiondata.DegradingStint("VER", 2, 1, 2, "MEDIUM", 90, 0.1)
	est := estimate(t, newTestEstimator(laps), model.CompoundMedium)

	assert.True(t, math.IsNaN(est.DegPerLap), "expected NaN degradation")
	// pace has no stint-length filter and stays available
	assert.InDelta(t, 90.05, est.AvgLapTime, 1e-6)
}

func TestCompoundEstimateExcludesCautionLaps(t *testing.T) {
	build := func(yellowOutlier bool) []telemetry.RawLap {
		laps := sessiondata.DegradingStint("VER", 2, 1, 3, "MEDIUM", 90, 0.1)
		outlier := sessiondata.Lap("VER", 5, 1, "MEDIUM", 97)
		if yellowOutlier {
			outlier.TrackStatus = "2"
		}
		return append(laps, outlier)
	}

	withOutlier := estimate(t, newTestEstimator(build(false)), model.CompoundMedium)
	withoutOutlier := estimate(t, newTestEstimator(build(true)), model.CompoundMedium)

	// flagging the outlier lap yellow removes it from the fit
	assert.InDelta(t, 0.1+FuelCorrectionSeconds, withoutOutlier.DegPerLap, 1e-6)
	assert.Greater(t, withOutlier.DegPerLap, withoutOutlier.DegPerLap)
}

func TestCompoundEstimateExcludesPitAndOpeningLaps(t *testing.T) {
	laps := sessiondata.DegradingStint("VER", 2, 1, 3, "MEDIUM", 90, 0.1)
	opening := sessiondata.Lap("VER", 1, 1, "MEDIUM", 120)
	pitIn := sessiondata.Lap("VER", 5, 1, "MEDIUM", 110)
	pitIn.PitInTime = 400 * time.Second
	pitOut := sessiondata.Lap("VER", 6, 1, "MEDIUM", 108)
	pitOut.PitOutTime = 500 * time.Second
	laps = append(laps, opening, pitIn, pitOut)

	est := estimate(t, newTestEstimator(laps), model.CompoundMedium)
	assert.InDelta(t, 0.1+FuelCorrectionSeconds, est.DegPerLap, 1e-6)
}

func TestCompoundEstimateUnknownCompound(t *testing.T) {
	laps := sessiondata.DegradingStint("VER", 2, 1, 5, "MEDIUM", 90, 0.1)
	est := estimate(t, newTestEstimator(laps), model.CompoundSoft)

	assert.True(t, math.IsNaN(est.DegPerLap))
	assert.True(t, math.IsNaN(est.AvgLapTime))
}

func TestCompoundEstimatePropagatesSelectorFailure(t *testing.T) {
	provider := sessiondata.NewProvider()
	provider.Fallback = func(year int, race string) (*sessiondata.Session, error) {
		return &sessiondata.Session{RawLaps: []telemetry.RawLap{
			sessiondata.Lap("VER", 1, 1, "WET", 110),
		}}, nil
	}
	e := NewEstimator(WithSelector(
		history.NewSelector(history.WithProvider(provider))))

	_, err := e.CompoundEstimate(
		context.Background(), "VER", "Netherlands", 2024, model.CompoundMedium)
	assert.ErrorIs(t, err, history.ErrNoDryRace)
}
