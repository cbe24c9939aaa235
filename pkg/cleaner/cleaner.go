// Package cleaner turns raw archive laps into analysis ready lap records.
package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
)

// Clean builds the cleaned lap table for one driver (or all drivers when
// driver is empty) from a loaded session. Track status codes are expanded
// into flags and missing lap times are approximated from the lap's telemetry
// span. The session's own data is never modified; every record is built fresh.
//
//nolint:whitespace // readability
func Clean(
	ctx context.Context, session telemetry.Session, driver string,
) ([]model.Lap, error) {
	var (
		raws []telemetry.RawLap
		err  error
	)
	if driver != "" {
		raws, err = session.DriverLaps(driver)
	} else {
		raws, err = session.Laps()
	}
	if err != nil {
		return nil, err
	}

	ret := make([]model.Lap, 0, len(raws))
	for i := range raws {
		raw := raws[i]
		lap := model.Lap{
			Driver:    raw.Driver,
			LapNumber: raw.LapNumber,
			LapTime:   raw.LapTime,
			Stint:     raw.Stint,
			Compound:  model.Compound(raw.Compound),
			TyreLife:  raw.TyreLife,
			Position:  raw.Position,
			PitIn:     raw.PitInTime > 0,
			PitOut:    raw.PitOutTime > 0,
			Status:    model.ParseStatusSet(raw.TrackStatus),
		}
		if raw.LapTime > 0 {
			lap.LapTimeApprox = raw.LapTime
		} else {
			samples, tErr := session.Telemetry(ctx, raw.Driver, raw.LapNumber)
			if tErr != nil {
				return nil, fmt.Errorf("approximating lap %d of %s: %w",
					raw.LapNumber, raw.Driver, tErr)
			}
			lap.LapTimeApprox = telemetrySpan(samples)
		}
		ret = append(ret, lap)
	}
	return ret, nil
}

// telemetrySpan approximates a lap time as the range covered by the lap's
// telemetry timestamps.
func telemetrySpan(samples []telemetry.TelemetrySample) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	times := lo.Map(samples, func(s telemetry.TelemetrySample, _ int) time.Duration {
		return s.Time
	})
	return lo.Max(times) - lo.Min(times)
}
