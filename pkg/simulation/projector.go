// Package simulation projects total race times for candidate pit stop
// strategies from per-compound degradation and pace estimates.
package simulation

import (
	"fmt"
	"math"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/degradation"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
)

type (
	PartType int

	Part interface {
		Type() PartType
		// Seconds is the projected duration of this part. NaN when the
		// underlying compound had no usable degradation data.
		Seconds() float64
		Output() string
	}
	StintPart interface {
		Part
		Laps() int
		LapStart() int
		LapEnd() int
		Compound() model.Compound
	}
	PitPart interface {
		Part
		PitTime() float64
	}
	// Result is the projection of one strategy, broken down into stint and
	// pit parts.
	Result struct {
		Name         string
		TotalSeconds float64
		Parts        []Part
	}
)

const (
	PartTypeStint PartType = iota
	PartTypePit
)

type (
	stintPart struct {
		laps     int
		lapStart int
		lapEnd   int
		compound model.Compound
		seconds  float64
	}
	pitPart struct {
		seconds float64
	}
)

// estimateFunc resolves the compound estimate, typically through the per-run
// cache.
type estimateFunc func(compound model.Compound) (*degradation.Estimate, error)

// projectStrategy computes the total race time for one validated strategy.
// Each stint starts on fresh tyres at the compound's baseline pace L and
// loses D seconds per lap, so a stint of S laps takes
// S*L + D*S*(S-1)/2. One pit loss is added per stop.
//nolint:whitespace // readability
func projectStrategy(
	strategy *model.Strategy, totalLaps int, pitLoss float64, estimate estimateFunc,
) (*Result, error) {
	ret := &Result{Name: strategy.Name}
	curLap := 1
	for i, stintLen := range strategy.StintLengths(totalLaps) {
		compound := strategy.Compounds[i]
		est, err := estimate(compound)
		if err != nil {
			return nil, fmt.Errorf("estimating %s for strategy %s: %w",
				compound, strategy.Name, err)
		}
		if i > 0 {
			ret.Parts = append(ret.Parts, &pitPart{seconds: pitLoss})
			ret.TotalSeconds += pitLoss
		}
		part := &stintPart{
			laps:     stintLen,
			lapStart: curLap,
			lapEnd:   curLap + stintLen - 1,
			compound: compound,
			seconds:  stintSeconds(stintLen, est.AvgLapTime, est.DegPerLap),
		}
		ret.Parts = append(ret.Parts, part)
		ret.TotalSeconds += part.seconds
		curLap += stintLen
	}
	return ret, nil
}

// stintSeconds sums L, L+D, L+2D, ... over laps laps in closed form.
func stintSeconds(laps int, avgLap, degPerLap float64) float64 {
	s := float64(laps)
	return s*avgLap + degPerLap*s*(s-1)/2
}

func (s stintPart) Type() PartType           { return PartTypeStint }
func (s stintPart) Laps() int                { return s.laps }
func (s stintPart) LapStart() int            { return s.lapStart }
func (s stintPart) LapEnd() int              { return s.lapEnd }
func (s stintPart) Compound() model.Compound { return s.compound }
func (s stintPart) Seconds() float64         { return s.seconds }

func (s stintPart) Output() string {
	if math.IsNaN(s.seconds) {
		return fmt.Sprintf("%d-%d (%d, %s): insufficient data",
			s.lapStart, s.lapEnd, s.laps, s.compound)
	}
	return fmt.Sprintf("%d-%d (%d, %s): %.3fs",
		s.lapStart, s.lapEnd, s.laps, s.compound, s.seconds)
}

func (p pitPart) Type() PartType   { return PartTypePit }
func (p pitPart) PitTime() float64 { return p.seconds }
func (p pitPart) Seconds() float64 { return p.seconds }

func (p pitPart) Output() string {
	return fmt.Sprintf("Pit %.1fs", p.seconds)
}
