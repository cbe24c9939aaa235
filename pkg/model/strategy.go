package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoCompounds       = errors.New("strategy needs one compound per stint")
	ErrStopLapOutOfRange = errors.New("stop lap out of range")
	ErrStopLapsNotSorted = errors.New("stop laps must be strictly increasing")
)

// Strategy is a named pit stop plan: the laps on which the car pits and the
// compound for each resulting stint (one more compound than stops).
type Strategy struct {
	Name      string     `yaml:"name"`
	StopLaps  []int      `yaml:"stopLaps"`
	Compounds []Compound `yaml:"compounds"`
}

func (s *Strategy) Stops() int { return len(s.StopLaps) }

func (s *Strategy) Validate(totalLaps int) error {
	if len(s.Compounds) != len(s.StopLaps)+1 {
		return fmt.Errorf("%w: %s has %d stops but %d compounds",
			ErrNoCompounds, s.Name, len(s.StopLaps), len(s.Compounds))
	}
	prev := 0
	for _, stop := range s.StopLaps {
		if stop < 1 || stop >= totalLaps {
			return fmt.Errorf("%w: %s stops on lap %d of %d",
				ErrStopLapOutOfRange, s.Name, stop, totalLaps)
		}
		if stop <= prev {
			return fmt.Errorf("%w: %s", ErrStopLapsNotSorted, s.Name)
		}
		prev = stop
	}
	return nil
}

// StintLengths derives the lap count of each stint. The lengths always sum up
// to totalLaps; without stops the whole race is a single stint.
func (s *Strategy) StintLengths(totalLaps int) []int {
	ret := make([]int, 0, len(s.StopLaps)+1)
	prev := 0
	for _, stop := range s.StopLaps {
		ret = append(ret, stop-prev)
		prev = stop
	}
	return append(ret, totalLaps-prev)
}
