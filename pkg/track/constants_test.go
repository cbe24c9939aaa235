package track

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "GREAT_BRITAIN", Normalize("Great Britain"))
	assert.Equal(t, "NETHERLANDS", Normalize("Netherlands"))
	assert.Equal(t, "EMILIA_ROMAGNA", Normalize("emilia romagna"))
}

func TestLapCount(t *testing.T) {
	laps, err := LapCount("Netherlands")
	assert.NoError(t, err)
	assert.Equal(t, 72, laps)

	_, err = LapCount("Atlantis")
	assert.True(t, errors.Is(err, ErrRaceNotFound))
}

func TestPitStopLoss(t *testing.T) {
	loss, err := PitStopLoss("Saudi Arabia")
	assert.NoError(t, err)
	assert.InDelta(t, 21.0, loss, 1e-9)

	_, err = PitStopLoss("Atlantis")
	assert.True(t, errors.Is(err, ErrRaceNotFound))
}

func TestRaces(t *testing.T) {
	races := Races()
	assert.Len(t, races, 24)
	assert.IsIncreasing(t, races)
	for _, name := range races {
		_, err := LapCount(name)
		assert.NoError(t, err)
		_, err = PitStopLoss(name)
		assert.NoError(t, err)
	}
}
