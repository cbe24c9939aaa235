package cleaner

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/model"
	"github.com/mpapenbr/f1-strategy-sim-go/pkg/telemetry"
	"github.com/mpapenbr/f1-strategy-sim-go/testsupport/sessiondata"
)

func loadedSession(t *testing.T, s *sessiondata.Session) *sessiondata.Session {
	t.Helper()
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestCleanDerivesFlagsAndTimes(t *testing.T) {
	session := loadedSession(t, &sessiondata.Session{
		RawLaps: []telemetry.RawLap{
			{
				Driver: "VER", LapNumber: 1, LapTime: 95 * time.Second,
				Stint: 1, Compound: "MEDIUM", TyreLife: 1, Position: 1,
				PitOutTime: 10 * time.Second, TrackStatus: "1",
			},
			{
				Driver: "VER", LapNumber: 2, LapTime: 92 * time.Second,
				Stint: 1, Compound: "MEDIUM", TyreLife: 2, Position: 1,
				TrackStatus: "12",
			},
			{
				// no recorded time, approximated from telemetry below
				Driver: "VER", LapNumber: 3,
				Stint: 1, Compound: "MEDIUM", TyreLife: 3, Position: 2,
				PitInTime: 180 * time.Second, TrackStatus: "4",
			},
		},
		TelemetryData: map[string][]telemetry.TelemetrySample{
			"VER-3": {
				{Time: 200 * time.Second, Speed: 280},
				{Time: 250 * time.Second, Speed: 310},
				{Time: 293 * time.Second, Speed: 90},
			},
		},
	})

	got, err := Clean(context.Background(), session, "VER")
	require.NoError(t, err)

	want := []model.Lap{
		{
			Driver: "VER", LapNumber: 1,
			LapTime: 95 * time.Second, LapTimeApprox: 95 * time.Second,
			Stint: 1, Compound: model.CompoundMedium, TyreLife: 1, Position: 1,
			PitOut: true, Status: model.ParseStatusSet("1"),
		},
		{
			Driver: "VER", LapNumber: 2,
			LapTime: 92 * time.Second, LapTimeApprox: 92 * time.Second,
			Stint: 1, Compound: model.CompoundMedium, TyreLife: 2, Position: 1,
			Status: model.ParseStatusSet("12"),
		},
		{
			Driver: "VER", LapNumber: 3,
			LapTimeApprox: 93 * time.Second,
			Stint:         1, Compound: model.CompoundMedium, TyreLife: 3, Position: 2,
			PitIn: true, Status: model.ParseStatusSet("4"),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cleaned laps mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanDriverFilter(t *testing.T) {
	session := loadedSession(t, &sessiondata.Session{
		RawLaps: []telemetry.RawLap{
			sessiondata.Lap("VER", 1, 1, "MEDIUM", 95),
			sessiondata.Lap("HAM", 1, 1, "HARD", 96),
			sessiondata.Lap("VER", 2, 1, "MEDIUM", 92),
		},
	})

	got, err := Clean(context.Background(), session, "HAM")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "HAM", got[0].Driver)

	all, err := Clean(context.Background(), session, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCleanDoesNotMutateSource(t *testing.T) {
	raw := sessiondata.Lap("VER", 2, 1, "MEDIUM", 92)
	session := loadedSession(t, &sessiondata.Session{
		RawLaps: []telemetry.RawLap{raw},
	})

	got, err := Clean(context.Background(), session, "")
	require.NoError(t, err)
	got[0].Compound = model.CompoundWet
	got[0].LapTimeApprox = 0

	after, err := session.Laps()
	require.NoError(t, err)
	assert.Equal(t, raw, after[0])
}

func TestCleanNotLoadedPropagates(t *testing.T) {
	session := &sessiondata.Session{
		RawLaps: []telemetry.RawLap{sessiondata.Lap("VER", 1, 1, "MEDIUM", 95)},
	}
	_, err := Clean(context.Background(), session, "VER")
	assert.ErrorIs(t, err, telemetry.ErrNotLoaded)
}
