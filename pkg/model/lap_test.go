package model

import "testing"

func TestParseStatusSet(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		active  []TrackStatus
		caution bool
	}{
		{name: "green only", code: "1", active: []TrackStatus{StatusGreen}},
		{
			name:    "green and yellow",
			code:    "12",
			active:  []TrackStatus{StatusGreen, StatusYellow},
			caution: true,
		},
		{
			name:    "vsc ending",
			code:    "67",
			active:  []TrackStatus{StatusVSC, StatusVSCEnding},
			caution: true,
		},
		{
			name:    "safety car",
			code:    "4",
			active:  []TrackStatus{StatusSafetyCar},
			caution: true,
		},
		{name: "empty", code: "", active: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStatusSet(tt.code)
			want := StatusSet(0)
			for _, ts := range tt.active {
				want |= 1 << uint(ts)
				if !got.Has(ts) {
					t.Errorf("code %q: status %s should be active", tt.code, ts)
				}
			}
			if got != want {
				t.Errorf("code %q: got %b, want %b", tt.code, got, want)
			}
			if got.HasCaution() != tt.caution {
				t.Errorf("code %q: HasCaution() = %v, want %v",
					tt.code, got.HasCaution(), tt.caution)
			}
		})
	}
}

func TestCompoundIsWet(t *testing.T) {
	for _, c := range []Compound{CompoundSoft, CompoundMedium, CompoundHard} {
		if c.IsWet() {
			t.Errorf("%s should not be wet", c)
		}
	}
	for _, c := range []Compound{CompoundIntermediate, CompoundWet} {
		if !c.IsWet() {
			t.Errorf("%s should be wet", c)
		}
	}
}
