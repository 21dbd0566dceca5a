package schema

import (
	"math"
	"testing"
)

// ============================================================================
// SCHEMA TESTS
// ============================================================================

func TestDefaultMeasures(t *testing.T) {
	config := Default()

	keys := config.MeasureKeys()
	for _, key := range []string{KeyAMI, KeyERP, KeyICMP, KeyLastMile, KeyGhost} {
		assertContains(t, keys, key, "measure should be registered")
	}
	dims := config.DimensionKeys()
	assertContains(t, dims, KeyState, "state dimension")
	assertContains(t, dims, KeyDistrict, "district dimension")

	if _, ok := config.Measure("amount"); ok {
		t.Error("unknown measure should not resolve")
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := Default()
	a.Measures[0].Multiplier = 999
	b := Default()
	if b.Measures[0].Multiplier == 999 {
		t.Error("Default() must not share slices between callers")
	}
}

func TestMeasureScaleAndFormat(t *testing.T) {
	config := Default()

	tests := []struct {
		key   string
		raw   float64
		scale float64
		text  string
	}{
		{KeyAMI, 0.82, 8.2, "8.2"},
		{KeyERP, 0.75, 75, "75.0%"},
		{KeyICMP, 0.055, 5.5, "5.5%"},
		{KeyLastMile, 0.03, 7.5, "7.5%"},
		{KeyLastMile, 0.9, 100, "100.0%"}, // capped
	}

	for _, tt := range tests {
		m := config.MustMeasure(tt.key)
		if got := m.Scale(tt.raw); math.Abs(got-tt.scale) > 1e-9 {
			t.Errorf("%s.Scale(%v) = %v, want %v", tt.key, tt.raw, got, tt.scale)
		}
		if got := m.Format(tt.raw); got != tt.text {
			t.Errorf("%s.Format(%v) = %q, want %q", tt.key, tt.raw, got, tt.text)
		}
	}
}

func TestInclusionPercent(t *testing.T) {
	tests := []struct {
		density float64
		want    float64
	}{
		{0, 0},
		{0.03, 7.5},
		{0.2, 50},
		{0.4, 100},
		{1.5, 100},
	}
	for _, tt := range tests {
		if got := InclusionPercent(tt.density); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("InclusionPercent(%v) = %v, want %v", tt.density, got, tt.want)
		}
	}
}

func TestSentinelStates(t *testing.T) {
	if !IsSentinelState("DROP") || !IsSentinelState("UNKNOWN") {
		t.Error("DROP and UNKNOWN are sentinels")
	}
	if IsSentinelState("Kerala") || IsSentinelState("drop") {
		t.Error("sentinel match is exact")
	}
}

func TestValidate(t *testing.T) {
	ok := Record{State: "Kerala", District: "Kochi", AMIScore: 0.8, ERPScore: 0.7, ICMPScore: 0.5, LastMileDensity: 0.02}
	if problems := Validate(ok); len(problems) != 0 {
		t.Errorf("valid record reported problems: %v", problems)
	}

	bad := Record{AMIScore: 1.2, ERPScore: -0.1, ICMPScore: 0.5, LastMileDensity: -1}
	problems := Validate(bad)
	if len(problems) != 5 {
		t.Errorf("expected 5 problems, got %d: %v", len(problems), problems)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func assertContains(t *testing.T, slice []string, item string, msg string) {
	t.Helper()
	for _, s := range slice {
		if s == item {
			return
		}
	}
	t.Errorf("%s: %q not found in %v", msg, item, slice)
}
