package schema

import (
	"fmt"
	"math"
)

// ============================================================================
// SCHEMA — Shape of the district dataset for the engine, classifier and adapters
// ============================================================================
// One Record per district. Dimensions are string fields used for grouping and
// filtering; measures are the numeric scores. MeasureMeta carries the display
// scaling each adapter applies (AMI ×10, ERP/ICMP ×100, last mile ×250 capped).
// ============================================================================

// Dimension and measure keys. These double as the JSON field names of the
// dataset as it is shipped to the browser.
const (
	KeyState    = "state"
	KeyDistrict = "district"

	KeyAMI      = "ami_score"
	KeyERP      = "erp_score"
	KeyICMP     = "icmp_score"
	KeyLastMile = "last_mile_density"
	KeyGhost    = "ghost_flag"
)

// Sentinel state values produced by upstream cleaning. Records carrying them
// stay in the dataset but never surface in state-level rollups or selectors.
const (
	StateDrop    = "DROP"
	StateUnknown = "UNKNOWN"
)

// LastMileScale converts raw last_mile_density into an inclusion-gap percent.
// Calibrated against the published dashboard figures; keep the literal.
const LastMileScale = 250.0

// Record is a single district row.
type Record struct {
	State           string  `json:"state"`
	District        string  `json:"district"`
	AMIScore        float64 `json:"ami_score"`
	ERPScore        float64 `json:"erp_score"`
	ICMPScore       float64 `json:"icmp_score"`
	LastMileDensity float64 `json:"last_mile_density"`
	GhostFlag       bool    `json:"ghost_flag"`
}

// IsSentinelState reports whether state is one of the excluded sentinel values.
func IsSentinelState(state string) bool {
	return state == StateDrop || state == StateUnknown
}

// InclusionPercent maps raw last_mile_density onto the 0–100 display scale.
func InclusionPercent(density float64) float64 {
	return math.Min(density*LastMileScale, 100)
}

// GhostValue exposes the ghost flag as a measure (1 flagged, 0 clean).
func (r Record) GhostValue() float64 {
	if r.GhostFlag {
		return 1
	}
	return 0
}

// Value returns the raw value of a measure key (0 for unknown keys).
func (r Record) Value(key string) float64 {
	switch key {
	case KeyAMI:
		return r.AMIScore
	case KeyERP:
		return r.ERPScore
	case KeyICMP:
		return r.ICMPScore
	case KeyLastMile:
		return r.LastMileDensity
	case KeyGhost:
		return r.GhostValue()
	}
	return 0
}

// Config describes the complete shape of the dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Groupable   bool   `json:"groupable"`
	Filterable  bool   `json:"filterable"`
	Parent      string `json:"parent,omitempty"` // Parent dimension key for hierarchies
}

// MeasureMeta describes a numeric field and how it is displayed.
type MeasureMeta struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	ShortName   string  `json:"shortName"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit,omitempty"` // "/10", "%"
	Multiplier  float64 `json:"multiplier"`
	Cap         float64 `json:"cap,omitempty"` // 0 = uncapped
	Decimals    int     `json:"decimals"`
}

// Scale converts a raw [0,1] score to its display scale.
func (m MeasureMeta) Scale(raw float64) float64 {
	mult := m.Multiplier
	if mult == 0 {
		mult = 1
	}
	v := raw * mult
	if m.Cap > 0 && v > m.Cap {
		v = m.Cap
	}
	return v
}

// Format renders a raw score on its display scale with unit suffix.
func (m MeasureMeta) Format(raw float64) string {
	v := fmt.Sprintf("%.*f", m.Decimals, m.Scale(raw))
	if m.Unit == "%" {
		return v + "%"
	}
	return v
}

var pulseConfig = Config{
	Name:        "Aadhaar Pulse",
	Version:     "2.0",
	Description: "District-level identity system health metrics",
	Dimensions: []DimensionMeta{
		{Key: KeyState, DisplayName: "State / UT", Groupable: true, Filterable: true},
		{Key: KeyDistrict, DisplayName: "District", Groupable: true, Filterable: true, Parent: KeyState},
	},
	Measures: []MeasureMeta{
		{
			Key: KeyAMI, DisplayName: "AMI Score (Maturity Index)", ShortName: "AMI",
			Description: "Composite system health, 0-1",
			Unit:        "/10", Multiplier: 10, Decimals: 1,
		},
		{
			Key: KeyERP, DisplayName: "Exclusion Risk (ERP)", ShortName: "ERP",
			Description: "Biometric update compliance, 0-1",
			Unit:        "%", Multiplier: 100, Decimals: 1,
		},
		{
			Key: KeyICMP, DisplayName: "Migration Pulse (ICMP)", ShortName: "ICMP",
			Description: "Demographic update churn, 0-1",
			Unit:        "%", Multiplier: 100, Decimals: 1,
		},
		{
			Key: KeyLastMile, DisplayName: "Inclusion (18+)", ShortName: "Inclusion",
			Description: "Raw inclusion-gap signal",
			Unit:        "%", Multiplier: LastMileScale, Cap: 100, Decimals: 1,
		},
		{
			Key: KeyGhost, DisplayName: "Integrity Flag", ShortName: "Integrity",
			Description: "1 when an update-integrity anomaly was flagged",
			Multiplier:  1, Decimals: 0,
		},
	},
}

// Default returns the Aadhaar Pulse dataset description.
func Default() Config {
	c := pulseConfig
	c.Dimensions = append([]DimensionMeta(nil), pulseConfig.Dimensions...)
	c.Measures = append([]MeasureMeta(nil), pulseConfig.Measures...)
	return c
}

// Measure looks up a measure by key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// MustMeasure is Measure for keys known at compile time.
func (c Config) MustMeasure(key string) MeasureMeta {
	m, ok := c.Measure(key)
	if !ok {
		panic("schema: unknown measure " + key)
	}
	return m
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}
