package intel

import (
	"math"
	"strings"
	"testing"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// SCENARIOS
// ============================================================================

func kochi() schema.Record {
	return schema.Record{State: "KERALA", District: "Kochi", AMIScore: 0.82, ERPScore: 0.75, ICMPScore: 0.55, LastMileDensity: 0.03}
}

func biharX() schema.Record {
	return schema.Record{State: "Bihar", District: "X", AMIScore: 0.3, ERPScore: 0.15, ICMPScore: 0.05, LastMileDensity: 0.20, GhostFlag: true}
}

func TestClassifyKochi(t *testing.T) {
	b := Classify(kochi(), Current)

	if b.Compliance.Severity != "OPTIMAL" || b.Compliance.Priority != "P3" {
		t.Errorf("compliance = %s/%s, want OPTIMAL/P3", b.Compliance.Severity, b.Compliance.Priority)
	}
	if b.Compliance.Timeline != "Quarterly review" {
		t.Errorf("timeline = %q", b.Compliance.Timeline)
	}
	if b.Migration.Pattern != "MODERATE_FLOW" {
		t.Errorf("migration = %s, want MODERATE_FLOW", b.Migration.Pattern)
	}
	if b.Risk.Level != LevelLow || b.Risk.Score != 0 || len(b.Risk.Factors) != 0 {
		t.Errorf("risk = %+v, want LOW/0 with no factors", b.Risk)
	}
	if b.Regional != TechAdvanced {
		t.Errorf("regional = %s, want TECH_ADVANCED", b.Regional)
	}
	if b.Inclusion.Band != InclusionModerate {
		t.Errorf("inclusion band = %s", b.Inclusion.Band)
	}
	if b.Integrity.Anomaly || b.Integrity.LegalAction != "" {
		t.Errorf("healthy integrity should carry no legal action: %+v", b.Integrity)
	}
	if !strings.Contains(b.Compliance.Action, "Use Kochi as a best-practice model") {
		t.Errorf("compliance action not parameterized by district:\n%s", b.Compliance.Action)
	}
}

func TestClassifyBihar(t *testing.T) {
	b := Classify(biharX(), Current)

	if b.Risk.Raw != 105 || b.Risk.Score != 100 {
		t.Errorf("risk raw/score = %d/%d, want 105/100", b.Risk.Raw, b.Risk.Score)
	}
	if b.Risk.Level != LevelCritical {
		t.Errorf("risk level = %s, want CRITICAL", b.Risk.Level)
	}
	wantFactors := []Factor{FactorComplianceFailure, FactorStagnation, FactorFraudSignature, FactorExclusionGap}
	if len(b.Risk.Factors) != len(wantFactors) {
		t.Fatalf("factors = %v, want %v", b.Risk.Factors, wantFactors)
	}
	for i, f := range wantFactors {
		if b.Risk.Factors[i] != f {
			t.Errorf("factor %d = %s, want %s", i, b.Risk.Factors[i], f)
		}
	}
	if b.Compliance.Severity != "CRITICAL" || b.Compliance.Priority != "P0" || b.Compliance.Timeline != "72 hours" {
		t.Errorf("compliance = %+v", b.Compliance)
	}
	if !strings.Contains(b.Compliance.Action, "Risk Assessment: 100%") {
		t.Errorf("compliance action should quote the capped score:\n%s", b.Compliance.Action)
	}
	if b.Migration.Pattern != "LOCKED" {
		t.Errorf("migration = %s, want LOCKED", b.Migration.Pattern)
	}
	if b.Inclusion.Band != InclusionCritical {
		t.Errorf("inclusion band = %s, want critical", b.Inclusion.Band)
	}
	if !b.Integrity.Anomaly || b.Integrity.LegalAction == "" {
		t.Errorf("anomaly branch must carry a legal action: %+v", b.Integrity)
	}
	if b.Regional != HighDensityRural {
		t.Errorf("regional = %s", b.Regional)
	}
}

// ============================================================================
// RISK PROPERTIES
// ============================================================================

func TestRiskCappedAtBoundary(t *testing.T) {
	r := AssessRisk(Metrics{ERP: 0, ICMP: 100, Ghost: true, LastMile: 100})
	if r.Raw != 110 || r.Score != 100 {
		t.Errorf("raw/score = %d/%d, want 110/100", r.Raw, r.Score)
	}
}

func TestRiskWithinRange(t *testing.T) {
	for erp := 0.0; erp <= 100; erp += 5 {
		for icmp := 0.0; icmp <= 100; icmp += 5 {
			for _, ghost := range []bool{false, true} {
				for lmd := 0.0; lmd <= 100; lmd += 25 {
					r := AssessRisk(Metrics{ERP: erp, ICMP: icmp, Ghost: ghost, LastMile: lmd})
					if r.Score < 0 || r.Score > MaxRiskScore {
						t.Fatalf("score %d out of range for erp=%v icmp=%v ghost=%v lmd=%v", r.Score, erp, icmp, ghost, lmd)
					}
				}
			}
		}
	}
}

func TestRiskMonotonic(t *testing.T) {
	base := Metrics{ERP: 50, ICMP: 40, LastMile: 5}

	prev := -1
	for erp := 100.0; erp >= 0; erp -= 2.5 {
		m := base
		m.ERP = erp
		s := AssessRisk(m).Score
		if s < prev {
			t.Errorf("score fell from %d to %d as erp dropped to %v", prev, s, erp)
		}
		prev = s
	}

	for _, step := range []float64{2.5, -2.5} {
		prev = -1
		for icmp := 40.0; icmp >= 0 && icmp <= 100; icmp += step {
			m := base
			m.ICMP = icmp
			s := AssessRisk(m).Score
			if s < prev {
				t.Errorf("score fell from %d to %d as icmp moved to %v", prev, s, icmp)
			}
			prev = s
		}
	}

	prev = -1
	for lmd := 0.0; lmd <= 100; lmd += 2.5 {
		m := base
		m.LastMile = lmd
		s := AssessRisk(m).Score
		if s < prev {
			t.Errorf("score fell from %d to %d as lmd rose to %v", prev, s, lmd)
		}
		prev = s
	}

	clean, flagged := base, base
	flagged.Ghost = true
	if AssessRisk(flagged).Score < AssessRisk(clean).Score {
		t.Error("flagging ghost lowered the score")
	}
}

func TestRiskBandsFirstMatch(t *testing.T) {
	tests := []struct {
		erp, icmp float64
		want      int
	}{
		{10, 50, 40},
		{25, 50, 25},
		{45, 50, 10},
		{65, 50, 0},
		{65, 80, 20},
		{65, 5, 15},
		{10, 80, 60},
	}
	for _, tt := range tests {
		if got := AssessRisk(Metrics{ERP: tt.erp, ICMP: tt.icmp}).Score; got != tt.want {
			t.Errorf("erp=%v icmp=%v: score %d, want %d", tt.erp, tt.icmp, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{0, LevelLow}, {15, LevelLow}, {16, LevelModerate}, {35, LevelModerate},
		{36, LevelHigh}, {60, LevelHigh}, {61, LevelCritical}, {100, LevelCritical},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// ============================================================================
// BANDS
// ============================================================================

func TestComplianceBands(t *testing.T) {
	tests := []struct {
		erp      float64
		severity string
		budget   string
	}{
		{5, "CRITICAL", "Emergency allocation: ₹15-20 lakhs"},
		{30, "HIGH", "Standard allocation: ₹8-12 lakhs"},
		{55, "MODERATE", "Routine budget: ₹3-5 lakhs"},
		{85, "OPTIMAL", "Minimal: ₹1-2 lakhs for audits"},
	}
	for _, tt := range tests {
		m := Metrics{District: "D", ERP: tt.erp}
		c := AssessCompliance(m, AssessRisk(m))
		if c.Severity != tt.severity || c.Budget != tt.budget {
			t.Errorf("erp=%v: %s / %s", tt.erp, c.Severity, c.Budget)
		}
	}
}

func TestMigrationBands(t *testing.T) {
	tests := []struct {
		icmp    float64
		pattern string
	}{
		{85, "HIGH_INFLUX"}, {55, "MODERATE_FLOW"}, {25, "LOW_MOBILITY"}, {5, "LOCKED"},
	}
	for _, tt := range tests {
		if got := AssessMigration(Metrics{ICMP: tt.icmp}).Pattern; got != tt.pattern {
			t.Errorf("icmp=%v: %s, want %s", tt.icmp, got, tt.pattern)
		}
	}
}

func TestInclusionBands(t *testing.T) {
	tests := []struct {
		lmd  float64
		band string
	}{
		{50, InclusionCritical}, {10, InclusionModerate}, {2.5, InclusionNearSaturation},
	}
	for _, tt := range tests {
		if got := AssessInclusion(Metrics{LastMile: tt.lmd}).Band; got != tt.band {
			t.Errorf("lmd=%v: %s, want %s", tt.lmd, got, tt.band)
		}
	}
	if text := AssessInclusion(Metrics{LastMile: 20}).Text; !strings.Contains(text, "20000 adults per 100K") {
		t.Errorf("critical narrative:\n%s", text)
	}
}

func TestRegionalProfileOrder(t *testing.T) {
	tests := []struct {
		state string
		want  RegionalProfile
	}{
		{"Kerala", TechAdvanced},
		{"Tamil Nadu", TechAdvanced},
		{"West Bengal", HighDensityRural},
		{"Gujarat", IndustrialHub},
		{"Jammu And Kashmir", DifficultTerrain},
		{"Odisha", Emerging},
		{"Goa", Standard},
		{"", Standard},
	}
	for _, tt := range tests {
		if got := RegionalProfileFor(tt.state); got != tt.want {
			t.Errorf("RegionalProfileFor(%q) = %s, want %s", tt.state, got, tt.want)
		}
	}
	if RegionalContext(Standard) == "" || RegionalContext(TechAdvanced) == RegionalContext(Standard) {
		t.Error("every profile needs its own context")
	}
}

// ============================================================================
// FUTURECAST
// ============================================================================

func TestProject(t *testing.T) {
	got := Project(Scores{AMI: 0.5, ERP: 0.8, ICMP: 0.5})
	assertFloat(t, got.AMI, 0.425, "ami")
	assertFloat(t, got.ERP, 1.0, "erp capped")
	assertFloat(t, got.ICMP, 0.55, "icmp")

	got = Project(Scores{AMI: 0, ERP: 0.2, ICMP: 0.95})
	assertFloat(t, got.ERP, 0.3, "erp")
	assertFloat(t, got.ICMP, 1.0, "icmp capped")
}

func TestFutureCastToggleRestoresOriginal(t *testing.T) {
	rec := kochi()
	original := ScoresFor(rec, Current)
	projected := ScoresFor(rec, FutureCast)
	if projected == original {
		t.Fatal("projection should change the triple")
	}
	restored := ScoresFor(rec, Current)
	if restored != (Scores{AMI: rec.AMIScore, ERP: rec.ERPScore, ICMP: rec.ICMPScore}) {
		t.Errorf("toggle off returned %+v, want the record's own triple", restored)
	}
}

func TestFutureCastLeavesLastMile(t *testing.T) {
	rec := kochi()
	if Classify(rec, FutureCast).Metrics.LastMile != Classify(rec, Current).Metrics.LastMile {
		t.Error("last mile must not be projected")
	}
}

func TestStrategyCards(t *testing.T) {
	cards := StrategyCards(kochi(), ScoresFor(kochi(), Current), Current)
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].Title != "CRITICAL: Exclusion Risk" || cards[1].Title != "High Migration Velocity" || cards[2].Title != "System Integrity" {
		t.Errorf("titles = %q, %q, %q", cards[0].Title, cards[1].Title, cards[2].Title)
	}

	future := StrategyCards(biharX(), ScoresFor(biharX(), FutureCast), FutureCast)
	if future[0].Title != "PREDICTED CRISIS: Exclusion" || !strings.HasPrefix(future[0].Body, "ERP: 22.5%") {
		t.Errorf("future exclusion card = %+v", future[0])
	}
	if future[1].Title != "Stable Demographics" {
		t.Errorf("future migration card = %+v", future[1])
	}
	if future[2].Tone != ToneCritical {
		t.Errorf("integrity card tone = %s", future[2].Tone)
	}
}

func TestAssessForReport(t *testing.T) {
	a := AssessForReport(biharX())
	if !strings.HasPrefix(a.Exclusion, "CRITICAL") || a.Migration != "Stable demographics." || !strings.HasPrefix(a.Integrity, "ALERT") {
		t.Errorf("report assessment = %+v", a)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func assertFloat(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}
