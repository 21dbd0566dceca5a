package intel

// ============================================================================
// RISK SCORING — additive factor table
// ============================================================================
// Rules are grouped by metric. Groups are independent; inside a group only
// the first matching rule scores (the erp and icmp bands).
// ============================================================================

// Level is the bucketed risk severity.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// Factor tags a contributing risk condition.
type Factor string

const (
	FactorComplianceFailure Factor = "CRITICAL_COMPLIANCE_FAILURE"
	FactorExclusionRisk     Factor = "HIGH_EXCLUSION_RISK"
	FactorMigrationSurge    Factor = "MIGRATION_SURGE"
	FactorStagnation        Factor = "DEMOGRAPHIC_STAGNATION"
	FactorFraudSignature    Factor = "FRAUD_SIGNATURE_DETECTED"
	FactorExclusionGap      Factor = "SEVERE_EXCLUSION_GAP"
)

// MaxRiskScore caps the additive total.
const MaxRiskScore = 100

// RiskProfile is the scored risk of one record.
type RiskProfile struct {
	Score   int      `json:"score"` // capped at MaxRiskScore
	Raw     int      `json:"raw"`   // uncapped sum
	Level   Level    `json:"level"`
	Factors []Factor `json:"factors"`
}

type riskRule struct {
	group  string
	match  func(Metrics) bool
	points int
	factor Factor // "" scores without a tag
}

// riskRules is evaluated in order.
var riskRules = []riskRule{
	{"erp", func(m Metrics) bool { return m.ERP < 20 }, 40, FactorComplianceFailure},
	{"erp", func(m Metrics) bool { return m.ERP < 40 }, 25, FactorExclusionRisk},
	{"erp", func(m Metrics) bool { return m.ERP < 60 }, 10, ""},
	{"icmp", func(m Metrics) bool { return m.ICMP > 70 }, 20, FactorMigrationSurge},
	{"icmp", func(m Metrics) bool { return m.ICMP < 10 }, 15, FactorStagnation},
	{"ghost", func(m Metrics) bool { return m.Ghost }, 30, FactorFraudSignature},
	{"lmd", func(m Metrics) bool { return m.LastMile > 15 }, 20, FactorExclusionGap},
}

type levelBand struct {
	above int
	level Level
}

// levelBands map a score onto a level, highest first.
var levelBands = []levelBand{
	{60, LevelCritical},
	{35, LevelHigh},
	{15, LevelModerate},
}

// AssessRisk scores a record's metrics.
func AssessRisk(m Metrics) RiskProfile {
	raw := 0
	factors := []Factor{}
	matched := make(map[string]bool, 4)

	for _, r := range riskRules {
		if matched[r.group] || !r.match(m) {
			continue
		}
		matched[r.group] = true
		raw += r.points
		if r.factor != "" {
			factors = append(factors, r.factor)
		}
	}

	score := raw
	if score > MaxRiskScore {
		score = MaxRiskScore
	}
	return RiskProfile{
		Score:   score,
		Raw:     raw,
		Level:   LevelFor(score),
		Factors: factors,
	}
}

// LevelFor buckets a risk score.
func LevelFor(score int) Level {
	for _, b := range levelBands {
		if score > b.above {
			return b.level
		}
	}
	return LevelLow
}

// LevelColor is the accent colour the dashboard uses for a level.
func LevelColor(l Level) string {
	switch l {
	case LevelCritical:
		return "#ff4b4b"
	case LevelHigh:
		return "#ff8800"
	case LevelModerate:
		return "#ffaa00"
	default:
		return "#4ade80"
	}
}
