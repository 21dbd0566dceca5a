// Package intel is the district intelligence rule engine.
//
// Every assessment is an ordered band table evaluated top-down, first match
// wins. Classification reads one record and nothing else: no dataset access,
// no caching, no side effects. The engine is a fixed decision table, not a
// model; nothing here learns from data.
package intel

import (
	"math"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// MODE + PROJECTION
// ============================================================================

// Mode selects which score triple is fed to the classifier.
type Mode int

const (
	// Current classifies the record as recorded.
	Current Mode = iota
	// FutureCast classifies the projected "trend without intervention" scores.
	FutureCast
)

func (m Mode) String() string {
	if m == FutureCast {
		return "futurecast"
	}
	return "current"
}

// ModeFromFlag maps a UI toggle onto a Mode.
func ModeFromFlag(futureCast bool) Mode {
	if futureCast {
		return FutureCast
	}
	return Current
}

// Scores is the (ami, erp, icmp) triple on the raw 0–1 scale.
type Scores struct {
	AMI  float64 `json:"ami_score"`
	ERP  float64 `json:"erp_score"`
	ICMP float64 `json:"icmp_score"`
}

// Project applies the FutureCast degrade-trend transform.
func Project(s Scores) Scores {
	return Scores{
		AMI:  math.Max(s.AMI*0.85, 0),
		ERP:  math.Min(s.ERP*1.5, 1.0),
		ICMP: math.Min(s.ICMP*1.1, 1.0),
	}
}

// ScoresFor returns the triple a view should display. Current mode always
// returns the record's own values; projection is never inverted.
func ScoresFor(rec schema.Record, mode Mode) Scores {
	s := Scores{AMI: rec.AMIScore, ERP: rec.ERPScore, ICMP: rec.ICMPScore}
	if mode == FutureCast {
		return Project(s)
	}
	return s
}

// ============================================================================
// METRICS — classifier inputs on display scale
// ============================================================================

// Metrics are the classifier inputs: percents for erp, icmp and last mile,
// AMI on its 0–10 scale.
type Metrics struct {
	District string  `json:"district"`
	State    string  `json:"state"`
	AMI      float64 `json:"ami"`
	ERP      float64 `json:"erp"`
	ICMP     float64 `json:"icmp"`
	LastMile float64 `json:"lastMile"`
	Ghost    bool    `json:"ghost"`
}

// MetricsFor scales a score triple plus the record's untouched fields.
// last_mile_density is never projected.
func MetricsFor(rec schema.Record, s Scores) Metrics {
	return Metrics{
		District: rec.District,
		State:    rec.State,
		AMI:      s.AMI * 10,
		ERP:      s.ERP * 100,
		ICMP:     s.ICMP * 100,
		LastMile: schema.InclusionPercent(rec.LastMileDensity),
		Ghost:    rec.GhostFlag,
	}
}

// ============================================================================
// BRIEF
// ============================================================================

// Brief is the full intelligence brief for one district.
type Brief struct {
	Mode            Mode                `json:"-"`
	ModeName        string              `json:"mode"`
	Scores          Scores              `json:"scores"`
	Metrics         Metrics             `json:"metrics"`
	Risk            RiskProfile         `json:"risk"`
	Regional        RegionalProfile     `json:"regional"`
	RegionalContext string              `json:"regionalContext"`
	Compliance      CompliancePlan      `json:"compliance"`
	Migration       MigrationPlan       `json:"migration"`
	Inclusion       InclusionNarrative  `json:"inclusion"`
	Integrity       IntegrityAssessment `json:"integrity"`
	Strategy        []StrategyCard      `json:"strategy"`
}

// Classify builds the brief for one record. Each sub-assessment is
// independent; only compliance reads the already computed risk score.
func Classify(rec schema.Record, mode Mode) Brief {
	scores := ScoresFor(rec, mode)
	m := MetricsFor(rec, scores)
	risk := AssessRisk(m)
	regional := RegionalProfileFor(rec.State)

	return Brief{
		Mode:            mode,
		ModeName:        mode.String(),
		Scores:          scores,
		Metrics:         m,
		Risk:            risk,
		Regional:        regional,
		RegionalContext: RegionalContext(regional),
		Compliance:      AssessCompliance(m, risk),
		Migration:       AssessMigration(m),
		Inclusion:       AssessInclusion(m),
		Integrity:       AssessIntegrity(m),
		Strategy:        StrategyCards(rec, scores, mode),
	}
}
