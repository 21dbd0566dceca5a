package intel

import (
	"fmt"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// STRATEGY CARDS + REPORT ASSESSMENT
// ============================================================================
// The explorer's three quick-read cards and the downloadable report lines use
// their own, coarser thresholds on the raw 0–1 scores.
// ============================================================================

// Card tones, highest urgency first.
const (
	ToneCritical = "alert-critical"
	ToneHigh     = "alert-high"
	ToneMedium   = "alert-medium"
	ToneGood     = "status-good"
	ToneNeutral  = "status-neutral"
)

// StrategyCard is one quick-read card in the district explorer.
type StrategyCard struct {
	Category string `json:"category"` // exclusion, migration, integrity
	Title    string `json:"title"`
	Tone     string `json:"tone"`
	Body     string `json:"body"`
}

// StrategyCards builds the exclusion, migration and integrity cards.
// Scores are whatever triple the view displays; the ghost flag comes from
// the record.
func StrategyCards(rec schema.Record, s Scores, mode Mode) []StrategyCard {
	future := mode == FutureCast
	cards := make([]StrategyCard, 0, 3)

	if s.ERP > 0.1 {
		title, action := "CRITICAL: Exclusion Risk",
			"**Action:** Deploy mobile update vans to high-dropout wards immediately. Initiate 'Camp Mode'."
		if future {
			title, action = "PREDICTED CRISIS: Exclusion",
				"**Projection:** Without intervention, exclusion rises to critical levels. **Required:** Pre-emptive saturated coverage plan."
		}
		cards = append(cards, StrategyCard{"exclusion", title, ToneHigh, fmt.Sprintf("ERP: %.1f%%. %s", s.ERP*100, action)})
	} else {
		cards = append(cards, StrategyCard{"exclusion", "Saturation Maintenance", ToneGood, "Exclusion risk low. Maintain 0-5 age group focus."})
	}

	if s.ICMP > 0.15 {
		title := "High Migration Velocity"
		if future {
			title = "FORECAST: Migration Surge"
		}
		cards = append(cards, StrategyCard{"migration", title, ToneMedium,
			fmt.Sprintf("ICMP: %.1f%%. Suggests heavy labor outflow. Activate ONORC support desks.", s.ICMP*100)})
	} else {
		cards = append(cards, StrategyCard{"migration", "Stable Demographics", ToneNeutral, "Migration flow stable. Prioritize steady-state updates."})
	}

	if rec.GhostFlag {
		cards = append(cards, StrategyCard{"integrity", "SECURITY ALERT: Anomaly", ToneCritical,
			"**'Data Milling'** signature detected. Suspend non-critical updates."})
	} else {
		cards = append(cards, StrategyCard{"integrity", "System Integrity", ToneGood, "No anomalies detected. Operator trust score nominal."})
	}
	return cards
}

// ReportAssessment holds the three assessment lines of the text report.
type ReportAssessment struct {
	Exclusion string `json:"exclusion"`
	Migration string `json:"migration"`
	Integrity string `json:"integrity"`
}

// AssessForReport evaluates a record, unprojected, for the text report.
func AssessForReport(rec schema.Record) ReportAssessment {
	a := ReportAssessment{
		Exclusion: "Stable. Exclusion within tolerance.",
		Migration: "Stable demographics.",
		Integrity: "System integrity nominal.",
	}
	if rec.ERPScore > 0.1 {
		a.Exclusion = "CRITICAL. High exclusion risk detected."
	}
	if rec.ICMPScore > 0.15 {
		a.Migration = "HIGH VELOCITY. Significant labor outflow indicated."
	}
	if rec.GhostFlag {
		a.Integrity = "ALERT: Data Milling patterns observed. Interactive audit recommended."
	}
	return a
}
