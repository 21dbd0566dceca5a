package intel

import (
	"fmt"
	"math"
)

// ============================================================================
// BAND TABLES
// ============================================================================
// Each assessment is an ordered slice of bands. The last band of every table
// matches unconditionally, so evaluation always produces a result.
// Narrative text keeps **bold** markers; renderers decide how to show them.
// ============================================================================

type band[T any] struct {
	match func(Metrics) bool
	build func(Metrics, RiskProfile) T
}

func always(Metrics) bool { return true }

func firstMatch[T any](bands []band[T], m Metrics, risk RiskProfile) T {
	for _, b := range bands {
		if b.match(m) {
			return b.build(m, risk)
		}
	}
	var zero T
	return zero
}

// ============================================================================
// COMPLIANCE
// ============================================================================

// CompliancePlan is the exclusion-risk response for a district.
type CompliancePlan struct {
	Severity string `json:"severity"` // CRITICAL, HIGH, MODERATE, OPTIMAL
	Status   string `json:"status"`
	Action   string `json:"action"`
	Priority string `json:"priority"` // P0..P3
	Timeline string `json:"timeline"`
	Budget   string `json:"budget"`
}

var complianceBands = []band[CompliancePlan]{
	{
		match: func(m Metrics) bool { return m.ERP < 20 },
		build: func(m Metrics, r RiskProfile) CompliancePlan {
			return CompliancePlan{
				Severity: "CRITICAL",
				Status:   fmt.Sprintf("EMERGENCY INTERVENTION REQUIRED (%.1f%%)", m.ERP),
				Action: "**IMMEDIATE ACTIONS REQUIRED:**\n" +
					"• Deploy 10+ mobile biometric units to all government schools within 72 hours\n" +
					"• Coordinate with District Education Officer for mandatory biometric camps during school hours\n" +
					fmt.Sprintf("• Issue SMS alerts to parents of all children aged 4-6 and 14-16 in %s\n", m.District) +
					fmt.Sprintf("• Risk Assessment: %d%% - Mass service denial imminent in PM-POSHAN, scholarship schemes, and subsidized meal programs", r.Score),
				Priority: "P0",
				Timeline: "72 hours",
				Budget:   "Emergency allocation: ₹15-20 lakhs",
			}
		},
	},
	{
		match: func(m Metrics) bool { return m.ERP < 40 },
		build: func(m Metrics, r RiskProfile) CompliancePlan {
			return CompliancePlan{
				Severity: "HIGH",
				Status:   fmt.Sprintf("SIGNIFICANT GAP DETECTED (%.1f%%)", m.ERP),
				Action: "**PRIORITY INTERVENTIONS:**\n" +
					"• Deploy 5-8 mobile biometric units targeting Age 5 and Age 15 cohorts\n" +
					"• Coordinate with Anganwadi workers for door-to-door awareness in rural pockets\n" +
					"• Set up temporary update kiosks at Primary Health Centers and Block offices\n" +
					fmt.Sprintf("• Risk Assessment: %d%% - Potential service disruption for 30-40%% of eligible children", r.Score),
				Priority: "P1",
				Timeline: "2 weeks",
				Budget:   "Standard allocation: ₹8-12 lakhs",
			}
		},
	},
	{
		match: func(m Metrics) bool { return m.ERP < 70 },
		build: func(m Metrics, r RiskProfile) CompliancePlan {
			return CompliancePlan{
				Severity: "MODERATE",
				Status:   fmt.Sprintf("BELOW NATIONAL AVERAGE (%.1f%%)", m.ERP),
				Action: "**OPTIMIZATION MEASURES:**\n" +
					"• Trigger automated SMS reminders to parents via Aadhaar-linked mobile numbers\n" +
					"• Set up temporary update kiosks at district hospitals and major weekly markets\n" +
					"• Partner with local schools for awareness sessions during parent-teacher meetings\n" +
					fmt.Sprintf("• Risk Assessment: %d%% - Manageable with routine interventions", r.Score),
				Priority: "P2",
				Timeline: "1 month",
				Budget:   "Routine budget: ₹3-5 lakhs",
			}
		},
	},
	{
		match: always,
		build: func(m Metrics, r RiskProfile) CompliancePlan {
			return CompliancePlan{
				Severity: "OPTIMAL",
				Status:   fmt.Sprintf("HEALTHY COMPLIANCE (%.1f%%)", m.ERP),
				Action: "**MAINTENANCE & QUALITY FOCUS:**\n" +
					"• System performing at benchmark levels - shift resources to quality audits\n" +
					"• Conduct biometric quality checks and duplicate detection drives\n" +
					fmt.Sprintf("• Use %s as a best-practice model for neighboring regions\n", m.District) +
					fmt.Sprintf("• Risk Assessment: %d%% - Minimal intervention required", r.Score),
				Priority: "P3",
				Timeline: "Quarterly review",
				Budget:   "Minimal: ₹1-2 lakhs for audits",
			}
		},
	},
}

// AssessCompliance grades erp against the compliance bands. The risk
// profile only parameterizes the narrative.
func AssessCompliance(m Metrics, risk RiskProfile) CompliancePlan {
	return firstMatch(complianceBands, m, risk)
}

// ============================================================================
// MIGRATION
// ============================================================================

// MigrationPlan describes the demographic churn pattern of a district.
type MigrationPlan struct {
	Pattern        string `json:"pattern"` // HIGH_INFLUX, MODERATE_FLOW, LOW_MOBILITY, LOCKED
	Status         string `json:"status"`
	Insight        string `json:"insight"`
	Recommendation string `json:"recommendation"`
	EconomicImpact string `json:"economicImpact"`
}

var migrationBands = []band[MigrationPlan]{
	{
		match: func(m Metrics) bool { return m.ICMP > 70 },
		build: func(m Metrics, _ RiskProfile) MigrationPlan {
			return MigrationPlan{
				Pattern: "HIGH_INFLUX",
				Status:  fmt.Sprintf("MAJOR MIGRATION HUB (%.1f%%)", m.ICMP),
				Insight: "**MIGRATION INTELLIGENCE:**\n" +
					fmt.Sprintf("%s is experiencing significant demographic churn (%.1f%% update velocity), indicating it's a major labor magnet. High update frequency suggests:\n", m.District, m.ICMP) +
					"• Seasonal migration from rural hinterlands for construction/industrial work\n" +
					"• Permanent relocation due to employment opportunities\n" +
					"• Cross-state labor movement requiring portable identity services",
				Recommendation: "**STRATEGIC INFRASTRUCTURE:**\n" +
					"• Establish dedicated ONORC (One Nation One Ration Card) facilitation centers at:\n" +
					"  - Railway stations and bus terminals\n" +
					"  - Major factory gates and construction sites\n" +
					"  - Urban slum clusters with high migrant density\n" +
					"• Integrate Aadhaar update desks with factory HR departments\n" +
					"• Deploy mobile units during festival seasons when reverse migration peaks\n" +
					"• Partner with labor contractors for bulk enrollment drives",
				EconomicImpact: "High - Indicates economic growth and job creation",
			}
		},
	},
	{
		match: func(m Metrics) bool { return m.ICMP > 40 },
		build: func(m Metrics, _ RiskProfile) MigrationPlan {
			return MigrationPlan{
				Pattern: "MODERATE_FLOW",
				Status:  fmt.Sprintf("STABLE DEMOGRAPHIC FLUX (%.1f%%)", m.ICMP),
				Insight: "**NORMAL POPULATION DYNAMICS:**\n" +
					"Update patterns align with typical urban-rural interchange:\n" +
					"• Educational migration (students moving for higher education)\n" +
					"• Marriage-related relocations\n" +
					"• Government job transfers\n" +
					"• Routine address updates",
				Recommendation: "**STANDARD OPERATIONS:**\n" +
					"• Maintain existing Registrar infrastructure at current capacity\n" +
					"• Focus on reducing wait times through process optimization\n" +
					"• Implement appointment-based system for non-urgent updates\n" +
					"• Quarterly capacity reviews to prevent bottlenecks",
				EconomicImpact: "Stable - Normal demographic equilibrium",
			}
		},
	},
	{
		match: func(m Metrics) bool { return m.ICMP > 15 },
		build: func(m Metrics, _ RiskProfile) MigrationPlan {
			return MigrationPlan{
				Pattern: "LOW_MOBILITY",
				Status:  fmt.Sprintf("STATIC POPULATION BASE (%.1f%%)", m.ICMP),
				Insight: "**DEMOGRAPHIC STAGNATION INDICATORS:**\n" +
					"Very low demographic movement suggests:\n" +
					"• Aging population with minimal youth retention\n" +
					"• Limited economic opportunities causing out-migration\n" +
					"• Possible rural-to-urban exodus leaving elderly behind\n" +
					"• Established communities with low turnover",
				Recommendation: "**RESOURCE REALLOCATION:**\n" +
					"• Re-allocate mobile update units to high-churn districts\n" +
					"• Focus local resources on elderly-friendly services:\n" +
					"  - Iris scan priority over fingerprint (age-related degradation)\n" +
					"  - Home-visit programs for mobility-impaired seniors\n" +
					"  - Simplified update process at Panchayat offices\n" +
					"• Investigate economic development opportunities to retain youth",
				EconomicImpact: "Concerning - Potential economic stagnation",
			}
		},
	},
	{
		match: always,
		build: func(m Metrics, _ RiskProfile) MigrationPlan {
			return MigrationPlan{
				Pattern: "LOCKED",
				Status:  fmt.Sprintf("DEMOGRAPHICALLY FROZEN (%.1f%%)", m.ICMP),
				Insight: "**CRITICAL INVESTIGATION REQUIRED:**\n" +
					fmt.Sprintf("Extremely low update activity (%.1f%%) indicates:\n", m.ICMP) +
					"• Tribal/remote area with minimal government interface\n" +
					"• Possible data collection gap or system failure\n" +
					"• Population vs. database mismatch\n" +
					"• Potential mass out-migration not captured in records",
				Recommendation: "**GROUND VERIFICATION PROTOCOL:**\n" +
					"• Deploy survey teams for door-to-door population verification\n" +
					"• Cross-reference with Census data and electoral rolls\n" +
					"• Investigate if area requires specialized tribal outreach teams\n" +
					"• Check for system/network issues preventing update registration\n" +
					"• Consider satellite-based population density mapping",
				EconomicImpact: "Unknown - Requires immediate investigation",
			}
		},
	},
}

// AssessMigration grades icmp against the migration bands.
func AssessMigration(m Metrics) MigrationPlan {
	return firstMatch(migrationBands, m, RiskProfile{})
}

// ============================================================================
// INCLUSION
// ============================================================================

// Inclusion bands.
const (
	InclusionCritical       = "critical"
	InclusionModerate       = "moderate"
	InclusionNearSaturation = "near-saturation"
)

// InclusionNarrative is the adult-inclusion text block for a district.
type InclusionNarrative struct {
	Band string `json:"band"`
	Text string `json:"text"`
}

var inclusionBands = []band[InclusionNarrative]{
	{
		match: func(m Metrics) bool { return m.LastMile > 15 },
		build: func(m Metrics, _ RiskProfile) InclusionNarrative {
			return InclusionNarrative{Band: InclusionCritical, Text: "**CRITICAL EXCLUSION CRISIS:**\n" +
				fmt.Sprintf("Significant adult population (%.1f%%) still outside Aadhaar ecosystem represents %.0f adults per 100K population.\n\n", m.LastMile, math.Round(m.LastMile*1000)) +
				"**ROOT CAUSES:**\n" +
				"• Remote tribal settlements beyond road connectivity\n" +
				"• Elderly population unaware of Aadhaar importance\n" +
				"• Disabled individuals unable to reach enrollment centers\n" +
				"• Nomadic communities with no fixed address\n" +
				"• Linguistic/cultural barriers in tribal areas\n\n" +
				"**INTERVENTION STRATEGY:**\n" +
				"• Deploy \"Aadhaar-on-Wheels\" with portable iris scanners to:\n" +
				"  - Forest villages and tribal hamlets\n" +
				"  - Old-age homes and disability care centers\n" +
				"  - Weekly tribal markets (haats)\n" +
				"• Coordinate with local Panchayats for community mobilization\n" +
				"• Provide interpreters for tribal languages\n" +
				"• Offer doorstep enrollment for bed-ridden elderly\n" +
				"• Partner with NGOs working in remote areas"}
		},
	},
	{
		match: func(m Metrics) bool { return m.LastMile > 5 },
		build: func(m Metrics, _ RiskProfile) InclusionNarrative {
			return InclusionNarrative{Band: InclusionModerate, Text: "**MODERATE INCLUSION DEFICIT:**\n" +
				fmt.Sprintf("%.1f%% of adults are first-time enrollees, suggesting pockets of exclusion.\n\n", m.LastMile) +
				"**TARGETED APPROACH:**\n" +
				"• Focus on elderly (65+) and disabled populations\n" +
				"• Set up temporary centers at:\n" +
				"  - Religious gatherings and festivals\n" +
				"  - Weekly markets and melas\n" +
				"  - Government hospitals during OPD hours\n" +
				"• Conduct awareness campaigns in local languages\n" +
				"• Simplify documentation requirements for elderly"}
		},
	},
	{
		match: always,
		build: func(m Metrics, _ RiskProfile) InclusionNarrative {
			return InclusionNarrative{Band: InclusionNearSaturation, Text: "**NEAR-SATURATION ACHIEVED:**\n" +
				fmt.Sprintf("Adult coverage is %.1f%%, indicating excellent penetration.\n\n", 100-m.LastMile) +
				"**QUALITY FOCUS:**\n" +
				"• Shift from enrollment to quality improvement:\n" +
				"  - Duplicate detection and cleanup\n" +
				"  - Biometric quality enhancement\n" +
				"  - Demographic data accuracy verification\n" +
				fmt.Sprintf("• Use %s as benchmark for other regions\n", m.District) +
				"• Minimal new enrollment infrastructure needed"}
		},
	},
}

// AssessInclusion grades the last-mile percent against the inclusion bands.
func AssessInclusion(m Metrics) InclusionNarrative {
	return firstMatch(inclusionBands, m, RiskProfile{})
}

// ============================================================================
// INTEGRITY
// ============================================================================

// Integrity statuses.
const (
	IntegrityAnomaly = "ANOMALY DETECTED"
	IntegrityHealthy = "SYSTEM HEALTHY"
)

// IntegrityAssessment is the update-integrity verdict. LegalAction is set
// only on the anomaly branch.
type IntegrityAssessment struct {
	Anomaly     bool   `json:"anomaly"`
	Status      string `json:"status"`
	Alert       string `json:"alert"`
	Detail      string `json:"detail"`
	Action      string `json:"action"`
	LegalAction string `json:"legalAction,omitempty"`
}

var integrityBands = []band[IntegrityAssessment]{
	{
		match: func(m Metrics) bool { return m.Ghost },
		build: func(m Metrics, _ RiskProfile) IntegrityAssessment {
			return IntegrityAssessment{
				Anomaly: true,
				Status:  IntegrityAnomaly,
				Alert:   "DECOUPLING PATTERN IDENTIFIED - FRAUD SIGNATURE",
				Detail: "**FORENSIC ANALYSIS:**\n" +
					fmt.Sprintf("Statistical pattern matching reveals high update volume (%.1f%% velocity) with zero corresponding growth in %s. ", m.ICMP, m.District) +
					"This signature matches \"Data Milling\" behavior where rogue operators generate fake update transactions to:\n" +
					"• Inflate performance metrics for incentive claims\n" +
					"• Create ghost identities for fraudulent benefit claims\n" +
					"• Manipulate machine utilization statistics\n\n" +
					"**FRAUD INDICATORS:**\n" +
					"• Update-to-Enrollment ratio: Abnormally high\n" +
					"• Operator concentration: Likely single-source manipulation\n" +
					"• Temporal pattern: Possible batch processing of fake updates\n" +
					"• Geographic clustering: Specific PIN codes flagged",
				Action: "**IMMEDIATE FORENSIC AUDIT PROTOCOL:**\n\n" +
					"**Phase 1 (24 hours):**\n" +
					"• Suspend all high-volume operator licenses pending investigation\n" +
					"• Freeze incentive payments for flagged machines\n" +
					"• Extract transaction logs for last 6 months\n\n" +
					"**Phase 2 (72 hours):**\n" +
					"• Cross-reference operator IDs with geolocation data\n" +
					"• Verify random sample of 500 \"updated\" Aadhaar numbers via SMS/call\n" +
					"• Check for duplicate biometric submissions from same machine\n\n" +
					"**Phase 3 (1 week):**\n" +
					"• Deploy UIDAI inspection team for on-site verification\n" +
					"• Interview citizens listed in suspicious transactions\n" +
					"• Initiate criminal proceedings if fraud confirmed\n\n" +
					"**Estimated Fraud Scale:** ₹5-15 lakhs in false incentive claims",
				LegalAction: "FIR under IT Act 2000 Section 66C (Identity Theft) recommended",
			}
		},
	},
	{
		match: always,
		build: func(m Metrics, _ RiskProfile) IntegrityAssessment {
			return IntegrityAssessment{
				Status: IntegrityHealthy,
				Alert:  "NO ANOMALIES DETECTED",
				Detail: "**INTEGRITY VERIFICATION:**\n" +
					fmt.Sprintf("Update patterns correlate normally with demographic growth in %s. Statistical analysis shows:\n", m.District) +
					"• Update-to-Enrollment ratio: Within normal range\n" +
					"• Operator distribution: Healthy competition, no monopoly\n" +
					"• Temporal pattern: Consistent with seasonal trends\n" +
					"• Geographic spread: Uniform across PIN codes",
				Action: "**ROUTINE MAINTENANCE:**\n" +
					"• Continue quarterly license reviews for all Registrars\n" +
					"• Maintain random audit sampling (5% of transactions)\n" +
					"• Monitor for emerging anomaly patterns\n" +
					"• Ensure operator training on fraud prevention",
			}
		},
	},
}

// AssessIntegrity reports on the ghost flag.
func AssessIntegrity(m Metrics) IntegrityAssessment {
	return firstMatch(integrityBands, m, RiskProfile{})
}
