package intel

import "strings"

// RegionalProfile is the geographic classification of a state.
type RegionalProfile string

const (
	HighDensityRural RegionalProfile = "HIGH_DENSITY_RURAL"
	TechAdvanced     RegionalProfile = "TECH_ADVANCED"
	IndustrialHub    RegionalProfile = "INDUSTRIAL_HUB"
	DifficultTerrain RegionalProfile = "DIFFICULT_TERRAIN"
	Emerging         RegionalProfile = "EMERGING"
	Standard         RegionalProfile = "STANDARD"
)

type regionalEntry struct {
	profile RegionalProfile
	markers []string
	context string
}

// regionalTable is matched in order; a state matching two rows takes the
// first. Do not reorder.
var regionalTable = []regionalEntry{
	{
		HighDensityRural,
		[]string{"BIHAR", "UP", "UTTAR PRADESH", "BENGAL", "WEST BENGAL"},
		"High-density agrarian belt requiring mass-enrollment logistics and school-based saturation campaigns.",
	},
	{
		TechAdvanced,
		[]string{"KERALA", "TAMIL", "KARNATAKA", "TELANGANA"},
		"Digital-native population with high literacy. Prioritize self-service portals and mobile app adoption over physical centers.",
	},
	{
		IndustrialHub,
		[]string{"GUJARAT", "MAHARASHTRA", "HARYANA"},
		"Industrial migration corridor. Focus on portability infrastructure (ONORC) and real-time demographic synchronization with labor databases.",
	},
	{
		DifficultTerrain,
		[]string{"ASSAM", "MANIPUR", "MEGHALAYA", "ARUNACHAL", "JAMMU", "KASHMIR", "LADAKH", "HIMACHAL"},
		"Challenging topography and connectivity. Requires portable biometric kits, offline-sync capabilities, and helicopter-accessible enrollment teams.",
	},
	{
		Emerging,
		[]string{"CHHATTISGARH", "JHARKHAND", "ODISHA", "ORISSA"},
		"Transitional economy with mixed urban-rural dynamics. Balance between traditional outreach and digital infrastructure.",
	},
}

const standardContext = "Standard administrative profile. Optimize existing Registrar network efficiency."

// RegionalProfileFor classifies a state name by upper-cased substring match.
func RegionalProfileFor(state string) RegionalProfile {
	upper := strings.ToUpper(state)
	for _, e := range regionalTable {
		for _, marker := range e.markers {
			if strings.Contains(upper, marker) {
				return e.profile
			}
		}
	}
	return Standard
}

// RegionalContext returns the narrative for a profile.
func RegionalContext(p RegionalProfile) string {
	for _, e := range regionalTable {
		if e.profile == p {
			return e.context
		}
	}
	return standardContext
}
