package dataset

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// HARMONISATION — state names, district names, duplicates, score ranges
// ============================================================================

// validStates is the whitelist of state and UT names, upper-cased.
var validStates = []string{
	"ANDAMAN AND NICOBAR ISLANDS", "ANDHRA PRADESH", "ARUNACHAL PRADESH", "ASSAM", "BIHAR",
	"CHANDIGARH", "CHHATTISGARH", "DADRA AND NAGAR HAVELI AND DAMAN AND DIU", "DELHI", "GOA",
	"GUJARAT", "HARYANA", "HIMACHAL PRADESH", "JAMMU AND KASHMIR", "JHARKHAND", "KARNATAKA",
	"KERALA", "LADAKH", "LAKSHADWEEP", "MADHYA PRADESH", "MAHARASHTRA", "MANIPUR", "MEGHALAYA",
	"MIZORAM", "NAGALAND", "ODISHA", "PUDUCHERRY", "PUNJAB", "RAJASTHAN", "SIKKIM", "TAMIL NADU",
	"TELANGANA", "TRIPURA", "UTTAR PRADESH", "UTTARAKHAND", "WEST BENGAL",
}

var validStateSet = func() map[string]bool {
	m := make(map[string]bool, len(validStates))
	for _, s := range validStates {
		m[s] = true
	}
	return m
}()

// stateTypos maps known misspellings onto whitelist names.
var stateTypos = map[string]string{
	"WEST BANGAL":          "WEST BENGAL",
	"WEST BENGLI":          "WEST BENGAL",
	"WB":                   "WEST BENGAL",
	"JAMMU & KASHMIR":      "JAMMU AND KASHMIR",
	"J&K":                  "JAMMU AND KASHMIR",
	"CHHATISGARH":          "CHHATTISGARH",
	"ORISSA":               "ODISHA",
	"TELENGANA":            "TELANGANA",
	"PONDICHERRY":          "PUDUCHERRY",
	"ANDAMAN & NICOBAR":    "ANDAMAN AND NICOBAR ISLANDS",
	"DADRA & NAGAR HAVELI": "DADRA AND NAGAR HAVELI AND DAMAN AND DIU",
}

// Fuzzy matching bounds for names no rule caught. Short names are never
// fuzzy-matched and the accepted distance shrinks with the state name, so
// district names such as Gaya or Kota are dropped rather than read as Goa.
const (
	maxStateDistance = 2
	minFuzzyLength   = 5
)

var (
	nonStateChars = regexp.MustCompile(`[^A-Z& ]`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

// NormalizeState maps a raw state name onto its title-cased whitelist form.
// Steps, first hit wins: typo map, exact whitelist, substring either way
// (whitelist order), edit distance <= 2 scaled to the name length.
// Anything else is schema.StateDrop.
func NormalizeState(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = nonStateChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
	if s == "" {
		return schema.StateDrop
	}

	if mapped, ok := stateTypos[s]; ok {
		return titleCase(mapped)
	}
	if validStateSet[s] {
		return titleCase(s)
	}
	for _, valid := range validStates {
		if strings.Contains(valid, s) || strings.Contains(s, valid) {
			return titleCase(valid)
		}
	}

	if len(s) < minFuzzyLength {
		return schema.StateDrop
	}
	best, bestDist := "", maxStateDistance+1
	for _, valid := range validStates {
		d := levenshtein.ComputeDistance(s, valid)
		if d < bestDist && d*4 <= len(valid) {
			best, bestDist = valid, d
		}
	}
	if best != "" {
		return titleCase(best)
	}
	return schema.StateDrop
}

// CleanDistrict strips footnote stars and title-cases a district name.
func CleanDistrict(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "*", "")
	return titleCase(strings.TrimSpace(s))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// HarmonizeStats summarises one Harmonize pass.
type HarmonizeStats struct {
	Input      int
	Dropped    int // rows whose state could not be resolved
	Merged     int // duplicate rows folded into another
	Output     int
	Normalized []string // score columns rescaled into [0,1]
}

// Harmonize cleans state and district names, drops unresolvable states,
// merges duplicate (state, district) rows (mean scores, ghost if any row is
// flagged) and rescales any score column whose maximum exceeds 1.
// Output is sorted by state then district.
func Harmonize(records []schema.Record) ([]schema.Record, HarmonizeStats) {
	stats := HarmonizeStats{Input: len(records)}

	type acc struct {
		rec   schema.Record
		count int
	}
	groups := make(map[[2]string]*acc)
	for _, r := range records {
		state := NormalizeState(r.State)
		if state == schema.StateDrop {
			stats.Dropped++
			continue
		}
		key := [2]string{state, CleanDistrict(r.District)}
		a, ok := groups[key]
		if !ok {
			a = &acc{rec: schema.Record{State: key[0], District: key[1]}}
			groups[key] = a
		} else {
			stats.Merged++
		}
		a.count++
		a.rec.AMIScore += r.AMIScore
		a.rec.ERPScore += r.ERPScore
		a.rec.ICMPScore += r.ICMPScore
		a.rec.LastMileDensity += r.LastMileDensity
		a.rec.GhostFlag = a.rec.GhostFlag || r.GhostFlag
	}

	out := make([]schema.Record, 0, len(groups))
	for _, a := range groups {
		n := float64(a.count)
		a.rec.AMIScore /= n
		a.rec.ERPScore /= n
		a.rec.ICMPScore /= n
		a.rec.LastMileDensity /= n
		out = append(out, a.rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].District < out[j].District
	})

	stats.Normalized = normalizeScales(out)
	stats.Output = len(out)
	log.Printf("🧹 Pulse: harmonised %d rows → %d districts (%d dropped, %d merged)",
		stats.Input, stats.Output, stats.Dropped, stats.Merged)
	return out, stats
}

// normalizeScales rescales score columns that overflow [0,1]. AMI exported
// on a 0–10 scale is divided by 10, anything larger by its maximum, and AMI
// is finally clipped to [0,1].
func normalizeScales(records []schema.Record) []string {
	if len(records) == 0 {
		return nil
	}
	view := engine.NewRecordView(records)
	var changed []string

	scale := func(key string, get func(*schema.Record) *float64) {
		max := engine.MaxMeasure(view, key)
		if max <= 1 {
			return
		}
		div := max
		if key == schema.KeyAMI && max <= 10 {
			div = 10
		}
		for i := range records {
			*get(&records[i]) /= div
		}
		changed = append(changed, key)
	}

	scale(schema.KeyERP, func(r *schema.Record) *float64 { return &r.ERPScore })
	scale(schema.KeyICMP, func(r *schema.Record) *float64 { return &r.ICMPScore })
	scale(schema.KeyAMI, func(r *schema.Record) *float64 { return &r.AMIScore })
	scale(schema.KeyLastMile, func(r *schema.Record) *float64 { return &r.LastMileDensity })

	if engine.MinMeasure(view, schema.KeyAMI) < 0 || engine.MaxMeasure(view, schema.KeyAMI) > 1 {
		for i := range records {
			records[i].AMIScore = math.Min(math.Max(records[i].AMIScore, 0), 1)
		}
	}
	return changed
}
