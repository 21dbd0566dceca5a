package schema

import "fmt"

// Validate reports data-contract violations for a record. The dashboard does
// not repair malformed rows; loaders log these and keep the record as-is.
func Validate(r Record) []string {
	var problems []string
	if r.State == "" {
		problems = append(problems, "state is empty")
	}
	if r.District == "" {
		problems = append(problems, "district is empty")
	}
	for _, s := range []struct {
		key string
		v   float64
	}{
		{KeyAMI, r.AMIScore},
		{KeyERP, r.ERPScore},
		{KeyICMP, r.ICMPScore},
	} {
		if s.v < 0 || s.v > 1 {
			problems = append(problems, fmt.Sprintf("%s %.4f outside [0,1]", s.key, s.v))
		}
	}
	if r.LastMileDensity < 0 {
		problems = append(problems, fmt.Sprintf("%s %.4f is negative", KeyLastMile, r.LastMileDensity))
	}
	return problems
}
