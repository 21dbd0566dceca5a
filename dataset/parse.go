// Package dataset loads the district dataset and prepares it for the
// dashboard: file and database loaders, state-name harmonisation, and the
// process-wide Store with its single-retry bootstrap.
package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ============================================================================
// CSV — header-mapped parse into []schema.Record
// ============================================================================
// Columns are matched by normalised header name ("AMI Score" → ami_score).
// Unknown columns are skipped; malformed rows are skipped and counted.
// ============================================================================

// headerAliases maps normalised header names onto record keys.
var headerAliases = map[string]string{
	"state":             schema.KeyState,
	"state_name":        schema.KeyState,
	"district":          schema.KeyDistrict,
	"district_name":     schema.KeyDistrict,
	"ami":               schema.KeyAMI,
	"ami_score":         schema.KeyAMI,
	"erp":               schema.KeyERP,
	"erp_score":         schema.KeyERP,
	"icmp":              schema.KeyICMP,
	"icmp_score":        schema.KeyICMP,
	"last_mile":         schema.KeyLastMile,
	"last_mile_density": schema.KeyLastMile,
	"ghost":             schema.KeyGhost,
	"ghost_flag":        schema.KeyGhost,
}

// ParseCSV parses CSV bytes into district records.
func ParseCSV(data []byte) ([]schema.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	mapping := make([]string, len(headers))
	found := make(map[string]bool)
	for i, h := range headers {
		if key, ok := headerAliases[toSnakeCase(h)]; ok {
			mapping[i] = key
			found[key] = true
		}
	}
	if !found[schema.KeyState] || !found[schema.KeyDistrict] {
		known := schema.Default()
		return nil, fmt.Errorf("CSV needs %v columns (measures %v), got %v",
			known.DimensionKeys(), known.MeasureKeys(), headers)
	}

	var records []schema.Record
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		var rec schema.Record
		ok := true
		for i, val := range row {
			if i >= len(mapping) || mapping[i] == "" {
				continue
			}
			if err := setField(&rec, mapping[i], strings.TrimSpace(val)); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Printf("⚠️ Pulse: skipped %d malformed CSV rows", skipped)
	}
	return records, nil
}

func setField(rec *schema.Record, key, val string) error {
	switch key {
	case schema.KeyState:
		rec.State = val
	case schema.KeyDistrict:
		rec.District = val
	case schema.KeyGhost:
		g, err := parseGhost(val)
		if err != nil {
			return err
		}
		rec.GhostFlag = g
	default:
		f, err := parseScore(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case schema.KeyAMI:
			rec.AMIScore = f
		case schema.KeyERP:
			rec.ERPScore = f
		case schema.KeyICMP:
			rec.ICMPScore = f
		case schema.KeyLastMile:
			rec.LastMileDensity = f
		}
	}
	return nil
}

// parseScore treats an empty cell as zero.
func parseScore(val string) (float64, error) {
	if val == "" {
		return 0, nil
	}
	return strconv.ParseFloat(val, 64)
}

// parseGhost accepts the boolean spellings seen in exported sheets.
// A missing or null flag reads as false.
func parseGhost(val string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "null", "0", "false", "no", "n", "0.0":
		return false, nil
	case "1", "true", "yes", "y", "1.0":
		return true, nil
	}
	return false, fmt.Errorf("invalid ghost flag %q", val)
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// ============================================================================
// JSON — plain array or the browser data.js bundle
// ============================================================================

// dataJSPrefix marks the dataset line of a generated data.js bundle.
const dataJSPrefix = "window.AADHAAR_DATA"

// ErrNoDataset is returned when a bundle carries no dataset assignment.
var ErrNoDataset = errors.New("dataset: no AADHAAR_DATA assignment found")

// jsonRecord tolerates ghost_flag encoded as bool or number.
type jsonRecord struct {
	schema.Record
	Ghost json.RawMessage `json:"ghost_flag"`
}

// ParseJSON parses a JSON array of records, or a data.js bundle of the form
// `window.AADHAAR_DATA = [...];` (other assignments, such as the stats line,
// are ignored).
func ParseJSON(data []byte) ([]schema.Record, error) {
	payload := bytes.TrimSpace(data)
	if !bytes.HasPrefix(payload, []byte("[")) {
		extracted, err := extractDataJS(payload)
		if err != nil {
			return nil, err
		}
		payload = extracted
	}

	var raw []jsonRecord
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset JSON: %w", err)
	}

	records := make([]schema.Record, 0, len(raw))
	for _, r := range raw {
		rec := r.Record
		g, err := parseGhost(strings.Trim(string(r.Ghost), `"`))
		if err != nil {
			return nil, fmt.Errorf("district %q: %w", rec.District, err)
		}
		rec.GhostFlag = g
		records = append(records, rec)
	}
	return records, nil
}

func extractDataJS(data []byte) ([]byte, error) {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, []byte(dataJSPrefix)) {
			continue
		}
		eq := bytes.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		body := bytes.TrimSpace(line[eq+1:])
		return bytes.TrimSuffix(body, []byte(";")), nil
	}
	return nil, ErrNoDataset
}
