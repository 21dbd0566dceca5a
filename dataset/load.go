package dataset

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// Supported source formats.
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Source describes where the dataset lives.
type Source struct {
	Path        string
	Format      string // csv, json, sqlite; empty means infer from the extension
	Table       string // sqlite only
	CleanStates bool   // run Harmonize after loading
}

// DetectFormat infers a format from a file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json", ".js":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("cannot infer dataset format from %q", path)
}

// Load reads the source into records. Records failing validation are kept
// and logged; the dashboard treats out-of-range values as data, not errors.
func Load(ctx context.Context, src Source) ([]schema.Record, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("dataset path not configured")
	}
	format := strings.ToLower(src.Format)
	if format == "" {
		f, err := DetectFormat(src.Path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var (
		records []schema.Record
		err     error
	)
	switch format {
	case FormatSQLite:
		records, err = LoadSQLite(ctx, src.Path, src.Table)
	case FormatCSV, FormatJSON:
		data, readErr := os.ReadFile(src.Path)
		if readErr != nil {
			return nil, fmt.Errorf("read dataset: %w", readErr)
		}
		if format == FormatCSV {
			records, err = ParseCSV(data)
		} else {
			records, err = ParseJSON(data)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", src.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Path, err)
	}

	if src.CleanStates {
		records, _ = Harmonize(records)
	}

	invalid := 0
	for _, r := range records {
		if issues := schema.Validate(r); len(issues) > 0 {
			invalid++
			if invalid <= 5 {
				log.Printf("⚠️ Pulse: %s/%s: %s", r.State, r.District, strings.Join(issues, "; "))
			}
		}
	}
	if invalid > 5 {
		log.Printf("⚠️ Pulse: %d more records with out-of-range values", invalid-5)
	}

	log.Printf("📊 Pulse: loaded %d records from %s (%s)", len(records), src.Path, format)
	return records, nil
}
