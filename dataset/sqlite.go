package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// DefaultTable is the table read when a Source names none.
const DefaultTable = "districts"

// insertBatch keeps each INSERT well under SQLite's bound-variable limit.
const insertBatch = 500

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads district rows from a SQLite table whose columns carry the
// record key names (state, district, ami_score, ...).
func LoadSQLite(ctx context.Context, path, table string) ([]schema.Record, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	query, args, err := sq.Select(
		schema.KeyState, schema.KeyDistrict,
		schema.KeyAMI, schema.KeyERP, schema.KeyICMP,
		schema.KeyLastMile, schema.KeyGhost,
	).From(table).OrderBy(schema.KeyState, schema.KeyDistrict).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records []schema.Record
	for rows.Next() {
		var (
			rec   schema.Record
			ghost any
		)
		if err := rows.Scan(&rec.State, &rec.District, &rec.AMIScore, &rec.ERPScore,
			&rec.ICMPScore, &rec.LastMileDensity, &ghost); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		g, err := ghostFromColumn(ghost)
		if err != nil {
			return nil, fmt.Errorf("district %q: %w", rec.District, err)
		}
		rec.GhostFlag = g
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return records, nil
}

// ghostFromColumn accepts INTEGER, REAL, BOOLEAN or TEXT storage.
func ghostFromColumn(v any) (bool, error) {
	switch g := v.(type) {
	case nil:
		return false, nil
	case bool:
		return g, nil
	case int64:
		return g != 0, nil
	case float64:
		return g != 0, nil
	case []byte:
		return parseGhost(string(g))
	case string:
		return parseGhost(g)
	}
	return parseGhost(fmt.Sprint(v))
}

// SaveSQLite writes records into table, replacing its contents.
func SaveSQLite(ctx context.Context, path, table string, records []schema.Record) error {
	if table == "" {
		table = DefaultTable
	}
	if !identPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	ddl := "CREATE TABLE IF NOT EXISTS " + table + ` (
		state TEXT NOT NULL,
		district TEXT NOT NULL,
		ami_score REAL NOT NULL DEFAULT 0,
		erp_score REAL NOT NULL DEFAULT 0,
		icmp_score REAL NOT NULL DEFAULT 0,
		last_mile_density REAL NOT NULL DEFAULT 0,
		ghost_flag INTEGER NOT NULL DEFAULT 0
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	del, delArgs, err := sq.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, del, delArgs...); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	for start := 0; start < len(records); start += insertBatch {
		end := min(start+insertBatch, len(records))
		ins := sq.Insert(table).Columns(
			schema.KeyState, schema.KeyDistrict,
			schema.KeyAMI, schema.KeyERP, schema.KeyICMP,
			schema.KeyLastMile, schema.KeyGhost,
		)
		for _, r := range records[start:end] {
			ins = ins.Values(r.State, r.District, r.AMIScore, r.ERPScore, r.ICMPScore,
				r.LastMileDensity, boolToInt(r.GhostFlag))
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end, err)
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
