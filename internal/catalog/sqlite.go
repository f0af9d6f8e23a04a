package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE,
	mana_cost   TEXT NOT NULL DEFAULT '',
	types       TEXT NOT NULL,
	power       INTEGER,
	toughness   INTEGER,
	legendary   INTEGER NOT NULL DEFAULT 0,
	oracle_text TEXT NOT NULL DEFAULT ''
)`

// SQLiteStore keeps records in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite catalog path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cards table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save upserts records in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, recs []Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cards (name, mana_cost, types, power, toughness, legendary, oracle_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			mana_cost = excluded.mana_cost,
			types = excluded.types,
			power = excluded.power,
			toughness = excluded.toughness,
			legendary = excluded.legendary,
			oracle_text = excluded.oracle_text`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.Name,
			rec.ManaCost,
			joinTypes(rec.Types),
			nullInt(rec.Power),
			nullInt(rec.Toughness),
			rec.Legendary,
			rec.OracleText,
		); err != nil {
			return 0, fmt.Errorf("insert card %s: %w", rec.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit cards: %w", err)
	}
	return len(recs), nil
}

// Records reads every stored record.
func (s *SQLiteStore) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, mana_cost, types, power, toughness, legendary, oracle_text
		FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec              Record
			types            string
			power, toughness sql.NullInt64
		)
		if err := rows.Scan(&rec.Name, &rec.ManaCost, &types, &power, &toughness, &rec.Legendary, &rec.OracleText); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		rec.Types = splitTypes(types)
		rec.Power = intPtr(power)
		rec.Toughness = intPtr(toughness)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
