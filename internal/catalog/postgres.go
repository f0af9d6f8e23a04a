package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresBatchSize = 1000

const postgresSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	mana_cost   TEXT NOT NULL DEFAULT '',
	types       TEXT NOT NULL,
	power       INTEGER,
	toughness   INTEGER,
	legendary   BOOLEAN NOT NULL DEFAULT FALSE,
	oracle_text TEXT NOT NULL DEFAULT ''
)`

// PostgresStore keeps records in a shared PostgreSQL database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and creates the cards table when missing.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres catalog dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create cards table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Save upserts records in batches, one transaction per batch. Records of
// batches committed before a failure stay saved.
func (s *PostgresStore) Save(ctx context.Context, recs []Record) (int, error) {
	saved := 0
	for i := 0; i < len(recs); i += postgresBatchSize {
		end := min(i+postgresBatchSize, len(recs))
		if err := s.saveBatch(ctx, recs[i:end]); err != nil {
			return saved, err
		}
		saved += end - i
	}
	return saved, nil
}

func (s *PostgresStore) saveBatch(ctx context.Context, batch []Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b := &pgx.Batch{}
	for _, rec := range batch {
		b.Queue(`
			INSERT INTO cards (name, mana_cost, types, power, toughness, legendary, oracle_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (name) DO UPDATE SET
				mana_cost = EXCLUDED.mana_cost,
				types = EXCLUDED.types,
				power = EXCLUDED.power,
				toughness = EXCLUDED.toughness,
				legendary = EXCLUDED.legendary,
				oracle_text = EXCLUDED.oracle_text`,
			rec.Name, rec.ManaCost, joinTypes(rec.Types), rec.Power, rec.Toughness, rec.Legendary, rec.OracleText,
		)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert cards: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Records reads every stored record.
func (s *PostgresStore) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, mana_cost, types, power, toughness, legendary, oracle_text
		FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec   Record
			types string
		)
		if err := rows.Scan(&rec.Name, &rec.ManaCost, &types, &rec.Power, &rec.Toughness, &rec.Legendary, &rec.OracleText); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		rec.Types = splitTypes(types)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the number of stored records.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM cards").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return int(n), nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
