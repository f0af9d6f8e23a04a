package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/config"
)

// Store persists card records.
type Store interface {
	// Save inserts or replaces records by name.
	Save(ctx context.Context, recs []Record) (int, error)
	// Records returns every record in insertion order.
	Records(ctx context.Context) ([]Record, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// OpenStore opens the store named by cfg.Driver. The builtin driver has
// no store and returns nil.
func OpenStore(ctx context.Context, cfg config.CatalogConfig) (Store, error) {
	switch cfg.Driver {
	case "", "builtin":
		return nil, nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}

// Load builds a catalog from the configured store. An empty store is
// seeded with the built-in pool first.
func Load(ctx context.Context, cfg config.CatalogConfig, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return NewBuiltin(logger)
	}
	defer store.Close()

	n, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		saved, err := store.Save(ctx, Builtin())
		if err != nil {
			return nil, fmt.Errorf("seed %s catalog: %w", cfg.Driver, err)
		}
		logger.Info("seeded card store with built-in pool",
			zap.String("driver", cfg.Driver),
			zap.Int("cards", saved),
		)
	}

	recs, err := store.Records(ctx)
	if err != nil {
		return nil, err
	}
	parser, err := NewOracleParser()
	if err != nil {
		return nil, fmt.Errorf("build oracle parser: %w", err)
	}
	c := New(parser, logger)
	if err := c.AddAll(recs); err != nil {
		logger.Warn("some stored cards were rejected", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.String("driver", cfg.Driver),
		zap.Int("cards", c.Len()),
		zap.Int("commanders", len(c.Commanders())),
	)
	return c, nil
}

func joinTypes(types []string) string {
	return strings.Join(types, ",")
}

func splitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
