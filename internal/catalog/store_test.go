package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/commander-engine-go/internal/config"
	"github.com/magefree/commander-engine-go/internal/game/cards"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	recs := []Record{
		{Name: "Grizzly Bears", ManaCost: "{1}{G}", Types: []string{"creature"}, Power: cards.Stat(2), Toughness: cards.Stat(2)},
		{Name: "Lightning Bolt", ManaCost: "{R}", Types: []string{"instant"}, OracleText: "Lightning Bolt deals 3 damage to any target."},
		{Name: "Solemn Simulacrum", ManaCost: "{4}", Types: []string{"artifact", "creature"}, Power: cards.Stat(2), Toughness: cards.Stat(2)},
	}
	saved, err := store.Save(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)

	recs[0].Power = cards.Stat(3)
	_, err = store.Save(ctx, recs[:1])
	require.NoError(t, err)

	got, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Grizzly Bears", got[0].Name)
	assert.Equal(t, 3, *got[0].Power)
	assert.Nil(t, got[1].Power)
	assert.Equal(t, recs[1].OracleText, got[1].OracleText)
	assert.Equal(t, []string{"artifact", "creature"}, got[2].Types)

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	defer store.Close()

	testStore(t, store)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("COMMANDER_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("COMMANDER_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	store, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.pool.Exec(ctx, "TRUNCATE cards RESTART IDENTITY")
	require.NoError(t, err)

	testStore(t, store)
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	cfg := config.CatalogConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "cards.db")}

	c, err := Load(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, len(Builtin()), c.Len())

	store, err := OpenSQLite(ctx, cfg.DSN)
	require.NoError(t, err)
	_, err = store.Save(ctx, []Record{{Name: "Hill Giant", ManaCost: "{3}{R}", Types: []string{"creature"}, Power: cards.Stat(4), Toughness: cards.Stat(4)}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	c, err = Load(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, len(Builtin()), c.Len())
	giant, ok := c.Get("Hill Giant")
	require.True(t, ok)
	assert.Equal(t, 4, giant.BasePower())
}

func TestLoadBuiltinAndUnknownDriver(t *testing.T) {
	c, err := Load(context.Background(), config.CatalogConfig{Driver: "builtin"}, nil)
	require.NoError(t, err)
	assert.Positive(t, c.Len())

	_, err = Load(context.Background(), config.CatalogConfig{Driver: "mongo"}, nil)
	assert.Error(t, err)
}
