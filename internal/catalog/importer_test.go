package catalog

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestImporter(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	defer store.Close()

	csv := `Name,Mana_Costs,Types,Supertypes,Power,Toughness,Rules
Grizzly Bears,{1}{G},Creature,,2,2,
Isamaru,{W},Creature,Legendary,2,2,
Lightning Bolt,{R},Instant,,,,Lightning Bolt deals 3 damage to any target.
Tarmogoyf,{1}{G},Creature,,*,1+*,
Bad Row
Steel Wall,{1},Artifact Creature,,0,4,Defender
`
	im := NewImporter(store, newParser(t), zaptest.NewLogger(t))
	stats, err := im.Import(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Read: 6, Skipped: 2, Saved: 4}, stats)

	recs, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.True(t, recs[1].Legendary)
	assert.Equal(t, []string{"artifact", "creature"}, recs[3].Types)
	assert.Equal(t, "Defender", recs[3].OracleText)
}

func TestImporterHeaderErrors(t *testing.T) {
	im := NewImporter(nil, nil, nil)

	_, err := im.Import(context.Background(), strings.NewReader(""))
	assert.Error(t, err)

	_, err = im.Import(context.Background(), strings.NewReader("title,cost\nx,y\n"))
	assert.ErrorContains(t, err, "name")
}
