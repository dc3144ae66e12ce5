package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fireball-picks/internal/models"
)

func intPtr(v int) *int               { return &v }
func floatPtr(v float64) *float64     { return &v }
func strPtr(v string) *string         { return &v }
func pickPtr(p models.Pick) *models.Pick { return &p }

func sampleGame() *models.Game {
	return &models.Game{
		Date:            "2024-06-01",
		HomeTeam:        "Boston Red Sox",
		AwayTeam:        "New York Yankees",
		HomeRecord:      strPtr("34-21"),
		AwayRecord:      strPtr("30-25"),
		HomeScore:       intPtr(5),
		AwayScore:       intPtr(3),
		Bookmaker:       strPtr("fanduel"),
		MLHome:          floatPtr(1.80),
		MLAway:          floatPtr(2.05),
		SpreadHome:      floatPtr(-1.5),
		SpreadHomeOdds:  floatPtr(2.10),
		SpreadAway:      floatPtr(1.5),
		SpreadAwayOdds:  floatPtr(1.74),
		TotalLine:       floatPtr(8.5),
		OverOdds:        floatPtr(1.91),
		UnderOdds:       floatPtr(1.91),
		ATSPick:         pickPtr(models.PickHome),
		ATSConfidence:   floatPtr(0.87),
		ATSFireballs:    intPtr(4),
		TotalPick:       pickPtr(models.PickOver),
		TotalConfidence: floatPtr(0.64),
		TotalFireballs:  intPtr(2),
	}
}

func TestCSVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "games.csv")
	store := NewCSVStore(path, nil)

	partial := &models.Game{Date: "2024-06-02", HomeTeam: "Chicago Cubs", AwayTeam: "Atlanta Braves"}
	require.NoError(t, store.Save(ctx, []*models.Game{sampleGame(), partial}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, sampleGame(), loaded[0], "every column including predictions must survive a round trip")
	assert.Nil(t, loaded[1].HomeScore, "empty cells load as nil, not zero")
	assert.Nil(t, loaded[1].ATSPick)
}

func TestCSVStoreAbsentFileLoadsEmpty(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "missing.csv"), nil)
	games, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestCSVStoreMissingKeyColumnsIsSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte("game_date,home_team\n2024-06-01,Boston Red Sox\n"), 0o644))

	store := NewCSVStore(path, nil)
	_, err := store.Load(context.Background())
	require.Error(t, err)

	var schemaErr *models.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Missing, "away_team")
}

func TestCSVStoreSaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "games.csv")
	store := NewCSVStore(path, nil)

	require.NoError(t, store.Save(ctx, []*models.Game{sampleGame()}))
	require.NoError(t, store.Save(ctx, []*models.Game{sampleGame(), {Date: "2024-06-02", HomeTeam: "A", AwayTeam: "B"}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestCSVStoreSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "games.csv")
	store := NewCSVStore(path, nil)
	require.NoError(t, store.Save(context.Background(), []*models.Game{sampleGame()}))
	assert.FileExists(t, path)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	game := sampleGame()
	require.NoError(t, store.Save(ctx, []*models.Game{game}))
	*game.HomeScore = 99

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 5, *loaded[0].HomeScore, "store must not alias caller slices")
	assert.Equal(t, 1, store.SaveCount())
}
