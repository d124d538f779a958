package players_test

import (
	"testing"

	"github.com/mauv0809/padel-reserva/internal/database"
	"github.com/mauv0809/padel-reserva/internal/players"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (players.PlayerStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return players.New(db), teardown
}

func TestUpsertAndGet(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	avatar := "https://example.com/ana.png"
	p := players.Profile{ID: "u1", Name: "Ana", Surname: "García", AvatarURL: &avatar, Level: 6}
	require.NoError(t, store.Upsert(p))

	got, err := store.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "García", got.Surname)
	require.NotNil(t, got.AvatarURL)
	assert.Equal(t, avatar, *got.AvatarURL)
	assert.Equal(t, 6, got.Level)

	t.Run("upsert updates in place", func(t *testing.T) {
		p.Level = 7
		require.NoError(t, store.Upsert(p))

		got, err := store.Get("u1")
		require.NoError(t, err)
		assert.Equal(t, 7, got.Level)

		all, err := store.GetAll()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestUpsertAllAndIsKnown(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	profiles := []players.Profile{
		{ID: "u1", Name: "Ana", Level: 5},
		{ID: "u2", Name: "Beto", Level: 4},
	}
	require.NoError(t, store.UpsertAll(profiles))

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.True(t, store.IsKnown("u1"))
	assert.False(t, store.IsKnown("ghost"))
}

func TestLevelDescription(t *testing.T) {
	assert.Equal(t, "1 (Muy Bajo)", players.LevelDescription(1))
	assert.Equal(t, "5 (Medio/Alto)", players.LevelDescription(5))
	assert.Equal(t, "10 (Profesional Experto)", players.LevelDescription(10))
	assert.Equal(t, "5 (Medio/Alto)", players.LevelDescription(0), "out-of-range falls back to mid level")
}
