package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonkers/storage"
)

func newUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	return NewUserRepository(storage.New(filepath.Join(t.TempDir(), "users.json")))
}

func TestUserRepository_Get_UnknownIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	user, err := repo.Get(ctx, "111")

	require.NoError(t, err)
	assert.Equal(t, "", user.OsuID)
	assert.Equal(t, 0, user.Bonks)
	assert.Empty(t, user.Guilds)
}

func TestUserRepository_LinkOsuAccount_UnionsGuilds(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "4787150", "g1"))
	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "4787150", "g2"))

	user, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "4787150", user.OsuID)
	assert.ElementsMatch(t, []string{"g1", "g2"}, user.Guilds)
}

func TestUserRepository_LinkOsuAccount_SameGuildTwice(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "1", "g1"))
	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "1", "g1"))

	user, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, user.Guilds)
}

func TestUserRepository_LinkOsuAccount_SwitchingAccountsKeepsGuilds(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "1", "g1"))
	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "2", "g2"))

	user, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "2", user.OsuID)
	assert.ElementsMatch(t, []string{"g1", "g2"}, user.Guilds)
}

func TestUserRepository_RemoveGuild_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "1", "g1"))
	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "1", "g2"))

	require.NoError(t, repo.RemoveGuild(ctx, "111", "g1"))
	require.NoError(t, repo.RemoveGuild(ctx, "111", "g1"))

	user, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, []string{"g2"}, user.Guilds)
	// The linked account survives unsubscription.
	assert.Equal(t, "1", user.OsuID)
}

func TestUserRepository_RemoveGuild_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	require.NoError(t, repo.RemoveGuild(ctx, "999", "g1"))
}

func TestUserRepository_IncrementBonks(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)

	bonks, err := repo.IncrementBonks(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 1, bonks)

	bonks, err = repo.IncrementBonks(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 2, bonks)

	user, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, 2, user.Bonks)
}

func TestUserRepository_LegacyNumericGuildIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")

	// Old files wrote guild ids as bare numbers larger than 2^53; they must
	// decode exactly and survive a registration from another guild.
	contents := `{"111": {"osuid": 4787150, "guilds": [805177941814018068]}}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	repo := NewUserRepository(storage.New(path))
	user, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "4787150", user.OsuID)
	assert.Equal(t, []string{"805177941814018068"}, user.Guilds)

	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "4787150", "g2"))
	user, err = repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"805177941814018068", "g2"}, user.Guilds)
}

func TestUserRepository_GetAll_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.json")

	repo := NewUserRepository(storage.New(path))
	require.NoError(t, repo.LinkOsuAccount(ctx, "111", "1", "g1"))
	_, err := repo.IncrementBonks(ctx, "222")
	require.NoError(t, err)

	// A fresh repository over the same file sees everything.
	reopened := NewUserRepository(storage.New(path))
	users, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "1", users["111"].OsuID)
	assert.Equal(t, 1, users["222"].Bonks)
}
