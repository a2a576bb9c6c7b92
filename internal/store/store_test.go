package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/code-100-precent/LingChat/internal/models"
	"github.com/code-100-precent/LingChat/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := utils.InitDatabase(nil, "", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, utils.MakeMigrates(db, models.Migrations()))
	return db
}

func TestMessages_Create(t *testing.T) {
	db := setupDB(t)
	messages := NewMessages(db)

	rec, err := messages.Create(context.Background(), "u-alice", "u-bob", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "u-alice", rec.Sender)
	assert.Equal(t, "u-bob", rec.Recipient)
	assert.Equal(t, "hello", rec.Text)
	assert.False(t, rec.CreatedAt.IsZero())

	other, err := messages.Create(context.Background(), "u-alice", "u-bob", "hello")
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, other.ID)
}

func TestMessages_Conversation(t *testing.T) {
	db := setupDB(t)
	messages := NewMessages(db)
	ctx := context.Background()

	_, err := messages.Create(ctx, "u-alice", "u-bob", "first")
	require.NoError(t, err)
	_, err = messages.Create(ctx, "u-bob", "u-alice", "second")
	require.NoError(t, err)
	_, err = messages.Create(ctx, "u-alice", "u-carol", "unrelated")
	require.NoError(t, err)

	items, err := messages.Conversation(ctx, "u-alice", "u-bob", 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Text)
	assert.Equal(t, "second", items[1].Text)

	capped, err := messages.Conversation(ctx, "u-alice", "u-bob", 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}

func TestProfiles_AvatarLink(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{
		UID:        "u-alice",
		Email:      "alice@example.com",
		AvatarLink: "https://cdn.example.com/alice.png",
		Enabled:    true,
	}).Error)

	profiles := NewProfiles(db)
	ctx := context.Background()

	link, err := profiles.AvatarLink(ctx, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/alice.png", link)

	// Cached: a direct row update is not visible until invalidation.
	require.NoError(t, db.Model(&models.User{}).
		Where("uid", "u-alice").
		Update("avatar_link", "https://cdn.example.com/alice2.png").Error)

	link, err = profiles.AvatarLink(ctx, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/alice.png", link)

	profiles.Invalidate("u-alice")
	link, err = profiles.AvatarLink(ctx, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/alice2.png", link)
}

func TestProfiles_AvatarLink_UnknownUser(t *testing.T) {
	db := setupDB(t)
	profiles := NewProfiles(db)

	_, err := profiles.AvatarLink(context.Background(), "u-ghost")
	assert.Error(t, err)
}

func TestProfiles_AvatarLink_DisabledUser(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{
		UID:   "u-banned",
		Email: "banned@example.com",
	}).Error)
	require.NoError(t, db.Model(&models.User{}).
		Where("uid", "u-banned").
		Update("enabled", false).Error)

	profiles := NewProfiles(db)
	_, err := profiles.AvatarLink(context.Background(), "u-banned")
	assert.Error(t, err)
}
