package store

import (
	"context"
	"time"

	"github.com/code-100-precent/LingChat/internal/models"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	avatarCacheTTL     = 30 * time.Second
	avatarCacheCleanup = 5 * time.Minute
)

// Profiles resolves user profile data for presence snapshots. Avatar links
// are cached briefly because every membership change triggers one lookup per
// online connection.
type Profiles struct {
	db      *gorm.DB
	avatars *gocache.Cache
}

func NewProfiles(db *gorm.DB) *Profiles {
	return &Profiles{
		db:      db,
		avatars: gocache.New(avatarCacheTTL, avatarCacheCleanup),
	}
}

// AvatarLink returns the avatar link of the user with the given UID. An
// empty link is a valid result and is cached like any other.
func (p *Profiles) AvatarLink(ctx context.Context, userID string) (string, error) {
	if cached, found := p.avatars.Get(userID); found {
		return cached.(string), nil
	}
	user, err := models.GetUserByUID(p.db.WithContext(ctx), userID)
	if err != nil {
		return "", err
	}
	p.avatars.Set(userID, user.AvatarLink, gocache.DefaultExpiration)
	return user.AvatarLink, nil
}

// Invalidate drops the cached avatar for one user, used after an avatar
// upload so the next presence snapshot picks up the new link.
func (p *Profiles) Invalidate(userID string) {
	p.avatars.Delete(userID)
}
