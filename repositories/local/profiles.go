package local

import (
	"context"
	"fmt"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
)

type profileDoc struct {
	Profile *models.Profile `json:"profile"`
}

type ProfileStore struct {
	doc *document[profileDoc]
}

func NewProfileStore(kv cache.KV) *ProfileStore {
	return &ProfileStore{doc: newDocument[profileDoc](kv, "profile-storage")}
}

func (s *ProfileStore) Get(ctx context.Context, userID string) (models.Profile, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	if d.Profile == nil {
		return models.Profile{}, fmt.Errorf("profile %s: %w", userID, repositories.ErrNotFound)
	}
	return *d.Profile, nil
}

func (s *ProfileStore) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	err := s.doc.update(ctx, p.UserID, func(d *profileDoc) error {
		d.Profile = &p
		return nil
	})
	return p, err
}

var _ repositories.ProfileRepository = (*ProfileStore)(nil)
