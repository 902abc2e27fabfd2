package repository

import (
	"context"

	"github.com/openpaths/reentry-api/internal/domain/entity"
)

// ProfileRepository defines the persistence operations for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
}
