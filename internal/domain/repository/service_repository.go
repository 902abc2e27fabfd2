package repository

import (
	"context"

	"github.com/openpaths/reentry-api/internal/domain/entity"
)

// ServiceFilter narrows a directory listing. Zero values mean "no filter".
// Search matches name OR description, case-insensitively, as a substring.
type ServiceFilter struct {
	Category entity.Category
	Search   string
}

// ServiceRepository defines the persistence operations for the
// support-service directory.
type ServiceRepository interface {
	List(ctx context.Context, f ServiceFilter) ([]entity.Service, error)
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Create(ctx context.Context, s *entity.Service) error
}
