package application

import (
	"context"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

// DirectoryService exposes the support-service directory.
type DirectoryService struct {
	Repo repository.ServiceRepository
}

func NewDirectoryService(repo repository.ServiceRepository) *DirectoryService {
	return &DirectoryService{Repo: repo}
}

func (s *DirectoryService) List(ctx context.Context, f repository.ServiceFilter) ([]entity.Service, error) {
	return s.Repo.List(ctx, f)
}

func (s *DirectoryService) Get(ctx context.Context, id string) (*entity.Service, error) {
	return s.Repo.GetByID(ctx, id)
}

type CreateServiceInput struct {
	Name        string
	Description string
	Category    entity.Category
}

func (s *DirectoryService) Create(ctx context.Context, in CreateServiceInput) (*entity.Service, error) {
	svc := &entity.Service{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
	}
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}
