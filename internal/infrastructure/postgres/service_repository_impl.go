package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// buildServiceListQuery composes the directory listing query: equality on
// category, case-insensitive substring match on name OR description for
// free-text search, ordered by name ascending.
func buildServiceListQuery(f repository.ServiceFilter) (string, []any) {
	q := `SELECT id, name, description, category, created_at, updated_at FROM services`
	args := make([]any, 0, 2)

	where := ""
	if f.Category != "" {
		args = append(args, f.Category)
		where = ` WHERE category = $` + strconv.Itoa(len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		cond := `(name ILIKE $` + n + ` OR description ILIKE $` + n + `)`
		if where == "" {
			where = ` WHERE ` + cond
		} else {
			where += ` AND ` + cond
		}
	}

	return q + where + ` ORDER BY name ASC`, args
}

func (r *ServiceRepository) List(ctx context.Context, f repository.ServiceFilter) ([]entity.Service, error) {
	q, args := buildServiceListQuery(f)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Service, 0)
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	s := &entity.Service{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, category, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id)

	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO services (name, description, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Description, s.Category)

	return row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

var _ repository.ServiceRepository = (*ServiceRepository)(nil)
