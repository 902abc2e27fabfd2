package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (email, password_hash, full_name, role, phone, location, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.Email, p.PasswordHash, p.FullName, p.Role, p.Phone, p.Location, p.Bio, p.AvatarURL)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.getBy(ctx, "id", id)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.getBy(ctx, "email", email)
}

func (r *ProfileRepository) getBy(ctx context.Context, column, value string) (*entity.Profile, error) {
	p := &entity.Profile{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, role, phone, location, bio, avatar_url, created_at, updated_at
		FROM profiles
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role,
		&p.Phone, &p.Location, &p.Bio, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET full_name = $1, phone = $2, location = $3, bio = $4, avatar_url = $5, updated_at = $6
		WHERE id = $7
	`, p.FullName, p.Phone, p.Location, p.Bio, p.AvatarURL, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
