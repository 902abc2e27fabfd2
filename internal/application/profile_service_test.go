package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

type fakeProfileRepo struct {
	getByID func(id string) (*entity.Profile, error)
	update  func(p *entity.Profile) error
}

func (f *fakeProfileRepo) Create(_ context.Context, _ *entity.Profile) error { return nil }

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	return f.getByID(id)
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, _ string) (*entity.Profile, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	if f.update != nil {
		return f.update(p)
	}
	return nil
}

func testProfileService(repo *fakeProfileRepo) *ProfileService {
	return NewProfileService(repo, nil, "", nil, nil, "")
}

func strPtr(s string) *string { return &s }

func TestGetMapsMissingRowToProfileNotFound(t *testing.T) {
	svc := testProfileService(&fakeProfileRepo{
		getByID: func(string) (*entity.Profile, error) { return nil, repository.ErrNotFound },
	})

	_, err := svc.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetPropagatesStoreError(t *testing.T) {
	outage := errors.New("pq: connection refused")
	svc := testProfileService(&fakeProfileRepo{
		getByID: func(string) (*entity.Profile, error) { return nil, outage },
	})

	_, err := svc.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, outage)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdatePropagatesStoreError(t *testing.T) {
	outage := errors.New("pq: connection refused")
	svc := testProfileService(&fakeProfileRepo{
		getByID: func(string) (*entity.Profile, error) { return nil, outage },
	})

	_, err := svc.Update(context.Background(), "u1", UpdateProfileInput{Bio: strPtr("new bio")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}

func TestUploadAvatarPropagatesStoreError(t *testing.T) {
	outage := errors.New("pq: connection refused")
	svc := testProfileService(&fakeProfileRepo{
		getByID: func(string) (*entity.Profile, error) { return nil, outage },
	})

	_, err := svc.UploadAvatar(context.Background(), "u1", nil, "me.png", "image/png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}

func TestChangesCountsEveryPresentField(t *testing.T) {
	in := UpdateProfileInput{
		FullName:  strPtr(""),
		Phone:     strPtr(""),
		Location:  strPtr(""),
		Bio:       strPtr(""),
		AvatarURL: strPtr(""),
	}

	changes := in.Changes()
	for _, field := range []string{"full_name", "phone", "location", "bio", "avatar_url"} {
		_, ok := changes[field]
		assert.True(t, ok, "present field %s must count as a change", field)
	}

	assert.Empty(t, UpdateProfileInput{}.Changes())
}

func TestUpdateAppliesPresentFields(t *testing.T) {
	stored := &entity.Profile{ID: "u1", FullName: "Lena Ortiz", Bio: "old"}
	var saved *entity.Profile
	svc := testProfileService(&fakeProfileRepo{
		getByID: func(string) (*entity.Profile, error) { return stored, nil },
		update: func(p *entity.Profile) error {
			saved = p
			return nil
		},
	})

	p, err := svc.Update(context.Background(), "u1", UpdateProfileInput{Bio: strPtr("new bio")})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, "Lena Ortiz", p.FullName)
}
