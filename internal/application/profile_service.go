package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
	"github.com/openpaths/reentry-api/pkg/helpers"
)

// ProfileService owns profile reads, partial updates, avatar storage,
// and the search index.
type ProfileService struct {
	Repo            repository.ProfileRepository
	GCS             *storage.Client
	GCSBucket       string
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProfilesIndex string
}

func NewProfileService(repo repository.ProfileRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, es *elasticsearch.Client, esProfilesIndex string) *ProfileService {
	return &ProfileService{
		Repo:            repo,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		Logger:          logger,
		ES:              es,
		ESProfilesIndex: esProfilesIndex,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateProfileInput uses pointers to distinguish "absent" from "set to
// empty": nil fields are left untouched. AvatarURL may be set to "" to
// clear the avatar.
type UpdateProfileInput struct {
	FullName  *string
	Phone     *string
	Location  *string
	Bio       *string
	AvatarURL *string
}

// Changes returns the field names being modified, for the audit trail.
// Any present field counts as a change; rejecting bad values is the
// handler's job.
func (in UpdateProfileInput) Changes() map[string]any {
	out := map[string]any{}
	if in.FullName != nil {
		out["full_name"] = *in.FullName
	}
	if in.Phone != nil {
		out["phone"] = *in.Phone
	}
	if in.Location != nil {
		out["location"] = *in.Location
	}
	if in.Bio != nil {
		out["bio"] = *in.Bio
	}
	if in.AvatarURL != nil {
		out["avatar_url"] = *in.AvatarURL
	}
	return out
}

// Update applies a partial profile update. A request with no fields set
// is a valid no-op and returns the current profile unchanged.
func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	changes := in.Changes()
	if len(changes) == 0 {
		return p, nil
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		p.AvatarURL = *in.AvatarURL
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}

	_ = s.indexProfile(ctx, p)
	return p, nil
}

// UploadAvatar stores the image in GCS and records its public URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	p, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, id+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	p.AvatarURL = url
	if err := s.Repo.Update(ctx, p); err != nil {
		return "", err
	}
	_ = s.indexProfile(ctx, p)
	return url, nil
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) error {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         p.ID,
		"email":      p.Email,
		"full_name":  p.FullName,
		"role":       p.Role,
		"location":   p.Location,
		"avatar_url": p.AvatarURL,
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.ID).Warn("es index response error")
	}
	return nil
}

// Search performs a multi_match query over full_name, email, and
// location; used by admin and officer dashboards.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"full_name^2", "email", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProfilesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
