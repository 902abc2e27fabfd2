package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
	"github.com/openpaths/reentry-api/pkg/helpers"
	"github.com/openpaths/reentry-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
)

const sessionTTL = 24 * time.Hour

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// AuthService owns sign-up, sign-in, and session/token lifecycle.
type AuthService struct {
	Repo   repository.ProfileRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewAuthService(repo repository.ProfileRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Role     entity.Role
}

// SignUp creates a profile with a bcrypt-hashed password. A duplicate
// email surfaces as ErrEmailTaken so the handler can answer 409.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*entity.Profile, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	p := &entity.Profile{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.enqueueWelcomeEmail(ctx, p)
	return p, nil
}

// enqueueWelcomeEmail is best-effort; a broker outage never fails a
// sign-up.
func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, p *entity.Profile) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:      p.Email,
		Subject: "Welcome to Openpaths",
		Text:    "Hi " + p.FullName + ",\n\nYour account is ready. Sign in to browse jobs and support services near you.",
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", p.Email).Warn("welcome email enqueue failed")
	}
}

// Authenticate validates email/password and returns the profile without
// issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.Profile, error) {
	p, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, p *entity.Profile) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(p.ID, string(p.Role), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(p.ID, string(p.Role), sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    p.ID,
			"email":      p.Email,
			"full_name":  p.FullName,
			"role":       string(p.Role),
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(p.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// SignIn authenticates and issues a fresh session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*entity.Profile, TokenPair, error) {
	p, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, p)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return p, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// match the session currently recorded in Redis.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	p, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || p == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		key := sessionKey(p.ID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(p.ID, string(p.Role), sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(p.ID, string(p.Role), sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := sessionKey(p.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		_, _ = pipe.Exec(ctx)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, p.ID, nil
}

// SignOut drops the server-side session.
func (s *AuthService) SignOut(ctx context.Context, userID string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(userID)).Err()
}
