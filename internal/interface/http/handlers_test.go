package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
	"github.com/openpaths/reentry-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// captureAuditRepo records entries so tests can assert what was audited.
type captureAuditRepo struct {
	entries []*entity.AuditLog
}

func (r *captureAuditRepo) Insert(_ context.Context, e *entity.AuditLog) error {
	r.entries = append(r.entries, e)
	return nil
}

func testRecorder(repo *captureAuditRepo) *application.AuditRecorder {
	rec := application.NewAuditRecorder(repo, testLogger())
	rec.RetryBackoff = 0
	return rec
}

// asUser injects the context keys the auth middleware would set.
func asUser(userID string, role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", string(role))
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func details(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["details"].(map[string]any)
	require.True(t, ok, "response has no details map: %v", body)
	return d
}

type fakeAuthService struct {
	signUpFn  func(application.SignUpInput) (*entity.Profile, error)
	signInFn  func(email, password string) (*entity.Profile, application.TokenPair, error)
	refreshFn func(token string) (application.TokenPair, string, error)
	signOutFn func(userID string) error
}

func (f *fakeAuthService) SignUp(_ context.Context, in application.SignUpInput) (*entity.Profile, error) {
	return f.signUpFn(in)
}

func (f *fakeAuthService) SignIn(_ context.Context, email, password string) (*entity.Profile, application.TokenPair, error) {
	return f.signInFn(email, password)
}

func (f *fakeAuthService) Refresh(_ context.Context, token string) (application.TokenPair, string, error) {
	return f.refreshFn(token)
}

func (f *fakeAuthService) SignOut(_ context.Context, userID string) error {
	if f.signOutFn != nil {
		return f.signOutFn(userID)
	}
	return nil
}

type fakeDirectoryService struct {
	listFn   func(f repository.ServiceFilter) ([]entity.Service, error)
	getFn    func(id string) (*entity.Service, error)
	createFn func(in application.CreateServiceInput) (*entity.Service, error)
	lastList *repository.ServiceFilter
}

func (f *fakeDirectoryService) List(_ context.Context, filter repository.ServiceFilter) ([]entity.Service, error) {
	f.lastList = &filter
	return f.listFn(filter)
}

func (f *fakeDirectoryService) Get(_ context.Context, id string) (*entity.Service, error) {
	return f.getFn(id)
}

func (f *fakeDirectoryService) Create(_ context.Context, in application.CreateServiceInput) (*entity.Service, error) {
	return f.createFn(in)
}

type fakeProfileService struct {
	getFn      func(userID string) (*entity.Profile, error)
	updateFn   func(userID string, in application.UpdateProfileInput) (*entity.Profile, error)
	uploadFn   func(userID, filename, contentType string) (string, error)
	searchFn   func(q string, size int) ([]map[string]any, error)
	lastUpdate *application.UpdateProfileInput
}

func (f *fakeProfileService) Get(_ context.Context, userID string) (*entity.Profile, error) {
	return f.getFn(userID)
}

func (f *fakeProfileService) Update(_ context.Context, userID string, in application.UpdateProfileInput) (*entity.Profile, error) {
	f.lastUpdate = &in
	return f.updateFn(userID, in)
}

func (f *fakeProfileService) UploadAvatar(_ context.Context, userID string, _ io.Reader, filename, contentType string) (string, error) {
	return f.uploadFn(userID, filename, contentType)
}

func (f *fakeProfileService) Search(_ context.Context, q string, size int) ([]map[string]any, error) {
	return f.searchFn(q, size)
}
