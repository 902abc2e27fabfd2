package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

func newServiceRouter(svc DirectoryService, audit *captureAuditRepo) *gin.Engine {
	h := NewServiceHandler(svc, testRecorder(audit), testLogger())
	r := gin.New()
	r.GET("/api/services", h.List)
	r.GET("/api/services/:id", h.Get)
	r.POST("/api/services", asUser("admin-1", entity.RoleAdmin), h.Create)
	return r
}

func TestListServices(t *testing.T) {
	svc := &fakeDirectoryService{
		listFn: func(repository.ServiceFilter) ([]entity.Service, error) {
			return []entity.Service{
				{ID: "s1", Name: "Fresh Start Housing", Category: entity.CategoryHousing},
				{ID: "s2", Name: "Resume Help", Category: entity.CategoryEducation},
			}, nil
		},
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	services, ok := body["services"].([]any)
	require.True(t, ok, "payload must be under the services field: %v", body)
	require.Len(t, services, 2)
	first := services[0].(map[string]any)
	assert.Equal(t, "Fresh Start Housing", first["name"])
	assert.Equal(t, "housing", first["category"])
}

func TestListServicesEmptyIsAnArray(t *testing.T) {
	svc := &fakeDirectoryService{
		listFn: func(repository.ServiceFilter) ([]entity.Service, error) { return nil, nil },
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"services": []}`, w.Body.String())
}

func TestListServicesStoreErrorIsOpaque(t *testing.T) {
	svc := &fakeDirectoryService{
		listFn: func(repository.ServiceFilter) ([]entity.Service, error) {
			return nil, errors.New("pq: connection reset by peer")
		},
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to fetch services", body["error"])
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestListServicesInvalidCategory(t *testing.T) {
	called := false
	svc := &fakeDirectoryService{
		listFn: func(repository.ServiceFilter) ([]entity.Service, error) {
			called = true
			return nil, nil
		},
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services?category=transport", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	d := details(t, body)
	assert.Equal(t, "must be one of: housing, education, health, legal, other", d["category"])
	assert.False(t, called)
}

func TestListServicesCategoryIsCaseInsensitive(t *testing.T) {
	svc := &fakeDirectoryService{
		listFn: func(repository.ServiceFilter) ([]entity.Service, error) { return nil, nil },
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services?category=HOUSING&search=shelter", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastList)
	assert.Equal(t, entity.CategoryHousing, svc.lastList.Category)
	assert.Equal(t, "shelter", svc.lastList.Search)
}

func TestGetServiceNotFound(t *testing.T) {
	svc := &fakeDirectoryService{
		getFn: func(string) (*entity.Service, error) { return nil, repository.ErrNotFound },
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services/nope", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "service not found", body["error"])
}

func TestGetService(t *testing.T) {
	svc := &fakeDirectoryService{
		getFn: func(id string) (*entity.Service, error) {
			return &entity.Service{ID: id, Name: "Legal Aid Clinic", Category: entity.CategoryLegal}, nil
		},
	}
	r := newServiceRouter(svc, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodGet, "/api/services/s9", "")

	require.Equal(t, http.StatusOK, w.Code)
	service := decodeBody(t, w)["service"].(map[string]any)
	assert.Equal(t, "Legal Aid Clinic", service["name"])
}

func TestCreateService(t *testing.T) {
	audit := &captureAuditRepo{}
	svc := &fakeDirectoryService{
		createFn: func(in application.CreateServiceInput) (*entity.Service, error) {
			return &entity.Service{ID: "s-new", Name: in.Name, Description: in.Description, Category: in.Category}, nil
		},
	}
	r := newServiceRouter(svc, audit)

	w := doJSON(t, r, http.MethodPost, "/api/services",
		`{"name":"Second Chance Staffing","description":"Fair-chance job placement","category":"other"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	service := decodeBody(t, w)["service"].(map[string]any)
	assert.Equal(t, "s-new", service["id"])

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "service_create", audit.entries[0].Action)
	assert.Equal(t, "admin-1", audit.entries[0].UserID)
	assert.Equal(t, entity.AuditStatusSuccess, audit.entries[0].Status)
}

func TestCreateServiceInvalidCategory(t *testing.T) {
	r := newServiceRouter(&fakeDirectoryService{}, &captureAuditRepo{})

	w := doJSON(t, r, http.MethodPost, "/api/services",
		`{"name":"Bus Passes","category":"transport"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	d := details(t, decodeBody(t, w))
	assert.Equal(t, "must be one of: housing, education, health, legal, other", d["category"])
}

func TestCreateServiceStoreFailureIsAudited(t *testing.T) {
	audit := &captureAuditRepo{}
	svc := &fakeDirectoryService{
		createFn: func(application.CreateServiceInput) (*entity.Service, error) {
			return nil, errors.New("insert failed")
		},
	}
	r := newServiceRouter(svc, audit)

	w := doJSON(t, r, http.MethodPost, "/api/services",
		`{"name":"Bus Passes","category":"other"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, entity.AuditStatusFailure, audit.entries[0].Status)
}
