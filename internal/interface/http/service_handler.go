package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
	"github.com/openpaths/reentry-api/pkg/apierror"
	"github.com/openpaths/reentry-api/pkg/response"
	"github.com/openpaths/reentry-api/pkg/validation"
)

// DirectoryService is what the service handler needs from the
// application layer.
type DirectoryService interface {
	List(ctx context.Context, f repository.ServiceFilter) ([]entity.Service, error)
	Get(ctx context.Context, id string) (*entity.Service, error)
	Create(ctx context.Context, in application.CreateServiceInput) (*entity.Service, error)
}

type ServiceHandler struct {
	Svc    DirectoryService
	Audit  *application.AuditRecorder
	Logger *logrus.Logger
}

func NewServiceHandler(svc DirectoryService, audit *application.AuditRecorder, logger *logrus.Logger) *ServiceHandler {
	return &ServiceHandler{Svc: svc, Audit: audit, Logger: logger}
}

type createServiceRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,category"`
}

// List GET /api/services?category=&search=
func (h *ServiceHandler) List(c *gin.Context) {
	var filter repository.ServiceFilter
	if raw := c.Query("category"); raw != "" {
		cat, ok := entity.ParseCategory(raw)
		if !ok {
			response.Err(c, apierror.Validation(map[string]string{
				"category": "must be one of: housing, education, health, legal, other",
			}))
			return
		}
		filter.Category = cat
	}
	filter.Search = c.Query("search")

	list, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		// raw store error stays server-side
		h.Logger.WithError(err).Error("service listing failed")
		response.Err(c, apierror.Internal("Failed to fetch services"))
		return
	}
	response.JSON(c, http.StatusOK, "services", serviceViews(list))
}

// Get GET /api/services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	id := c.Param("id")
	s, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Err(c, apierror.NotFound("service"))
			return
		}
		h.Logger.WithError(err).WithField("service_id", id).Error("service fetch failed")
		response.Err(c, apierror.Internal("Failed to fetch service"))
		return
	}
	response.JSON(c, http.StatusOK, "service", serviceView(s))
}

// Create POST /api/services (admin only)
func (h *ServiceHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, validation.ErrorFrom(err))
		return
	}

	s, err := h.Svc.Create(c.Request.Context(), application.CreateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    entity.Category(req.Category),
	})
	if err != nil {
		h.Logger.WithError(err).Error("service create failed")
		h.Audit.Record(c.Request.Context(), auditEntry(c, "service_create", uid, "service", "", entity.AuditStatusFailure, map[string]any{
			"name": req.Name,
		}))
		response.Err(c, apierror.Internal("Failed to create service"))
		return
	}

	h.Audit.Record(c.Request.Context(), auditEntry(c, "service_create", uid, "service", s.ID, entity.AuditStatusSuccess, map[string]any{
		"name":     s.Name,
		"category": s.Category,
	}))
	response.JSON(c, http.StatusCreated, "service", serviceView(s))
}
