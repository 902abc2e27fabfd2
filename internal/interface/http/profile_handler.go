package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/pkg/apierror"
	"github.com/openpaths/reentry-api/pkg/response"
	"github.com/openpaths/reentry-api/pkg/validation"
)

// ProfileService is what the profile handler needs from the application
// layer.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.Profile, error)
	UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type ProfileHandler struct {
	Svc    ProfileService
	Audit  *application.AuditRecorder
	Logger *logrus.Logger
}

func NewProfileHandler(svc ProfileService, audit *application.AuditRecorder, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Audit: audit, Logger: logger}
}

// updateProfileRequest uses pointers so an absent field and a field set
// to "" are distinguishable; absent fields are left untouched.
type updateProfileRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,min=2"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	p, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrProfileNotFound) {
			response.Err(c, apierror.NotFound("profile"))
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("profile fetch failed")
		response.Err(c, apierror.Internal("Failed to fetch profile"))
		return
	}
	response.JSON(c, http.StatusOK, "profile", profileView(p))
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, validation.ErrorFrom(err))
		return
	}
	// omitempty skips validation for a present-but-empty string, so the
	// min=2 rule on full_name has to be enforced here.
	if req.FullName != nil && *req.FullName == "" {
		response.Err(c, apierror.Validation(map[string]string{
			"full_name": "must be at least 2 characters long",
		}))
		return
	}

	in := application.UpdateProfileInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Location:  req.Location,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	}
	p, err := h.Svc.Update(c.Request.Context(), uid, in)
	if err != nil {
		if errors.Is(err, application.ErrProfileNotFound) {
			response.Err(c, apierror.NotFound("profile"))
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("profile update failed")
		response.Err(c, apierror.Internal("Failed to update profile"))
		return
	}

	if changes := in.Changes(); len(changes) > 0 {
		h.Audit.Record(c.Request.Context(), auditEntry(c, "profile_update", uid, "profile", uid, entity.AuditStatusSuccess, changes))
	}
	response.JSON(c, http.StatusOK, "profile", profileView(p))
}

// UploadAvatar POST /api/profile/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString("userID")
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Err(c, apierror.BadRequest("avatar file is required"))
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Err(c, apierror.BadRequest("avatar file is unreadable"))
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrProfileNotFound) {
			response.Err(c, apierror.NotFound("profile"))
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("avatar upload failed")
		response.Err(c, apierror.Internal("Failed to upload avatar"))
		return
	}

	h.Audit.Record(c.Request.Context(), auditEntry(c, "avatar_upload", uid, "profile", uid, entity.AuditStatusSuccess, map[string]any{
		"avatar_url": url,
	}))
	response.JSON(c, http.StatusOK, "profile", gin.H{"avatar_url": url})
}

// Search GET /api/profiles/search?q=&size= (admin, officer)
func (h *ProfileHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Err(c, apierror.Validation(map[string]string{"q": "is required"}))
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("profile search failed")
		response.Err(c, apierror.Internal("Failed to search profiles"))
		return
	}
	response.JSON(c, http.StatusOK, "profiles", hits)
}
