package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/pkg/apierror"
	"github.com/openpaths/reentry-api/pkg/helpers"
	"github.com/openpaths/reentry-api/pkg/response"
	"github.com/openpaths/reentry-api/pkg/validation"
)

type AuthHandler struct {
	Svc     AuthService
	Audit   *application.AuditRecorder
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc AuthService, audit *application.AuditRecorder, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Audit: audit, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"full_name" binding:"required,min=2"`
	Role     string `json:"role" binding:"required,role"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, validation.ErrorFrom(err))
		return
	}

	p, err := h.Svc.SignUp(c.Request.Context(), application.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Err(c, apierror.Conflict("email already registered"))
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		// no profile id yet; the attempted email identifies the actor
		h.Audit.Record(c.Request.Context(), auditEntry(c, "signup", req.Email, "profile", "", entity.AuditStatusFailure, nil))
		response.Err(c, apierror.Internal("Failed to create account"))
		return
	}

	h.Audit.Record(c.Request.Context(), auditEntry(c, "signup", p.ID, "profile", p.ID, entity.AuditStatusSuccess, map[string]any{
		"email": p.Email,
		"role":  p.Role,
	}))
	response.JSON(c, http.StatusCreated, "profile", profileView(p))
}

// SignIn POST /api/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, validation.ErrorFrom(err))
		return
	}

	p, pair, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			// bad credentials carry no verified actor id; not audited
			response.Err(c, apierror.Unauthorized("invalid credentials"))
			return
		}
		h.Logger.WithError(err).Error("signin failed")
		h.Audit.Record(c.Request.Context(), auditEntry(c, "signin", req.Email, "profile", "", entity.AuditStatusFailure, nil))
		response.Err(c, apierror.Internal("Failed to sign in"))
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	h.Audit.Record(c.Request.Context(), auditEntry(c, "signin", p.ID, "profile", p.ID, entity.AuditStatusSuccess, nil))
	response.JSON(c, http.StatusOK, "session", gin.H{
		"user_id":            p.ID,
		"full_name":          p.FullName,
		"role":               p.Role,
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Err(c, apierror.Unauthorized("missing refresh token"))
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Err(c, apierror.Unauthorized("invalid refresh token"))
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.JSON(c, http.StatusOK, "session", gin.H{
		"refreshed":          true,
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// SignOut POST /api/auth/signout (auth required)
func (h *AuthHandler) SignOut(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.SignOut(c.Request.Context(), uid); err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("session delete failed")
	}
	h.Cookies.Clear(c)
	h.Audit.Record(c.Request.Context(), auditEntry(c, "signout", uid, "profile", uid, entity.AuditStatusSuccess, nil))
	response.JSON(c, http.StatusOK, "session", gin.H{"signed_out": true})
}
