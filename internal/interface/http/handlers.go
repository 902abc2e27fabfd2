package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/openpaths/reentry-api/internal/application"
	"github.com/openpaths/reentry-api/internal/domain/entity"
)

// Every handler follows the same pipeline: parse the request, run the
// schema validator bound to the route, execute against the store, and
// respond with either the payload under a named field or a taxonomy
// error. Mutating routes record one audit entry before responding.

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// auditEntry fills the network metadata shared by every audited action.
func auditEntry(c *gin.Context, action, userID, resourceType, resourceID, status string, changes map[string]any) *entity.AuditLog {
	return &entity.AuditLog{
		Action:       action,
		UserID:       userID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Changes:      changes,
		Status:       status,
		IPAddress:    clientIP(c),
		UserAgent:    c.GetHeader("User-Agent"),
	}
}

func profileView(p *entity.Profile) gin.H {
	return gin.H{
		"id":         p.ID,
		"email":      p.Email,
		"full_name":  p.FullName,
		"role":       p.Role,
		"phone":      p.Phone,
		"location":   p.Location,
		"bio":        p.Bio,
		"avatar_url": p.AvatarURL,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func serviceView(s *entity.Service) gin.H {
	return gin.H{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
		"category":    s.Category,
		"created_at":  s.CreatedAt,
		"updated_at":  s.UpdatedAt,
	}
}

func serviceViews(list []entity.Service) []gin.H {
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, serviceView(&list[i]))
	}
	return out
}

// AuthService is what the auth handler needs from the application layer.
type AuthService interface {
	SignUp(ctx context.Context, in application.SignUpInput) (*entity.Profile, error)
	SignIn(ctx context.Context, email, password string) (*entity.Profile, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, string, error)
	SignOut(ctx context.Context, userID string) error
}
