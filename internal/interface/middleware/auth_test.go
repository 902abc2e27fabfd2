package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpaths/reentry-api/internal/domain/entity"
)

func roleRouter(sessionRole string, allowed ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) { c.Set("userRole", sessionRole) },
		RequireRole(allowed...),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	r := roleRouter("admin", entity.RoleAdmin, entity.RoleOfficer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	r := roleRouter("job_seeker", entity.RoleAdmin, entity.RoleOfficer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	r := roleRouter("", entity.RoleAdmin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
