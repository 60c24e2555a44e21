package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/harentsoaR/laskin-api/internal/models"
)

type fakeResolver map[string]*models.User

func (f fakeResolver) Resume(_ context.Context, token string) (*models.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, errors.New("unknown session")
}

var (
	staff = &models.User{
		Name: "Ana Pérez",
		Role: models.RolePersonal,
		Permissions: &models.UserPermissions{
			PatientManagement: models.PatientManagementPermissions{ViewClinicalHistory: true},
		},
	}
	admin = &models.User{Name: "Admin Laskin", Role: models.RoleAdmin}
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(fakeResolver{"staff-token": staff, "admin-token": admin})}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": CurrentUser(c).Name, "token": SessionToken(c)})
	})
	r.GET("/protected", chain...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter()

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authorization header required"}`, w.Body.String())

	w = do(r, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired session"}`, w.Body.String())

	w = do(r, "Bearer staff-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ana Pérez","token":"staff-token"}`, w.Body.String())
}

func TestRequirePermission(t *testing.T) {
	r := newTestRouter(RequirePermission(models.CategoryPatientManagement, models.PermViewClinicalHistory))
	assert.Equal(t, http.StatusOK, do(r, "Bearer staff-token").Code)

	w := do(r, "Bearer admin-token")
	assert.Equal(t, http.StatusForbidden, w.Code, "a user without a permission set is denied")
	assert.JSONEq(t, `{"error":"Permission denied."}`, w.Body.String())

	r = newTestRouter(RequirePermission(models.CategoryBilling, models.PermApplyDiscounts))
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer staff-token").Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newTestRouter(RequireAdmin())
	assert.Equal(t, http.StatusOK, do(r, "Bearer admin-token").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer staff-token").Code)
}

func TestCurrentUser_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
	assert.Empty(t, SessionToken(c))
}
