package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/lifesync/internal/application"
	"github.com/lifesync/lifesync/internal/domain/entity"
	repo "github.com/lifesync/lifesync/internal/domain/repository"
	"github.com/lifesync/lifesync/internal/interface/middleware"
)

type stubUsers struct {
	repo.UserRepository
	byID map[string]*entity.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

type stubBadges struct {
	repo.BadgeRepository
}

func (s *stubBadges) ListByUser(context.Context, string) ([]*entity.Badge, error) {
	return nil, nil
}

func updateUserRouter(users *stubUsers, callerID, tenantID string, role entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := application.NewUserService(users, &stubBadges{}, nil, "", logrus.New(), nil)
	h := NewUserHandler(svc, logrus.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, callerID)
		c.Set(middleware.CtxTenantID, tenantID)
		c.Set(middleware.CtxRole, string(role))
		c.Next()
	})
	r.PUT("/api/users/:id", h.UpdateUser)
	return r
}

func putName(t *testing.T, r *gin.Engine, targetID, name string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+targetID, strings.NewReader(`{"name":"`+name+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateUserAsAdmin(t *testing.T) {
	users := &stubUsers{byID: map[string]*entity.User{
		"admin-1":    {ID: "admin-1", TenantID: "t-1", Role: entity.RoleAdmin, Level: 1},
		"employee-1": {ID: "employee-1", TenantID: "t-1", Name: "Old Name", Role: entity.RoleEmployee, Level: 1},
	}}
	r := updateUserRouter(users, "admin-1", "t-1", entity.RoleAdmin)

	w := putName(t, r, "employee-1", "Renamed By Admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed By Admin", users.byID["employee-1"].Name)
}

func TestUpdateUserForbiddenForManager(t *testing.T) {
	users := &stubUsers{byID: map[string]*entity.User{
		"manager-1":  {ID: "manager-1", TenantID: "t-1", Role: entity.RoleManager, Level: 1},
		"employee-1": {ID: "employee-1", TenantID: "t-1", Name: "Old Name", Role: entity.RoleEmployee, Level: 1},
	}}
	r := updateUserRouter(users, "manager-1", "t-1", entity.RoleManager)

	w := putName(t, r, "employee-1", "Nope")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Old Name", users.byID["employee-1"].Name)
}

func TestUpdateUserOtherTenantLooksMissing(t *testing.T) {
	users := &stubUsers{byID: map[string]*entity.User{
		"admin-1":    {ID: "admin-1", TenantID: "t-1", Role: entity.RoleAdmin, Level: 1},
		"employee-2": {ID: "employee-2", TenantID: "t-2", Name: "Other Tenant", Role: entity.RoleEmployee, Level: 1},
	}}
	r := updateUserRouter(users, "admin-1", "t-1", entity.RoleAdmin)

	w := putName(t, r, "employee-2", "Hijack")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Other Tenant", users.byID["employee-2"].Name)
}

func TestUpdateUserUnknownID(t *testing.T) {
	users := &stubUsers{byID: map[string]*entity.User{
		"admin-1": {ID: "admin-1", TenantID: "t-1", Role: entity.RoleAdmin, Level: 1},
	}}
	r := updateUserRouter(users, "admin-1", "t-1", entity.RoleAdmin)

	w := putName(t, r, "ghost", "Anyone")
	require.Equal(t, http.StatusNotFound, w.Code)
}
