package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/apiserver/middleware"
	"github.com/reobserve/reobserve/internal/common/cnst"
	"github.com/reobserve/reobserve/internal/common/dto"
)

func groupRouter(env *testEnv) *gin.Engine {
	r := gin.New()
	authed := r.Group("/api/enterprises/groups",
		middleware.JWTAuthMiddleware(env.jwt), middleware.RequireEnterprise())
	authed.GET("", env.handler.ListGroups)
	authed.POST("", env.handler.CreateGroup)
	authed.DELETE("/:id", env.handler.DeleteGroup)
	return r
}

func TestListGroups(t *testing.T) {
	db := &mockDB{
		listGroups: func(_ context.Context, enterpriseID uint) ([]*database.Group, error) {
			if enterpriseID != 10 {
				return []*database.Group{}, nil
			}
			return []*database.Group{
				{ID: 1, Name: "Finance", EnterpriseID: 10, Permissions: []string{"viewPeriod"}},
			}, nil
		},
	}
	env := newTestEnv(t, db)
	r := groupRouter(env)

	t.Run("own groups", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/enterprises/groups", nil,
			env.token(t, cnst.PrincipalEnterprise, 10, true))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Finance","permissions":["viewPeriod"]}]`, w.Body.String())
	})

	t.Run("empty list is never null", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/enterprises/groups", nil,
			env.token(t, cnst.PrincipalEnterprise, 99, true))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("user token rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/enterprises/groups", nil,
			env.token(t, cnst.PrincipalUser, 1, false))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCreateGroup(t *testing.T) {
	var created *database.Group
	db := &mockDB{
		createGroup: func(_ context.Context, g *database.Group) error {
			g.ID = 5
			created = g
			return nil
		},
	}
	env := newTestEnv(t, db)
	r := groupRouter(env)
	token := env.token(t, cnst.PrincipalEnterprise, 10, true)

	t.Run("success", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/enterprises/groups", dto.CreateGroupRequest{
			Name:        "Finance",
			Permissions: []string{"viewPeriod", "createRelease"},
		}, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(5), decodeBody(t, w)["id"])
		require.NotNil(t, created)
		assert.Equal(t, uint(10), created.EnterpriseID)
	})

	t.Run("unknown capability rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/enterprises/groups", dto.CreateGroupRequest{
			Name:        "Finance",
			Permissions: []string{"viewPeriod", "launchRockets"},
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty capability set rejected", func(t *testing.T) {
		created = nil
		w := doJSON(r, http.MethodPost, "/api/enterprises/groups", dto.CreateGroupRequest{
			Name:        "Empty",
			Permissions: []string{},
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "permissions")
		assert.Nil(t, created)
	})

	t.Run("missing name", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/enterprises/groups", dto.CreateGroupRequest{
			Permissions: []string{"viewPeriod"},
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteGroup(t *testing.T) {
	db := &mockDB{
		deleteGroup: func(_ context.Context, id, enterpriseID uint) error {
			if id == 5 && enterpriseID == 10 {
				return nil
			}
			return database.ErrNotFound
		},
	}
	env := newTestEnv(t, db)
	r := groupRouter(env)

	t.Run("success", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/api/enterprises/groups/5", nil,
			env.token(t, cnst.PrincipalEnterprise, 10, true))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not owned", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/api/enterprises/groups/5", nil,
			env.token(t, cnst.PrincipalEnterprise, 99, true))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/api/enterprises/groups/abc", nil,
			env.token(t, cnst.PrincipalEnterprise, 10, true))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
