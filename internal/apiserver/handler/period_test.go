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

func periodRouter(env *testEnv) *gin.Engine {
	r := gin.New()
	authed := r.Group("/api/periods", middleware.JWTAuthMiddleware(env.jwt))
	authed.GET("", env.handler.ListPeriods)
	authed.GET("/:id", env.handler.GetPeriod)
	authed.POST("", env.handler.CreatePeriod)
	authed.PUT("/:id", env.handler.UpdatePeriod)
	authed.DELETE("/:id", env.handler.DeletePeriod)
	return r
}

func TestPeriodCRUD(t *testing.T) {
	stored := &database.Period{ID: 1, Name: "2026-08", Month: 8, Year: 2026, EnterpriseID: 10}
	db := &mockDB{
		listPeriods: func(_ context.Context, enterpriseID uint) ([]*database.Period, error) {
			if enterpriseID != 10 {
				return []*database.Period{}, nil
			}
			return []*database.Period{stored}, nil
		},
		getPeriod: func(_ context.Context, id, enterpriseID uint) (*database.Period, error) {
			if id == stored.ID && enterpriseID == 10 {
				cp := *stored
				return &cp, nil
			}
			return nil, database.ErrNotFound
		},
		createPeriod: func(_ context.Context, p *database.Period) error {
			p.ID = 2
			return nil
		},
		updatePeriod: func(_ context.Context, p *database.Period) error {
			*stored = *p
			return nil
		},
		deletePeriod: func(_ context.Context, id, enterpriseID uint) error {
			if id == stored.ID && enterpriseID == 10 {
				return nil
			}
			return database.ErrNotFound
		},
		listReleases: func(_ context.Context, periodID, enterpriseID uint) ([]*database.Release, error) {
			return []*database.Release{}, nil
		},
	}
	env := newTestEnv(t, db)
	r := periodRouter(env)
	token := env.token(t, cnst.PrincipalEnterprise, 10, true)

	t.Run("list", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/periods", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2026-08")
	})

	t.Run("get", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/periods/1", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(8), body["month"])
		assert.Equal(t, false, body["closed"])
	})

	t.Run("get foreign period", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/periods/1", nil,
			env.token(t, cnst.PrincipalEnterprise, 99, true))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/periods", dto.CreatePeriodRequest{
			Name: "2026-09", Month: 9, Year: 2026,
		}, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(2), decodeBody(t, w)["id"])
	})

	t.Run("create invalid month", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/periods", dto.CreatePeriodRequest{
			Name: "2026-13", Month: 13, Year: 2026,
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("close period", func(t *testing.T) {
		closed := true
		w := doJSON(r, http.MethodPut, "/api/periods/1", dto.UpdatePeriodRequest{Closed: &closed}, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["closed"])
		assert.True(t, stored.Closed)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/periods", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, http.MethodDelete, "/api/periods/1", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeletePeriodWithReleases(t *testing.T) {
	db := &mockDB{
		listReleases: func(_ context.Context, periodID, enterpriseID uint) ([]*database.Release, error) {
			return []*database.Release{{ID: 1, PeriodID: periodID, EnterpriseID: enterpriseID}}, nil
		},
	}
	env := newTestEnv(t, db)
	r := periodRouter(env)

	w := doJSON(r, http.MethodDelete, "/api/periods/1", nil,
		env.token(t, cnst.PrincipalEnterprise, 10, true))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPeriodUserScope(t *testing.T) {
	db := &mockDB{
		getUserByID: func(_ context.Context, id uint) (*database.User, error) {
			return &database.User{ID: id, EnterpriseID: 10}, nil
		},
		listPeriods: func(_ context.Context, enterpriseID uint) ([]*database.Period, error) {
			require.Equal(t, uint(10), enterpriseID, "user requests scope to the owning enterprise")
			return []*database.Period{}, nil
		},
	}
	env := newTestEnv(t, db)
	r := periodRouter(env)

	w := doJSON(r, http.MethodGet, "/api/periods", nil, env.token(t, cnst.PrincipalUser, 1, false))
	assert.Equal(t, http.StatusOK, w.Code)
}
