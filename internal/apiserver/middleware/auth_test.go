package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/auth/permission"
	"github.com/reobserve/reobserve/internal/common/cnst"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// mockDB implements database.Database with overridable functions for the
// methods the middleware touches.
type mockDB struct {
	database.Database

	getUserByID func(ctx context.Context, id uint) (*database.User, error)
	getGroup    func(ctx context.Context, id uint) (*database.Group, error)
}

func (m *mockDB) GetUserByID(ctx context.Context, id uint) (*database.User, error) {
	return m.getUserByID(ctx, id)
}

func (m *mockDB) GetGroup(ctx context.Context, id uint) (*database.Group, error) {
	return m.getGroup(ctx, id)
}

func newJWTService(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewService(jwt.Config{SecretKey: testSecret, Duration: time.Hour})
	require.NoError(t, err)
	return svc
}

func performRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newJWTService(t)

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(svc), func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"id": claims.PrincipalID})
	})

	t.Run("missing header", func(t *testing.T) {
		w := performRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := performRequest(r, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.Issue(cnst.PrincipalUser, 42, false)
		require.NoError(t, err)
		w := performRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})
}

func TestRequireEnterprise(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newJWTService(t)

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(svc), RequireEnterprise(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	userToken, err := svc.Issue(cnst.PrincipalUser, 1, false)
	require.NoError(t, err)
	entToken, err := svc.Issue(cnst.PrincipalEnterprise, 2, true)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, performRequest(r, userToken).Code)
	assert.Equal(t, http.StatusOK, performRequest(r, entToken).Code)
}

func TestRequireCapability(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newJWTService(t)
	logger := zap.NewNop()

	groupID := uint(7)
	db := &mockDB{
		getUserByID: func(_ context.Context, id uint) (*database.User, error) {
			switch id {
			case 1: // grouped user
				return &database.User{ID: 1, GroupID: &groupID}, nil
			case 2: // admin user
				return &database.User{ID: 2, IsAdmin: true}, nil
			case 3: // groupless user
				return &database.User{ID: 3}, nil
			default:
				return nil, database.ErrNotFound
			}
		},
		getGroup: func(_ context.Context, id uint) (*database.Group, error) {
			return &database.Group{ID: id, Permissions: []string{"viewPeriod"}}, nil
		},
	}

	newRouter := func(cap permission.Capability) *gin.Engine {
		r := gin.New()
		r.GET("/protected", JWTAuthMiddleware(svc), RequireCapability(db, logger, cap), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	token := func(kind cnst.PrincipalKind, id uint, admin bool) string {
		tok, err := svc.Issue(kind, id, admin)
		require.NoError(t, err)
		return tok
	}

	t.Run("grouped user has group capability", func(t *testing.T) {
		w := performRequest(newRouter(permission.CapViewPeriod), token(cnst.PrincipalUser, 1, false))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("grouped user lacks capability", func(t *testing.T) {
		w := performRequest(newRouter(permission.CapDeleteRelease), token(cnst.PrincipalUser, 1, false))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin user passes any check", func(t *testing.T) {
		w := performRequest(newRouter(permission.CapDeletePeriod), token(cnst.PrincipalUser, 2, false))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("groupless user gets minimal set", func(t *testing.T) {
		w := performRequest(newRouter(permission.CapCreateRelease), token(cnst.PrincipalUser, 3, false))
		assert.Equal(t, http.StatusOK, w.Code)

		w = performRequest(newRouter(permission.CapEditRelease), token(cnst.PrincipalUser, 3, false))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("enterprise passes any check", func(t *testing.T) {
		w := performRequest(newRouter(permission.CapDeletePeriod), token(cnst.PrincipalEnterprise, 9, true))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("vanished user is rejected", func(t *testing.T) {
		w := performRequest(newRouter(permission.CapViewRelease), token(cnst.PrincipalUser, 99, false))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
