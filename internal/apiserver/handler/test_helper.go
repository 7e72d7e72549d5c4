package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/common/cnst"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// mockDB implements database.Database with per-method function fields.
// Unset methods fall through to the embedded nil interface and panic,
// which points straight at the missing stub.
type mockDB struct {
	database.Database

	createUser          func(ctx context.Context, user *database.User) error
	getUserByEmail      func(ctx context.Context, email string) (*database.User, error)
	getUserByID         func(ctx context.Context, id uint) (*database.User, error)
	listUsers           func(ctx context.Context, enterpriseID uint) ([]*database.User, error)
	updateUser          func(ctx context.Context, user *database.User) error
	createEnterprise    func(ctx context.Context, e *database.Enterprise) error
	getEnterpriseByCNPJ func(ctx context.Context, cnpj string) (*database.Enterprise, error)
	getEnterpriseByID   func(ctx context.Context, id uint) (*database.Enterprise, error)
	createGroup         func(ctx context.Context, g *database.Group) error
	getGroup            func(ctx context.Context, id uint) (*database.Group, error)
	listGroups          func(ctx context.Context, enterpriseID uint) ([]*database.Group, error)
	deleteGroup         func(ctx context.Context, id, enterpriseID uint) error
	createRelease       func(ctx context.Context, r *database.Release) error
	getRelease          func(ctx context.Context, id, enterpriseID uint) (*database.Release, error)
	listReleases        func(ctx context.Context, periodID, enterpriseID uint) ([]*database.Release, error)
	updateRelease       func(ctx context.Context, r *database.Release) error
	deleteRelease       func(ctx context.Context, id, enterpriseID uint) error
	createPeriod        func(ctx context.Context, p *database.Period) error
	getPeriod           func(ctx context.Context, id, enterpriseID uint) (*database.Period, error)
	listPeriods         func(ctx context.Context, enterpriseID uint) ([]*database.Period, error)
	updatePeriod        func(ctx context.Context, p *database.Period) error
	deletePeriod        func(ctx context.Context, id, enterpriseID uint) error
}

func (m *mockDB) CreateUser(ctx context.Context, u *database.User) error {
	return m.createUser(ctx, u)
}
func (m *mockDB) GetUserByEmail(ctx context.Context, email string) (*database.User, error) {
	return m.getUserByEmail(ctx, email)
}
func (m *mockDB) GetUserByID(ctx context.Context, id uint) (*database.User, error) {
	return m.getUserByID(ctx, id)
}
func (m *mockDB) ListUsersByEnterprise(ctx context.Context, enterpriseID uint) ([]*database.User, error) {
	return m.listUsers(ctx, enterpriseID)
}
func (m *mockDB) UpdateUser(ctx context.Context, u *database.User) error {
	return m.updateUser(ctx, u)
}
func (m *mockDB) CreateEnterprise(ctx context.Context, e *database.Enterprise) error {
	return m.createEnterprise(ctx, e)
}
func (m *mockDB) GetEnterpriseByCNPJ(ctx context.Context, cnpj string) (*database.Enterprise, error) {
	return m.getEnterpriseByCNPJ(ctx, cnpj)
}
func (m *mockDB) GetEnterpriseByID(ctx context.Context, id uint) (*database.Enterprise, error) {
	return m.getEnterpriseByID(ctx, id)
}
func (m *mockDB) CreateGroup(ctx context.Context, g *database.Group) error {
	return m.createGroup(ctx, g)
}
func (m *mockDB) GetGroup(ctx context.Context, id uint) (*database.Group, error) {
	return m.getGroup(ctx, id)
}
func (m *mockDB) ListGroupsByEnterprise(ctx context.Context, enterpriseID uint) ([]*database.Group, error) {
	return m.listGroups(ctx, enterpriseID)
}
func (m *mockDB) DeleteGroup(ctx context.Context, id, enterpriseID uint) error {
	return m.deleteGroup(ctx, id, enterpriseID)
}
func (m *mockDB) CreateRelease(ctx context.Context, r *database.Release) error {
	return m.createRelease(ctx, r)
}
func (m *mockDB) GetRelease(ctx context.Context, id, enterpriseID uint) (*database.Release, error) {
	return m.getRelease(ctx, id, enterpriseID)
}
func (m *mockDB) ListReleasesByPeriod(ctx context.Context, periodID, enterpriseID uint) ([]*database.Release, error) {
	return m.listReleases(ctx, periodID, enterpriseID)
}
func (m *mockDB) UpdateRelease(ctx context.Context, r *database.Release) error {
	return m.updateRelease(ctx, r)
}
func (m *mockDB) DeleteRelease(ctx context.Context, id, enterpriseID uint) error {
	return m.deleteRelease(ctx, id, enterpriseID)
}
func (m *mockDB) CreatePeriod(ctx context.Context, p *database.Period) error {
	return m.createPeriod(ctx, p)
}
func (m *mockDB) GetPeriod(ctx context.Context, id, enterpriseID uint) (*database.Period, error) {
	return m.getPeriod(ctx, id, enterpriseID)
}
func (m *mockDB) ListPeriodsByEnterprise(ctx context.Context, enterpriseID uint) ([]*database.Period, error) {
	return m.listPeriods(ctx, enterpriseID)
}
func (m *mockDB) UpdatePeriod(ctx context.Context, p *database.Period) error {
	return m.updatePeriod(ctx, p)
}
func (m *mockDB) DeletePeriod(ctx context.Context, id, enterpriseID uint) error {
	return m.deletePeriod(ctx, id, enterpriseID)
}

// testEnv bundles a handler with its router and token service.
type testEnv struct {
	handler *Handler
	jwt     *jwt.Service
	db      *mockDB
}

func newTestEnv(t *testing.T, db *mockDB) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := jwt.NewService(jwt.Config{SecretKey: testSecret, Duration: time.Hour})
	require.NoError(t, err)
	return &testEnv{
		handler: NewHandler(db, svc, zap.NewNop()),
		jwt:     svc,
		db:      db,
	}
}

func (e *testEnv) token(t *testing.T, kind cnst.PrincipalKind, id uint, admin bool) string {
	t.Helper()
	tok, err := e.jwt.Issue(kind, id, admin)
	require.NoError(t, err)
	return tok
}

// doJSON performs a request against the router with an optional body
// and bearer token.
func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}
