package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reobserve/reobserve/internal/common/config"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Type:   "sqlite",
		DBName: filepath.Join(t.TempDir(), "reobserve.db"),
	}
	db, err := NewSQLite(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedEnterprise(t *testing.T, db Database, cnpj string) *Enterprise {
	t.Helper()
	e := &Enterprise{CNPJ: cnpj, Password: "hash", TradeName: "ACME"}
	require.NoError(t, db.CreateEnterprise(context.Background(), e))
	return e
}

func TestSQLite_UserCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ent := seedEnterprise(t, db, "11222333000181")

	u := &User{Name: "Ana", Email: "ana@acme.com", Password: "hash", EnterpriseID: ent.ID}
	require.NoError(t, db.CreateUser(ctx, u))
	require.NotZero(t, u.ID)

	got, err := db.GetUserByEmail(ctx, "ana@acme.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, ent.ID, got.EnterpriseID)
	assert.Nil(t, got.GroupID)

	byID, err := db.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name)

	byID.Name = "Ana Souza"
	require.NoError(t, db.UpdateUser(ctx, byID))
	got, err = db.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.Name)

	_, err = db.GetUserByEmail(ctx, "nobody@acme.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ent := seedEnterprise(t, db, "11222333000181")

	require.NoError(t, db.CreateUser(ctx, &User{Name: "A", Email: "a@acme.com", Password: "h", EnterpriseID: ent.ID}))
	err := db.CreateUser(ctx, &User{Name: "B", Email: "a@acme.com", Password: "h", EnterpriseID: ent.ID})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSQLite_DuplicateCNPJ(t *testing.T) {
	db := newTestDB(t)
	seedEnterprise(t, db, "11222333000181")
	err := db.CreateEnterprise(context.Background(), &Enterprise{CNPJ: "11222333000181", Password: "h", TradeName: "Other"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSQLite_GroupScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entA := seedEnterprise(t, db, "11222333000181")
	entB := seedEnterprise(t, db, "99888777000166")

	require.NoError(t, db.CreateGroup(ctx, &Group{Name: "Finance", EnterpriseID: entA.ID, Permissions: []string{"viewPeriod", "createRelease"}}))

	groupsA, err := db.ListGroupsByEnterprise(ctx, entA.ID)
	require.NoError(t, err)
	require.Len(t, groupsA, 1)
	assert.Equal(t, []string{"viewPeriod", "createRelease"}, groupsA[0].Permissions)

	// enterprise B never sees enterprise A's groups
	groupsB, err := db.ListGroupsByEnterprise(ctx, entB.ID)
	require.NoError(t, err)
	assert.NotNil(t, groupsB)
	assert.Empty(t, groupsB)

	// nor can it delete them
	err = db.DeleteGroup(ctx, groupsA[0].ID, entB.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DeleteGroupClearsDependents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ent := seedEnterprise(t, db, "11222333000181")

	g := &Group{Name: "Finance", EnterpriseID: ent.ID, Permissions: []string{"viewPeriod"}}
	require.NoError(t, db.CreateGroup(ctx, g))

	u := &User{Name: "Ana", Email: "ana@acme.com", Password: "h", EnterpriseID: ent.ID, GroupID: &g.ID}
	require.NoError(t, db.CreateUser(ctx, u))

	require.NoError(t, db.DeleteGroup(ctx, g.ID, ent.ID))

	_, err := db.GetGroup(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := db.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID, "dependent users fall back to no-group")
}

func TestSQLite_ReleaseAndPeriodScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entA := seedEnterprise(t, db, "11222333000181")
	entB := seedEnterprise(t, db, "99888777000166")

	p := &Period{Name: "2026-08", Month: 8, Year: 2026, EnterpriseID: entA.ID}
	require.NoError(t, db.CreatePeriod(ctx, p))

	r := &Release{Description: "NF 123", Value: 150.5, NoteNumber: "123", PeriodID: p.ID, EnterpriseID: entA.ID}
	require.NoError(t, db.CreateRelease(ctx, r))

	list, err := db.ListReleasesByPeriod(ctx, p.ID, entA.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// other enterprise sees nothing
	_, err = db.GetRelease(ctx, r.ID, entB.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	err = db.DeleteRelease(ctx, r.ID, entB.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetPeriod(ctx, p.ID, entB.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.DeleteRelease(ctx, r.ID, entA.ID))
	err = db.DeleteRelease(ctx, r.ID, entA.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_TransactionRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ent := seedEnterprise(t, db, "11222333000181")

	boom := errors.New("boom")
	err := db.Transaction(ctx, func(ctx context.Context) error {
		if err := db.CreateGroup(ctx, &Group{Name: "Temp", EnterpriseID: ent.ID, Permissions: []string{"viewRelease"}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	groups, err := db.ListGroupsByEnterprise(ctx, ent.ID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
