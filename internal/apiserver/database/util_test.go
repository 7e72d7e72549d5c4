package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/reobserve/reobserve/internal/common/config"
)

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, IsDuplicateKeyError(nil))
	assert.False(t, IsDuplicateKeyError(errors.New("connection refused")))
	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyError(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, IsDuplicateKeyError(errors.New(`pq: duplicate key value violates unique constraint "idx_enterprises_cnpj"`)))
	assert.True(t, IsDuplicateKeyError(errors.New("Error 1062: Duplicate entry 'a@acme.com' for key 'email'")))
}

func TestInitSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cfg := &config.SuperAdminConfig{CNPJ: "11222333000181", Password: "s3cret"}
	require.NoError(t, InitSuperAdmin(ctx, db, cfg))

	ent, err := db.GetEnterpriseByCNPJ(ctx, cfg.CNPJ)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ent.Password), []byte("s3cret")))

	// second start must not touch the existing account
	require.NoError(t, InitSuperAdmin(ctx, db, &config.SuperAdminConfig{CNPJ: cfg.CNPJ, Password: "changed"}))
	again, err := db.GetEnterpriseByCNPJ(ctx, cfg.CNPJ)
	require.NoError(t, err)
	assert.Equal(t, ent.Password, again.Password)

	// missing config is a no-op
	assert.NoError(t, InitSuperAdmin(ctx, db, nil))
	assert.NoError(t, InitSuperAdmin(ctx, db, &config.SuperAdminConfig{}))
}
