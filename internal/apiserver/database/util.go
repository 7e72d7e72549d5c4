package database

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/reobserve/reobserve/internal/common/config"
)

// IsDuplicateKeyError reports whether the error comes from a unique
// constraint violation. Driver messages differ, so both the gorm
// sentinel and the common message fragments are checked.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "Duplicate entry")
}

// InitSuperAdmin seeds the configured super-admin enterprise on first
// start. Existing accounts are left untouched.
func InitSuperAdmin(ctx context.Context, db Database, cfg *config.SuperAdminConfig) error {
	if cfg == nil || cfg.CNPJ == "" || cfg.Password == "" {
		return nil
	}

	_, err := db.GetEnterpriseByCNPJ(ctx, cfg.CNPJ)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.CreateEnterprise(ctx, &Enterprise{
		CNPJ:      cfg.CNPJ,
		Password:  string(hashed),
		TradeName: "ReObserve Admin",
		LegalName: "ReObserve Admin",
	})
}
