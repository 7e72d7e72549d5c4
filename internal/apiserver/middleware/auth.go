package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/auth/permission"
	"github.com/reobserve/reobserve/internal/common/cnst"
	"github.com/reobserve/reobserve/internal/i18n"
)

// JWTAuthMiddleware creates a middleware that validates bearer tokens
// and stores the claims in the request context.
func JWTAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			i18n.AbortWithError(c, i18n.ErrUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			i18n.AbortWithError(c, i18n.ErrUnauthorized)
			return
		}

		claims, err := jwtService.Verify(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				i18n.AbortWithError(c, i18n.ErrorSessionExpired)
				return
			}
			i18n.AbortWithError(c, i18n.ErrUnauthorized)
			return
		}

		c.Set(cnst.CtxKeyClaims, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the validated claims stored by
// JWTAuthMiddleware, or nil when the request is unauthenticated.
func ClaimsFromContext(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(cnst.CtxKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireEnterprise rejects requests whose token does not belong to an
// enterprise principal.
func RequireEnterprise() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			i18n.AbortWithError(c, i18n.ErrUnauthorized)
			return
		}
		if claims.Kind != cnst.PrincipalEnterprise {
			i18n.AbortWithError(c, i18n.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireCapability rejects requests whose principal lacks the given
// capability. Enterprise principals and admin users always pass; other
// users derive their set from their group.
func RequireCapability(db database.Database, logger *zap.Logger, cap permission.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			i18n.AbortWithError(c, i18n.ErrUnauthorized)
			return
		}

		set, err := resolveCapabilities(c, db, logger, claims)
		if err != nil {
			logger.Error("failed to resolve capabilities",
				zap.Uint("principal_id", claims.PrincipalID),
				zap.String("kind", claims.Kind.String()),
				zap.Error(err))
			i18n.AbortWithError(c, i18n.ErrInternalServer)
			return
		}

		if !set.Has(cap) {
			i18n.AbortWithError(c, i18n.ErrForbidden)
			return
		}
		c.Next()
	}
}

// resolveCapabilities loads the principal's capability set. A user whose
// account no longer exists resolves to no capabilities at all.
func resolveCapabilities(c *gin.Context, db database.Database, logger *zap.Logger, claims *jwt.Claims) (permission.Set, error) {
	if claims.Kind == cnst.PrincipalEnterprise {
		return permission.FullSet(), nil
	}

	user, err := db.GetUserByID(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return permission.Set{}, nil
		}
		return nil, err
	}
	if user.IsAdmin {
		return permission.NewSet(permission.CapAdmin), nil
	}
	if user.GroupID == nil {
		return permission.MinimalSet(), nil
	}

	group, err := db.GetGroup(c.Request.Context(), *user.GroupID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return permission.MinimalSet(), nil
		}
		return nil, err
	}
	return permission.Resolve(claims.Kind, group.Permissions, logger), nil
}
