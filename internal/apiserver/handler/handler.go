package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/apiserver/middleware"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/common/cnst"
)

// Handler carries the dependencies shared by all API handlers.
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	logger     *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(db database.Database, jwtService *jwt.Service, logger *zap.Logger) *Handler {
	return &Handler{
		db:         db,
		jwtService: jwtService,
		logger:     logger,
	}
}

// enterpriseScope resolves which enterprise's data the request operates
// on: the enterprise itself, or the user's owning enterprise.
func (h *Handler) enterpriseScope(c *gin.Context) (uint, error) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return 0, errors.New("no claims in context")
	}
	if claims.Kind == cnst.PrincipalEnterprise {
		return claims.PrincipalID, nil
	}
	user, err := h.db.GetUserByID(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		return 0, err
	}
	return user.EnterpriseID, nil
}
