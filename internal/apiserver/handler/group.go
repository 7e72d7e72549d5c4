package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/apiserver/middleware"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/auth/permission"
	"github.com/reobserve/reobserve/internal/common/dto"
	"github.com/reobserve/reobserve/internal/i18n"
)

// enterpriseClaims returns the claims of the authenticated enterprise.
// The RequireEnterprise middleware guarantees the kind; a nil return
// means the route was wired without it.
func enterpriseClaims(c *gin.Context) (*jwt.Claims, error) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return nil, fmt.Errorf("no claims in context")
	}
	return claims, nil
}

// ListGroups returns the authenticated enterprise's capability groups.
func (h *Handler) ListGroups(c *gin.Context) {
	claims, err := enterpriseClaims(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	groups, err := h.db.ListGroupsByEnterprise(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		h.logger.Error("failed to list groups", zap.Uint("enterprise_id", claims.PrincipalID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	infos := make([]dto.GroupInfo, 0, len(groups))
	for _, g := range groups {
		infos = append(infos, dto.GroupInfo{ID: g.ID, Name: g.Name, Permissions: g.Permissions})
	}
	c.JSON(http.StatusOK, infos)
}

// CreateGroup creates a capability group for the authenticated
// enterprise. Capability names must all be known.
func (h *Handler) CreateGroup(c *gin.Context) {
	claims, err := enterpriseClaims(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	for _, name := range req.Permissions {
		if _, ok := permission.Parse(name); !ok {
			i18n.RespondWithError(c, i18n.ErrorUnknownCapability.WithParam("Name", name))
			return
		}
	}

	group := &database.Group{
		Name:         req.Name,
		EnterpriseID: claims.PrincipalID,
		Permissions:  req.Permissions,
	}
	if err := h.db.CreateGroup(c.Request.Context(), group); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			i18n.RespondWithError(c, i18n.ErrorGroupNameExists)
			return
		}
		h.logger.Error("failed to create group", zap.Uint("enterprise_id", claims.PrincipalID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": group.ID})
}

// DeleteGroup removes a group owned by the authenticated enterprise and
// moves its users to no-group.
func (h *Handler) DeleteGroup(c *gin.Context) {
	claims, err := enterpriseClaims(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if err := h.db.DeleteGroup(c.Request.Context(), id, claims.PrincipalID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorGroupNotFound)
			return
		}
		h.logger.Error("failed to delete group", zap.Uint("group_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.RespondOK(c, "SuccessGroupDeleted", nil)
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryID parses a numeric query parameter.
func queryID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
