package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/apiserver/middleware"
	"github.com/reobserve/reobserve/internal/auth/permission"
	"github.com/reobserve/reobserve/internal/common/cnst"
	"github.com/reobserve/reobserve/internal/common/dto"
	"github.com/reobserve/reobserve/internal/i18n"
	"github.com/reobserve/reobserve/pkg/utils"
)

// UserLogin authenticates a user by email and password and returns a
// bearer token.
func (h *Handler) UserLogin(c *gin.Context) {
	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// same answer for unknown account and wrong password
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	token, err := h.jwtService.Issue(cnst.PrincipalUser, user.ID, user.IsAdmin)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	caps, err := h.userCapabilities(c, user)
	if err != nil {
		h.logger.Error("failed to resolve capabilities", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:        token,
		Kind:         cnst.PrincipalUser.String(),
		ID:           user.ID,
		Capabilities: caps.Names(),
	})
}

// EnterpriseLogin authenticates an enterprise by CNPJ and password and
// returns a bearer token.
func (h *Handler) EnterpriseLogin(c *gin.Context) {
	var req dto.EnterpriseLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	enterprise, err := h.db.GetEnterpriseByCNPJ(c.Request.Context(), utils.NormalizeCNPJ(req.CNPJ))
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(enterprise.Password), []byte(req.Password)); err != nil {
		i18n.RespondWithError(c, i18n.ErrorInvalidCredentials)
		return
	}

	token, err := h.jwtService.Issue(cnst.PrincipalEnterprise, enterprise.ID, true)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Uint("enterprise_id", enterprise.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:        token,
		Kind:         cnst.PrincipalEnterprise.String(),
		ID:           enterprise.ID,
		Capabilities: permission.FullSet().Names(),
	})
}

// Logout acknowledges a logout. Tokens are stateless, so the server has
// nothing to revoke; clients discard the token locally.
func (h *Handler) Logout(c *gin.Context) {
	i18n.RespondOK(c, "SuccessLogout", nil)
}

// RegisterUser creates a user under the authenticated enterprise.
func (h *Handler) RegisterUser(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil || claims.Kind != cnst.PrincipalEnterprise {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	var req dto.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	if req.GroupID != nil {
		group, err := h.db.GetGroup(c.Request.Context(), *req.GroupID)
		if err != nil || group.EnterpriseID != claims.PrincipalID {
			i18n.RespondWithError(c, i18n.ErrorUserGroupWrongOwner)
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	user := &database.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		EnterpriseID: claims.PrincipalID,
		GroupID:      req.GroupID,
		IsAdmin:      req.IsAdmin,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			i18n.RespondWithError(c, i18n.ErrorEmailExists)
			return
		}
		h.logger.Error("failed to create user", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID})
}

// RegisterEnterprise creates a new enterprise account.
func (h *Handler) RegisterEnterprise(c *gin.Context) {
	var req dto.EnterpriseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	cnpj := utils.NormalizeCNPJ(req.CNPJ)
	if !utils.ValidateCNPJ(cnpj) {
		i18n.RespondWithError(c, i18n.ErrorInvalidCNPJ)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	enterprise := &database.Enterprise{
		CNPJ:      cnpj,
		Password:  string(hashed),
		TradeName: req.TradeName,
		LegalName: req.LegalName,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
	}
	if err := h.db.CreateEnterprise(c.Request.Context(), enterprise); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			i18n.RespondWithError(c, i18n.ErrorCNPJExists)
			return
		}
		h.logger.Error("failed to create enterprise", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": enterprise.ID})
}

// ListUsers returns the authenticated enterprise's user accounts.
func (h *Handler) ListUsers(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil || claims.Kind != cnst.PrincipalEnterprise {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	users, err := h.db.ListUsersByEnterprise(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		h.logger.Error("failed to list users", zap.Uint("enterprise_id", claims.PrincipalID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	infos := make([]dto.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, dto.UserInfo{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			GroupID: u.GroupID,
			IsAdmin: u.IsAdmin,
		})
	}
	c.JSON(http.StatusOK, infos)
}

// UpdateUser changes a user's name, group assignment, or admin flag.
// Only the owning enterprise may call it.
func (h *Handler) UpdateUser(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil || claims.Kind != cnst.PrincipalEnterprise {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil || user.EnterpriseID != claims.PrincipalID {
		i18n.RespondWithError(c, i18n.ErrorUserNotFound)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.GroupID != nil {
		if *req.GroupID == 0 {
			user.GroupID = nil
		} else {
			group, err := h.db.GetGroup(c.Request.Context(), *req.GroupID)
			if err != nil || group.EnterpriseID != claims.PrincipalID {
				i18n.RespondWithError(c, i18n.ErrorUserGroupWrongOwner)
				return
			}
			user.GroupID = req.GroupID
		}
	}

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update user", zap.Uint("user_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, dto.UserInfo{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		GroupID: user.GroupID,
		IsAdmin: user.IsAdmin,
	})
}

// Me returns the authenticated principal's profile with its resolved
// capability names.
func (h *Handler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	if claims.Kind == cnst.PrincipalEnterprise {
		enterprise, err := h.db.GetEnterpriseByID(c.Request.Context(), claims.PrincipalID)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrorEnterpriseNotFound)
			return
		}
		c.JSON(http.StatusOK, dto.MeResponse{
			Kind: cnst.PrincipalEnterprise.String(),
			Enterprise: &dto.EnterpriseInfo{
				ID:                 enterprise.ID,
				CNPJ:               enterprise.CNPJ,
				TradeName:          enterprise.TradeName,
				LegalName:          enterprise.LegalName,
				Address:            enterprise.Address,
				City:               enterprise.City,
				State:              enterprise.State,
				RegistrationStatus: enterprise.RegistrationStatus,
			},
			Capabilities: permission.FullSet().Names(),
		})
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.PrincipalID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrorUserNotFound)
		return
	}

	caps, err := h.userCapabilities(c, user)
	if err != nil {
		h.logger.Error("failed to resolve capabilities", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		Kind: cnst.PrincipalUser.String(),
		User: &dto.UserInfo{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			GroupID: user.GroupID,
			IsAdmin: user.IsAdmin,
		},
		Capabilities: caps.Names(),
	})
}

// userCapabilities resolves the capability set of a loaded user.
func (h *Handler) userCapabilities(c *gin.Context, user *database.User) (permission.Set, error) {
	if user.IsAdmin {
		return permission.NewSet(permission.CapAdmin), nil
	}
	if user.GroupID == nil {
		return permission.MinimalSet(), nil
	}
	group, err := h.db.GetGroup(c.Request.Context(), *user.GroupID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return permission.MinimalSet(), nil
		}
		return nil, err
	}
	return permission.Resolve(cnst.PrincipalUser, group.Permissions, h.logger), nil
}
