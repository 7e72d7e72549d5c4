package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/common/dto"
	"github.com/reobserve/reobserve/internal/i18n"
)

func periodInfo(p *database.Period) dto.PeriodInfo {
	return dto.PeriodInfo{ID: p.ID, Name: p.Name, Month: p.Month, Year: p.Year, Closed: p.Closed}
}

// ListPeriods returns all accounting periods of the caller's enterprise.
func (h *Handler) ListPeriods(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	periods, err := h.db.ListPeriodsByEnterprise(c.Request.Context(), enterpriseID)
	if err != nil {
		h.logger.Error("failed to list periods", zap.Uint("enterprise_id", enterpriseID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	infos := make([]dto.PeriodInfo, 0, len(periods))
	for _, p := range periods {
		infos = append(infos, periodInfo(p))
	}
	c.JSON(http.StatusOK, infos)
}

// GetPeriod returns one period of the caller's enterprise.
func (h *Handler) GetPeriod(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	period, err := h.db.GetPeriod(c.Request.Context(), id, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorPeriodNotFound)
			return
		}
		h.logger.Error("failed to get period", zap.Uint("period_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, periodInfo(period))
}

// CreatePeriod creates an accounting period in the caller's enterprise.
func (h *Handler) CreatePeriod(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	period := &database.Period{
		Name:         req.Name,
		Month:        req.Month,
		Year:         req.Year,
		EnterpriseID: enterpriseID,
	}
	if err := h.db.CreatePeriod(c.Request.Context(), period); err != nil {
		h.logger.Error("failed to create period", zap.Uint("enterprise_id", enterpriseID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": period.ID})
}

// UpdatePeriod renames, closes, or reopens a period.
func (h *Handler) UpdatePeriod(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	period, err := h.db.GetPeriod(c.Request.Context(), id, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorPeriodNotFound)
			return
		}
		h.logger.Error("failed to get period", zap.Uint("period_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	if req.Name != "" {
		period.Name = req.Name
	}
	if req.Closed != nil {
		period.Closed = *req.Closed
	}

	if err := h.db.UpdatePeriod(c.Request.Context(), period); err != nil {
		h.logger.Error("failed to update period", zap.Uint("period_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, periodInfo(period))
}

// DeletePeriod removes a period of the caller's enterprise. Periods that
// still hold releases cannot be deleted.
func (h *Handler) DeletePeriod(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	releases, err := h.db.ListReleasesByPeriod(c.Request.Context(), id, enterpriseID)
	if err != nil {
		h.logger.Error("failed to list releases", zap.Uint("period_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	if len(releases) > 0 {
		i18n.RespondWithError(c, i18n.ErrorPeriodNotEmpty)
		return
	}

	if err := h.db.DeletePeriod(c.Request.Context(), id, enterpriseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorPeriodNotFound)
			return
		}
		h.logger.Error("failed to delete period", zap.Uint("period_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.RespondOK(c, "SuccessPeriodDeleted", nil)
}
