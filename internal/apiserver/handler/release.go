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

func releaseInfo(r *database.Release) dto.ReleaseInfo {
	return dto.ReleaseInfo{
		ID:          r.ID,
		Description: r.Description,
		Value:       r.Value,
		NoteNumber:  r.NoteNumber,
		ImageURL:    r.ImageURL,
		PeriodID:    r.PeriodID,
	}
}

// ListReleases returns the releases of one period, given by the
// required periodId query parameter.
func (h *Handler) ListReleases(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	periodID, err := queryID(c, "periodId")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	releases, err := h.db.ListReleasesByPeriod(c.Request.Context(), periodID, enterpriseID)
	if err != nil {
		h.logger.Error("failed to list releases", zap.Uint("period_id", periodID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	infos := make([]dto.ReleaseInfo, 0, len(releases))
	for _, r := range releases {
		infos = append(infos, releaseInfo(r))
	}
	c.JSON(http.StatusOK, infos)
}

// GetRelease returns one release of the caller's enterprise.
func (h *Handler) GetRelease(c *gin.Context) {
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

	release, err := h.db.GetRelease(c.Request.Context(), id, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorReleaseNotFound)
			return
		}
		h.logger.Error("failed to get release", zap.Uint("release_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, releaseInfo(release))
}

// CreateRelease records a fiscal note in an open period of the caller's
// enterprise.
func (h *Handler) CreateRelease(c *gin.Context) {
	enterpriseID, err := h.enterpriseScope(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	var req dto.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	period, err := h.db.GetPeriod(c.Request.Context(), req.PeriodID, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorPeriodNotFound)
			return
		}
		h.logger.Error("failed to get period", zap.Uint("period_id", req.PeriodID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	if period.Closed {
		i18n.RespondWithError(c, i18n.ErrorPeriodClosed)
		return
	}

	release := &database.Release{
		Description:  req.Description,
		Value:        req.Value,
		NoteNumber:   req.NoteNumber,
		ImageURL:     req.ImageURL,
		PeriodID:     req.PeriodID,
		EnterpriseID: enterpriseID,
	}
	if err := h.db.CreateRelease(c.Request.Context(), release); err != nil {
		h.logger.Error("failed to create release", zap.Uint("period_id", req.PeriodID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": release.ID})
}

// UpdateRelease edits a release. The owning period must be open.
func (h *Handler) UpdateRelease(c *gin.Context) {
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

	var req dto.UpdateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithFieldErrors(c, bindingFieldErrors(err))
		return
	}

	release, err := h.db.GetRelease(c.Request.Context(), id, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorReleaseNotFound)
			return
		}
		h.logger.Error("failed to get release", zap.Uint("release_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	if closed, err := h.periodClosed(c, release.PeriodID, enterpriseID); err != nil {
		h.logger.Error("failed to get period", zap.Uint("period_id", release.PeriodID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	} else if closed {
		i18n.RespondWithError(c, i18n.ErrorPeriodClosed)
		return
	}

	if req.Description != "" {
		release.Description = req.Description
	}
	if req.Value > 0 {
		release.Value = req.Value
	}
	if req.NoteNumber != "" {
		release.NoteNumber = req.NoteNumber
	}
	if req.ImageURL != "" {
		release.ImageURL = req.ImageURL
	}

	if err := h.db.UpdateRelease(c.Request.Context(), release); err != nil {
		h.logger.Error("failed to update release", zap.Uint("release_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, releaseInfo(release))
}

// DeleteRelease removes a release. The owning period must be open.
func (h *Handler) DeleteRelease(c *gin.Context) {
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

	release, err := h.db.GetRelease(c.Request.Context(), id, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorReleaseNotFound)
			return
		}
		h.logger.Error("failed to get release", zap.Uint("release_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	if closed, err := h.periodClosed(c, release.PeriodID, enterpriseID); err != nil {
		h.logger.Error("failed to get period", zap.Uint("period_id", release.PeriodID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	} else if closed {
		i18n.RespondWithError(c, i18n.ErrorPeriodClosed)
		return
	}

	if err := h.db.DeleteRelease(c.Request.Context(), id, enterpriseID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrorReleaseNotFound)
			return
		}
		h.logger.Error("failed to delete release", zap.Uint("release_id", id), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.RespondOK(c, "SuccessReleaseDeleted", nil)
}

// periodClosed reports whether the release's owning period is closed.
// A missing period counts as open; scoping already vetted the release.
func (h *Handler) periodClosed(c *gin.Context, periodID, enterpriseID uint) (bool, error) {
	period, err := h.db.GetPeriod(c.Request.Context(), periodID, enterpriseID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return period.Closed, nil
}
