package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// snapshotHandler exposes manual refresh of the in-memory snapshots.
type snapshotHandler struct {
	correspondenceService portssvc.CorrespondenceSnapshotSvc
	organizationService   portssvc.OrganizationSvcFacade
}

func newSnapshotHandler(cs portssvc.CorrespondenceSnapshotSvc, os portssvc.OrganizationSvcFacade) *snapshotHandler {
	return &snapshotHandler{
		correspondenceService: cs,
		organizationService:   os,
	}
}

// registerSnapshotRoutes registers the snapshot refresh routes.
func registerSnapshotRoutes(rg *gin.RouterGroup, correspondenceService portssvc.CorrespondenceSnapshotSvc, organizationService portssvc.OrganizationSvcFacade) {
	h := newSnapshotHandler(correspondenceService, organizationService)

	snapshots := rg.Group("/snapshots")
	{
		snapshots.POST("/correspondence/refresh", h.refreshCorrespondenceSnapshot)
		snapshots.POST("/hierarchy/refresh", h.refreshHierarchySnapshot)
	}
}

// refreshCorrespondenceSnapshot godoc
// @Summary Refresh the correspondence snapshot
// @Description Reloads the in-memory correspondence snapshot from the store. A cancelled refresh leaves the previous snapshot in place.
// @Tags snapshots
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/correspondence/refresh [post]
func (h *snapshotHandler) refreshCorrespondenceSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.correspondenceService.RefreshSnapshot(c.Request.Context()); err != nil {
		logger.Error("Failed to refresh correspondence snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh snapshot"})
		return
	}

	logger.Info("Correspondence snapshot refreshed")
	c.Status(http.StatusNoContent)
}

// refreshHierarchySnapshot godoc
// @Summary Refresh the hierarchy snapshot
// @Description Reloads the in-memory organizational hierarchy snapshot from the store
// @Tags snapshots
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /snapshots/hierarchy/refresh [post]
func (h *snapshotHandler) refreshHierarchySnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.organizationService.RefreshHierarchy(c.Request.Context()); err != nil {
		logger.Error("Failed to refresh hierarchy snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh snapshot"})
		return
	}

	logger.Info("Hierarchy snapshot refreshed")
	c.Status(http.StatusNoContent)
}
