package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/dto"
	"github.com/npadigital/correspondence_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// archiveHandler serves the archive view evaluated for the authenticated user.
type archiveHandler struct {
	archiveService portssvc.ArchiveSvcFacade
	userService    portssvc.UserReaderSvc
}

func newArchiveHandler(as portssvc.ArchiveSvcFacade, us portssvc.UserReaderSvc) *archiveHandler {
	return &archiveHandler{
		archiveService: as,
		userService:    us,
	}
}

// registerArchiveRoutes registers the archive routes.
func registerArchiveRoutes(rg *gin.RouterGroup, archiveService portssvc.ArchiveSvcFacade, userService portssvc.UserReaderSvc) {
	h := newArchiveHandler(archiveService, userService)

	archive := rg.Group("/archive")
	{
		archive.GET("", h.visibleArchive)
	}
}

// visibleArchive godoc
// @Summary List archived correspondence visible to the caller
// @Description Evaluates archive visibility for the authenticated user against their allowed archive levels and position in the hierarchy
// @Tags archive
// @Produce  json
// @Success 200 {array} dto.CorrespondenceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /archive [get]
func (h *archiveHandler) visibleArchive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Logged-in user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), loggedInUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authenticated user no longer exists", slog.String("user_id", loggedInUserID))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		} else {
			logger.Error("Failed to load user for archive evaluation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to evaluate archive access"})
		}
		return
	}

	items, err := h.archiveService.VisibleArchive(c.Request.Context(), *user)
	if err != nil {
		logger.Error("Failed to evaluate archive visibility", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to evaluate archive access"})
		return
	}

	logger.Info("Archive evaluated successfully", slog.String("user_id", loggedInUserID), slog.Int("visible_count", len(items)))
	c.JSON(http.StatusOK, dto.ToListCorrespondenceResponse(items))
}
