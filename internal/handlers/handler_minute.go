package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/dto"
	"github.com/npadigital/correspondence_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// minuteHandler handles HTTP requests related to the minute ledger.
type minuteHandler struct {
	minuteService portssvc.MinuteSvcFacade
}

func newMinuteHandler(ms portssvc.MinuteSvcFacade) *minuteHandler {
	return &minuteHandler{
		minuteService: ms,
	}
}

// RegisterMinuteRoutes registers routes related to minutes.
func RegisterMinuteRoutes(rg *gin.RouterGroup, minuteService portssvc.MinuteSvcFacade) {
	h := newMinuteHandler(minuteService)

	minutes := rg.Group("/minutes")
	{
		minutes.POST("", h.appendMinute)
		minutes.GET("", h.listMinutes)
	}
}

// appendMinute godoc
// @Summary Append a minute
// @Description Records a workflow action on a correspondence item. The step number is assigned by the ledger. Delegated actions require an active delegation for the acting user.
// @Tags minutes
// @Accept  json
// @Produce  json
// @Param   minute body dto.CreateMinuteRequest true "Minute details"
// @Success 201 {object} dto.MinuteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "No active delegation backs the claimed authority"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /minutes [post]
func (h *minuteHandler) appendMinute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMinuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for appendMinute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("correspondence_id", req.CorrespondenceID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to append minute", slog.String("action_type", req.ActionType))

	minute, err := h.minuteService.AppendMinute(c.Request.Context(), req, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Correspondence not found for minute")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Correspondence not found"})
		case errors.Is(err, apperrors.ErrNoActiveDelegation):
			logger.Warn("Minute claimed delegated authority without an active delegation")
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error appending minute", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Concurrent minute append collided on step number", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to append minute in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to append minute"})
		}
		return
	}

	logger.Info("Minute appended successfully", slog.Int("step_number", minute.StepNumber))
	c.JSON(http.StatusCreated, dto.ToMinuteResponse(minute))
}

// listMinutes godoc
// @Summary List minutes
// @Description Retrieves ledger entries matching the query filters, ordered by step number
// @Tags minutes
// @Produce  json
// @Param   correspondence query string false "Filter by correspondence ID"
// @Param   user_id query string false "Filter by acting user"
// @Param   action_type query string false "Filter by action type"
// @Success 200 {array} dto.MinuteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /minutes [get]
func (h *minuteHandler) listMinutes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMinutesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listMinutes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.MinuteFilter{
		CorrespondenceID: params.CorrespondenceID,
		UserID:           params.UserID,
		ActionType:       domain.MinuteActionType(params.ActionType),
	}
	minutes, err := h.minuteService.ListMinutes(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list minutes from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list minutes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMinuteResponse(minutes))
}
