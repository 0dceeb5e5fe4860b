package handlers

import (
	"context"
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

// delegationHandler handles HTTP requests related to delegation grants.
type delegationHandler struct {
	delegationService portssvc.DelegationSvcFacade
}

func newDelegationHandler(ds portssvc.DelegationSvcFacade) *delegationHandler {
	return &delegationHandler{
		delegationService: ds,
	}
}

// registerDelegationRoutes registers routes related to delegations.
func registerDelegationRoutes(rg *gin.RouterGroup, delegationService portssvc.DelegationSvcFacade) {
	h := newDelegationHandler(delegationService)

	delegations := rg.Group("/delegations")
	{
		delegations.POST("", h.createDelegation)
		delegations.GET("", h.listDelegations)
		delegations.GET("/:id", h.getDelegation)
		delegations.POST("/:id/revoke", h.revokeDelegation)
		delegations.POST("/:id/complete", h.completeDelegation)
	}
}

// createDelegation godoc
// @Summary Create a delegation
// @Description Grants an assistant authority to act on a correspondence item for an executive. Only one active delegation may exist per correspondence and executive.
// @Tags delegations
// @Accept  json
// @Produce  json
// @Param   delegation body dto.CreateDelegationRequest true "Delegation details"
// @Success 201 {object} dto.DelegationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "An active delegation already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /delegations [post]
func (h *delegationHandler) createDelegation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDelegation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	executiveID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Executive user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("correspondence_id", req.CorrespondenceID), slog.String("executive_id", executiveID))
	logger.Info("Received request to create delegation", slog.String("assistant_id", req.AssistantID))

	delegation, err := h.delegationService.CreateDelegation(c.Request.Context(), req, executiveID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found creating delegation", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicateActiveDelegation), errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Active delegation already exists")
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating delegation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create delegation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create delegation"})
		}
		return
	}

	logger.Info("Delegation created successfully", slog.String("delegation_id", delegation.DelegationID))
	c.JSON(http.StatusCreated, dto.ToDelegationResponse(delegation))
}

// getDelegation godoc
// @Summary Get a delegation by ID
// @Tags delegations
// @Produce  json
// @Param   id path string true "Delegation ID"
// @Success 200 {object} dto.DelegationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /delegations/{id} [get]
func (h *delegationHandler) getDelegation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	delegationID := c.Param("id")

	delegation, err := h.delegationService.GetDelegationByID(c.Request.Context(), delegationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Delegation not found", slog.String("delegation_id", delegationID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Delegation not found"})
		} else {
			logger.Error("Failed to get delegation from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve delegation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDelegationResponse(delegation))
}

// listDelegations godoc
// @Summary List delegations
// @Description Retrieves delegations matching the query filters, newest first
// @Tags delegations
// @Produce  json
// @Param   correspondence query string false "Filter by correspondence ID"
// @Param   executive_id query string false "Filter by granting executive"
// @Param   assistant_id query string false "Filter by assistant"
// @Param   status query string false "Filter by status"
// @Success 200 {array} dto.DelegationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /delegations [get]
func (h *delegationHandler) listDelegations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDelegationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listDelegations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.DelegationFilter{
		CorrespondenceID: params.CorrespondenceID,
		ExecutiveID:      params.ExecutiveID,
		AssistantID:      params.AssistantID,
		Status:           domain.DelegationStatus(params.Status),
	}
	delegations, err := h.delegationService.ListDelegations(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list delegations from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list delegations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDelegationResponse(delegations))
}

// revokeDelegation godoc
// @Summary Revoke a delegation
// @Description Transitions an active delegation to revoked
// @Tags delegations
// @Produce  json
// @Param   id path string true "Delegation ID"
// @Success 200 {object} dto.DelegationResponse
// @Failure 400 {object} ErrorResponse "Delegation is not active"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /delegations/{id}/revoke [post]
func (h *delegationHandler) revokeDelegation(c *gin.Context) {
	h.terminateDelegation(c, "revoke", h.delegationService.RevokeDelegation)
}

// completeDelegation godoc
// @Summary Complete a delegation
// @Description Transitions an active delegation to completed
// @Tags delegations
// @Produce  json
// @Param   id path string true "Delegation ID"
// @Success 200 {object} dto.DelegationResponse
// @Failure 400 {object} ErrorResponse "Delegation is not active"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /delegations/{id}/complete [post]
func (h *delegationHandler) completeDelegation(c *gin.Context) {
	h.terminateDelegation(c, "complete", h.delegationService.CompleteDelegation)
}

// terminateDelegation handles the shared revoke/complete flow.
func (h *delegationHandler) terminateDelegation(c *gin.Context, action string, terminate func(ctx context.Context, delegationID, actorUserID string) (*domain.Delegation, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	delegationID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("delegation_id", delegationID), slog.String("actor_user_id", actorUserID), slog.String("action", action))

	delegation, err := terminate(c.Request.Context(), delegationID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Delegation not found")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Delegation not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Delegation is not active", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to terminate delegation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update delegation"})
		}
		return
	}

	logger.Info("Delegation terminated successfully", slog.String("status", string(delegation.Status)))
	c.JSON(http.StatusOK, dto.ToDelegationResponse(delegation))
}
