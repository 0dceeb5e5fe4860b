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

// correspondenceHandler handles HTTP requests related to correspondence items
// and their routing.
type correspondenceHandler struct {
	correspondenceService portssvc.CorrespondenceSvcFacade
	routingService        portssvc.RoutingSvcFacade
}

// newCorrespondenceHandler creates a new correspondenceHandler.
func newCorrespondenceHandler(cs portssvc.CorrespondenceSvcFacade, rs portssvc.RoutingSvcFacade) *correspondenceHandler {
	return &correspondenceHandler{
		correspondenceService: cs,
		routingService:        rs,
	}
}

// registerCorrespondenceRoutes registers routes related to correspondence.
func registerCorrespondenceRoutes(rg *gin.RouterGroup, correspondenceService portssvc.CorrespondenceSvcFacade, routingService portssvc.RoutingSvcFacade) {
	h := newCorrespondenceHandler(correspondenceService, routingService)

	correspondence := rg.Group("/correspondence")
	{
		correspondence.POST("", h.createCorrespondence)
		correspondence.GET("", h.listCorrespondence)
		correspondence.GET("/:id", h.getCorrespondence)
		correspondence.PATCH("/:id", h.patchCorrespondence)
		correspondence.POST("/:id/distribution", h.addDistribution)
		correspondence.POST("/:id/reassign", h.reassign)
		correspondence.POST("/:id/reassign/preview", h.previewReassignment)
		correspondence.GET("/:id/reassignments", h.listReassignmentAudits)
	}
}

// createCorrespondence godoc
// @Summary Register a new correspondence item
// @Description Registers a new item. The reference number is generated when omitted and the current office defaults to the owning office.
// @Tags correspondence
// @Accept  json
// @Produce  json
// @Param   correspondence body dto.CreateCorrespondenceRequest true "Correspondence details"
// @Success 201 {object} dto.CorrespondenceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence [post]
func (h *correspondenceHandler) createCorrespondence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCorrespondenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCorrespondence", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create correspondence", slog.String("subject", req.Subject))

	created, err := h.correspondenceService.CreateCorrespondence(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating correspondence", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) { // e.g. owning office not found
			logger.Warn("Dependency not found creating correspondence", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate reference number", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create correspondence in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create correspondence"})
		}
		return
	}

	logger.Info("Correspondence created successfully", slog.String("correspondence_id", created.CorrespondenceID), slog.String("reference_number", created.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.ToCorrespondenceResponse(created))
}

// getCorrespondence godoc
// @Summary Get a correspondence item by ID
// @Description Retrieves a single correspondence item, served from the snapshot when possible
// @Tags correspondence
// @Produce  json
// @Param   id path string true "Correspondence ID"
// @Success 200 {object} dto.CorrespondenceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence/{id} [get]
func (h *correspondenceHandler) getCorrespondence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correspondenceID := c.Param("id")

	logger = logger.With(slog.String("correspondence_id", correspondenceID))

	item, err := h.correspondenceService.GetCorrespondenceByID(c.Request.Context(), correspondenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Correspondence not found")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Correspondence not found"})
		} else {
			logger.Error("Failed to get correspondence from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve correspondence"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCorrespondenceResponse(item))
}

// listCorrespondence godoc
// @Summary List correspondence items
// @Description Retrieves correspondence items matching the query filters, newest first
// @Tags correspondence
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   priority query string false "Filter by priority"
// @Param   source query string false "Filter by source"
// @Param   direction query string false "Filter by direction"
// @Param   division_id query string false "Filter by division"
// @Param   department_id query string false "Filter by department"
// @Param   current_office_id query string false "Filter by effective current office"
// @Success 200 {array} dto.CorrespondenceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence [get]
func (h *correspondenceHandler) listCorrespondence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCorrespondenceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listCorrespondence", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	items, err := h.correspondenceService.ListCorrespondence(c.Request.Context(), params.ToDomainFilter())
	if err != nil {
		logger.Error("Failed to list correspondence from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list correspondence"})
		return
	}

	logger.Info("Correspondence listed successfully", slog.Int("count", len(items)))
	c.JSON(http.StatusOK, dto.ToListCorrespondenceResponse(items))
}

// patchCorrespondence godoc
// @Summary Partially update a correspondence item
// @Description Applies a whitelisted partial update. Unknown fields are rejected before any state is touched.
// @Tags correspondence
// @Accept  json
// @Produce  json
// @Param   id path string true "Correspondence ID"
// @Param   patch body dto.CorrespondencePatch true "Fields to update"
// @Success 200 {object} dto.CorrespondenceResponse
// @Failure 400 {object} ErrorResponse "Validation error, unknown field, or empty patch"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence/{id} [patch]
func (h *correspondenceHandler) patchCorrespondence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correspondenceID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// The patch body is parsed from the raw payload so the field whitelist
	// can be enforced before any typed decoding.
	body, err := c.GetRawData()
	if err != nil {
		logger.Warn("Failed to read patch body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	patch, err := dto.ParseCorrespondencePatch(body)
	if err != nil {
		logger.Warn("Rejected patch body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	logger = logger.With(slog.String("correspondence_id", correspondenceID), slog.String("updater_user_id", updaterUserID))

	updated, err := h.correspondenceService.PatchCorrespondence(c.Request.Context(), correspondenceID, patch, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Correspondence not found for patch")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Correspondence not found"})
		case errors.Is(err, apperrors.ErrNoChangeRequested):
			logger.Warn("Empty patch rejected")
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidField), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error patching correspondence", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to patch correspondence in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update correspondence"})
		}
		return
	}

	logger.Info("Correspondence patched successfully")
	c.JSON(http.StatusOK, dto.ToCorrespondenceResponse(updated))
}

// addDistribution godoc
// @Summary Add a distribution entry
// @Description Appends one recipient to an item's distribution list
// @Tags correspondence
// @Accept  json
// @Produce  json
// @Param   id path string true "Correspondence ID"
// @Param   distribution body dto.AddDistributionRequest true "Distribution entry"
// @Success 201 {object} dto.CorrespondenceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence/{id}/distribution [post]
func (h *correspondenceHandler) addDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correspondenceID := c.Param("id")

	var req dto.AddDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addDistribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("correspondence_id", correspondenceID), slog.String("creator_user_id", creatorUserID))

	updated, err := h.correspondenceService.AddDistribution(c.Request.Context(), correspondenceID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Correspondence not found for distribution")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Correspondence not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error adding distribution", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to add distribution in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add distribution"})
		}
		return
	}

	logger.Info("Distribution entry added successfully")
	c.JSON(http.StatusCreated, dto.ToCorrespondenceResponse(updated))
}

// previewReassignment godoc
// @Summary Preview a routing reassignment
// @Description Validates a proposed routing change without applying it and returns the before/after routing snapshots
// @Tags correspondence
// @Accept  json
// @Produce  json
// @Param   id path string true "Correspondence ID"
// @Param   reassign body dto.ReassignRequest true "Proposed routing change"
// @Success 200 {object} dto.ReassignPreviewResponse
// @Failure 400 {object} ErrorResponse "Invalid reason, no change requested, or invalid office"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence/{id}/reassign/preview [post]
func (h *correspondenceHandler) previewReassignment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correspondenceID := c.Param("id")

	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for previewReassignment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("correspondence_id", correspondenceID))

	preview, err := h.routingService.PreviewReassignment(c.Request.Context(), correspondenceID, req.ToDomainChange())
	if err != nil {
		h.respondReassignError(c, logger, err, "preview")
		return
	}

	c.JSON(http.StatusOK, dto.ToReassignPreviewResponse(*preview))
}

// reassign godoc
// @Summary Commit a routing reassignment
// @Description Validates and applies a routing change, recording an audit entry atomically with the update
// @Tags correspondence
// @Accept  json
// @Produce  json
// @Param   id path string true "Correspondence ID"
// @Param   reassign body dto.ReassignRequest true "Routing change"
// @Success 200 {object} dto.CorrespondenceResponse
// @Failure 400 {object} ErrorResponse "Invalid reason, no change requested, or invalid office"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence/{id}/reassign [post]
func (h *correspondenceHandler) reassign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correspondenceID := c.Param("id")

	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reassign", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("correspondence_id", correspondenceID), slog.String("actor_user_id", actorUserID))
	logger.Info("Received request to reassign correspondence")

	updated, err := h.routingService.Reassign(c.Request.Context(), correspondenceID, req.ToDomainChange(), actorUserID)
	if err != nil {
		h.respondReassignError(c, logger, err, "commit")
		return
	}

	logger.Info("Correspondence reassigned successfully")
	c.JSON(http.StatusOK, dto.ToCorrespondenceResponse(updated))
}

// respondReassignError maps routing service errors to HTTP responses. Reason
// bound violations are returned as field-level errors.
func (h *correspondenceHandler) respondReassignError(c *gin.Context, logger *slog.Logger, err error, phase string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Correspondence not found for reassignment", slog.String("phase", phase))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Correspondence not found"})
	case errors.Is(err, apperrors.ErrInvalidReason):
		logger.Warn("Invalid reassignment reason", slog.String("phase", phase), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"reason": []string{err.Error()}})
	case errors.Is(err, apperrors.ErrNoChangeRequested):
		logger.Warn("Reassignment requested no change", slog.String("phase", phase))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on reassignment", slog.String("phase", phase), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		var remoteErr *apperrors.RemoteError
		if errors.As(err, &remoteErr) && len(remoteErr.Fields) > 0 {
			logger.Warn("Backing store rejected reassignment", slog.String("phase", phase), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, remoteErr.Fields)
			return
		}
		logger.Error("Reassignment failed in service", slog.String("phase", phase), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reassign correspondence"})
	}
}

// listReassignmentAudits godoc
// @Summary List reassignment audit records
// @Description Retrieves the reassignment trail for an item, oldest first
// @Tags correspondence
// @Produce  json
// @Param   id path string true "Correspondence ID"
// @Success 200 {array} dto.ReassignmentAuditResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /correspondence/{id}/reassignments [get]
func (h *correspondenceHandler) listReassignmentAudits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	correspondenceID := c.Param("id")

	logger = logger.With(slog.String("correspondence_id", correspondenceID))

	audits, err := h.routingService.ListReassignmentAudits(c.Request.Context(), correspondenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Correspondence not found for audit listing")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Correspondence not found"})
		} else {
			logger.Error("Failed to list reassignment audits from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reassignment audits"})
		}
		return
	}

	res := make([]dto.ReassignmentAuditResponse, len(audits))
	for i := range audits {
		res[i] = dto.ToReassignmentAuditResponse(audits[i])
	}
	c.JSON(http.StatusOK, res)
}
