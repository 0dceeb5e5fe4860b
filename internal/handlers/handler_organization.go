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

// organizationHandler serves the organizational hierarchy from the cached snapshot.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers routes related to the organizational hierarchy.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(organizationService)

	org := rg.Group("/organization")
	{
		org.GET("/directorates", h.listDirectorates)
		org.GET("/divisions", h.listDivisions)
		org.GET("/departments", h.listDepartments)
		org.GET("/offices", h.listOffices)
		org.GET("/offices/:id", h.getOffice)
		org.GET("/offices/:id/members", h.listOfficeMembers)
	}
}

// listDirectorates godoc
// @Summary List directorates
// @Tags organization
// @Produce  json
// @Success 200 {array} dto.DirectorateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization/directorates [get]
func (h *organizationHandler) listDirectorates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	directorates, err := h.organizationService.Directorates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list directorates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list directorates"})
		return
	}

	res := make([]dto.DirectorateResponse, len(directorates))
	for i, d := range directorates {
		res[i] = dto.ToDirectorateResponse(d)
	}
	c.JSON(http.StatusOK, res)
}

// listDivisions godoc
// @Summary List divisions
// @Tags organization
// @Produce  json
// @Success 200 {array} dto.DivisionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization/divisions [get]
func (h *organizationHandler) listDivisions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	divisions, err := h.organizationService.Divisions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list divisions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list divisions"})
		return
	}

	res := make([]dto.DivisionResponse, len(divisions))
	for i, d := range divisions {
		res[i] = dto.ToDivisionResponse(d)
	}
	c.JSON(http.StatusOK, res)
}

// listDepartments godoc
// @Summary List departments
// @Tags organization
// @Produce  json
// @Success 200 {array} dto.DepartmentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization/departments [get]
func (h *organizationHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	departments, err := h.organizationService.Departments(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list departments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list departments"})
		return
	}

	res := make([]dto.DepartmentResponse, len(departments))
	for i, d := range departments {
		res[i] = dto.ToDepartmentResponse(d)
	}
	c.JSON(http.StatusOK, res)
}

// listOffices godoc
// @Summary List routing offices
// @Tags organization
// @Produce  json
// @Success 200 {array} dto.OfficeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization/offices [get]
func (h *organizationHandler) listOffices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	offices, err := h.organizationService.Offices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list offices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list offices"})
		return
	}

	res := make([]dto.OfficeResponse, len(offices))
	for i, o := range offices {
		res[i] = dto.ToOfficeResponse(o)
	}
	c.JSON(http.StatusOK, res)
}

// getOffice godoc
// @Summary Get an office by ID
// @Tags organization
// @Produce  json
// @Param   id path string true "Office ID"
// @Success 200 {object} dto.OfficeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization/offices/{id} [get]
func (h *organizationHandler) getOffice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	officeID := c.Param("id")

	office, err := h.organizationService.GetOfficeByID(c.Request.Context(), officeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Office not found", slog.String("office_id", officeID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Office not found"})
		} else {
			logger.Error("Failed to get office from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve office"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOfficeResponse(*office))
}

// listOfficeMembers godoc
// @Summary List active office members
// @Description Retrieves the active postings for an office
// @Tags organization
// @Produce  json
// @Param   id path string true "Office ID"
// @Success 200 {array} dto.OfficeMemberResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization/offices/{id}/members [get]
func (h *organizationHandler) listOfficeMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	officeID := c.Param("id")

	members, err := h.organizationService.OfficeMembers(c.Request.Context(), officeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Office not found for member listing", slog.String("office_id", officeID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Office not found"})
		} else {
			logger.Error("Failed to list office members from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list office members"})
		}
		return
	}

	res := make([]dto.OfficeMemberResponse, len(members))
	for i, m := range members {
		res[i] = dto.ToOfficeMemberResponse(m)
	}
	c.JSON(http.StatusOK, res)
}
