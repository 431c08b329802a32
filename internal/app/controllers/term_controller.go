package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/models/dto"
	"github.com/ogulcan/clotrack/internal/app/services"
	"github.com/ogulcan/clotrack/internal/middleware"
)

// TermController handles terms and course offerings
type TermController struct {
	termService *services.TermService
}

// NewTermController creates a new TermController
func NewTermController(termService *services.TermService) *TermController {
	return &TermController{termService: termService}
}

// CreateTerm handles term creation
// @Summary Create a new term
// @Description Creates a new academic term for an institution
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTermRequest true "Term information"
// @Success 201 {object} dto.APIResponse{data=models.Term} "Term created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms [post]
func (c *TermController) CreateTerm(ctx *gin.Context) {
	var req dto.CreateTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	term := &models.Term{
		InstitutionID: req.InstitutionID,
		Name:          req.Name,
		StartsOn:      req.StartsOn,
		EndsOn:        req.EndsOn,
		IsActive:      req.IsActive,
	}
	if err := c.termService.CreateTerm(ctx, term); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, term)
}

// GetTermByID retrieves a term by ID
// @Summary Get term by ID
// @Description Retrieves a specific term by its ID
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=models.Term} "Term"
// @Failure 400 {object} dto.ErrorResponse "Invalid term ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /terms/{id} [get]
func (c *TermController) GetTermByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	term, err := c.termService.GetTermByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, term)
}

// GetTermsByInstitution retrieves an institution's terms
// @Summary List institution terms
// @Description Retrieves an institution's terms; pass active=true to get only active ones
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param active query bool false "Only active terms"
// @Success 200 {object} dto.APIResponse{data=[]models.Term} "Terms"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id}/terms [get]
func (c *TermController) GetTermsByInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	activeOnly := ctx.Query("active") == "true"

	terms, err := c.termService.GetTermsByInstitution(ctx, id, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, terms)
}

// CreateOffering schedules a course into a term
// @Summary Create a course offering
// @Description Schedules a course into a term; both must belong to the same institution
// @Tags terms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferingRequest true "Offering information"
// @Success 201 {object} dto.APIResponse{data=models.CourseOffering} "Offering created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course or term not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings [post]
func (c *TermController) CreateOffering(ctx *gin.Context) {
	var req dto.CreateOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	offering := &models.CourseOffering{CourseID: req.CourseID, TermID: req.TermID}
	if err := c.termService.CreateOffering(ctx, offering); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, offering)
}

// GetOfferingsByCourse retrieves a course's offerings
// @Summary List course offerings
// @Description Retrieves every offering of a course across terms
// @Tags terms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseOffering} "Offerings"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/offerings [get]
func (c *TermController) GetOfferingsByCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	offerings, err := c.termService.GetOfferingsByCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, offerings)
}
