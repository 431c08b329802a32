package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/models/dto"
	"github.com/ogulcan/clotrack/internal/app/services"
	"github.com/ogulcan/clotrack/internal/middleware"
)

// InstitutionController handles institution-related operations
type InstitutionController struct {
	institutionService *services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService *services.InstitutionService) *InstitutionController {
	return &InstitutionController{institutionService: institutionService}
}

// CreateInstitution handles institution creation
// @Summary Create a new institution
// @Description Creates a new institution with the provided information
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstitutionRequest true "Institution information"
// @Success 201 {object} dto.APIResponse{data=models.Institution} "Institution created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Institution already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [post]
func (c *InstitutionController) CreateInstitution(ctx *gin.Context) {
	var req dto.CreateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	institution := &models.Institution{Name: req.Name, Code: req.Code}
	if err := c.institutionService.CreateInstitution(ctx, institution); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, institution)
}

// GetInstitutionByID retrieves an institution by ID
// @Summary Get institution by ID
// @Description Retrieves a specific institution by its ID
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetInstitutionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	institution, err := c.institutionService.GetInstitutionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, institution)
}

// GetAllInstitutions retrieves all institutions
// @Summary Get all institutions
// @Description Retrieves a list of all institutions
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Institution} "Institutions"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [get]
func (c *InstitutionController) GetAllInstitutions(ctx *gin.Context) {
	institutions, err := c.institutionService.GetAllInstitutions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, institutions)
}

// UpdateInstitution updates an institution
// @Summary Update institution
// @Description Updates an institution's name and code
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param request body dto.CreateInstitutionRequest true "Institution information"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Updated institution"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Institution already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [put]
func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	institution := &models.Institution{ID: id, Name: req.Name, Code: req.Code}
	if err := c.institutionService.UpdateInstitution(ctx, institution); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, institution)
}

// DeleteInstitution deletes an institution
// @Summary Delete institution
// @Description Deletes an institution without dependent data
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Institution deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Institution has associated data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [delete]
func (c *InstitutionController) DeleteInstitution(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.institutionService.DeleteInstitution(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Institution deleted"})
}
