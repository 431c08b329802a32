package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/models/dto"
	"github.com/ogulcan/clotrack/internal/app/services"
	"github.com/ogulcan/clotrack/internal/middleware"
)

// OutcomeController handles the learning outcome workflow
type OutcomeController struct {
	outcomeService *services.OutcomeService
}

// NewOutcomeController creates a new OutcomeController
func NewOutcomeController(outcomeService *services.OutcomeService) *OutcomeController {
	return &OutcomeController{outcomeService: outcomeService}
}

// CreateOutcome handles outcome creation
// @Summary Create a learning outcome
// @Description Creates a learning outcome in DRAFT status for a course
// @Tags outcomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOutcomeRequest true "Outcome information"
// @Success 201 {object} dto.APIResponse{data=models.CourseOutcome} "Outcome created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes [post]
func (c *OutcomeController) CreateOutcome(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateOutcomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	outcome := &models.CourseOutcome{
		CourseID:    req.CourseID,
		Code:        req.Code,
		Description: req.Description,
		CreatedBy:   userID,
	}
	if err := c.outcomeService.CreateOutcome(ctx, outcome); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, outcome)
}

// GetOutcomeByID retrieves an outcome by ID
// @Summary Get outcome by ID
// @Description Retrieves a specific learning outcome by its ID
// @Tags outcomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Outcome ID"
// @Success 200 {object} dto.APIResponse{data=models.CourseOutcome} "Outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid outcome ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Outcome not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes/{id} [get]
func (c *OutcomeController) GetOutcomeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	outcome, err := c.outcomeService.GetOutcomeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, outcome)
}

// UpdateOutcome edits an outcome's code and description
// @Summary Update outcome
// @Description Edits a draft or rejected outcome; a rejected outcome returns to DRAFT
// @Tags outcomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Outcome ID"
// @Param request body dto.UpdateOutcomeRequest true "Outcome information"
// @Success 200 {object} dto.APIResponse{data=models.CourseOutcome} "Updated outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Outcome not found"
// @Failure 409 {object} dto.ErrorResponse "Outcome is not editable in its current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes/{id} [put]
func (c *OutcomeController) UpdateOutcome(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOutcomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	outcome := &models.CourseOutcome{ID: id, Code: req.Code, Description: req.Description}
	if err := c.outcomeService.UpdateOutcome(ctx, outcome); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.outcomeService.GetOutcomeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, updated)
}

// SubmitOutcome moves a draft outcome into review
// @Summary Submit outcome
// @Description Moves a draft outcome into the SUBMITTED review state
// @Tags outcomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Outcome ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Outcome submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid outcome ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Outcome not found"
// @Failure 409 {object} dto.ErrorResponse "Outcome is not in DRAFT status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes/{id}/submit [post]
func (c *OutcomeController) SubmitOutcome(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outcomeService.SubmitOutcome(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Outcome submitted"})
}

// ApproveOutcome approves a submitted outcome
// @Summary Approve outcome
// @Description Approves a submitted outcome with an optional review note
// @Tags outcomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Outcome ID"
// @Param request body dto.ReviewOutcomeRequest false "Review note"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Outcome approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Outcome not found"
// @Failure 409 {object} dto.ErrorResponse "Outcome is not in SUBMITTED status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes/{id}/approve [post]
func (c *OutcomeController) ApproveOutcome(ctx *gin.Context) {
	c.review(ctx, c.outcomeService.ApproveOutcome, "Outcome approved")
}

// RejectOutcome rejects a submitted outcome
// @Summary Reject outcome
// @Description Rejects a submitted outcome with an optional review note
// @Tags outcomes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Outcome ID"
// @Param request body dto.ReviewOutcomeRequest false "Review note"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Outcome rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Outcome not found"
// @Failure 409 {object} dto.ErrorResponse "Outcome is not in SUBMITTED status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes/{id}/reject [post]
func (c *OutcomeController) RejectOutcome(ctx *gin.Context) {
	c.review(ctx, c.outcomeService.RejectOutcome, "Outcome rejected")
}

func (c *OutcomeController) review(
	ctx *gin.Context,
	apply func(ctx context.Context, id, reviewerID int64, note *string) error,
	message string,
) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	reviewerID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.ReviewOutcomeRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondBindError(ctx, err)
			return
		}
	}

	if err := apply(ctx, id, reviewerID, req.Note); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: message})
}

// DeleteOutcome removes a draft or rejected outcome
// @Summary Delete outcome
// @Description Deletes a draft or rejected outcome
// @Tags outcomes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Outcome ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Outcome deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid outcome ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Outcome not found"
// @Failure 409 {object} dto.ErrorResponse "Outcome is not deletable in its current status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /outcomes/{id} [delete]
func (c *OutcomeController) DeleteOutcome(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.outcomeService.DeleteOutcome(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Outcome deleted"})
}
