package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/models/dto"
	"github.com/ogulcan/clotrack/internal/app/reporting"
	"github.com/ogulcan/clotrack/internal/app/services"
	"github.com/ogulcan/clotrack/internal/middleware"
)

// ReportController exposes the role-scoped dashboard
type ReportController struct {
	reportService *reporting.Service
	authService   *services.AuthService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *reporting.Service, authService *services.AuthService) *ReportController {
	return &ReportController{
		reportService: reportService,
		authService:   authService,
	}
}

// GetDashboard builds the caller's scoped dashboard
// @Summary Get dashboard
// @Description Builds the role-scoped dashboard payload for the authenticated user
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=reporting.Payload} "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Report build failed"
// @Router /reports/dashboard [get]
func (c *ReportController) GetDashboard(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	// The viewer descriptor comes from the stored user record, not from
	// the token alone: program assignments and institution membership
	// may have changed since the token was issued.
	user, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	payload, err := c.reportService.BuildDashboard(ctx, viewerFromUser(user))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, payload)
}

// viewerFromUser converts a stored user record into the engine's viewer
// descriptor.
func viewerFromUser(user *models.User) reporting.Viewer {
	viewer := reporting.Viewer{
		UserID: strconv.FormatInt(user.ID, 10),
		Role:   user.RoleType,
	}
	if user.InstitutionID != nil {
		viewer.InstitutionID = strconv.FormatInt(*user.InstitutionID, 10)
	}
	for _, programID := range user.ProgramIDs {
		viewer.ProgramIDs = append(viewer.ProgramIDs, strconv.FormatInt(programID, 10))
	}
	return viewer
}
