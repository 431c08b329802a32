package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ogulcan/clotrack/internal/app/controllers"
	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	institutionController *controllers.InstitutionController,
	programController *controllers.ProgramController,
	courseController *controllers.CourseController,
	termController *controllers.TermController,
	sectionController *controllers.SectionController,
	outcomeController *controllers.OutcomeController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Prometheus scrape endpoint, outside the API version group
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	siteAdmin := string(models.RoleSiteAdmin)
	institutionAdmin := string(models.RoleInstitutionAdmin)
	programAdmin := string(models.RoleProgramAdmin)
	instructor := string(models.RoleInstructor)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.GET("/profile", authController.GetProfile)
			authProtected.PUT("/profile", authController.UpdateProfile)
			authProtected.POST("/register",
				authMiddleware.RoleRequired(siteAdmin, institutionAdmin), authController.Register)
		}

		// Every role sees its own scoped dashboard.
		reports := authenticated.Group("/reports")
		{
			reports.GET("/dashboard", reportController.GetDashboard)
		}

		institutions := authenticated.Group("/institutions")
		{
			institutions.GET("", institutionController.GetAllInstitutions)
			institutions.GET("/:id", institutionController.GetInstitutionByID)
			institutions.GET("/:id/programs", programController.GetProgramsByInstitution)
			institutions.GET("/:id/courses", courseController.GetCoursesByInstitution)
			institutions.GET("/:id/terms", termController.GetTermsByInstitution)
			institutions.GET("/:id/instructors", authController.GetInstitutionInstructors)

			institutionsAdminProtected := institutions.Group("")
			institutionsAdminProtected.Use(authMiddleware.RoleRequired(siteAdmin, institutionAdmin))
			{
				institutionsAdminProtected.GET("/:id/users", authController.GetInstitutionUsers)
			}

			institutionsSiteProtected := institutions.Group("")
			institutionsSiteProtected.Use(authMiddleware.RoleRequired(siteAdmin))
			{
				institutionsSiteProtected.POST("", institutionController.CreateInstitution)
				institutionsSiteProtected.PUT("/:id", institutionController.UpdateInstitution)
				institutionsSiteProtected.DELETE("/:id", institutionController.DeleteInstitution)
			}
		}

		programs := authenticated.Group("/programs")
		{
			programs.GET("/:id", programController.GetProgramByID)
			programs.GET("/:id/courses", courseController.GetCoursesByProgram)

			programsAdminProtected := programs.Group("")
			programsAdminProtected.Use(authMiddleware.RoleRequired(siteAdmin, institutionAdmin))
			{
				programsAdminProtected.POST("", programController.CreateProgram)
				programsAdminProtected.PUT("/:id", programController.UpdateProgram)
				programsAdminProtected.DELETE("/:id", programController.DeleteProgram)
				programsAdminProtected.POST("/:id/admins", programController.AssignAdmin)
				programsAdminProtected.DELETE("/:id/admins/:userId", programController.RemoveAdmin)
			}
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("/:id", courseController.GetCourseByID)
			courses.GET("/:id/offerings", termController.GetOfferingsByCourse)
			courses.GET("/:id/outcomes", courseController.GetCourseOutcomes)

			coursesAdminProtected := courses.Group("")
			coursesAdminProtected.Use(authMiddleware.RoleRequired(siteAdmin, institutionAdmin, programAdmin))
			{
				coursesAdminProtected.POST("", courseController.CreateCourse)
				coursesAdminProtected.PUT("/:id", courseController.UpdateCourse)
				coursesAdminProtected.PUT("/:id/programs", courseController.SetCoursePrograms)
				coursesAdminProtected.DELETE("/:id", courseController.DeleteCourse)
			}
		}

		terms := authenticated.Group("/terms")
		{
			terms.GET("/:id", termController.GetTermByID)

			termsAdminProtected := terms.Group("")
			termsAdminProtected.Use(authMiddleware.RoleRequired(siteAdmin, institutionAdmin))
			{
				termsAdminProtected.POST("", termController.CreateTerm)
			}
		}

		offerings := authenticated.Group("/offerings")
		{
			offerings.GET("/:id/sections", sectionController.GetSectionsByOffering)

			offeringsAdminProtected := offerings.Group("")
			offeringsAdminProtected.Use(authMiddleware.RoleRequired(siteAdmin, institutionAdmin))
			{
				offeringsAdminProtected.POST("", termController.CreateOffering)
			}
		}

		sections := authenticated.Group("/sections")
		{
			sections.GET("/:id", sectionController.GetSectionByID)
			sections.GET("/mine",
				authMiddleware.RoleRequired(instructor), sectionController.GetMySections)

			sectionsAdminProtected := sections.Group("")
			sectionsAdminProtected.Use(authMiddleware.RoleRequired(siteAdmin, institutionAdmin, programAdmin))
			{
				sectionsAdminProtected.POST("", sectionController.CreateSection)
				sectionsAdminProtected.PUT("/:id", sectionController.UpdateSection)
				sectionsAdminProtected.DELETE("/:id", sectionController.DeleteSection)
			}
		}

		outcomes := authenticated.Group("/outcomes")
		{
			outcomes.GET("/:id", outcomeController.GetOutcomeByID)

			// Instructors draft and submit; program admins review.
			outcomesAuthorProtected := outcomes.Group("")
			outcomesAuthorProtected.Use(authMiddleware.RoleRequired(instructor, programAdmin, institutionAdmin, siteAdmin))
			{
				outcomesAuthorProtected.POST("", outcomeController.CreateOutcome)
				outcomesAuthorProtected.PUT("/:id", outcomeController.UpdateOutcome)
				outcomesAuthorProtected.POST("/:id/submit", outcomeController.SubmitOutcome)
				outcomesAuthorProtected.DELETE("/:id", outcomeController.DeleteOutcome)
			}

			outcomesReviewProtected := outcomes.Group("")
			outcomesReviewProtected.Use(authMiddleware.RoleRequired(programAdmin, institutionAdmin, siteAdmin))
			{
				outcomesReviewProtected.POST("/:id/approve", outcomeController.ApproveOutcome)
				outcomesReviewProtected.POST("/:id/reject", outcomeController.RejectOutcome)
			}
		}
	}
}
