package handlers

import (
	"github.com/alimgiray/charityfund/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Projects  *ProjectHandler
	Donations *DonationHandler
	Reports   *ReportHandler
	Auth      *AuthHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the JSON API and makes amounts render as JSON numbers. Writes on projects and the admin
// listings require a superuser session; reading projects is public.
func RegisterRoutes(router *gin.Engine, h Handlers) {
	binding.EnableDecoderDisallowUnknownFields = true
	decimal.MarshalJSONWithoutQuotes = true

	projects := router.Group("/charity_project")
	{
		projects.GET("/", h.Projects.ListProjects)

		admin := projects.Group("")
		admin.Use(middleware.SuperuserRequired())
		admin.POST("/", h.Projects.CreateProject)
		admin.GET("/report", h.Reports.CompletionReport)
		admin.GET("/report.xlsx", h.Reports.ExportCompletionReport)
		admin.PATCH("/:id", h.Projects.UpdateProject)
		admin.DELETE("/:id", h.Projects.DeleteProject)
	}

	donations := router.Group("/donation")
	{
		donations.POST("/", h.Donations.CreateDonation)
		donations.GET("/my", middleware.AuthRequired(), h.Donations.ListMyDonations)
		donations.GET("/", middleware.SuperuserRequired(), h.Donations.ListDonations)
	}

	if h.Auth != nil {
		auth := router.Group("/auth")
		auth.GET("/github", h.Auth.GitHubLogin)
		auth.GET("/github/callback", h.Auth.GitHubCallback)
		auth.GET("/logout", h.Auth.Logout)
	}

	if h.Health != nil {
		router.GET("/health", h.Health.HealthCheck)
	}

	router.NoRoute(NewNotFoundHandler().NotFound)
}
