package server

import (
	"github.com/OFFIS-RIT/pedigree/backend/internal/auth"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo) {
	// Service routes
	e.GET("/", routes.RootHandler)
	e.GET("/health", routes.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Local accounts
	e.POST("/register", routes.RegisterHandler)
	e.POST("/token", routes.TokenHandler)

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	apiRoutes.GET("/users/me", routes.GetMeHandler)

	// Patient routes
	apiRoutes.GET("/patients", routes.GetPatientsHandler, middleware.RequireAnyPermission(auth.PermPatientView, auth.PermPatientViewAll))
	apiRoutes.POST("/patients", routes.CreatePatientHandler, middleware.RequirePermission(auth.PermPatientCreate))
	apiRoutes.GET("/patients/:id", routes.GetPatientHandler, middleware.RequireAnyPermission(auth.PermPatientView, auth.PermPatientViewAll))
	apiRoutes.PUT("/patients/:id", routes.UpdatePatientHandler, middleware.RequirePermission(auth.PermPatientUpdate))
	apiRoutes.DELETE("/patients/:id", routes.DeletePatientHandler, middleware.RequirePermission(auth.PermPatientDelete))

	// Relation and link routes
	apiRoutes.GET("/relations", routes.GetRelationsHandler)
	apiRoutes.POST("/relations", routes.CreateRelationHandler, middleware.RequirePermission(auth.PermRelationCreate))
	apiRoutes.GET("/links", routes.GetLinksHandler)
	apiRoutes.POST("/links", routes.CreateLinkHandler, middleware.RequirePermission(auth.PermLinkCreate))

	// Pedigree routes
	apiRoutes.GET("/pedigree/:id", routes.GetPedigreeHandler, middleware.RequirePermission(auth.PermPedigreeView))
	apiRoutes.POST("/pedigree/:id/exports", routes.CreateExportHandler, middleware.RequirePermission(auth.PermPedigreeExport))
	apiRoutes.GET("/exports/:export_id", routes.GetExportHandler, middleware.RequirePermission(auth.PermPedigreeExport))
	apiRoutes.GET("/exports/:export_id/download", routes.DownloadExportHandler, middleware.RequirePermission(auth.PermPedigreeExport))
}
