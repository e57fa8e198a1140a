package routes

import (
	"net/http"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

const serviceName = "pedigree-backend"

// Version is overridden at link time.
var Version = "dev"

func RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": serviceName,
		"version": Version,
		"docs":    "/api",
	})
}

// HealthHandler reports service and database state. It always answers 200 so that a database
// outage is visible in the body rather than as a failed probe.
func HealthHandler(c echo.Context) error {
	type healthResponse struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		Database  string `json:"database"`
		Timestamp string `json:"timestamp"`
	}

	database := "connected"
	app := c.(*middleware.AppContext).App
	if app.DBConn == nil {
		database = "error: no connection"
	} else if _, err := db.New(app.DBConn).Ping(c.Request().Context()); err != nil {
		database = "error: " + err.Error()
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Database:  database,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
