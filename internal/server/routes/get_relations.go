package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetRelationsHandler(c echo.Context) error {
	q := db.New(c.(*middleware.AppContext).App.DBConn)
	res, err := q.ListRelations(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if res == nil {
		res = []db.Relation{}
	}
	return c.JSON(http.StatusOK, res)
}

func GetLinksHandler(c echo.Context) error {
	q := db.New(c.(*middleware.AppContext).App.DBConn)
	res, err := q.ListPatientLinks(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if res == nil {
		res = []db.PatientLink{}
	}
	return c.JSON(http.StatusOK, res)
}
