package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// isForeignKeyViolation reports a PostgreSQL foreign_key_violation (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// CreateRelationHandler stores a parent -> child relation. Cycles are not rejected.
func CreateRelationHandler(c echo.Context) error {
	type createRelationBody struct {
		ParentID         int64  `json:"parent_id" validate:"required,gt=0"`
		ChildID          int64  `json:"child_id" validate:"required,gt=0"`
		RelationshipType string `json:"relationship_type"`
	}

	data := new(createRelationBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if data.RelationshipType == "" {
		data.RelationshipType = "parent"
	}

	q := db.New(c.(*middleware.AppContext).App.DBConn)
	rel, err := q.CreateRelation(c.Request().Context(), db.CreateRelationParams{
		ParentID:         data.ParentID,
		ChildID:          data.ChildID,
		RelationshipType: data.RelationshipType,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Parent or child patient does not exist"})
		}
		logger.Error("[Relations] Failed to create relation", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, rel)
}

// CreateLinkHandler stores an undirected sibling, spouse or other link. Endpoints are not checked
// against the patients table.
func CreateLinkHandler(c echo.Context) error {
	type createLinkBody struct {
		Patient1ID int64  `json:"patient1_id" validate:"required,gt=0"`
		Patient2ID int64  `json:"patient2_id" validate:"required,gt=0"`
		LinkType   string `json:"link_type" validate:"required"`
	}

	data := new(createLinkBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	linkType := strings.TrimSpace(data.LinkType)
	if linkType == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	q := db.New(c.(*middleware.AppContext).App.DBConn)
	link, err := q.CreatePatientLink(c.Request().Context(), db.CreatePatientLinkParams{
		Patient1ID: data.Patient1ID,
		Patient2ID: data.Patient2ID,
		LinkType:   linkType,
	})
	if err != nil {
		logger.Error("[Links] Failed to create link", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, link)
}
