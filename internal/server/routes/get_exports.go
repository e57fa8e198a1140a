package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/queue"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/internal/storage"
	pgstore "github.com/OFFIS-RIT/pedigree/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

type exportOut struct {
	ID        string  `json:"id"`
	ProbandID int64   `json:"proband_id"`
	MaxNodes  int32   `json:"max_nodes"`
	Status    string  `json:"status"`
	ObjectKey *string `json:"object_key"`
	Error     *string `json:"error"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// loadExport returns the export if the caller may see it. Exports requested by other users are
// reported as missing to everyone but admins.
func loadExport(c echo.Context) (db.PedigreeExport, int, error) {
	type exportParams struct {
		ExportID string `param:"export_id" validate:"required"`
	}

	params := new(exportParams)
	if err := c.Bind(params); err != nil {
		return db.PedigreeExport{}, http.StatusBadRequest, err
	}
	if err := c.Validate(params); err != nil {
		return db.PedigreeExport{}, http.StatusBadRequest, err
	}

	user := c.(*middleware.AppContext).User
	q := db.New(c.(*middleware.AppContext).App.DBConn)
	job, err := q.GetPedigreeExport(c.Request().Context(), params.ExportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job, http.StatusNotFound, err
		}
		return job, http.StatusInternalServerError, err
	}

	if !middleware.IsAdmin(user) && (!job.RequestedBy.Valid || job.RequestedBy.Int64 != user.UserID) {
		return job, http.StatusNotFound, pgx.ErrNoRows
	}
	return job, http.StatusOK, nil
}

func exportError(c echo.Context, status int) error {
	switch status {
	case http.StatusBadRequest:
		return c.JSON(status, map[string]string{"error": "Invalid request params"})
	case http.StatusNotFound:
		return c.JSON(status, map[string]string{"error": "Export not found"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func GetExportHandler(c echo.Context) error {
	job, status, err := loadExport(c)
	if err != nil {
		return exportError(c, status)
	}

	return c.JSON(http.StatusOK, exportOut{
		ID:        job.ID,
		ProbandID: job.ProbandID,
		MaxNodes:  job.MaxNodes,
		Status:    job.Status,
		ObjectKey: pgstore.TextPtr(job.ObjectKey),
		Error:     pgstore.TextPtr(job.Error),
		CreatedAt: job.CreatedAt.Time.UTC().Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Time.UTC().Format(time.RFC3339),
	})
}

// DownloadExportHandler streams the stored pedigree JSON of a completed export.
func DownloadExportHandler(c echo.Context) error {
	job, status, err := loadExport(c)
	if err != nil {
		return exportError(c, status)
	}
	if job.Status != queue.ExportCompleted || !job.ObjectKey.Valid {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Export is " + job.Status})
	}

	objects := c.(*middleware.AppContext).App.Objects
	data, err := objects.Get(c.Request().Context(), job.ObjectKey.String)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Export file not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="pedigree-`+job.ID+`.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}
