package routes

import (
	"encoding/json"
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/queue"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateExportHandler queues an asynchronous pedigree export and answers 202 with its id.
func CreateExportHandler(c echo.Context) error {
	type createExportParams struct {
		PatientID int64 `param:"id" validate:"required,gt=0"`
		MaxNodes  int32 `query:"max_nodes" validate:"gte=0"`
	}

	type createExportResponse struct {
		ExportID string `json:"export_id"`
		Status   string `json:"status"`
	}

	params := new(createExportParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	// Bind reads the query string on GET and DELETE only.
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	exists, err := app.Store.PatientExists(ctx, params.PatientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
	}

	maxNodes := params.MaxNodes
	if maxNodes <= 0 {
		maxNodes = pedigree.DefaultMaxNodes
	}

	exportID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	q := db.New(app.DBConn)
	job, err := q.CreatePedigreeExport(ctx, db.CreatePedigreeExportParams{
		ID:          exportID,
		ProbandID:   params.PatientID,
		MaxNodes:    maxNodes,
		RequestedBy: pgtype.Int8{Int64: user.UserID, Valid: true},
	})
	if err != nil {
		logger.Error("[Export] Failed to create export", "proband", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	msg, err := json.Marshal(queue.QueueExportMsg{
		Message:  "Export requested",
		ExportID: job.ID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if err := queue.PublishFIFO(app.Queue, queue.ExportQueue, msg); err != nil {
		logger.Error("[Export] Failed to enqueue export", "export_id", job.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	logger.Info("[Export] Queued pedigree export", "export_id", job.ID, "proband", job.ProbandID)
	return c.JSON(http.StatusAccepted, createExportResponse{
		ExportID: job.ID,
		Status:   job.Status,
	})
}
