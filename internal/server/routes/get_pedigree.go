package routes

import (
	"net/http"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/metrics"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"

	"github.com/labstack/echo/v4"
)

// GetPedigreeHandler builds the pedigree graph around a proband.
func GetPedigreeHandler(c echo.Context) error {
	type getPedigreeParams struct {
		PatientID int64 `param:"id" validate:"required,gt=0"`
		MaxNodes  int   `query:"max_nodes" validate:"gte=0"`
	}

	params := new(getPedigreeParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	exists, err := app.Store.PatientExists(ctx, params.PatientID)
	if err != nil {
		logger.Error("[Pedigree] Failed to check proband", "proband", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
	}

	start := time.Now()
	res, err := app.Builder.Build(ctx, params.PatientID, pedigree.BuildOptions{MaxNodes: params.MaxNodes})
	if err != nil {
		metrics.ObserveBuildError("api")
		logger.Error("[Pedigree] Failed to build pedigree", "proband", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	metrics.ObserveBuild("api", time.Since(start), len(res.Graph.Nodes), len(res.Graph.Links), res.Truncated)

	if res.Truncated {
		c.Response().Header().Set("X-Pedigree-Truncated", "true")
	}
	return c.JSON(http.StatusOK, res.Graph)
}
