package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeletePatientHandler removes a patient. Relations and traits cascade, links stay behind.
func DeletePatientHandler(c echo.Context) error {
	type deletePatientParams struct {
		PatientID int64 `param:"id" validate:"required,gt=0"`
	}

	params := new(deletePatientParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	q := db.New(c.(*middleware.AppContext).App.DBConn)
	rows, err := q.DeletePatient(c.Request().Context(), params.PatientID)
	if err != nil {
		logger.Error("[Patients] Failed to delete patient", "patient_id", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if rows == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
	}

	logger.Info("[Patients] Deleted patient", "patient_id", params.PatientID)
	return c.NoContent(http.StatusNoContent)
}
