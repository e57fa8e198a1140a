package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// UpdatePatientHandler changes only the fields present in the body. Traits are replaced when given.
func UpdatePatientHandler(c echo.Context) error {
	type updatePatientParams struct {
		PatientID int64 `param:"id" validate:"required,gt=0"`
	}

	params := new(updatePatientParams)
	if err := (&echo.DefaultBinder{}).BindPathParams(c, params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	data := new(patientBody)
	if err := (&echo.DefaultBinder{}).BindBody(c, data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	tx, err := conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	defer tx.Rollback(ctx)
	qtx := db.New(conn).WithTx(tx)

	current, err := qtx.GetPatient(ctx, params.PatientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	arg, err := data.updateParams(current)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	patient, err := qtx.UpdatePatient(ctx, arg)
	if err != nil {
		if isUniqueViolation(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Patient with this SNILS already exists"})
		}
		logger.Error("[Patients] Failed to update patient", "patient_id", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if data.Traits != nil {
		if err := qtx.DeleteTraitsByPatient(ctx, patient.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if err := createTraits(ctx, qtx, patient.ID, data.Traits); err != nil {
			logger.Error("[Patients] Failed to replace traits", "patient_id", patient.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
	}

	out, err := loadPatientOuts(ctx, qtx, []db.Patient{patient})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, out[0])
}
