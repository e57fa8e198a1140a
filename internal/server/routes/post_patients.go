package routes

import (
	"context"
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func createTraits(ctx context.Context, q *db.Queries, patientID int64, traits []traitBody) error {
	for _, t := range traits {
		_, err := q.CreateTrait(ctx, db.CreateTraitParams{
			PatientID: patientID,
			Name:      t.Name,
			OnsetAge:  int4Of(t.OnsetAge),
			Details:   textOf(t.Details),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// CreatePatientHandler stores a patient with its traits. The caller becomes its creator.
func CreatePatientHandler(c echo.Context) error {
	data := new(patientBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	arg, err := data.createParams(user.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	tx, err := conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	defer tx.Rollback(ctx)
	qtx := db.New(conn).WithTx(tx)

	patient, err := qtx.CreatePatient(ctx, arg)
	if err != nil {
		if isUniqueViolation(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Patient with this SNILS already exists"})
		}
		logger.Error("[Patients] Failed to create patient", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if err := createTraits(ctx, qtx, patient.ID, data.Traits); err != nil {
		logger.Error("[Patients] Failed to create traits", "patient_id", patient.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	out, err := loadPatientOuts(ctx, qtx, []db.Patient{patient})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	logger.Info("[Patients] Created patient", "patient_id", patient.ID, "created_by", user.UserID)
	return c.JSON(http.StatusOK, out[0])
}
