package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/OFFIS-RIT/pedigree/backend/internal/auth"
	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
)

// loadPatientOuts fetches traits and relations for patients in two batched queries.
func loadPatientOuts(ctx context.Context, q *db.Queries, patients []db.Patient) ([]patientOut, error) {
	if len(patients) == 0 {
		return []patientOut{}, nil
	}

	ids := make([]int64, len(patients))
	for i, p := range patients {
		ids[i] = p.ID
	}

	traits, err := q.ListTraitsByPatients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list traits: %w", err)
	}
	relations, err := q.ListRelationsForPatients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}

	return toPatientOuts(patients, traits, relations), nil
}

func GetPatientsHandler(c echo.Context) error {
	type getPatientsParams struct {
		Skip   int64  `query:"skip" validate:"gte=0"`
		Limit  int64  `query:"limit" validate:"gte=0,lte=1000"`
		Search string `query:"search"`
	}

	params := &getPatientsParams{Limit: 100}
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	arg := db.ListPatientsParams{
		Skip:    params.Skip,
		MaxRows: params.Limit,
	}
	if params.Search != "" {
		arg.Search = pgtype.Text{String: params.Search, Valid: true}
	}
	if !middleware.HasPermission(user, auth.PermPatientViewAll) {
		arg.CreatedByID = pgtype.Int8{Int64: user.UserID, Valid: true}
	}

	patients, err := q.ListPatients(ctx, arg)
	if err != nil {
		logger.Error("[Patients] Failed to list patients", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	out, err := loadPatientOuts(ctx, q, patients)
	if err != nil {
		logger.Error("[Patients] Failed to load patient details", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, out)
}

func GetPatientHandler(c echo.Context) error {
	type getPatientParams struct {
		PatientID int64 `param:"id" validate:"required,gt=0"`
	}

	params := new(getPatientParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	q := db.New(c.(*middleware.AppContext).App.DBConn)

	patient, err := q.GetPatient(ctx, params.PatientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
		}
		logger.Error("[Patients] Failed to get patient", "id", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	out, err := loadPatientOuts(ctx, q, []db.Patient{patient})
	if err != nil {
		logger.Error("[Patients] Failed to load patient details", "id", params.PatientID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, out[0])
}
