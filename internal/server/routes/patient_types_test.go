package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateParams(t *testing.T) {
	var body patientBody
	require.NoError(t, json.Unmarshal([]byte(`{
		"given_name": "Ivan",
		"family_name": "Petrov",
		"dob": "1980-02-29",
		"smoking": true,
		"weight": 82.5
	}`), &body))

	p, err := body.createParams(3)
	require.NoError(t, err)
	assert.Equal(t, "Ivan", p.GivenName)
	assert.Equal(t, pgtype.Text{String: "Petrov", Valid: true}, p.FamilyName)
	assert.False(t, p.MiddleName.Valid)
	assert.Equal(t, time.Date(1980, time.February, 29, 0, 0, 0, 0, time.UTC), p.Dob.Time)
	assert.True(t, p.Smoking)
	assert.False(t, p.Diabetes)
	assert.Equal(t, 82.5, p.Weight.Float64)
	assert.Equal(t, pgtype.Int8{Int64: 3, Valid: true}, p.CreatedByID)

	noCreator, err := body.createParams(0)
	require.NoError(t, err)
	assert.False(t, noCreator.CreatedByID.Valid)
}

func TestCreateParams_Errors(t *testing.T) {
	tests := []struct {
		name string
		body patientBody
	}{
		{name: "missing given name", body: patientBody{}},
		{name: "empty given name", body: patientBody{GivenName: strPtr("")}},
		{name: "bad dob", body: patientBody{GivenName: strPtr("A"), Dob: strPtr("29.02.1980")}},
		{name: "bad baseline", body: patientBody{GivenName: strPtr("A"), BaselineVisitDate: strPtr("2020-13-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.body.createParams(1)
			assert.Error(t, err)
		})
	}
}

func TestUpdateParams_KeepsAbsentFields(t *testing.T) {
	cur := db.Patient{
		ID:         9,
		GivenName:  "Olga",
		FamilyName: pgtype.Text{String: "Sidorova", Valid: true},
		Notes:      pgtype.Text{String: "first visit", Valid: true},
		Diabetes:   true,
	}

	var body patientBody
	require.NoError(t, json.Unmarshal([]byte(`{"family_name": "Ivanova", "notes": null, "smoking": true}`), &body))

	p, err := body.updateParams(cur)
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
	assert.Equal(t, "Olga", p.GivenName)
	assert.Equal(t, "Ivanova", p.FamilyName.String)
	assert.Equal(t, cur.Notes, p.Notes)
	assert.True(t, p.Smoking)
	assert.True(t, p.Diabetes)

	_, err = (&patientBody{GivenName: strPtr("")}).updateParams(cur)
	assert.Error(t, err)
}

func TestToPatientOuts(t *testing.T) {
	patients := []db.Patient{
		{ID: 2, GivenName: "Child", Dob: pgtype.Date{Time: time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC), Valid: true}},
		{ID: 1, GivenName: "Parent"},
	}
	traits := []db.Trait{
		{ID: 10, PatientID: 1, Name: "FH", OnsetAge: pgtype.Int4{Int32: 40, Valid: true}},
		{ID: 11, PatientID: 77, Name: "ignored"},
	}
	relations := []db.Relation{
		{ID: 1, ParentID: 1, ChildID: 2, RelationshipType: "parent"},
	}

	out := toPatientOuts(patients, traits, relations)
	require.Len(t, out, 2)

	assert.Equal(t, int64(2), out[0].ID)
	require.NotNil(t, out[0].Dob)
	assert.Equal(t, "2010-05-01", *out[0].Dob)
	assert.Empty(t, out[0].Traits)
	assert.Equal(t, []relationAsChildOut{{ParentID: 1, RelationshipType: "parent"}}, out[0].RelationsAsChild)
	assert.Empty(t, out[0].RelationsAsParent)

	assert.Nil(t, out[1].Dob)
	require.Len(t, out[1].Traits, 1)
	assert.Equal(t, int32(40), *out[1].Traits[0].OnsetAge)
	assert.Equal(t, []relationAsParentOut{{ChildID: 2, RelationshipType: "parent"}}, out[1].RelationsAsParent)

	data, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"traits":[]`)
}

func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	foreign := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(foreign))
	assert.True(t, isForeignKeyViolation(foreign))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}
