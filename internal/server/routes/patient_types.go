package routes

import (
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	pgstore "github.com/OFFIS-RIT/pedigree/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type traitBody struct {
	Name     string  `json:"name" validate:"required"`
	OnsetAge *int32  `json:"onset_age"`
	Details  *string `json:"details"`
}

// patientBody is shared by create and update. Absent or null fields leave a stored value unchanged
// on update. A non-nil Traits replaces all traits of the patient.
type patientBody struct {
	GivenName         *string     `json:"given_name"`
	FamilyName        *string     `json:"family_name"`
	MiddleName        *string     `json:"middle_name"`
	Dob               *string     `json:"dob"`
	BaselineVisitDate *string     `json:"baseline_visit_date"`
	Snils             *string     `json:"snils"`
	FamilyHyperchol   *bool       `json:"family_hyperchol"`
	Mutations         *string     `json:"mutations"`
	Smoking           *bool       `json:"smoking"`
	Hypertension      *bool       `json:"hypertension"`
	Diabetes          *bool       `json:"diabetes"`
	Weight            *float64    `json:"weight" validate:"omitempty,gte=0"`
	Height            *float64    `json:"height" validate:"omitempty,gte=0"`
	Sex               *string     `json:"sex"`
	Notes             *string     `json:"notes"`
	Traits            []traitBody `json:"traits" validate:"dive"`
}

type traitOut struct {
	ID        int64   `json:"id"`
	PatientID int64   `json:"patient_id"`
	Name      string  `json:"name"`
	OnsetAge  *int32  `json:"onset_age"`
	Details   *string `json:"details"`
}

type relationAsParentOut struct {
	ChildID          int64  `json:"child_id"`
	RelationshipType string `json:"relationship_type"`
}

type relationAsChildOut struct {
	ParentID         int64  `json:"parent_id"`
	RelationshipType string `json:"relationship_type"`
}

type patientOut struct {
	ID                int64                 `json:"id"`
	GivenName         string                `json:"given_name"`
	FamilyName        *string               `json:"family_name"`
	MiddleName        *string               `json:"middle_name"`
	Dob               *string               `json:"dob"`
	BaselineVisitDate *string               `json:"baseline_visit_date"`
	Snils             *string               `json:"snils"`
	FamilyHyperchol   bool                  `json:"family_hyperchol"`
	Mutations         *string               `json:"mutations"`
	Smoking           bool                  `json:"smoking"`
	Hypertension      bool                  `json:"hypertension"`
	Diabetes          bool                  `json:"diabetes"`
	Weight            *float64              `json:"weight"`
	Height            *float64              `json:"height"`
	Sex               *string               `json:"sex"`
	Notes             *string               `json:"notes"`
	CreatedByID       *int64                `json:"created_by_id"`
	Traits            []traitOut            `json:"traits"`
	RelationsAsParent []relationAsParentOut `json:"relations_as_parent"`
	RelationsAsChild  []relationAsChildOut  `json:"relations_as_child"`
}

func textOf(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func floatOf(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}

func int4Of(i *int32) pgtype.Int4 {
	if i == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *i, Valid: true}
}

func dateOf(s *string) (pgtype.Date, error) {
	if s == nil || *s == "" {
		return pgtype.Date{}, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("invalid date %q", *s)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

func dateString(d pgtype.Date) *string {
	t := pgstore.DatePtr(d)
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func floatPtr(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func int4Ptr(i pgtype.Int4) *int32 {
	if !i.Valid {
		return nil
	}
	v := i.Int32
	return &v
}

func int8Ptr(i pgtype.Int8) *int64 {
	if !i.Valid {
		return nil
	}
	v := i.Int64
	return &v
}

// createParams converts a create body. given_name is required here but not on update.
func (b *patientBody) createParams(createdBy int64) (db.CreatePatientParams, error) {
	if b.GivenName == nil || *b.GivenName == "" {
		return db.CreatePatientParams{}, errors.New("given_name is required")
	}
	dob, err := dateOf(b.Dob)
	if err != nil {
		return db.CreatePatientParams{}, err
	}
	baseline, err := dateOf(b.BaselineVisitDate)
	if err != nil {
		return db.CreatePatientParams{}, err
	}

	return db.CreatePatientParams{
		GivenName:         *b.GivenName,
		FamilyName:        textOf(b.FamilyName),
		MiddleName:        textOf(b.MiddleName),
		Dob:               dob,
		BaselineVisitDate: baseline,
		Snils:             textOf(b.Snils),
		FamilyHyperchol:   boolOr(b.FamilyHyperchol, false),
		Mutations:         textOf(b.Mutations),
		Smoking:           boolOr(b.Smoking, false),
		Hypertension:      boolOr(b.Hypertension, false),
		Diabetes:          boolOr(b.Diabetes, false),
		Weight:            floatOf(b.Weight),
		Height:            floatOf(b.Height),
		Sex:               textOf(b.Sex),
		Notes:             textOf(b.Notes),
		CreatedByID:       pgtype.Int8{Int64: createdBy, Valid: createdBy != 0},
	}, nil
}

// updateParams merges the provided fields of b into the stored row.
func (b *patientBody) updateParams(cur db.Patient) (db.UpdatePatientParams, error) {
	p := db.UpdatePatientParams{
		ID:                cur.ID,
		GivenName:         cur.GivenName,
		FamilyName:        cur.FamilyName,
		MiddleName:        cur.MiddleName,
		Dob:               cur.Dob,
		BaselineVisitDate: cur.BaselineVisitDate,
		Snils:             cur.Snils,
		FamilyHyperchol:   boolOr(b.FamilyHyperchol, cur.FamilyHyperchol),
		Mutations:         cur.Mutations,
		Smoking:           boolOr(b.Smoking, cur.Smoking),
		Hypertension:      boolOr(b.Hypertension, cur.Hypertension),
		Diabetes:          boolOr(b.Diabetes, cur.Diabetes),
		Weight:            cur.Weight,
		Height:            cur.Height,
		Sex:               cur.Sex,
		Notes:             cur.Notes,
	}

	if b.GivenName != nil {
		if *b.GivenName == "" {
			return p, errors.New("given_name must not be empty")
		}
		p.GivenName = *b.GivenName
	}
	if b.FamilyName != nil {
		p.FamilyName = textOf(b.FamilyName)
	}
	if b.MiddleName != nil {
		p.MiddleName = textOf(b.MiddleName)
	}
	if b.Dob != nil {
		dob, err := dateOf(b.Dob)
		if err != nil {
			return p, err
		}
		p.Dob = dob
	}
	if b.BaselineVisitDate != nil {
		baseline, err := dateOf(b.BaselineVisitDate)
		if err != nil {
			return p, err
		}
		p.BaselineVisitDate = baseline
	}
	if b.Snils != nil {
		p.Snils = textOf(b.Snils)
	}
	if b.Mutations != nil {
		p.Mutations = textOf(b.Mutations)
	}
	if b.Weight != nil {
		p.Weight = floatOf(b.Weight)
	}
	if b.Height != nil {
		p.Height = floatOf(b.Height)
	}
	if b.Sex != nil {
		p.Sex = textOf(b.Sex)
	}
	if b.Notes != nil {
		p.Notes = textOf(b.Notes)
	}

	return p, nil
}

// toPatientOuts attaches traits and relations to each patient, preserving the order of patients.
func toPatientOuts(patients []db.Patient, traits []db.Trait, relations []db.Relation) []patientOut {
	out := make([]patientOut, 0, len(patients))
	index := make(map[int64]int, len(patients))

	for _, p := range patients {
		index[p.ID] = len(out)
		out = append(out, patientOut{
			ID:                p.ID,
			GivenName:         p.GivenName,
			FamilyName:        pgstore.TextPtr(p.FamilyName),
			MiddleName:        pgstore.TextPtr(p.MiddleName),
			Dob:               dateString(p.Dob),
			BaselineVisitDate: dateString(p.BaselineVisitDate),
			Snils:             pgstore.TextPtr(p.Snils),
			FamilyHyperchol:   p.FamilyHyperchol,
			Mutations:         pgstore.TextPtr(p.Mutations),
			Smoking:           p.Smoking,
			Hypertension:      p.Hypertension,
			Diabetes:          p.Diabetes,
			Weight:            floatPtr(p.Weight),
			Height:            floatPtr(p.Height),
			Sex:               pgstore.TextPtr(p.Sex),
			Notes:             pgstore.TextPtr(p.Notes),
			CreatedByID:       int8Ptr(p.CreatedByID),
			Traits:            []traitOut{},
			RelationsAsParent: []relationAsParentOut{},
			RelationsAsChild:  []relationAsChildOut{},
		})
	}

	for _, t := range traits {
		i, ok := index[t.PatientID]
		if !ok {
			continue
		}
		out[i].Traits = append(out[i].Traits, traitOut{
			ID:        t.ID,
			PatientID: t.PatientID,
			Name:      t.Name,
			OnsetAge:  int4Ptr(t.OnsetAge),
			Details:   pgstore.TextPtr(t.Details),
		})
	}

	for _, r := range relations {
		if i, ok := index[r.ParentID]; ok {
			out[i].RelationsAsParent = append(out[i].RelationsAsParent, relationAsParentOut{
				ChildID:          r.ChildID,
				RelationshipType: r.RelationshipType,
			})
		}
		if i, ok := index[r.ChildID]; ok {
			out[i].RelationsAsChild = append(out[i].RelationsAsChild, relationAsChildOut{
				ParentID:         r.ParentID,
				RelationshipType: r.RelationshipType,
			})
		}
	}

	return out
}

// isUniqueViolation reports a PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
