package pgx

import (
	"testing"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestTextPtr(t *testing.T) {
	if got := TextPtr(pgtype.Text{}); got != nil {
		t.Fatalf("expected nil for NULL text, got %q", *got)
	}

	got := TextPtr(pgtype.Text{String: "Ivanova", Valid: true})
	if got == nil || *got != "Ivanova" {
		t.Fatalf("expected Ivanova, got %v", got)
	}

	empty := TextPtr(pgtype.Text{String: "", Valid: true})
	if empty == nil || *empty != "" {
		t.Fatalf("expected pointer to empty string, got %v", empty)
	}
}

func TestDatePtr(t *testing.T) {
	if got := DatePtr(pgtype.Date{}); got != nil {
		t.Fatalf("expected nil for NULL date, got %v", got)
	}
	if got := DatePtr(pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity}); got != nil {
		t.Fatalf("expected nil for infinity, got %v", got)
	}

	day := time.Date(1975, time.November, 2, 0, 0, 0, 0, time.UTC)
	got := DatePtr(pgtype.Date{Time: day, Valid: true})
	if got == nil || !got.Equal(day) {
		t.Fatalf("expected %v, got %v", day, got)
	}
}

func TestPatientRecordFromRow(t *testing.T) {
	row := db.Patient{
		ID:              12,
		GivenName:       "Anna",
		FamilyName:      pgtype.Text{String: "Petrova", Valid: true},
		Snils:           pgtype.Text{String: "112-233-445 95", Valid: true},
		Sex:             pgtype.Text{String: "F", Valid: true},
		Dob:             pgtype.Date{Time: time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		FamilyHyperchol: true,
		Smoking:         true,
	}

	rec := PatientRecordFromRow(row)
	if rec.ID != 12 || rec.GivenName != "Anna" {
		t.Fatalf("unexpected identity fields: %+v", rec)
	}
	if rec.FamilyName == nil || *rec.FamilyName != "Petrova" {
		t.Fatalf("unexpected family name: %v", rec.FamilyName)
	}
	if rec.MiddleName != nil {
		t.Fatalf("expected nil middle name, got %q", *rec.MiddleName)
	}
	if rec.DOB == nil || rec.DOB.Year() != 2001 {
		t.Fatalf("unexpected dob: %v", rec.DOB)
	}
	if !rec.FamilyHyperchol {
		t.Fatal("expected family_hyperchol to be copied")
	}
}
