package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PedigreeDBStorage implements store.Storage on top of the PostgreSQL tables managed by the
// patient, relation and link endpoints.
type PedigreeDBStorage struct {
	q *db.Queries
}

// NewPedigreeDBStorage creates a storage using an existing connection, pool or transaction.
func NewPedigreeDBStorage(conn db.DBTX) *PedigreeDBStorage {
	return &PedigreeDBStorage{q: db.New(conn)}
}

// ListRelations returns every parent -> child relation ordered by id.
func (s *PedigreeDBStorage) ListRelations(ctx context.Context) ([]pedigree.RelationEdge, error) {
	rows, err := s.q.ListRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query relations: %w", err)
	}

	edges := make([]pedigree.RelationEdge, 0, len(rows))
	for _, r := range rows {
		edges = append(edges, pedigree.RelationEdge{
			ParentID:         r.ParentID,
			ChildID:          r.ChildID,
			RelationshipType: r.RelationshipType,
		})
	}
	return edges, nil
}

// ListLinks returns every sibling, spouse or other link ordered by id.
func (s *PedigreeDBStorage) ListLinks(ctx context.Context) ([]pedigree.LinkEdge, error) {
	rows, err := s.q.ListPatientLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient links: %w", err)
	}

	edges := make([]pedigree.LinkEdge, 0, len(rows))
	for _, l := range rows {
		edges = append(edges, pedigree.LinkEdge{
			Patient1ID: l.Patient1ID,
			Patient2ID: l.Patient2ID,
			LinkType:   l.LinkType,
		})
	}
	return edges, nil
}

// GetPatientsByIDs loads all requested patients in a single query. Unknown ids are skipped.
func (s *PedigreeDBStorage) GetPatientsByIDs(ctx context.Context, ids []int64) ([]pedigree.PatientRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.q.GetPatientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}

	records := make([]pedigree.PatientRecord, 0, len(rows))
	for _, p := range rows {
		records = append(records, PatientRecordFromRow(p))
	}
	return records, nil
}

// PatientExists reports whether a patient with the given id is stored.
func (s *PedigreeDBStorage) PatientExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.q.GetPatient(ctx, id)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query patient: %w", err)
	}
	return true, nil
}

// PatientRecordFromRow converts a patients row into the view used by pedigree builds.
func PatientRecordFromRow(p db.Patient) pedigree.PatientRecord {
	return pedigree.PatientRecord{
		ID:              p.ID,
		GivenName:       p.GivenName,
		FamilyName:      TextPtr(p.FamilyName),
		MiddleName:      TextPtr(p.MiddleName),
		DOB:             DatePtr(p.Dob),
		SNILS:           TextPtr(p.Snils),
		Sex:             TextPtr(p.Sex),
		FamilyHyperchol: p.FamilyHyperchol,
	}
}

// TextPtr returns nil for SQL NULL.
func TextPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// DatePtr returns nil for SQL NULL and infinity dates.
func DatePtr(d pgtype.Date) *time.Time {
	if !d.Valid || d.InfinityModifier != pgtype.Finite {
		return nil
	}
	t := d.Time
	return &t
}
