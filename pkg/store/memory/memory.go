// Package memory provides an in-memory store.Storage, loadable from YAML family fixtures.
package memory

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"

	"gopkg.in/yaml.v3"
)

// Storage keeps patients, relations and links in memory. Enumeration order is insertion order.
// Err, when set, is returned by every read.
type Storage struct {
	Patients  map[int64]pedigree.PatientRecord
	Relations []pedigree.RelationEdge
	Links     []pedigree.LinkEdge
	Err       error
}

// New creates an empty Storage.
func New() *Storage {
	return &Storage{
		Patients: make(map[int64]pedigree.PatientRecord),
	}
}

// AddPatient stores or replaces a patient.
func (s *Storage) AddPatient(p pedigree.PatientRecord) {
	s.Patients[p.ID] = p
}

// AddRelation appends a parent -> child relation.
func (s *Storage) AddRelation(parentID, childID int64, relationshipType string) {
	s.Relations = append(s.Relations, pedigree.RelationEdge{
		ParentID:         parentID,
		ChildID:          childID,
		RelationshipType: relationshipType,
	})
}

// AddLink appends an undirected link.
func (s *Storage) AddLink(patient1ID, patient2ID int64, linkType string) {
	s.Links = append(s.Links, pedigree.LinkEdge{
		Patient1ID: patient1ID,
		Patient2ID: patient2ID,
		LinkType:   linkType,
	})
}

// DeletePatient removes a patient but keeps every edge referencing it.
func (s *Storage) DeletePatient(id int64) {
	delete(s.Patients, id)
}

func (s *Storage) ListRelations(_ context.Context) ([]pedigree.RelationEdge, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]pedigree.RelationEdge(nil), s.Relations...), nil
}

func (s *Storage) ListLinks(_ context.Context) ([]pedigree.LinkEdge, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]pedigree.LinkEdge(nil), s.Links...), nil
}

func (s *Storage) GetPatientsByIDs(_ context.Context, ids []int64) ([]pedigree.PatientRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]pedigree.PatientRecord, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Patients[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Storage) PatientExists(_ context.Context, id int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.Patients[id]
	return ok, nil
}

// Fixture is the YAML layout of a family.
type Fixture struct {
	Patients  []FixturePatient  `yaml:"patients"`
	Relations []FixtureRelation `yaml:"relations,omitempty"`
	Links     []FixtureLink     `yaml:"links,omitempty"`
}

// FixturePatient is a patient entry of a Fixture. DOB uses the YYYY-MM-DD layout.
type FixturePatient struct {
	ID              int64   `yaml:"id"`
	GivenName       string  `yaml:"given_name"`
	FamilyName      *string `yaml:"family_name,omitempty"`
	MiddleName      *string `yaml:"middle_name,omitempty"`
	DOB             string  `yaml:"dob,omitempty"`
	SNILS           *string `yaml:"snils,omitempty"`
	Sex             *string `yaml:"sex,omitempty"`
	FamilyHyperchol bool    `yaml:"family_hyperchol,omitempty"`
}

// FixtureRelation is a relation entry of a Fixture.
type FixtureRelation struct {
	ParentID         int64  `yaml:"parent_id"`
	ChildID          int64  `yaml:"child_id"`
	RelationshipType string `yaml:"relationship_type,omitempty"`
}

// FixtureLink is a link entry of a Fixture.
type FixtureLink struct {
	Patient1ID int64  `yaml:"patient1_id"`
	Patient2ID int64  `yaml:"patient2_id"`
	LinkType   string `yaml:"link_type"`
}

// LoadFile reads a YAML fixture from path.
func LoadFile(path string) (*Storage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Parse builds a Storage from YAML fixture data.
func Parse(data []byte) (*Storage, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return FromFixture(fx)
}

// FromFixture builds a Storage from a decoded fixture.
func FromFixture(fx Fixture) (*Storage, error) {
	s := New()

	for _, p := range fx.Patients {
		if p.ID == 0 {
			return nil, fmt.Errorf("patient %q has no id", p.GivenName)
		}
		if _, ok := s.Patients[p.ID]; ok {
			return nil, fmt.Errorf("duplicate patient id %d", p.ID)
		}

		rec := pedigree.PatientRecord{
			ID:              p.ID,
			GivenName:       p.GivenName,
			FamilyName:      p.FamilyName,
			MiddleName:      p.MiddleName,
			SNILS:           p.SNILS,
			Sex:             p.Sex,
			FamilyHyperchol: p.FamilyHyperchol,
		}
		if p.DOB != "" {
			dob, err := time.Parse(time.DateOnly, p.DOB)
			if err != nil {
				return nil, fmt.Errorf("patient %d: invalid dob %q: %w", p.ID, p.DOB, err)
			}
			rec.DOB = &dob
		}
		s.AddPatient(rec)
	}

	for _, r := range fx.Relations {
		relType := r.RelationshipType
		if relType == "" {
			relType = "parent"
		}
		s.AddRelation(r.ParentID, r.ChildID, relType)
	}
	for _, l := range fx.Links {
		s.AddLink(l.Patient1ID, l.Patient2ID, l.LinkType)
	}

	return s, nil
}
