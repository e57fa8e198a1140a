package store

import (
	"context"

	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"
)

// Storage is the read side of the patient, relation and link stores. It feeds pedigree builds
// and lets callers check that a proband exists before building.
type Storage interface {
	pedigree.Source

	PatientExists(ctx context.Context, id int64) (bool, error)
}
