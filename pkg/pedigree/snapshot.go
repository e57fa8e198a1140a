package pedigree

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Source provides the three stores a pedigree build reads from.
type Source interface {
	ListRelations(ctx context.Context) ([]RelationEdge, error)
	ListLinks(ctx context.Context) ([]LinkEdge, error)
	GetPatientsByIDs(ctx context.Context, ids []int64) ([]PatientRecord, error)
}

// Snapshot is a point-in-time copy of the relation and link enumerations.
//
// The two reads are not isolated from each other; a concurrent write between them can produce a
// snapshot whose edges reference patients that no longer exist.
type Snapshot struct {
	Relations []RelationEdge
	Links     []LinkEdge
}

// LoadSnapshot reads all relations and links from the source.
func LoadSnapshot(ctx context.Context, src Source) (*Snapshot, error) {
	snap := &Snapshot{}

	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		relations, err := src.ListRelations(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list relations: %w", err)
		}
		snap.Relations = relations
		return nil
	})
	eg.Go(func() error {
		links, err := src.ListLinks(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list links: %w", err)
		}
		snap.Links = links
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}
