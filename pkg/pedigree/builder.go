package pedigree

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"
)

// Layout is the store independent part of a pedigree: which ids belong to it, their
// generations and the deduplicated links between them.
type Layout struct {
	Proband     int64
	Component   *Component
	Generations Generations
	Links       []Link
}

// Truncated reports whether the component reached maxNodes, in which case individuals may have
// been left out.
func (l *Layout) Truncated(maxNodes int) bool {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return l.Component != nil && l.Component.Len() >= maxNodes
}

// ComputeLayout runs discovery, generation assignment and link classification on a snapshot.
// It is a pure function of its inputs.
func ComputeLayout(snap *Snapshot, proband int64, maxNodes int) *Layout {
	adj := buildAdjacency(snap)
	comp := extractComponent(proband, adj, maxNodes)

	return &Layout{
		Proband:     proband,
		Component:   comp,
		Generations: assignGenerations(proband, comp, snap),
		Links:       collectLinks(comp, snap),
	}
}

// Assemble joins the layout with the patient records resolved for its component. Component ids
// without a record are left out of the node list.
func Assemble(layout *Layout, patients []PatientRecord) *Graph {
	byID := make(map[int64]PatientRecord, len(patients))
	for _, p := range patients {
		byID[p.ID] = p
	}

	graph := EmptyGraph()
	for _, id := range layout.Component.order {
		p, ok := byID[id]
		if !ok {
			continue
		}
		graph.Nodes = append(graph.Nodes, newNode(p, layout.Generations.Of(id), id == layout.Proband))
	}
	graph.Links = append(graph.Links, layout.Links...)

	return graph
}

func newNode(p PatientRecord, generation int, isProband bool) Node {
	var dob *string
	if p.DOB != nil {
		s := p.DOB.Format(time.DateOnly)
		dob = &s
	}
	return Node{
		ID:              p.ID,
		GivenName:       p.GivenName,
		FamilyName:      p.FamilyName,
		MiddleName:      p.MiddleName,
		DOB:             dob,
		SNILS:           p.SNILS,
		Sex:             p.Sex,
		Generation:      generation,
		IsProband:       isProband,
		FamilyHyperchol: p.FamilyHyperchol,
	}
}

// Builder builds pedigrees from a Source.
type Builder struct {
	source   Source
	maxNodes int
}

// NewBuilderParams contains configuration for creating a Builder.
type NewBuilderParams struct {
	Source Source
	// MaxNodes is used when a build does not ask for a specific cap. Defaults to DefaultMaxNodes.
	MaxNodes int
}

// NewBuilder creates a Builder reading from params.Source.
func NewBuilder(params NewBuilderParams) *Builder {
	maxNodes := params.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return &Builder{
		source:   params.Source,
		maxNodes: maxNodes,
	}
}

// BuildOptions tunes a single build.
type BuildOptions struct {
	// MaxNodes overrides the builder default when positive.
	MaxNodes int
}

// Result is a built graph together with data about the build.
type Result struct {
	Graph     *Graph
	Component int
	Truncated bool
}

// Build computes the pedigree of proband. A zero proband yields an empty graph.
// Store errors are returned wrapped; nothing else fails.
func (b *Builder) Build(ctx context.Context, proband int64, opts BuildOptions) (*Result, error) {
	if proband == 0 {
		return &Result{Graph: EmptyGraph()}, nil
	}

	maxNodes := b.maxNodes
	if opts.MaxNodes > 0 {
		maxNodes = opts.MaxNodes
	}

	snap, err := LoadSnapshot(ctx, b.source)
	if err != nil {
		return nil, err
	}

	layout := ComputeLayout(snap, proband, maxNodes)

	patients, err := b.source.GetPatientsByIDs(ctx, layout.Component.IDs())
	if err != nil {
		return nil, fmt.Errorf("failed to get patients: %w", err)
	}

	graph := Assemble(layout, patients)
	truncated := layout.Truncated(maxNodes)

	logger.Debug(
		"[Pedigree] Built pedigree",
		"proband", proband,
		"component", layout.Component.Len(),
		"nodes", len(graph.Nodes),
		"links", len(graph.Links),
		"truncated", truncated,
	)

	return &Result{
		Graph:     graph,
		Component: layout.Component.Len(),
		Truncated: truncated,
	}, nil
}
