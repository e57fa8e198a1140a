// Package pedigree builds family graphs around a proband.
//
// A build reads the relation (parent -> child) and link (sibling, spouse, ...) enumerations
// once, discovers the connected subgraph around the proband bounded by a node cap, assigns every
// discovered individual a generation relative to the proband and emits a node/link graph that the
// frontend lays out by generation.
package pedigree

import "time"

// DefaultMaxNodes caps the number of individuals discovered for a single pedigree.
const DefaultMaxNodes = 2000

// Output link types.
const (
	LinkVertical   = "vertical"
	LinkHorizontal = "horizontal"
	LinkSpouse     = "spouse"
)

// PatientRecord is the read-only view of a patient used to render a node.
type PatientRecord struct {
	ID              int64
	GivenName       string
	FamilyName      *string
	MiddleName      *string
	DOB             *time.Time
	SNILS           *string
	Sex             *string
	FamilyHyperchol bool
}

// RelationEdge states that ParentID is a parent of ChildID.
type RelationEdge struct {
	ParentID         int64
	ChildID          int64
	RelationshipType string
}

// LinkEdge is an undirected relationship between two patients of the same generation.
// The order of Patient1ID and Patient2ID carries no meaning.
type LinkEdge struct {
	Patient1ID int64
	Patient2ID int64
	LinkType   string
}

// Node is a single individual in a rendered pedigree.
type Node struct {
	ID              int64   `json:"id"`
	GivenName       string  `json:"given_name"`
	FamilyName      *string `json:"family_name"`
	MiddleName      *string `json:"middle_name"`
	DOB             *string `json:"dob"`
	SNILS           *string `json:"snils"`
	Sex             *string `json:"sex"`
	Generation      int     `json:"generation"`
	IsProband       bool    `json:"is_proband"`
	FamilyHyperchol bool    `json:"family_hyperchol"`
}

// Link is an edge of a rendered pedigree. Vertical links point from parent to child.
type Link struct {
	Source int64  `json:"source"`
	Target int64  `json:"target"`
	Type   string `json:"type"`
}

// Graph is the result of a pedigree build.
//
// Links only require both endpoints to be part of the discovered component, so a link may
// reference an id that has no node when the patient was removed from the store between reads.
// Consumers must tolerate such links.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// EmptyGraph returns a graph with non-nil, empty node and link lists.
func EmptyGraph() *Graph {
	return &Graph{
		Nodes: []Node{},
		Links: []Link{},
	}
}
