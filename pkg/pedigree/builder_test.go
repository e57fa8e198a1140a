package pedigree

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	patients  map[int64]PatientRecord
	relations []RelationEdge
	links     []LinkEdge

	relationsErr error
	patientsErr  error
	lookups      [][]int64
}

func (f *fakeSource) ListRelations(_ context.Context) ([]RelationEdge, error) {
	return f.relations, f.relationsErr
}

func (f *fakeSource) ListLinks(_ context.Context) ([]LinkEdge, error) {
	return f.links, nil
}

func (f *fakeSource) GetPatientsByIDs(_ context.Context, ids []int64) ([]PatientRecord, error) {
	f.lookups = append(f.lookups, ids)
	if f.patientsErr != nil {
		return nil, f.patientsErr
	}
	var out []PatientRecord
	for _, id := range ids {
		if p, ok := f.patients[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func patientsFor(ids ...int64) map[int64]PatientRecord {
	m := make(map[int64]PatientRecord, len(ids))
	for _, id := range ids {
		m[id] = PatientRecord{ID: id, GivenName: "P"}
	}
	return m
}

func generationsOf(g *Graph) map[int64]int {
	out := make(map[int64]int, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Generation
	}
	return out
}

func build(t *testing.T, src *fakeSource, proband int64, maxNodes int) *Result {
	t.Helper()
	b := NewBuilder(NewBuilderParams{Source: src})
	res, err := b.Build(context.Background(), proband, BuildOptions{MaxNodes: maxNodes})
	require.NoError(t, err)
	require.NotNil(t, res.Graph)
	return res
}

func TestBuild(t *testing.T) {
	t.Run("zero proband returns empty graph without reading stores", func(t *testing.T) {
		src := &fakeSource{relationsErr: errors.New("must not be called")}
		res := build(t, src, 0, 0)

		assert.NotNil(t, res.Graph.Nodes)
		assert.NotNil(t, res.Graph.Links)
		assert.Empty(t, res.Graph.Nodes)
		assert.Empty(t, res.Graph.Links)
		assert.Empty(t, src.lookups)
	})

	t.Run("isolated proband yields a single node", func(t *testing.T) {
		src := &fakeSource{
			patients:  patientsFor(7, 8, 9),
			relations: []RelationEdge{{ParentID: 8, ChildID: 9}},
		}
		res := build(t, src, 7, 0)

		require.Len(t, res.Graph.Nodes, 1)
		assert.Equal(t, int64(7), res.Graph.Nodes[0].ID)
		assert.Equal(t, 0, res.Graph.Nodes[0].Generation)
		assert.True(t, res.Graph.Nodes[0].IsProband)
		assert.Empty(t, res.Graph.Links)
	})

	t.Run("scenario A: parent of proband", func(t *testing.T) {
		src := &fakeSource{
			patients:  patientsFor(1, 2),
			relations: []RelationEdge{{ParentID: 1, ChildID: 2, RelationshipType: "parent"}},
		}
		res := build(t, src, 2, 0)

		assert.Equal(t, map[int64]int{1: -1, 2: 0}, generationsOf(res.Graph))
		assert.Equal(t, []Link{{Source: 1, Target: 2, Type: LinkVertical}}, res.Graph.Links)
		for _, n := range res.Graph.Nodes {
			assert.Equal(t, n.ID == 2, n.IsProband)
		}
	})

	t.Run("scenario B: siblings with a shared parent", func(t *testing.T) {
		src := &fakeSource{
			patients: patientsFor(1, 2, 3),
			relations: []RelationEdge{
				{ParentID: 1, ChildID: 2},
				{ParentID: 1, ChildID: 3},
			},
			links: []LinkEdge{{Patient1ID: 2, Patient2ID: 3, LinkType: "sibling"}},
		}
		res := build(t, src, 2, 0)

		assert.Equal(t, map[int64]int{1: -1, 2: 0, 3: 0}, generationsOf(res.Graph))
		assert.Equal(t, []Link{
			{Source: 1, Target: 2, Type: LinkVertical},
			{Source: 1, Target: 3, Type: LinkVertical},
			{Source: 2, Target: 3, Type: LinkHorizontal},
		}, res.Graph.Links)
	})

	t.Run("scenario C: spouses", func(t *testing.T) {
		src := &fakeSource{
			patients: patientsFor(4, 5),
			links:    []LinkEdge{{Patient1ID: 4, Patient2ID: 5, LinkType: "spouse"}},
		}
		res := build(t, src, 4, 0)

		assert.Equal(t, map[int64]int{4: 0, 5: 0}, generationsOf(res.Graph))
		assert.Equal(t, []Link{{Source: 4, Target: 5, Type: LinkSpouse}}, res.Graph.Links)
	})

	t.Run("scenario D: long chain is truncated at max nodes", func(t *testing.T) {
		const total = 2001
		ids := make([]int64, 0, total)
		relations := make([]RelationEdge, 0, total-1)
		for i := int64(1); i <= total; i++ {
			ids = append(ids, i)
			if i > 1 {
				relations = append(relations, RelationEdge{ParentID: i - 1, ChildID: i})
			}
		}
		src := &fakeSource{patients: patientsFor(ids...), relations: relations}

		res := build(t, src, 1, 2000)

		assert.Len(t, res.Graph.Nodes, 2000)
		assert.True(t, res.Truncated)
		for _, n := range res.Graph.Nodes {
			assert.NotEqual(t, int64(total), n.ID)
			assert.Equal(t, int(n.ID-1), n.Generation)
		}
		require.Len(t, src.lookups, 1)
		assert.Len(t, src.lookups[0], 2000)
	})

	t.Run("scenario E: duplicate relation rows collapse", func(t *testing.T) {
		src := &fakeSource{
			patients: patientsFor(1, 2),
			relations: []RelationEdge{
				{ParentID: 1, ChildID: 2, RelationshipType: "parent"},
				{ParentID: 1, ChildID: 2, RelationshipType: "other"},
			},
		}
		res := build(t, src, 1, 0)

		assert.Equal(t, []Link{{Source: 1, Target: 2, Type: LinkVertical}}, res.Graph.Links)
	})

	t.Run("deleted patient keeps its links but loses its node", func(t *testing.T) {
		src := &fakeSource{
			patients:  patientsFor(1),
			relations: []RelationEdge{{ParentID: 1, ChildID: 2}},
		}
		res := build(t, src, 1, 0)

		require.Len(t, res.Graph.Nodes, 1)
		assert.Equal(t, int64(1), res.Graph.Nodes[0].ID)
		assert.Equal(t, []Link{{Source: 1, Target: 2, Type: LinkVertical}}, res.Graph.Links)
	})

	t.Run("cycle in relations terminates", func(t *testing.T) {
		src := &fakeSource{
			patients: patientsFor(1, 2, 3),
			relations: []RelationEdge{
				{ParentID: 1, ChildID: 2},
				{ParentID: 2, ChildID: 3},
				{ParentID: 3, ChildID: 1},
				{ParentID: 2, ChildID: 2},
			},
		}
		res := build(t, src, 1, 0)

		assert.Len(t, res.Graph.Nodes, 3)
		assert.Equal(t, 0, generationsOf(res.Graph)[1])
		assert.Len(t, res.Graph.Links, 4)
	})

	t.Run("node fields are copied from the record", func(t *testing.T) {
		family := "Doe"
		snils := "123-456-789 00"
		sex := "F"
		dob := time.Date(1980, time.March, 4, 0, 0, 0, 0, time.UTC)
		src := &fakeSource{
			patients: map[int64]PatientRecord{
				1: {ID: 1, GivenName: "Jane", FamilyName: &family, SNILS: &snils, Sex: &sex, DOB: &dob, FamilyHyperchol: true},
			},
		}
		res := build(t, src, 1, 0)

		require.Len(t, res.Graph.Nodes, 1)
		n := res.Graph.Nodes[0]
		assert.Equal(t, "Jane", n.GivenName)
		assert.Equal(t, &family, n.FamilyName)
		assert.Nil(t, n.MiddleName)
		require.NotNil(t, n.DOB)
		assert.Equal(t, "1980-03-04", *n.DOB)
		assert.Equal(t, &snils, n.SNILS)
		assert.True(t, n.FamilyHyperchol)
	})
}

func TestBuild_StoreErrors(t *testing.T) {
	t.Run("relation store failure", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		b := NewBuilder(NewBuilderParams{Source: &fakeSource{relationsErr: storeErr}})

		_, err := b.Build(context.Background(), 1, BuildOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("patient store failure", func(t *testing.T) {
		storeErr := errors.New("timeout")
		b := NewBuilder(NewBuilderParams{Source: &fakeSource{patientsErr: storeErr}})

		_, err := b.Build(context.Background(), 1, BuildOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestBuild_BuilderDefaultMaxNodes(t *testing.T) {
	src := &fakeSource{
		patients: patientsFor(1, 2, 3, 4),
		links: []LinkEdge{
			{Patient1ID: 1, Patient2ID: 2, LinkType: "sibling"},
			{Patient1ID: 1, Patient2ID: 3, LinkType: "sibling"},
			{Patient1ID: 1, Patient2ID: 4, LinkType: "sibling"},
		},
	}
	b := NewBuilder(NewBuilderParams{Source: src, MaxNodes: 2})

	res, err := b.Build(context.Background(), 1, BuildOptions{})
	require.NoError(t, err)
	assert.Len(t, res.Graph.Nodes, 2)
	assert.Equal(t, 2, res.Component)

	res, err = b.Build(context.Background(), 1, BuildOptions{MaxNodes: 10})
	require.NoError(t, err)
	assert.Len(t, res.Graph.Nodes, 4)
	assert.False(t, res.Truncated)
}
