package pedigree

// Generations maps a patient id to its generation relative to the proband.
// Parents sit one generation above (-1), children one below (+1), siblings and spouses share
// the generation of the individual they are linked to.
type Generations map[int64]int

// Of returns the generation of id, defaulting to 0 for ids that were never reached.
func (g Generations) Of(id int64) int {
	return g[id]
}

// edgeIndex lists, per patient id, the positions of the edges touching that id in enumeration
// order. Scanning an index entry visits candidates in the same order as scanning the full list.
type edgeIndex map[int64][]int

func indexRelations(relations []RelationEdge) edgeIndex {
	idx := make(edgeIndex)
	for i, r := range relations {
		idx[r.ParentID] = append(idx[r.ParentID], i)
		if r.ChildID != r.ParentID {
			idx[r.ChildID] = append(idx[r.ChildID], i)
		}
	}
	return idx
}

func indexLinks(links []LinkEdge) edgeIndex {
	idx := make(edgeIndex)
	for i, l := range links {
		idx[l.Patient1ID] = append(idx[l.Patient1ID], i)
		if l.Patient2ID != l.Patient1ID {
			idx[l.Patient2ID] = append(idx[l.Patient2ID], i)
		}
	}
	return idx
}

// assignGenerations runs a breadth first walk from the proband over the directed relations and
// the undirected links, restricted to the component. The first assignment an id receives is
// final: when paths disagree (for example in a pedigree with inconsistent data) the path that
// the queue processes first wins.
func assignGenerations(proband int64, comp *Component, snap *Snapshot) Generations {
	gen := Generations{proband: 0}

	relIdx := indexRelations(snap.Relations)
	linkIdx := indexLinks(snap.Links)

	assign := func(id int64, value int, queue *[]int64) {
		if !comp.Contains(id) {
			return
		}
		if _, ok := gen[id]; ok {
			return
		}
		gen[id] = value
		*queue = append(*queue, id)
	}

	queue := []int64{proband}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curGen := gen[cur]

		for _, i := range relIdx[cur] {
			r := snap.Relations[i]
			if r.ChildID == cur {
				assign(r.ParentID, curGen-1, &queue)
			}
			if r.ParentID == cur {
				assign(r.ChildID, curGen+1, &queue)
			}
		}

		for _, i := range linkIdx[cur] {
			l := snap.Links[i]
			if l.Patient1ID == cur {
				assign(l.Patient2ID, curGen, &queue)
			}
			if l.Patient2ID == cur {
				assign(l.Patient1ID, curGen, &queue)
			}
		}
	}

	return gen
}
