package pedigree

// adjacency maps a patient id to its directly connected patients, ignoring edge direction.
// Neighbor lists keep the order in which the store enumerated the edges.
type adjacency map[int64][]int64

func buildAdjacency(snap *Snapshot) adjacency {
	adj := make(adjacency)
	seen := make(map[[2]int64]struct{})

	connect := func(a, b int64) {
		key := [2]int64{a, b}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		adj[a] = append(adj[a], b)
	}

	for _, r := range snap.Relations {
		connect(r.ParentID, r.ChildID)
		connect(r.ChildID, r.ParentID)
	}
	for _, l := range snap.Links {
		connect(l.Patient1ID, l.Patient2ID)
		connect(l.Patient2ID, l.Patient1ID)
	}

	return adj
}
