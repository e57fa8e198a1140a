package pedigree

// Component is the set of patient ids reachable from a proband, in discovery order.
type Component struct {
	order   []int64
	members map[int64]struct{}
}

func newComponent(capacity int) *Component {
	return &Component{
		order:   make([]int64, 0, capacity),
		members: make(map[int64]struct{}, capacity),
	}
}

func (c *Component) add(id int64) {
	c.members[id] = struct{}{}
	c.order = append(c.order, id)
}

// Contains reports whether id is part of the component.
func (c *Component) Contains(id int64) bool {
	_, ok := c.members[id]
	return ok
}

// IDs returns the member ids in discovery order.
func (c *Component) IDs() []int64 {
	return append([]int64(nil), c.order...)
}

// Len returns the number of members.
func (c *Component) Len() int {
	return len(c.order)
}

// extractComponent walks the adjacency breadth first from the proband until the queue empties or
// maxNodes ids were discovered. Once the cap is reached the expansion of the current node stops,
// so a truncated component is a prefix of the BFS order and depends on enumeration order only.
func extractComponent(proband int64, adj adjacency, maxNodes int) *Component {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	comp := newComponent(min(maxNodes, len(adj)+1))
	comp.add(proband)

	queue := []int64{proband}
	for len(queue) > 0 && comp.Len() < maxNodes {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range adj[cur] {
			if comp.Len() >= maxNodes {
				break
			}
			if comp.Contains(nb) {
				continue
			}
			comp.add(nb)
			queue = append(queue, nb)
		}
	}

	return comp
}
