package pedigree

import "strings"

// classifyLinkType maps a stored link type to the output link type.
func classifyLinkType(linkType string) string {
	lt := strings.ToLower(linkType)
	switch lt {
	case "sibling":
		return LinkHorizontal
	case "spouse":
		return LinkSpouse
	default:
		return lt
	}
}

type linkKey struct {
	typ  string
	a, b int64
}

// keyOf returns the dedup key of a link. Vertical links are keyed by the ordered (parent, child)
// pair, every other type by its unordered endpoint pair.
func keyOf(l Link) linkKey {
	if l.Type == LinkVertical {
		return linkKey{typ: l.Type, a: l.Source, b: l.Target}
	}
	a, b := l.Source, l.Target
	if a > b {
		a, b = b, a
	}
	return linkKey{typ: l.Type, a: a, b: b}
}

// collectLinks turns every edge with both endpoints inside the component into an output link,
// relations first, and drops repeats while keeping the first occurrence.
func collectLinks(comp *Component, snap *Snapshot) []Link {
	candidates := make([]Link, 0, len(snap.Relations)+len(snap.Links))

	for _, r := range snap.Relations {
		if comp.Contains(r.ParentID) && comp.Contains(r.ChildID) {
			candidates = append(candidates, Link{Source: r.ParentID, Target: r.ChildID, Type: LinkVertical})
		}
	}
	for _, l := range snap.Links {
		if comp.Contains(l.Patient1ID) && comp.Contains(l.Patient2ID) {
			candidates = append(candidates, Link{
				Source: l.Patient1ID,
				Target: l.Patient2ID,
				Type:   classifyLinkType(l.LinkType),
			})
		}
	}

	return dedupeLinks(candidates)
}

func dedupeLinks(links []Link) []Link {
	seen := make(map[linkKey]struct{}, len(links))
	out := make([]Link, 0, len(links))
	for _, l := range links {
		k := keyOf(l)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}
