package changebuilder

import (
	"strconv"

	"github.com/transitrepair/engine/core"
	"github.com/transitrepair/engine/dfs"
	"github.com/transitrepair/engine/internal/domain"
)

// orderParents topologically sorts parents so that any parent referencing
// another fetched parent relation as a member is emitted after the relation
// it references, the way a changeset reads more naturally when a relation's
// dependencies appear before it. Falls back to the original order if the
// membership graph isn't a DAG (shouldn't happen for the fetched parent set,
// but a cycle there is a data problem, not something to build an ordering
// opinion about) or there's nothing to sort.
func orderParents(parents []ParentRelation) []ParentRelation {
	if len(parents) < 2 {
		return parents
	}

	g := core.NewGraph(core.WithDirected(true))
	byID := make(map[string]ParentRelation, len(parents))

	for _, p := range parents {
		id := strconv.FormatInt(int64(p.ID), 10)
		byID[id] = p
		_ = g.AddVertex(id)
	}

	for _, p := range parents {
		to := strconv.FormatInt(int64(p.ID), 10)
		for _, m := range p.Members {
			if m.Kind != domain.KindRelation {
				continue
			}
			from := strconv.FormatInt(int64(m.ElementID), 10)
			if _, ok := byID[from]; !ok {
				continue
			}
			_, _ = g.AddEdge(from, to, 0)
		}
	}

	order, err := dfs.TopologicalSort(g)
	if err != nil || len(order) != len(parents) {
		return parents
	}

	out := make([]ParentRelation, 0, len(parents))
	for _, id := range order {
		out = append(out, byID[id])
	}

	return out
}
