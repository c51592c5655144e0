package warnings

import (
	"fmt"
	"strconv"

	"github.com/transitrepair/engine/core"
	"github.com/transitrepair/engine/dfs"
	"github.com/transitrepair/engine/internal/changebuilder"
	"github.com/transitrepair/engine/internal/domain"
)

// checkParentRelationCycle builds a directed containment graph over parents
// (parent relation -> any relation it lists as a member) and flags a cycle:
// two parent relations that are members of each other, or a longer loop,
// would otherwise send the upload into infinite recursion in any tool that
// walks relation membership to resolve tags or geometry.
func checkParentRelationCycle(parents []changebuilder.ParentRelation) *Warning {
	if len(parents) < 2 {
		return nil
	}

	g := core.NewGraph(core.WithDirected(true))

	for _, p := range parents {
		id := relationVertexID(p.ID)
		if !g.HasVertex(id) {
			_ = g.AddVertex(id)
		}
	}

	for _, p := range parents {
		from := relationVertexID(p.ID)
		for _, m := range p.Members {
			if m.Kind != domain.KindRelation {
				continue
			}
			to := relationVertexID(m.ElementID)
			if !g.HasVertex(to) {
				continue // only care about cycles among the fetched parent set
			}
			_, _ = g.AddEdge(from, to, 0)
		}
	}

	hasCycle, cycles, err := dfs.DetectCycles(g)
	if err != nil || !hasCycle {
		return nil
	}

	ids := make([]domain.NativeID, 0, len(cycles[0]))
	for _, v := range cycles[0] {
		n, convErr := strconv.ParseInt(v, 10, 64)
		if convErr != nil {
			continue
		}
		ids = append(ids, domain.NativeID(n))
	}

	return &Warning{
		Severity: SeverityHigh,
		Message:  fmt.Sprintf("relation %d is part of a membership cycle among the fetched parent relations", parents[0].ID),
		Extra:    ids,
	}
}

func relationVertexID(id domain.NativeID) string {
	return strconv.FormatInt(int64(id), 10)
}
