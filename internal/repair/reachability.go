package repair

import (
	"fmt"

	"github.com/transitrepair/engine/core"
	"github.com/transitrepair/engine/dfs"
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/errs"
	"github.com/transitrepair/engine/internal/ingest"
)

// checkReachable runs a cheap undirected connectivity pre-check between
// from and to over the piece adjacency ingest.Split already computed,
// short-circuiting the bounded search with a clear error when no sequence
// of pieces could possibly connect them — regardless of oneway or turn
// restrictions, which only the real search in internal/search enforces.
// A positive result here is not a guarantee a route exists; a negative
// result is.
func checkReachable(split ingest.SplitResult, from, to domain.PieceID) error {
	g := core.NewGraph()

	for piece := range split.Segments {
		if err := g.AddVertex(pieceVertexID(piece)); err != nil {
			return fmt.Errorf("build reachability graph: %w", err)
		}
	}

	for piece, neighbors := range split.Adjacency {
		for other := range neighbors {
			_, _ = g.AddEdge(pieceVertexID(piece), pieceVertexID(other), 0)
		}
	}

	fromID, toID := pieceVertexID(from), pieceVertexID(to)
	if !g.HasVertex(fromID) {
		return fmt.Errorf("start piece %d missing from network: %w", from, errs.ErrBadInput)
	}
	if !g.HasVertex(toID) {
		return fmt.Errorf("end piece %d missing from network: %w", to, errs.ErrBadInput)
	}

	result, err := dfs.DFS(g, fromID)
	if err != nil {
		return fmt.Errorf("walk reachability graph: %w", err)
	}

	if !result.Visited[toID] {
		return fmt.Errorf("no sequence of road pieces connects the requested ends: %w", errs.ErrNotFound)
	}

	return nil
}

func pieceVertexID(p domain.PieceID) string {
	return p.String()
}
