package repair

import (
	"github.com/transitrepair/engine/internal/cluster"
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/finalize"
	"github.com/transitrepair/engine/internal/geoutil"
)

// buildCandidateStops groups raw stop features by proximity then by fuzzy
// name match, and pairs platforms with stop positions within each group —
// §4.C's area-component / name-group / expand / pair pipeline.
func buildCandidateStops(features []domain.StopFeature, groupNameOf func(domain.StopFeature) string, radiusM float64) []domain.StopCollection {
	if len(features) == 0 {
		return nil
	}
	if radiusM <= 0 {
		radiusM = 50
	}

	points := make([]geoutil.Point, len(features))
	for i, f := range features {
		points[i] = f.At
	}

	var out []domain.StopCollection
	for _, component := range cluster.AreaComponents(points, radiusM) {
		areaFeatures := make([]domain.StopFeature, len(component))
		for i, idx := range component {
			areaFeatures[i] = features[idx]
		}

		groups := cluster.GroupByName(areaFeatures, groupNameOf)
		groups = cluster.ExpandGroups(groups)

		for _, g := range groups {
			out = append(out, cluster.BuildCollections(g)...)
		}
	}

	return out
}

// pieceList extracts the traversed piece ids from a finalized route, in
// traversal order, for ResolvePieces.
func pieceList(route finalize.Route) []domain.PieceID {
	out := make([]domain.PieceID, 0, len(route.Legs))
	for _, leg := range route.Legs {
		out = append(out, leg.Piece)
	}
	return out
}
