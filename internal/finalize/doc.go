// Package finalize turns a search.BestPath into the ordered sequence of
// segments, merged polyline, and the subset of stop collections that ended
// up actually visited along it — the shape a route relation's member list
// and geometry preview are built from.
//
// Key features:
//   - Finalize: walks best.Path, resolves orientation per leg, concatenates
//     polylines without duplicating shared endpoints, and filters bus stop
//     collections down to the ones visited (dropping a stop-position whose
//     coordinate fell off the final route after a reroute).
//
// Complexity: O(len(path) + total polyline vertices).
package finalize

import (
	"sort"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
	"github.com/transitrepair/engine/internal/search"
)

// RouteLeg is one traversed segment, with the direction it was walked in.
type RouteLeg struct {
	Piece    domain.PieceID
	Reversed bool
}

// Route is the finalized result of a search: an ordered leg list, the
// concatenated route polyline, and the stop collections it serves.
type Route struct {
	Legs     []RouteLeg
	Polyline []geoutil.Point
	Stops    []domain.StopCollection
	Tags     map[string]string
}

// Finalize builds a Route from best, resolving each leg's geometry from
// segmentsByPiece and filtering candidateStops down to the ones actually
// reached.
func Finalize(best search.BestPath, segmentsByPiece map[domain.PieceID]*domain.Segment, candidateStops []domain.StopCollection, tags map[string]string) Route {
	legs := make([]RouteLeg, 0, len(best.Path))
	for _, key := range best.Path {
		legs = append(legs, RouteLeg{Piece: key.Piece, Reversed: key.AtEnd})
	}

	var polyline []geoutil.Point
	onRoute := make(map[domain.NativeID]struct{})

	for i, leg := range legs {
		seg := segmentsByPiece[leg.Piece]
		if seg == nil {
			continue
		}

		pts := seg.Polyline
		if leg.Reversed {
			pts = reversedPoints(pts)
		}

		if i == 0 {
			polyline = append(polyline, pts...)
		} else if len(pts) > 0 {
			polyline = append(polyline, pts[1:]...)
		}

		nodeIDs := seg.NodeIDs
		if leg.Reversed {
			nodeIDs = reversedNodes(nodeIDs)
		}
		for _, n := range nodeIDs {
			onRoute[n] = struct{}{}
		}
	}

	byStopID := make(map[domain.NativeID]domain.StopCollection, len(candidateStops))
	for _, c := range candidateStops {
		if best := c.Best(); best != nil {
			byStopID[best.ID] = c
		}
	}

	type ordered struct {
		id    domain.NativeID
		index int
	}
	var visitedIDs []ordered
	for id, idx := range best.VisitedStops {
		visitedIDs = append(visitedIDs, ordered{id: id, index: idx})
	}
	sort.Slice(visitedIDs, func(i, j int) bool { return visitedIDs[i].index < visitedIDs[j].index })

	stops := make([]domain.StopCollection, 0, len(visitedIDs))
	for _, v := range visitedIDs {
		collection, ok := byStopID[v.id]
		if !ok {
			continue
		}

		// A stop-position that isn't a node of the final route (e.g. a
		// reroute dropped the way it sat on) downgrades to platform-only.
		if collection.Stop != nil {
			if _, onPath := onRoute[collection.Stop.ID]; !onPath {
				collection.Stop = nil
			}
		}
		if collection.Platform == nil && collection.Stop == nil {
			continue
		}

		stops = append(stops, collection)
	}

	return Route{Legs: legs, Polyline: polyline, Stops: stops, Tags: tags}
}

func reversedPoints(pts []geoutil.Point) []geoutil.Point {
	out := make([]geoutil.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func reversedNodes(ids []domain.NativeID) []domain.NativeID {
	out := make([]domain.NativeID, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
