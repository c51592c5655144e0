package warnings

import (
	"sort"

	"github.com/transitrepair/engine/internal/changebuilder"
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/finalize"
)

// Severity ranks how serious a warning is. Values mirror the ordering a
// reviewer should see them in, not numeric severity: Unchanged sorts above
// High, which sorts above Low, since "nothing changed" is the one a
// reviewer most wants surfaced first.
type Severity int

const (
	SeverityLow       Severity = 0
	SeverityHigh      Severity = 1
	SeverityUnchanged Severity = 10
)

// Warning is one triggered check, with whatever element ids it concerns.
type Warning struct {
	Severity Severity
	Message  string
	Extra    []domain.NativeID
}

const farStopThresholdM = 120

// Input bundles everything Check needs to evaluate a finalized route
// against its surrounding context.
type Input struct {
	Route           finalize.Route
	SegmentsByPiece map[domain.PieceID]*domain.Segment

	// AllWayIDs is every way considered part of the candidate network
	// (e.g. the relation's pre-repair members plus anything fetched around
	// them), used to detect ways that ended up unused.
	AllWayIDs []domain.NativeID

	// EndWay is the native way id the route was asked to terminate at.
	EndWay domain.NativeID

	CandidateStops []domain.StopCollection

	// ExistingMembers and SynthesizedMembers are compared element-wise to
	// detect a no-op repair.
	ExistingMembers    []domain.RouteMember
	SynthesizedMembers []domain.RouteMember

	Roundtrip bool

	// Parents is every existing relation that references a way being split,
	// used to guard against relation-membership cycles before upload.
	Parents []changebuilder.ParentRelation
}

// Check runs every rule against in and returns the triggered warnings,
// most severe first.
func Check(in Input) []Warning {
	var out []Warning

	routeWayIDs := make(map[domain.NativeID]struct{}, len(in.Route.Legs))
	for _, leg := range in.Route.Legs {
		routeWayIDs[leg.Piece.Native] = struct{}{}
	}

	if w := checkUnusedWays(routeWayIDs, in.AllWayIDs); w != nil {
		out = append(out, *w)
	}
	if w := checkEndNotReached(routeWayIDs, in.EndWay); w != nil {
		out = append(out, *w)
	}
	if w := checkBusStopFarAway(in); w != nil {
		out = append(out, *w)
	}
	if w := checkBusStopNotReached(in); w != nil {
		out = append(out, *w)
	}
	if w := checkNotEnoughBusStops(in.Route); w != nil {
		out = append(out, *w)
	}
	if w := checkRoundtripNotRoundtrip(in); w != nil {
		out = append(out, *w)
	}
	if w := checkMembersUnchanged(in.ExistingMembers, in.SynthesizedMembers); w != nil {
		out = append(out, *w)
	}
	if w := checkParentRelationCycle(in.Parents); w != nil {
		out = append(out, *w)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Severity > out[j].Severity })

	return out
}
