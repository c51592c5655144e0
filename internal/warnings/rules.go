package warnings

import (
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/finalize"
	"github.com/transitrepair/engine/internal/ordering"
)

func checkUnusedWays(routeWayIDs map[domain.NativeID]struct{}, allWayIDs []domain.NativeID) *Warning {
	var unused []domain.NativeID
	for _, id := range allWayIDs {
		if _, ok := routeWayIDs[id]; !ok {
			unused = append(unused, id)
		}
	}
	if len(unused) == 0 {
		return nil
	}

	return &Warning{Severity: SeverityHigh, Message: "Some ways are not used", Extra: unused}
}

func checkEndNotReached(routeWayIDs map[domain.NativeID]struct{}, endWay domain.NativeID) *Warning {
	if _, ok := routeWayIDs[endWay]; ok {
		return nil
	}

	return &Warning{Severity: SeverityHigh, Message: "The stop point is not reached"}
}

func checkBusStopFarAway(in Input) *Warning {
	legSegments := make([]*domain.Segment, 0, len(in.Route.Legs))
	for _, leg := range in.Route.Legs {
		if seg, ok := in.SegmentsByPiece[leg.Piece]; ok {
			legSegments = append(legSegments, seg)
		}
	}
	if len(legSegments) == 0 {
		return nil
	}

	idx := ordering.BuildSampleIndex(legSegments, 60)
	entries := ordering.OrderStops(in.Route.Stops, idx, in.SegmentsByPiece)

	var far []domain.NativeID
	for _, e := range entries {
		if e.DistanceM > farStopThresholdM {
			if best := e.Collection.Best(); best != nil {
				far = append(far, best.ID)
			}
		}
	}
	if len(far) == 0 {
		return nil
	}

	return &Warning{Severity: SeverityLow, Message: "Some stops are far away", Extra: far}
}

func checkBusStopNotReached(in Input) *Warning {
	if len(in.Route.Stops) == len(in.CandidateStops) {
		return nil
	}

	reached := make(map[domain.NativeID]struct{}, len(in.Route.Stops))
	for _, c := range in.Route.Stops {
		if best := c.Best(); best != nil {
			reached[best.ID] = struct{}{}
		}
	}

	var missing []domain.NativeID
	for _, c := range in.CandidateStops {
		best := c.Best()
		if best == nil {
			continue
		}
		if _, ok := reached[best.ID]; !ok {
			missing = append(missing, best.ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return &Warning{Severity: SeverityHigh, Message: "Some stops are not reached", Extra: missing}
}

func checkNotEnoughBusStops(route finalize.Route) *Warning {
	if len(route.Stops) >= 2 {
		return nil
	}

	return &Warning{Severity: SeverityHigh, Message: "The route has less than 2 stops"}
}

func checkRoundtripNotRoundtrip(in Input) *Warning {
	if !in.Roundtrip || len(in.Route.Polyline) == 0 {
		return nil
	}

	first := in.Route.Polyline[0]
	last := in.Route.Polyline[len(in.Route.Polyline)-1]
	if first == last {
		return nil
	}

	return &Warning{Severity: SeverityLow, Message: "The route is not a valid roundtrip"}
}

func checkMembersUnchanged(existing, synthesized []domain.RouteMember) *Warning {
	if len(existing) != len(synthesized) {
		return nil
	}
	for i := range existing {
		if existing[i] != synthesized[i] {
			return nil
		}
	}

	return &Warning{Severity: SeverityUnchanged, Message: "The route is unchanged"}
}
