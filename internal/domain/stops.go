package domain

import "github.com/transitrepair/engine/internal/geoutil"

// PublicTransportKind distinguishes platform vs. stop-position features.
type PublicTransportKind string

const (
	KindPlatform     PublicTransportKind = "platform"
	KindStopPosition PublicTransportKind = "stop_position"
)

// StopFeature is a candidate platform or stop-position feature.
type StopFeature struct {
	ID       NativeID
	Kind     ElementKind
	PTKind   PublicTransportKind
	At       geoutil.Point
	Tags     map[string]string
	Explicit bool // tagged as a *_node, not inferred from a generic feature
}

// StopCollection pairs a platform with its stop-position; at least one
// must be present.
type StopCollection struct {
	Platform *StopFeature
	Stop     *StopFeature
}

// Best returns the platform if present, else the stop.
func (c StopCollection) Best() *StopFeature {
	if c.Platform != nil {
		return c.Platform
	}

	return c.Stop
}

// SideOfTravel encodes whether a stop sits on the right, left, or an
// ambiguous side of the traversal direction.
type SideOfTravel int

const (
	SideUnset SideOfTravel = iota
	SideLeft
	SideRight
)

// SortedStopEntry binds a StopCollection to the directed graph: its
// nearest-neighbor segment, sort index along traversal, and travel side.
type SortedStopEntry struct {
	Collection  StopCollection
	NeighborSeg PieceID
	SortIndex   int
	DistanceM   float64
	Side        SideOfTravel
}
