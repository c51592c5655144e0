package domain

import "github.com/transitrepair/engine/internal/geoutil"

// ElementKind distinguishes OSM-style element kinds.
type ElementKind string

const (
	KindNode     ElementKind = "node"
	KindWay      ElementKind = "way"
	KindRelation ElementKind = "relation"
)

// NativeID is the external integer identity of a fetched element.
type NativeID int64

// PieceID is a tagged union over "native id, unsplit" and
// "piece k of n of a split native id" — see SPEC_FULL.md §9 (Composite ids).
// Carried as a struct for hot-loop comparisons; String() produces the wire
// form "native[_k_n]" only at the boundary (wire codecs, logging).
type PieceID struct {
	Native NativeID
	K      int // 1-indexed piece number; 0 means "whole segment, unsplit"
	N      int // total piece count; 0 means "whole segment, unsplit"
}

// Whole reports whether this PieceID denotes an unsplit native segment.
func (p PieceID) Whole() bool { return p.K == 0 && p.N == 0 }

// String renders the wire form used by element-store round-trips and logs.
func (p PieceID) String() string {
	if p.Whole() {
		return itoa(int64(p.Native))
	}

	return itoa(int64(p.Native)) + "_" + itoa(int64(p.K)) + "_" + itoa(int64(p.N))
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}

	return string(buf[i:])
}

// Node is an external terminal of segments. The pipeline never mutates Nodes.
type Node struct {
	ID   NativeID
	At   geoutil.Point
	Tags map[string]string
}

// Segment (a.k.a. Way) is an ordered list of node ids with tags, possibly a
// split piece of a larger native segment.
type Segment struct {
	Piece   PieceID
	NodeIDs []NativeID
	Tags    map[string]string

	// Derived flags, computed by internal/ingest.
	Member         bool // is a member of the relation being edited
	Oneway         bool
	Roundabout     bool
	TurnInPlaceEnd [2]bool // [start, end]

	// Cached derived geometry, populated once nodes are resolved.
	Polyline []geoutil.Point
	LengthM  float64
	Midpoint geoutil.Point
}
