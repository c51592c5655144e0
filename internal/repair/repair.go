package repair

import (
	"fmt"

	"github.com/transitrepair/engine/internal/changebuilder"
	"github.com/transitrepair/engine/internal/cluster"
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/errs"
	"github.com/transitrepair/engine/internal/finalize"
	"github.com/transitrepair/engine/internal/graphbuild"
	"github.com/transitrepair/engine/internal/ingest"
	"github.com/transitrepair/engine/internal/members"
	"github.com/transitrepair/engine/internal/ordering"
	"github.com/transitrepair/engine/internal/search"
	"github.com/transitrepair/engine/internal/warnings"
)

// Request bundles one relation's fetched network and the parameters a
// repair needs.
type Request struct {
	RelationID   domain.NativeID
	RelationTags map[string]string
	Mode         ingest.Mode

	Ways  []ingest.RawWay
	Nodes map[domain.NativeID]domain.Node

	CandidateStopFeatures []domain.StopFeature
	GroupNameOf           func(domain.StopFeature) string
	StopSearchRadiusM     float64
	SampleThresholdM      float64

	StartWay, EndWay domain.NativeID
	Roundtrip        bool

	ExistingMembers map[domain.NativeID]domain.RouteMember

	Parents              []changebuilder.ParentRelation
	IncludeChangeset     bool
	ChangesetPlaceholder string

	SearchOptions []search.Option
}

// Result is everything Run produces for one relation.
type Result struct {
	Route     finalize.Route
	Members   []domain.RouteMember
	Change    *changebuilder.OSMChange
	ChangeXML []byte
	Warnings  []warnings.Warning
}

// Run executes the full repair pipeline for req.
func Run(req Request) (*Result, error) {
	split := ingest.Split(req.Ways, req.Mode, req.Nodes, nil)
	if len(split.Segments) == 0 {
		return nil, fmt.Errorf("no routable segments in fetched network: %w", errs.ErrBadInput)
	}

	segments := make([]*domain.Segment, 0, len(split.Segments))
	for _, seg := range split.Segments {
		segments = append(segments, seg)
	}

	startPieces, ok := split.ByNative[req.StartWay]
	if !ok || len(startPieces) == 0 {
		return nil, fmt.Errorf("start way %d not found in fetched network: %w", req.StartWay, errs.ErrBadInput)
	}
	endPieces, ok := split.ByNative[req.EndWay]
	if !ok || len(endPieces) == 0 {
		return nil, fmt.Errorf("end way %d not found in fetched network: %w", req.EndWay, errs.ErrBadInput)
	}

	if err := checkReachable(split, startPieces[0], endPieces[len(endPieces)-1]); err != nil {
		return nil, err
	}

	groupNameOf := req.GroupNameOf
	if groupNameOf == nil {
		groupNameOf = func(f domain.StopFeature) string { return cluster.NormalizeGroupName(f.Tags["name"]) }
	}

	candidateStops := buildCandidateStops(req.CandidateStopFeatures, groupNameOf, req.StopSearchRadiusM)

	sampleThreshold := req.SampleThresholdM
	if sampleThreshold <= 0 {
		sampleThreshold = 60
	}
	sampleIndex := ordering.BuildSampleIndex(segments, sampleThreshold)
	sortedStops := ordering.OrderStops(candidateStops, sampleIndex, split.Segments)

	stopsByPiece := make(map[domain.PieceID][]domain.SortedStopEntry)
	for _, entry := range sortedStops {
		stopsByPiece[entry.NeighborSeg] = append(stopsByPiece[entry.NeighborSeg], entry)
	}

	graph := graphbuild.BuildGraph(segments)

	best := search.Run(graph, split.Segments, stopsByPiece, startPieces[0], endPieces[len(endPieces)-1], req.SearchOptions...)
	if best.Path == nil {
		return nil, fmt.Errorf("no path found between requested ends: %w", errs.ErrNotFound)
	}

	route := finalize.Finalize(best, split.Segments, candidateStops, req.RelationTags)

	resolutions := changebuilder.ResolvePieces(pieceList(route))
	resolve := changebuilder.Resolver(resolutions)

	synthesized := members.Synthesize(route, req.ExistingMembers, resolve)

	fragmentNodes := make(map[domain.PieceID][]domain.NativeID, len(resolutions))
	fragmentTags := make(map[domain.PieceID]map[string]string, len(resolutions))
	for piece := range resolutions {
		seg := split.Segments[piece]
		if seg == nil {
			continue
		}
		fragmentNodes[piece] = seg.NodeIDs
		fragmentTags[piece] = seg.Tags
	}

	doc, err := changebuilder.Build(changebuilder.Input{
		RelationID:           req.RelationID,
		RelationTags:         req.RelationTags,
		IncludeChangeset:     req.IncludeChangeset,
		ChangesetPlaceholder: req.ChangesetPlaceholder,
		Members:              synthesized,
		FragmentNodeIDs:      fragmentNodes,
		FragmentTags:         fragmentTags,
		Resolutions:          resolutions,
		Parents:              req.Parents,
	})
	if err != nil {
		return nil, fmt.Errorf("build osm change: %w", err)
	}

	changeXML, err := changebuilder.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal osm change: %w", err)
	}

	allWayIDs := make([]domain.NativeID, 0, len(req.Ways))
	for _, w := range req.Ways {
		allWayIDs = append(allWayIDs, w.ID)
	}

	existingMembers := make([]domain.RouteMember, 0, len(req.ExistingMembers))
	for _, m := range req.ExistingMembers {
		existingMembers = append(existingMembers, m)
	}

	warns := warnings.Check(warnings.Input{
		Route:              route,
		SegmentsByPiece:    split.Segments,
		AllWayIDs:          allWayIDs,
		EndWay:             req.EndWay,
		CandidateStops:     candidateStops,
		ExistingMembers:    existingMembers,
		SynthesizedMembers: synthesized,
		Roundtrip:          req.Roundtrip,
		Parents:            req.Parents,
	})

	return &Result{
		Route:     route,
		Members:   synthesized,
		Change:    doc,
		ChangeXML: changeXML,
		Warnings:  warns,
	}, nil
}
