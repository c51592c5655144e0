package overpass

import (
	"fmt"
	"strings"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/fetchctl"
)

// BuildWaysQuery asks for every way id belonging to relationID, the
// relation's own bounding box, and quick-terse formatting.
func BuildWaysQuery(relationID domain.NativeID, timeoutSeconds int) string {
	return fmt.Sprintf("[out:json][timeout:%d];rel(%d);way(r);out ids bb qt;", timeoutSeconds, relationID)
}

// BuildBusAreaQuery asks for the road network within cellBBs, plus stop
// candidates (platforms, stop positions, stop-area relations and their
// members) within the wider cellBBsExpanded, punctuated by `out count`
// markers SplitByCount uses to separate each logical section.
func BuildBusAreaQuery(cellBBs, cellBBsExpanded []fetchctl.BoundingBox, timeoutSeconds int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];(", timeoutSeconds)
	for _, bb := range cellBBs {
		fmt.Fprintf(&b, "way[highway][!footway](%s);", bboxString(bb))
	}
	b.WriteString(");out body qt;out count;>;out skel qt;out count;(")
	for _, bb := range cellBBsExpanded {
		s := bboxString(bb)
		fmt.Fprintf(&b, "node[highway=bus_stop][public_transport=platform](%s);", s)
		fmt.Fprintf(&b, "nwr[highway=platform][public_transport=platform](%s);", s)
		fmt.Fprintf(&b, "node[public_transport=stop_position](%s);", s)
	}
	b.WriteString(");out tags center qt;out count;(")
	for _, bb := range cellBBsExpanded {
		fmt.Fprintf(&b, "rel[public_transport=stop_area](%s);", bboxString(bb))
	}
	b.WriteString(")->.r;.r out body qt;.r out count;")
	b.WriteString("(node(r.r:platform);way(r.r:platform);rel(r.r:platform););out tags center qt;out count;")
	b.WriteString("(node(r.r:stop););out tags center qt;out count;")
	return b.String()
}

// BuildParentsQuery asks, for each way id, every relation referencing it,
// plus the member ways of those relations, formatted as Overpass XML
// (metadata included) since relation member order and roles only survive
// the XML output mode.
func BuildParentsQuery(wayIDs []domain.NativeID, timeoutSeconds int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:xml][timeout:%d];._->.r;", timeoutSeconds)
	for _, id := range wayIDs {
		fmt.Fprintf(&b, "way(%d);(rel(bw);.r;)->.r;", id)
	}
	b.WriteString(".r out meta qt;way(r.r);out skel qt;")
	return b.String()
}

func bboxString(bb fetchctl.BoundingBox) string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", bb.MinLat, bb.MinLon, bb.MaxLat, bb.MaxLon)
}
