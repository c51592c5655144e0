package ordering

import (
	"math"

	"github.com/tidwall/rtree"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
)

// indexedSample is one interpolated polyline sample tagged with its owning
// segment and position within the global sample sequence. Deg carries the
// sample's coordinates in degrees, the coordinate space the rtree indexes.
type indexedSample struct {
	geoutil.Sample
	Segment domain.PieceID
	Deg     geoutil.Point
}

// SampleIndex holds every segment's interpolated samples in one flat,
// globally-indexed sequence, plus an rtree over their degree coordinates
// so Nearest doesn't need to scan every sample.
type SampleIndex struct {
	samples []indexedSample
	tree    rtree.RTreeG[int]
}

// BuildSampleIndex interpolates every segment's polyline (radians) and
// assigns each sample a dense GlobalIdx across the whole set, in segment
// iteration order — this iteration order IS the "global interpolated
// sample sequence" the GLOSSARY's Sort index is defined against.
func BuildSampleIndex(segments []*domain.Segment, thresholdM float64) *SampleIndex {
	idx := &SampleIndex{}
	for _, seg := range segments {
		for _, s := range geoutil.Interpolate(seg.Polyline, thresholdM) {
			s.GlobalIdx = len(idx.samples)
			deg := geoutil.Point{Lat: s.Point.Lat * 180 / math.Pi, Lon: s.Point.Lon * 180 / math.Pi}
			idx.samples = append(idx.samples, indexedSample{Sample: s, Segment: seg.Piece, Deg: deg})
			idx.tree.Insert([2]float64{deg.Lon, deg.Lat}, [2]float64{deg.Lon, deg.Lat}, s.GlobalIdx)
		}
	}

	return idx
}

// metersPerDegreeLon is a conservative (never-too-large) meters-per-degree
// scale at latitude latDeg, used to turn an rtree search ring's degree
// radius into a lower bound on how far any point outside the ring can be.
func metersPerDegreeLon(latDeg float64) float64 {
	metersPerDegreeLat := geoutil.EarthRadiusM * math.Pi / 180
	return metersPerDegreeLat * math.Cos(latDeg*math.Pi/180)
}

// Nearest finds the closest sample to p via an expanding-ring rtree search:
// each ring's hits are scored by haversine distance, and the ring is
// accepted once its radius (converted conservatively to meters) guarantees
// no closer sample could lie outside it. Falls back to a full scan of
// idx.samples only if the ring has grown to cover the entire plausible
// query range without confirming a winner, which a degenerate/near-empty
// index can trigger but a populated one never should.
func (idx *SampleIndex) Nearest(p geoutil.Point) (seg domain.PieceID, sortIndex int, distanceM float64, ok bool) {
	if len(idx.samples) == 0 {
		return domain.PieceID{}, 0, 0, false
	}

	pRad := p.Radians()

	const maxRingDeg = 20.0
	for ringDeg := 0.001; ringDeg <= maxRingDeg; ringDeg *= 4 {
		bestI := -1
		bestDist := math.Inf(1)

		idx.tree.Search(
			[2]float64{p.Lon - ringDeg, p.Lat - ringDeg},
			[2]float64{p.Lon + ringDeg, p.Lat + ringDeg},
			func(min, max [2]float64, i int) bool {
				d := geoutil.Haversine(pRad, idx.samples[i].Point, true)
				if d < bestDist {
					bestDist, bestI = d, i
				}
				return true
			},
		)

		if bestI < 0 {
			continue
		}

		scale := metersPerDegreeLon(p.Lat)
		safeRadiusM := ringDeg * scale
		if bestDist <= safeRadiusM {
			s := idx.samples[bestI]
			return s.Segment, s.GlobalIdx, bestDist, true
		}
	}

	return idx.nearestByScan(pRad)
}

// nearestByScan is the brute-force fallback Nearest degrades to when ring
// expansion can't confirm a winner within maxRingDeg.
func (idx *SampleIndex) nearestByScan(pRad geoutil.Point) (seg domain.PieceID, sortIndex int, distanceM float64, ok bool) {
	best := 0
	bestDist := geoutil.Haversine(pRad, idx.samples[0].Point, true)
	for i := 1; i < len(idx.samples); i++ {
		d := geoutil.Haversine(pRad, idx.samples[i].Point, true)
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	return idx.samples[best].Segment, idx.samples[best].GlobalIdx, bestDist, true
}

// neighborVertices returns the polyline vertex (degrees) preceding the
// sample at globalIdx within its segment, falling back to the next vertex
// when the sample is the first in its segment. Needed because Side's "a"
// endpoint is the previous polyline vertex when present, else the next.
func (idx *SampleIndex) neighborVertices(globalIdx int, polyline []geoutil.Point) (a geoutil.Point, hasPrev bool) {
	s := idx.samples[globalIdx]
	v := s.VertexIdx
	if globalIdx > 0 && idx.samples[globalIdx-1].Segment == s.Segment {
		return polyline[v], true
	}
	if v+1 < len(polyline) {
		return polyline[v+1], true
	}

	return geoutil.Point{}, false
}
