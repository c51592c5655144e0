package cluster

import (
	"sort"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/geoutil"
)

// pickBest splits features into those explicitly tagged as a platform/
// stop node and those inferred from a generic feature.
func pickBest(features []domain.StopFeature) (explicit, implicit []domain.StopFeature) {
	for _, f := range features {
		if f.Explicit {
			explicit = append(explicit, f)
		} else {
			implicit = append(implicit, f)
		}
	}

	return explicit, implicit
}

// BuildCollections applies §4.C step 4 to one NameGroup: splits features
// by platform/stop, prefers explicit over implicit, and pairs them via
// Hungarian assignment, nearest-neighbor reuse, or leave-unpaired,
// following the source's priority order (explicit platforms, else
// explicit stops, else implicit platforms+stops, else lone sides).
func BuildCollections(group *NameGroup) []domain.StopCollection {
	var platforms, stops []domain.StopFeature
	for _, f := range group.Features {
		switch f.PTKind {
		case domain.KindPlatform:
			platforms = append(platforms, f)
		case domain.KindStopPosition:
			stops = append(stops, f)
		}
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i].ID < platforms[j].ID })
	sort.Slice(stops, func(i, j int) bool { return stops[i].ID < stops[j].ID })

	platExplicit, platImplicit := pickBest(platforms)
	stopExplicit, stopImplicit := pickBest(stops)

	var out []domain.StopCollection

	switch {
	case len(platExplicit) > 0:
		assigned := assign(platExplicit, stops, true)
		for i, p := range platExplicit {
			p := p
			out = append(out, domain.StopCollection{Platform: &p, Stop: assigned[i]})
		}
	case len(stopExplicit) > 0:
		assigned := assign(stopExplicit, platforms, false)
		for i, s := range stopExplicit {
			s := s
			out = append(out, domain.StopCollection{Platform: assigned[i], Stop: &s})
		}
	case len(platImplicit) > 0 && len(stopImplicit) > 0:
		assigned := assign(platImplicit, stops, true)
		for i, p := range platImplicit {
			p := p
			out = append(out, domain.StopCollection{Platform: &p, Stop: assigned[i]})
		}
	case len(platImplicit) > 0:
		for _, p := range platImplicit {
			p := p
			out = append(out, domain.StopCollection{Platform: &p})
		}
	case len(stopImplicit) > 0:
		for _, s := range stopImplicit {
			s := s
			out = append(out, domain.StopCollection{Stop: &s})
		}
	}

	return out
}

// assign pairs each element of primary with an element of elements
// (nil when unpaired): nearest-neighbor reuse when elements are fewer
// than primary and reuse is allowed, Hungarian-optimal rectangular
// assignment when elements outnumber primary, 1:1 pairing when exactly
// one element exists, else all-nil.
func assign(primary []domain.StopFeature, elements []domain.StopFeature, reuse bool) []*domain.StopFeature {
	out := make([]*domain.StopFeature, len(primary))
	switch {
	case len(elements) >= 2:
		if len(elements) < len(primary) {
			if !reuse {
				return out
			}
			for i, p := range primary {
				best := nearestIndex(p, elements)
				e := elements[best]
				out[i] = &e
			}

			return out
		}

		assignment := hungarian(distanceMatrix(primary, elements))
		for i := range primary {
			j := assignment[i]
			e := elements[j]
			out[i] = &e
		}

		return out
	case len(elements) == 1:
		if !reuse && len(primary) > 1 {
			return out
		}
		for i := range primary {
			e := elements[0]
			out[i] = &e
		}

		return out
	default:
		return out
	}
}

func nearestIndex(p domain.StopFeature, elements []domain.StopFeature) int {
	best, bestDist := 0, geoutil.Haversine(p.At, elements[0].At, false)
	for i := 1; i < len(elements); i++ {
		d := geoutil.Haversine(p.At, elements[i].At, false)
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func distanceMatrix(primary, elements []domain.StopFeature) [][]float64 {
	m := make([][]float64, len(primary))
	for i, p := range primary {
		row := make([]float64, len(elements))
		for j, e := range elements {
			row[j] = geoutil.Haversine(p.At, e.At, false)
		}
		m[i] = row
	}

	return m
}
