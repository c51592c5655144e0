package finalize

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON renders a finalized Route as a GeoJSON FeatureCollection: one
// LineString feature for the concatenated route polyline, and one Point
// feature per served stop, tagged with its public-transport kind — the
// shape a reviewer's map client renders before a change is submitted.
func (r Route) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(r.Polyline) > 0 {
		line := make(orb.LineString, len(r.Polyline))
		for i, p := range r.Polyline {
			line[i] = orb.Point{p.Lon, p.Lat}
		}
		routeFeature := geojson.NewFeature(line)
		routeFeature.Properties["kind"] = "route"
		for k, v := range r.Tags {
			routeFeature.Properties[k] = v
		}
		fc.Append(routeFeature)
	}

	for _, stop := range r.Stops {
		best := stop.Best()
		if best == nil {
			continue
		}
		point := orb.Point{best.At.Lon, best.At.Lat}
		stopFeature := geojson.NewFeature(point)
		stopFeature.Properties["kind"] = "stop"
		stopFeature.Properties["public_transport"] = string(best.PTKind)
		stopFeature.Properties["name"] = best.Tags["name"]
		fc.Append(stopFeature)
	}

	return fc
}
