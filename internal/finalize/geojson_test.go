package finalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/finalize"
	"github.com/transitrepair/engine/internal/geoutil"
)

func TestRouteGeoJSON_EmitsLineStringAndStopFeatures(t *testing.T) {
	route := finalize.Route{
		Polyline: []geoutil.Point{{Lat: 1, Lon: 2}, {Lat: 1.001, Lon: 2.001}},
		Tags:     map[string]string{"route": "bus"},
		Stops: []domain.StopCollection{
			{Platform: &domain.StopFeature{
				At:     geoutil.Point{Lat: 1, Lon: 2},
				PTKind: domain.KindPlatform,
				Tags:   map[string]string{"name": "Main St"},
			}},
		},
	}

	fc := route.GeoJSON()
	require.NotNil(t, fc)
	require.Len(t, fc.Features, 2)

	assert.Equal(t, "route", fc.Features[0].Properties["kind"])
	assert.Equal(t, "stop", fc.Features[1].Properties["kind"])
	assert.Equal(t, "Main St", fc.Features[1].Properties["name"])
}

func TestRouteGeoJSON_EmptyRouteYieldsEmptyCollection(t *testing.T) {
	fc := finalize.Route{}.GeoJSON()
	require.NotNil(t, fc)
	assert.Empty(t, fc.Features)
}
