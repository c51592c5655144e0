package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrepair/engine/internal/cache"
	"github.com/transitrepair/engine/internal/fetchctl"
	"github.com/transitrepair/engine/internal/overpass"
)

func TestDecodeRequest_RejectsMissingFields(t *testing.T) {
	var req repairRequest
	err := decodeRequest([]byte(`{"relationId":5}`), &req)
	require.Error(t, err)
}

func TestDecodeRequest_RejectsMalformedJSON(t *testing.T) {
	var req repairRequest
	err := decodeRequest([]byte(`not json`), &req)
	require.Error(t, err)
}

func TestDecodeRequest_AcceptsCompleteRequest(t *testing.T) {
	var req repairRequest
	err := decodeRequest([]byte(`{"relationId":5,"startWay":1,"endWay":2,"mode":"tram"}`), &req)
	require.NoError(t, err)
	assert.EqualValues(t, 5, req.RelationID)
	assert.Equal(t, "tram", req.Mode)
}

func TestConvertElements_SplitsWaysNodesAndStops(t *testing.T) {
	elements := []overpass.Element{
		{Type: "way", ID: 10, Nodes: []int64{1, 2}, Tags: map[string]string{"highway": "residential"}},
		{Type: "node", ID: 1, Lat: 1.0, Lon: 2.0},
		{Type: "node", ID: 2, Lat: 1.1, Lon: 2.1, Tags: map[string]string{"public_transport": "platform"}},
		{Type: "node", ID: 3, Lat: 1.2, Lon: 2.2, Tags: map[string]string{"public_transport": "stop_position"}},
		{Type: "way", ID: 11},
	}

	ways, nodes, stops := convertElements(elements)

	require.Len(t, ways, 1)
	assert.EqualValues(t, 10, ways[0].ID)
	assert.Len(t, nodes, 3)
	require.Len(t, stops, 2)
}

func TestUnionBBox_CombinesExtremes(t *testing.T) {
	a := fetchctl.BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}
	b := fetchctl.BoundingBox{MinLat: -1, MinLon: 2, MaxLat: 0.5, MaxLon: 3}

	u := unionBBox(a, b)

	assert.Equal(t, -1.0, u.MinLat)
	assert.Equal(t, 0.0, u.MinLon)
	assert.Equal(t, 1.0, u.MaxLat)
	assert.Equal(t, 3.0, u.MaxLon)
}

func TestFetchBusArea_ReusesCachedResponse(t *testing.T) {
	caches := cache.NewCaches()
	defer caches.Stop()

	caches.QueryRelationHistory.Set("5", [][]byte{[]byte(`{"elements":[]}`)}, 0)

	body, err := fetchBusArea(nil, nil, caches, 5, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"elements":[]}`, string(body))
}
