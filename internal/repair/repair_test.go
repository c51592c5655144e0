package repair_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/errs"
	"github.com/transitrepair/engine/internal/geoutil"
	"github.com/transitrepair/engine/internal/ingest"
	"github.com/transitrepair/engine/internal/repair"
)

// A single straight street split into two ways sharing node 2: 1 -- 2 -- 3.
func straightNetwork() ([]ingest.RawWay, map[domain.NativeID]domain.Node) {
	ways := []ingest.RawWay{
		{ID: 1, NodeIDs: []domain.NativeID{1, 2}, Tags: map[string]string{"highway": "residential"}},
		{ID: 2, NodeIDs: []domain.NativeID{2, 3}, Tags: map[string]string{"highway": "residential"}},
	}
	nodes := map[domain.NativeID]domain.Node{
		1: {ID: 1, At: geoutil.Point{Lat: 0, Lon: 0}},
		2: {ID: 2, At: geoutil.Point{Lat: 0, Lon: 0.001}},
		3: {ID: 3, At: geoutil.Point{Lat: 0, Lon: 0.002}},
	}
	return ways, nodes
}

func TestRun_FindsPathAcrossTwoWays(t *testing.T) {
	ways, nodes := straightNetwork()

	result, err := repair.Run(repair.Request{
		RelationID:   100,
		RelationTags: map[string]string{"type": "route", "route": "bus"},
		Mode:         ingest.ModeBus,
		Ways:         ways,
		Nodes:        nodes,
		StartWay:     1,
		EndWay:       2,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Route.Legs, 2)
	assert.NotEmpty(t, result.ChangeXML)
}

func TestRun_ErrorsWhenStartWayMissing(t *testing.T) {
	ways, nodes := straightNetwork()

	_, err := repair.Run(repair.Request{
		RelationID: 100,
		Mode:       ingest.ModeBus,
		Ways:       ways,
		Nodes:      nodes,
		StartWay:   999,
		EndWay:     2,
	})
	assert.Error(t, err)
}

func TestRun_ErrorsWhenEndsAreDisconnected(t *testing.T) {
	ways := []ingest.RawWay{
		{ID: 1, NodeIDs: []domain.NativeID{1, 2}, Tags: map[string]string{"highway": "residential"}},
		{ID: 2, NodeIDs: []domain.NativeID{3, 4}, Tags: map[string]string{"highway": "residential"}},
	}
	nodes := map[domain.NativeID]domain.Node{
		1: {ID: 1, At: geoutil.Point{Lat: 0, Lon: 0}},
		2: {ID: 2, At: geoutil.Point{Lat: 0, Lon: 0.001}},
		3: {ID: 3, At: geoutil.Point{Lat: 1, Lon: 1}},
		4: {ID: 4, At: geoutil.Point{Lat: 1, Lon: 1.001}},
	}

	_, err := repair.Run(repair.Request{
		RelationID: 100,
		Mode:       ingest.ModeBus,
		Ways:       ways,
		Nodes:      nodes,
		StartWay:   1,
		EndWay:     2,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestRun_ErrorsOnEmptyNetwork(t *testing.T) {
	_, err := repair.Run(repair.Request{
		RelationID: 100,
		Mode:       ingest.ModeBus,
		StartWay:   1,
		EndWay:     2,
	})
	assert.Error(t, err)
}
