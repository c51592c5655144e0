package changebuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrepair/engine/internal/changebuilder"
	"github.com/transitrepair/engine/internal/domain"
)

func TestResolvePieces_WholePiecesAreSkipped(t *testing.T) {
	pieces := []domain.PieceID{{Native: 42}}
	result := changebuilder.ResolvePieces(pieces)
	assert.Empty(t, result)
}

func TestResolvePieces_FirstFragmentModifiesInPlace(t *testing.T) {
	pieces := []domain.PieceID{
		{Native: 5, K: 1, N: 3},
		{Native: 5, K: 2, N: 3},
		{Native: 5, K: 3, N: 3},
	}

	result := changebuilder.ResolvePieces(pieces)
	require.Len(t, result, 3)

	first := result[pieces[0]]
	assert.False(t, first.Create)
	assert.Equal(t, domain.NativeID(5), first.ID)
}

func TestResolvePieces_LaterFragmentsGetDistinctNegativePlaceholders(t *testing.T) {
	pieces := []domain.PieceID{
		{Native: 5, K: 1, N: 3},
		{Native: 5, K: 2, N: 3},
		{Native: 5, K: 3, N: 3},
	}

	result := changebuilder.ResolvePieces(pieces)

	second := result[pieces[1]]
	third := result[pieces[2]]

	assert.True(t, second.Create)
	assert.True(t, third.Create)
	assert.Less(t, int64(second.ID), int64(0))
	assert.Less(t, int64(third.ID), int64(0))
	assert.NotEqual(t, second.ID, third.ID)
}

func TestResolver_WholePieceResolvesToOwnNativeID(t *testing.T) {
	resolve := changebuilder.Resolver(map[domain.PieceID]changebuilder.PieceResolution{})
	assert.Equal(t, domain.NativeID(11), resolve(domain.PieceID{Native: 11}))
}

func TestResolver_SplitPieceResolvesToAssignedID(t *testing.T) {
	piece := domain.PieceID{Native: 5, K: 2, N: 3}
	resolutions := map[domain.PieceID]changebuilder.PieceResolution{
		piece: {ID: -1, Create: true},
	}

	resolve := changebuilder.Resolver(resolutions)
	assert.Equal(t, domain.NativeID(-1), resolve(piece))
}

func TestBuild_RouteRelationCarriesSynthesizedMembers(t *testing.T) {
	in := changebuilder.Input{
		RelationID:   900,
		RelationTags: map[string]string{"route": "bus"},
		Members: []domain.RouteMember{
			{ElementID: 1, Kind: domain.KindNode, Role: domain.RoleStopEntryOnly},
			{ElementID: 100, Kind: domain.KindWay, Role: domain.RoleNone},
		},
	}

	doc, err := changebuilder.Build(in)
	require.NoError(t, err)
	require.Len(t, doc.Modify.Relations, 1)

	rel := doc.Modify.Relations[0]
	assert.EqualValues(t, 900, rel.ID)
	require.Len(t, rel.Members, 2)
	assert.Equal(t, "node", rel.Members[0].Type)
	assert.Equal(t, "stop_entry_only", rel.Members[0].Role)
	assert.Equal(t, "way", rel.Members[1].Type)
}

func TestBuild_SplitFragmentsRouteToCreateOrModifyBlocks(t *testing.T) {
	first := domain.PieceID{Native: 5, K: 1, N: 2}
	second := domain.PieceID{Native: 5, K: 2, N: 2}

	resolutions := changebuilder.ResolvePieces([]domain.PieceID{first, second})

	in := changebuilder.Input{
		RelationID: 900,
		FragmentNodeIDs: map[domain.PieceID][]domain.NativeID{
			first:  {1, 2},
			second: {2, 3},
		},
		Resolutions: resolutions,
	}

	doc, err := changebuilder.Build(in)
	require.NoError(t, err)

	require.Len(t, doc.Modify.Ways, 1)
	assert.EqualValues(t, 5, doc.Modify.Ways[0].ID)

	require.Len(t, doc.Create.Ways, 1)
	assert.Less(t, doc.Create.Ways[0].ID, int64(0))
}

func TestBuild_ChangesetPlaceholderOmittedUnlessRequested(t *testing.T) {
	in := changebuilder.Input{RelationID: 1}
	doc, err := changebuilder.Build(in)
	require.NoError(t, err)
	assert.Empty(t, doc.Modify.Relations[0].Changeset)

	in.IncludeChangeset = true
	in.ChangesetPlaceholder = "CHANGESET_ID"
	doc, err = changebuilder.Build(in)
	require.NoError(t, err)
	assert.Equal(t, "CHANGESET_ID", doc.Modify.Relations[0].Changeset)
}

func TestBuild_ParentRelationSubstitutesSplitWayWithFragments(t *testing.T) {
	first := domain.PieceID{Native: 5, K: 1, N: 2}
	second := domain.PieceID{Native: 5, K: 2, N: 2}
	resolutions := changebuilder.ResolvePieces([]domain.PieceID{first, second})

	parent := changebuilder.ParentRelation{
		ID:      700,
		SplitAt: 5,
		Role:    "",
		Members: []domain.RouteMember{
			{ElementID: 5, Kind: domain.KindWay, Role: domain.RoleNone},
			{ElementID: 6, Kind: domain.KindWay, Role: domain.RoleNone},
		},
	}

	in := changebuilder.Input{
		RelationID:  900,
		Resolutions: resolutions,
		Parents:     []changebuilder.ParentRelation{parent},
	}

	doc, err := changebuilder.Build(in)
	require.NoError(t, err)
	require.Len(t, doc.Modify.Relations, 2)

	rewritten := doc.Modify.Relations[0]
	assert.EqualValues(t, 700, rewritten.ID)
	// the split way's single member entry expands into one per fragment,
	// followed by the untouched neighbor member.
	require.Len(t, rewritten.Members, 3)
	assert.EqualValues(t, 6, rewritten.Members[2].Ref)
}

func TestMarshal_ProducesWellFormedXMLHeader(t *testing.T) {
	in := changebuilder.Input{RelationID: 1}
	doc, err := changebuilder.Build(in)
	require.NoError(t, err)

	out, err := changebuilder.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<?xml")
	assert.Contains(t, string(out), "<osmChange")
}
