package osmapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrepair/engine/internal/osmapi"
)

func TestDecodeUserDetails_ParsesNestedChangesetCount(t *testing.T) {
	body := []byte(`{"user":{"id":42,"display_name":"alice","changesets":{"count":7}}}`)

	user, err := osmapi.DecodeUserDetails(body)
	require.NoError(t, err)
	assert.EqualValues(t, 42, user.ID)
	assert.Equal(t, "alice", user.DisplayName)
	assert.Equal(t, 7, user.ChangesetsCount)
}

func TestDecodeUserDetails_ErrorsOnMalformedJSON(t *testing.T) {
	_, err := osmapi.DecodeUserDetails([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeChangesetCreate_RendersEveryTag(t *testing.T) {
	body, err := osmapi.EncodeChangesetCreate(map[string]string{"comment": "test edit"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `k="comment"`)
	assert.Contains(t, string(body), `v="test edit"`)
}

func TestSubstitutePlaceholder_ReplacesEveryOccurrence(t *testing.T) {
	osmChange := []byte(`<a changeset="PLACEHOLDER"/><b changeset="PLACEHOLDER"/>`)

	out := osmapi.SubstitutePlaceholder(osmChange, "PLACEHOLDER", 99)
	assert.Equal(t, `<a changeset="99"/><b changeset="99"/>`, string(out))
}
