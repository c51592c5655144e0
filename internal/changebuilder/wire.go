package changebuilder

import (
	"encoding/xml"

	"github.com/transitrepair/engine/internal/domain"
)

// nodeRef is one <nd ref="..."/> child of a <way>.
type nodeRef struct {
	Ref int64 `xml:"ref,attr"`
}

// memberRef is one <member .../> child of a <relation>.
type memberRef struct {
	Type string `xml:"type,attr"`
	Ref  int64  `xml:"ref,attr"`
	Role string `xml:"role,attr"`
}

// tagRef is one <tag k="..." v="..."/> element.
type tagRef struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// wayElement is one <way> in the changeset, new or modified.
type wayElement struct {
	ID        int64     `xml:"id,attr"`
	Changeset string    `xml:"changeset,attr,omitempty"`
	Nodes     []nodeRef `xml:"nd"`
	Tags      []tagRef  `xml:"tag"`
}

// relationElement is one <relation> in the changeset.
type relationElement struct {
	ID        int64       `xml:"id,attr"`
	Changeset string      `xml:"changeset,attr,omitempty"`
	Members   []memberRef `xml:"member"`
	Tags      []tagRef    `xml:"tag"`
}

type createBlock struct {
	Ways []wayElement `xml:"way"`
}

type modifyBlock struct {
	Ways      []wayElement      `xml:"way"`
	Relations []relationElement `xml:"relation"`
}

// OSMChange is the top-level osmChange document.
type OSMChange struct {
	XMLName   xml.Name    `xml:"osmChange"`
	Version   string      `xml:"version,attr"`
	Generator string      `xml:"generator,attr"`
	Create    createBlock `xml:"create"`
	Modify    modifyBlock `xml:"modify"`
}

// ParentRelation is an existing relation that references a way about to be
// split, along with the role its (single, pre-split) member entry carried.
type ParentRelation struct {
	ID      domain.NativeID
	Tags    map[string]string
	Members []domain.RouteMember // the parent's full existing member list, in order
	SplitAt domain.NativeID      // the native way id within Members being replaced
	Role    string
}

// Input bundles everything Build needs to render one osmChange document.
type Input struct {
	RelationID           domain.NativeID
	RelationTags         map[string]string
	IncludeChangeset     bool
	ChangesetPlaceholder string

	// Members is the final route relation's synthesized member list.
	Members []domain.RouteMember

	// FragmentNodeIDs gives the node id sequence for each split fragment
	// that needs a create/modify way entry (keyed the same as resolutions).
	FragmentNodeIDs map[domain.PieceID][]domain.NativeID
	FragmentTags    map[domain.PieceID]map[string]string
	Resolutions     map[domain.PieceID]PieceResolution

	Parents []ParentRelation
}
