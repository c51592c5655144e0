package overpass

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/transitrepair/engine/internal/errs"
)

// Element is one decoded Overpass JSON element: a node, way, or relation.
type Element struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Nodes   []int64           `json:"nodes,omitempty"`
	Tags    map[string]string `json:"tags,omitempty"`
	Lat     float64           `json:"lat,omitempty"`
	Lon     float64           `json:"lon,omitempty"`
	Bounds  *Bounds           `json:"bounds,omitempty"`
	Center  *LatLon           `json:"center,omitempty"`
	Members []Member          `json:"members,omitempty"`
}

// Bounds is a decoded Overpass `bb`/`bounds` field.
type Bounds struct {
	MinLat float64 `json:"minlat"`
	MinLon float64 `json:"minlon"`
	MaxLat float64 `json:"maxlat"`
	MaxLon float64 `json:"maxlon"`
}

// LatLon is a decoded Overpass `center` field.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Member is one relation member in a decoded Overpass element.
type Member struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

type elementsEnvelope struct {
	Elements []Element `json:"elements"`
}

// DecodeElements unmarshals an Overpass JSON response body.
func DecodeElements(body []byte) ([]Element, error) {
	var env elementsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w: %w", errs.ErrUpstream, err)
	}
	return env.Elements, nil
}

// SplitByCount splits a flat element stream at each `type: "count"`
// marker into the logical sections the query requested, mirroring
// split_by_count. The trailing split (after the last marker) must be
// empty, matching the original's assertion that every query ends on a
// count marker; a non-empty trailing split is reported as an upstream
// protocol violation rather than silently dropped.
func SplitByCount(elements []Element) ([][]Element, error) {
	var result [][]Element
	var current []Element

	for _, e := range elements {
		if e.Type == "count" {
			result = append(result, current)
			current = nil
			continue
		}
		current = append(current, e)
	}

	if len(current) != 0 {
		return nil, fmt.Errorf("overpass response missing trailing count marker: %w", errs.ErrUpstream)
	}

	return result, nil
}

// ParentsDoc is the decoded Overpass XML response to a parents query: the
// relations referencing a way, plus the member ways of those relations.
type ParentsDoc struct {
	XMLName   xml.Name       `xml:"osm"`
	Relations []ParentXMLRel `xml:"relation"`
	Ways      []ParentXMLWay `xml:"way"`
}

// ParentXMLRel is one <relation> in a parents-query XML response.
type ParentXMLRel struct {
	ID      int64           `xml:"id,attr"`
	Members []ParentXMLMemb `xml:"member"`
	Tags    []ParentXMLTag  `xml:"tag"`
}

// ParentXMLMemb is one <member> of a ParentXMLRel.
type ParentXMLMemb struct {
	Type string `xml:"type,attr"`
	Ref  int64  `xml:"ref,attr"`
	Role string `xml:"role,attr"`
}

// ParentXMLTag is one <tag k="..." v="..."/>.
type ParentXMLTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// ParentXMLWay is one <way> in a parents-query XML response.
type ParentXMLWay struct {
	ID    int64   `xml:"id,attr"`
	Nodes []int64 `xml:"nd>ref"`
}

// DecodeParents unmarshals a parents-query XML response body.
func DecodeParents(body []byte) (*ParentsDoc, error) {
	var doc ParentsDoc
	if err := xml.Unmarshal(bytes.TrimSpace(body), &doc); err != nil {
		return nil, fmt.Errorf("decode overpass parents xml: %w: %w", errs.ErrUpstream, err)
	}
	return &doc, nil
}
