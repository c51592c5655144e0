package changebuilder

import (
	"encoding/xml"

	"github.com/transitrepair/engine/internal/domain"
)

// Build renders the osmChange document for applying a finalized route:
// per-fragment way create/modify entries, parent relation member-list
// rewrites, and the route relation's own updated member list.
func Build(in Input) (*OSMChange, error) {
	doc := &OSMChange{Version: "0.6", Generator: "transitrepair"}

	changeset := ""
	if in.IncludeChangeset {
		changeset = in.ChangesetPlaceholder
	}

	for piece, res := range in.Resolutions {
		nodes := make([]nodeRef, 0, len(in.FragmentNodeIDs[piece]))
		for _, n := range in.FragmentNodeIDs[piece] {
			nodes = append(nodes, nodeRef{Ref: int64(n)})
		}

		tags := tagsOf(in.FragmentTags[piece])

		way := wayElement{ID: int64(res.ID), Changeset: changeset, Nodes: nodes, Tags: tags}
		if res.Create {
			doc.Create.Ways = append(doc.Create.Ways, way)
		} else {
			doc.Modify.Ways = append(doc.Modify.Ways, way)
		}
	}

	resolve := Resolver(in.Resolutions)

	for _, parent := range orderParents(in.Parents) {
		rel := relationElement{ID: int64(parent.ID), Changeset: changeset, Tags: tagsOf(parent.Tags)}

		for _, m := range parent.Members {
			if m.Kind == domain.KindWay && m.ElementID == parent.SplitAt {
				for piece, res := range in.Resolutions {
					if piece.Native != parent.SplitAt {
						continue
					}
					rel.Members = append(rel.Members, memberRef{Type: "way", Ref: int64(res.ID), Role: parent.Role})
				}
				continue
			}
			rel.Members = append(rel.Members, memberRef{Type: string(m.Kind), Ref: int64(m.ElementID), Role: string(m.Role)})
		}

		doc.Modify.Relations = append(doc.Modify.Relations, rel)
	}

	routeRel := relationElement{ID: int64(in.RelationID), Changeset: changeset, Tags: tagsOf(in.RelationTags)}
	for _, m := range in.Members {
		id := m.ElementID
		routeRel.Members = append(routeRel.Members, memberRef{Type: string(m.Kind), Ref: int64(id), Role: string(m.Role)})
	}
	_ = resolve // members already carry resolved ids via members.Synthesize's resolve callback
	doc.Modify.Relations = append(doc.Modify.Relations, routeRel)

	return doc, nil
}

func tagsOf(m map[string]string) []tagRef {
	if len(m) == 0 {
		return nil
	}
	out := make([]tagRef, 0, len(m))
	for k, v := range m {
		out = append(out, tagRef{K: k, V: v})
	}
	return out
}

// Marshal renders doc as an indented XML document, the way osmChange
// payloads are conventionally published.
func Marshal(doc *OSMChange) ([]byte, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
