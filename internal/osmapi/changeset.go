package osmapi

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"
)

type changesetCreateDoc struct {
	XMLName xml.Name     `xml:"osm"`
	Tag     changesetTag `xml:"changeset"`
}

type changesetTag struct {
	Tags []xmlTag `xml:"tag"`
}

type xmlTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// openChangeset creates a new changeset carrying tags and returns its id.
func (c *Client) openChangeset(ctx context.Context, tags map[string]string) (int64, error) {
	body, err := EncodeChangesetCreate(tags)
	if err != nil {
		return 0, fmt.Errorf("encode changeset create: %w", err)
	}

	resp, err := c.do(ctx, fasthttp.MethodPut, "/api/0.6/changeset/create", "text/xml", body)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(string(bytes.TrimSpace(resp)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse changeset id %q: %w", resp, err)
	}

	return id, nil
}

// closeChangeset closes an open changeset.
func (c *Client) closeChangeset(ctx context.Context, changesetID int64) error {
	_, err := c.do(ctx, fasthttp.MethodPut, fmt.Sprintf("/api/0.6/changeset/%d/close", changesetID), "", nil)
	return err
}

// uploadDiff uploads an osmChange document to an open changeset and
// returns the server's diffResult response.
func (c *Client) uploadDiff(ctx context.Context, changesetID int64, osmChange []byte) ([]byte, error) {
	return c.do(ctx, fasthttp.MethodPost, fmt.Sprintf("/api/0.6/changeset/%d/upload", changesetID), "text/xml", osmChange)
}

// UploadResult is the outcome of a full Upload call.
type UploadResult struct {
	ChangesetID    int64
	ChangesetCount int
	DiffResult     []byte
}

// Upload opens a changeset carrying tags, substitutes every occurrence of
// placeholder in osmChange with the new changeset's real id, uploads the
// diff, and closes the changeset — mirroring upload_osm_change's
// open/substitute/upload/close sequence.
func (c *Client) Upload(ctx context.Context, tags map[string]string, placeholder string, osmChange []byte) (*UploadResult, error) {
	changesetID, err := c.openChangeset(ctx, tags)
	if err != nil {
		return nil, err
	}

	substituted := SubstitutePlaceholder(osmChange, placeholder, changesetID)

	diffResult, err := c.uploadDiff(ctx, changesetID, substituted)
	if err != nil {
		return nil, err
	}

	if err := c.closeChangeset(ctx, changesetID); err != nil {
		return nil, err
	}

	return &UploadResult{ChangesetID: changesetID, DiffResult: diffResult}, nil
}

// SubstitutePlaceholder replaces every occurrence of placeholder in
// osmChange with the real changeset id, the final step before a diff can
// be uploaded.
func SubstitutePlaceholder(osmChange []byte, placeholder string, changesetID int64) []byte {
	return bytes.ReplaceAll(osmChange, []byte(placeholder), []byte(strconv.FormatInt(changesetID, 10)))
}

func tagsToXML(tags map[string]string) []xmlTag {
	out := make([]xmlTag, 0, len(tags))
	for k, v := range tags {
		out = append(out, xmlTag{K: k, V: v})
	}
	return out
}

// EncodeChangesetCreate renders the <osm><changeset>...</changeset></osm>
// document sent to /api/0.6/changeset/create.
func EncodeChangesetCreate(tags map[string]string) ([]byte, error) {
	doc := changesetCreateDoc{Tag: changesetTag{Tags: tagsToXML(tags)}}
	return xml.Marshal(doc)
}
