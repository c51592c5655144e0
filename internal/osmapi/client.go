package osmapi

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/transitrepair/engine/internal/errs"
)

// Client talks to one OSM API instance on behalf of one authenticated
// user.
type Client struct {
	http        *fasthttp.Client
	baseURL     string
	userAgent   string
	accessToken string
}

// NewClient builds a Client for baseURL, authenticating every request
// with accessToken (an OAuth2 bearer token — the OSM API's current
// preferred scheme, superseding the OAuth1 token/secret pair the original
// implementation carried).
func NewClient(baseURL, userAgent, accessToken string) *Client {
	return &Client{
		http:        &fasthttp.Client{MaxConnsPerHost: 4},
		baseURL:     baseURL,
		userAgent:   userAgent,
		accessToken: accessToken,
	}
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(30 * time.Second)
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("osm api request %s %s: %w: %w", method, path, errs.ErrUpstream, err)
	}
	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("osm api %s %s status %d: %w", method, path, resp.StatusCode(), errs.ErrUpstream)
	}

	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

// User is the subset of /api/0.6/user/details.json this engine needs.
type User struct {
	ID              int64  `json:"id"`
	DisplayName     string `json:"display_name"`
	ChangesetsCount int    `json:"changesets_count"`
}

type userDetailsEnvelope struct {
	User struct {
		ID          int64  `json:"id"`
		DisplayName string `json:"display_name"`
		Changesets  struct {
			Count int `json:"count"`
		} `json:"changesets"`
	} `json:"user"`
}

// AuthorizedUser fetches the profile of the user the client's access
// token belongs to.
func (c *Client) AuthorizedUser(ctx context.Context) (*User, error) {
	body, err := c.do(ctx, fasthttp.MethodGet, "/api/0.6/user/details.json", "", nil)
	if err != nil {
		return nil, err
	}

	return DecodeUserDetails(body)
}

// DecodeUserDetails unmarshals a /api/0.6/user/details.json response body.
func DecodeUserDetails(body []byte) (*User, error) {
	var env userDetailsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode user details: %w: %w", errs.ErrUpstream, err)
	}

	return &User{
		ID:              env.User.ID,
		DisplayName:     env.User.DisplayName,
		ChangesetsCount: env.User.Changesets.Count,
	}, nil
}
