package overpass

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/transitrepair/engine/internal/errs"
)

// Client executes Overpass API queries against one interpreter endpoint.
type Client struct {
	http      *fasthttp.Client
	baseURL   string
	userAgent string
}

// NewClient builds a Client targeting baseURL (the Overpass interpreter),
// sending userAgent on every request.
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		http: &fasthttp.Client{
			MaxConnsPerHost:     8,
			MaxIdleConnDuration: 30 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Do posts query as the Overpass request body and returns the raw
// response bytes.
func (c *Client) Do(ctx context.Context, query string, timeout time.Duration) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	req.SetBodyString("data=" + queryEscape(query))

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(timeout)
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("overpass request: %w: %w", errs.ErrUpstream, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("overpass status %d: %w", resp.StatusCode(), errs.ErrUpstream)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

func queryEscape(q string) string {
	var b strings.Builder
	for _, r := range q {
		switch {
		case r == ' ':
			b.WriteByte('+')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == '~':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "%%%02X", r)
		}
	}
	return b.String()
}
