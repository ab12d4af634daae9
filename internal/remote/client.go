// Package remote talks to the question-search API and layers the local
// response cache over it.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/David-Pjs/code4fun/internal/store"
)

// CacheTTL is how long a cached search stays fresh. Older entries are
// treated as a miss.
const CacheTTL = 7 * 24 * time.Hour

// DefaultPageSize is the page size used when callers pass zero.
const DefaultPageSize = 10

// Item is one question in a search result.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// Result is one page of search results.
type Result struct {
	Items   []Item `json:"items"`
	HasMore bool   `json:"hasMore"`
}

// Answer is one answer on a question detail page.
type Answer struct {
	ID       string `json:"id"`
	Body     string `json:"body"`
	Accepted bool   `json:"accepted"`
}

// Detail is a full question with its answers.
type Detail struct {
	Question Item     `json:"question"`
	Answers  []Answer `json:"answers"`
}

// Client fetches questions over HTTP. First pages are served from the cache
// store when fresh; concurrent identical requests are collapsed into one.
type Client struct {
	baseURL string
	httpc   *http.Client
	cache   store.CacheStore
	group   singleflight.Group
	now     func() time.Time
	report  func(error)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default 5s-timeout HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithCache attaches the local response cache.
func WithCache(cache store.CacheStore) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithClock overrides the freshness clock.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithErrorReporter sets where swallowed cache failures are recorded.
func WithErrorReporter(report func(error)) ClientOption {
	return func(c *Client) {
		c.report = report
	}
}

// NewClient creates a client against baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 5 * time.Second},
		now:     time.Now,
		report:  func(error) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of results for query. Page numbering is 1-based.
// First pages come from the cache when an entry younger than CacheTTL
// exists; fetched first pages are written back. Cache failures are recorded
// and ignored.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (Result, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if page == 1 && c.cache != nil {
		if entry, ok, err := c.cache.GetSearch(query); err != nil {
			c.report(err)
		} else if ok && c.now().Sub(entry.FetchedAt) <= CacheTTL {
			return parseResult(entry.Raw), nil
		}
	}

	key := fmt.Sprintf("%s|%d|%d", query, page, pageSize)
	v, err, _ := c.group.Do(key, func() (any, error) {
		raw, err := c.fetchSearch(ctx, query, page, pageSize)
		if err != nil {
			return nil, err
		}
		if page == 1 && c.cache != nil {
			if err := c.cache.SetSearch(query, raw); err != nil {
				c.report(err)
			}
		}
		return raw, nil
	})
	if err != nil {
		return Result{}, err
	}
	return parseResult(v.([]byte)), nil
}

// FetchDetail fetches a question with its answers.
func (c *Client) FetchDetail(ctx context.Context, id string) (Detail, error) {
	raw, err := c.get(ctx, c.baseURL+"/questions/"+url.PathEscape(id))
	if err != nil {
		return Detail{}, err
	}

	q := gjson.GetBytes(raw, "question")
	detail := Detail{Question: parseItem(q)}
	for _, a := range gjson.GetBytes(raw, "answers").Array() {
		detail.Answers = append(detail.Answers, Answer{
			ID:       a.Get("id").String(),
			Body:     a.Get("body").String(),
			Accepted: a.Get("accepted").Bool(),
		})
	}
	return detail, nil
}

func (c *Client) fetchSearch(ctx context.Context, query string, page, pageSize int) ([]byte, error) {
	u, err := url.Parse(c.baseURL + "/questions")
	if err != nil {
		return nil, &RemoteError{Op: "search", Err: err}
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	return c.get(ctx, u.String())
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &RemoteError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{Op: "request", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Op: "read response", Err: err}
	}
	return body, nil
}

// parseResult tolerantly extracts a result page from a raw response.
// Missing fields come back zero-valued rather than failing the call.
func parseResult(raw []byte) Result {
	res := Result{HasMore: gjson.GetBytes(raw, "hasMore").Bool()}
	for _, it := range gjson.GetBytes(raw, "items").Array() {
		res.Items = append(res.Items, parseItem(it))
	}
	return res
}

func parseItem(v gjson.Result) Item {
	return Item{
		ID:      v.Get("id").String(),
		Title:   v.Get("title").String(),
		Excerpt: v.Get("excerpt").String(),
	}
}
