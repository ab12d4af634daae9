package remote

import (
	"context"
	"sync"
)

// Searcher is the slice of Client the browser needs.
type Searcher interface {
	Search(ctx context.Context, query string, page, pageSize int) (Result, error)
}

// Browser holds the docs-panel search state. Searches run asynchronously
// with no cancellation token; instead each search takes a monotonically
// increasing request id, and a response is dropped if a newer request was
// issued by the time it resolves. A stale response can therefore never
// overwrite newer results.
type Browser struct {
	mu       sync.Mutex
	searcher Searcher
	pageSize int

	nextID   uint64
	latestID uint64

	query   string
	items   []Item
	hasMore bool
	err     error
	loading bool

	onUpdate func()
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithPageSize overrides the page size.
func WithPageSize(n int) BrowserOption {
	return func(b *Browser) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// WithUpdateHandler sets a callback fired after each state change.
func WithUpdateHandler(fn func()) BrowserOption {
	return func(b *Browser) {
		b.onUpdate = fn
	}
}

// NewBrowser creates a browser over the searcher.
func NewBrowser(searcher Searcher, opts ...BrowserOption) *Browser {
	b := &Browser{
		searcher: searcher,
		pageSize: DefaultPageSize,
		onUpdate: func() {},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Search starts an asynchronous search for query, superseding any in-flight
// one. The result set updates when (and only if) this request is still the
// newest at resolution time.
func (b *Browser) Search(ctx context.Context, query string) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.latestID = id
	b.query = query
	b.loading = true
	b.err = nil
	b.mu.Unlock()
	b.onUpdate()

	go func() {
		res, err := b.searcher.Search(ctx, query, 1, b.pageSize)
		b.resolve(id, res, err)
	}()
}

// resolve applies a finished search unless it has been superseded.
func (b *Browser) resolve(id uint64, res Result, err error) {
	b.mu.Lock()
	if id != b.latestID {
		b.mu.Unlock()
		return
	}
	b.loading = false
	if err != nil {
		b.err = err
	} else {
		b.items = res.Items
		b.hasMore = res.HasMore
	}
	b.mu.Unlock()
	b.onUpdate()
}

// Results returns the current result set.
func (b *Browser) Results() ([]Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Item(nil), b.items...), b.hasMore
}

// Err returns the transient error from the latest resolved search, or nil.
func (b *Browser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Loading reports whether the newest search is still in flight.
func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Query returns the query of the newest search.
func (b *Browser) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}
