package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// PageFunc fetches one page. Implementations receive 1-based page numbers.
type PageFunc func(ctx context.Context, pageSize, pageNumber int) CallResult

// Pager walks a paginated endpoint entity by entity, in the manner of
// bufio.Scanner: call Next until it reports done, then check Err.
type Pager struct {
	ctx      context.Context
	fetch    PageFunc
	pageSize int
	maxPages int

	page    int
	buf     []json.RawMessage
	done    bool
	lastErr error
}

// NewPager creates a pager over fetch. maxPages <= 0 means unbounded.
func NewPager(ctx context.Context, fetch PageFunc, pageSize, maxPages int) *Pager {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Pager{ctx: ctx, fetch: fetch, pageSize: pageSize, maxPages: maxPages}
}

// Next returns the next entity. The second return is false when iteration
// is over, whether by exhaustion, page cap, or error; buffered entities
// from already-fetched pages drain before iteration stops.
func (p *Pager) Next() (json.RawMessage, bool) {
	if len(p.buf) > 0 {
		entity := p.buf[0]
		p.buf = p.buf[1:]
		return entity, true
	}
	if p.done {
		return nil, false
	}
	if p.maxPages > 0 && p.page >= p.maxPages {
		p.done = true
		return nil, false
	}

	p.page++
	res := p.fetch(p.ctx, p.pageSize, p.page)
	if !res.Success {
		p.lastErr = fmt.Errorf("page %d: %s", p.page, res.Err)
		p.done = true
		return nil, false
	}

	var page Page
	if err := json.Unmarshal(res.Data, &page); err != nil {
		p.lastErr = fmt.Errorf("page %d: decoding: %w", p.page, err)
		p.done = true
		return nil, false
	}

	if page.PageCount > 0 && p.page >= page.PageCount {
		p.done = true
	}
	if len(page.Entities) == 0 {
		p.done = true
		return nil, false
	}

	p.buf = page.Entities[1:]
	return page.Entities[0], true
}

// Err returns the error that stopped iteration, if any.
func (p *Pager) Err() error {
	return p.lastErr
}

// Collect drains the pager into a slice.
func (p *Pager) Collect() ([]json.RawMessage, error) {
	var out []json.RawMessage
	for {
		entity, ok := p.Next()
		if !ok {
			break
		}
		out = append(out, entity)
	}
	return out, p.lastErr
}

// pagePath appends pageSize/pageNumber query parameters to a path that may
// already carry a query string.
func pagePath(path string, pageSize, pageNumber int) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spageSize=%d&pageNumber=%d", path, sep, pageSize, pageNumber)
}
