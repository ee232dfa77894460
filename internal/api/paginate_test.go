package api

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageServer fabricates a fixed number of pages with perPage entities each.
func pageServer(pageCount, perPage int, calls *int) PageFunc {
	return func(_ context.Context, pageSize, pageNumber int) CallResult {
		*calls++
		entities := make([]json.RawMessage, 0, perPage)
		for i := 0; i < perPage; i++ {
			entities = append(entities, json.RawMessage(
				fmt.Sprintf(`{"id":"p%d-e%d"}`, pageNumber, i)))
		}
		page := Page{
			Entities:   entities,
			PageNumber: pageNumber,
			PageSize:   pageSize,
			PageCount:  pageCount,
			Total:      pageCount * perPage,
		}
		data, _ := json.Marshal(page)
		return OK(data, 200)
	}
}

func TestPagerWalksAllPages(t *testing.T) {
	calls := 0
	p := NewPager(context.Background(), pageServer(3, 4, &calls), 4, 0)

	entities, err := p.Collect()
	require.NoError(t, err)
	assert.Len(t, entities, 12)
	assert.Equal(t, 3, calls, "exactly one request per page")

	var first struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(entities[0], &first))
	assert.Equal(t, "p1-e0", first.ID)
}

func TestPagerMaxPages(t *testing.T) {
	calls := 0
	p := NewPager(context.Background(), pageServer(10, 5, &calls), 5, 2)

	entities, err := p.Collect()
	require.NoError(t, err)
	assert.Len(t, entities, 10)
	assert.Equal(t, 2, calls)
}

func TestPagerStopsOnFailure(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, pageSize, pageNumber int) CallResult {
		calls++
		if pageNumber >= 2 {
			return Fail("rate limited", 429)
		}
		return pageServer(5, 3, new(int))(context.Background(), pageSize, pageNumber)
	}

	p := NewPager(context.Background(), fetch, 3, 0)
	entities, err := p.Collect()

	// Page one's entities drain before the failure surfaces.
	assert.Len(t, entities, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Equal(t, 2, calls, "no requests after the failure")
}

func TestPagerEmptyFirstPage(t *testing.T) {
	calls := 0
	p := NewPager(context.Background(), pageServer(0, 0, &calls), 25, 0)

	entities, err := p.Collect()
	require.NoError(t, err)
	assert.Empty(t, entities)
	assert.Equal(t, 1, calls)
}

func TestPagerNextDrainsBuffer(t *testing.T) {
	calls := 0
	p := NewPager(context.Background(), pageServer(1, 3, &calls), 3, 0)

	for i := 0; i < 3; i++ {
		_, ok := p.Next()
		require.True(t, ok)
	}
	_, ok := p.Next()
	assert.False(t, ok)
	assert.NoError(t, p.Err())
	assert.Equal(t, 1, calls)
}

func TestPagerMalformedPage(t *testing.T) {
	fetch := func(context.Context, int, int) CallResult {
		return OK(json.RawMessage(`{"entities": "not-an-array"}`), 200)
	}
	p := NewPager(context.Background(), fetch, 25, 0)

	_, err := p.Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "/api/v2/users?pageSize=25&pageNumber=2",
		pagePath("/api/v2/users", 25, 2))
	assert.Equal(t, "/api/v2/routing/queues?name=*x*&pageSize=10&pageNumber=1",
		pagePath("/api/v2/routing/queues?name=*x*", 10, 1))
}
