package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// UsersClient covers the /api/v2/users surface.
type UsersClient struct {
	c *Client
}

// Users returns the users resource client.
func (c *Client) Users() *UsersClient {
	return &UsersClient{c: c}
}

// searchQuery is the body shape of the search endpoints.
type searchQuery struct {
	PageSize int         `json:"pageSize,omitempty"`
	Query    []queryTerm `json:"query"`
}

type queryTerm struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields,omitempty"`
	Value  string   `json:"value"`
}

// searchResults extracts the results array from a search response.
func searchResults(res CallResult) ([]json.RawMessage, error) {
	if !res.Success {
		return nil, fmt.Errorf("search failed: %s", res.Err)
	}
	var payload struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(res.Data, &payload); err != nil {
		return nil, fmt.Errorf("decoding search results: %w", err)
	}
	return payload.Results, nil
}

func (u *UsersClient) Get(ctx context.Context, id string) CallResult {
	return u.c.Get(ctx, "/api/v2/users/"+url.PathEscape(id))
}

// Search finds users matching the query string across all indexed fields.
func (u *UsersClient) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	return searchResults(u.c.Post(ctx, "/api/v2/users/search", searchQuery{
		Query: []queryTerm{{
			Type:  "QUERY_STRING",
			Value: query,
		}},
	}))
}

// SearchByEmail resolves a user by exact email match. Fails with a 404
// result when no user matches.
func (u *UsersClient) SearchByEmail(ctx context.Context, email string) CallResult {
	res := u.c.Post(ctx, "/api/v2/users/search", searchQuery{
		Query: []queryTerm{{
			Type:   "EXACT",
			Fields: []string{"email"},
			Value:  email,
		}},
	})
	if !res.Success {
		return res
	}

	results, err := searchResults(res)
	if err != nil {
		return Fail(err.Error(), res.StatusCode)
	}
	if len(results) == 0 {
		return Fail("no user with email "+email, 404)
	}
	return OK(results[0], res.StatusCode)
}

func (u *UsersClient) ListPage(ctx context.Context, pageSize, pageNumber int) CallResult {
	return u.c.Get(ctx, pagePath("/api/v2/users", pageSize, pageNumber))
}

func (u *UsersClient) Update(ctx context.Context, id string, fields map[string]any) CallResult {
	return u.c.Patch(ctx, "/api/v2/users/"+url.PathEscape(id), fields)
}

// GetQueues lists every queue the user belongs to.
func (u *UsersClient) GetQueues(ctx context.Context, id string) ([]json.RawMessage, error) {
	base := "/api/v2/users/" + url.PathEscape(id) + "/queues"
	pager := NewPager(ctx, func(ctx context.Context, pageSize, pageNumber int) CallResult {
		return u.c.Get(ctx, pagePath(base, pageSize, pageNumber))
	}, 25, 0)
	return pager.Collect()
}

// GetGroups fetches the user record with group membership expanded.
func (u *UsersClient) GetGroups(ctx context.Context, id string) CallResult {
	return u.c.Get(ctx, "/api/v2/users/"+url.PathEscape(id)+"?expand=groups")
}
