package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// GroupsClient covers the /api/v2/groups surface.
type GroupsClient struct {
	c *Client
}

// Groups returns the groups resource client.
func (c *Client) Groups() *GroupsClient {
	return &GroupsClient{c: c}
}

func (g *GroupsClient) Get(ctx context.Context, id string) CallResult {
	return g.c.Get(ctx, "/api/v2/groups/"+url.PathEscape(id))
}

// Search finds groups by name.
func (g *GroupsClient) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	return searchResults(g.c.Post(ctx, "/api/v2/groups/search", searchQuery{
		PageSize: 100,
		Query: []queryTerm{{
			Type:   "CONTAINS",
			Fields: []string{"name"},
			Value:  query,
		}},
	}))
}

func (g *GroupsClient) ListPage(ctx context.Context, pageSize, pageNumber int) CallResult {
	return g.c.Get(ctx, pagePath("/api/v2/groups", pageSize, pageNumber))
}

// Create makes an official public group with the given name.
func (g *GroupsClient) Create(ctx context.Context, name, description string) CallResult {
	body := map[string]any{
		"name":         name,
		"type":         "official",
		"visibility":   "public",
		"rulesVisible": true,
	}
	if description != "" {
		body["description"] = description
	}
	return g.c.Post(ctx, "/api/v2/groups", body)
}

// Update replaces mutable group fields. The fields map must include the
// current version, which the API uses for optimistic concurrency.
func (g *GroupsClient) Update(ctx context.Context, id string, fields map[string]any) CallResult {
	return g.c.Put(ctx, "/api/v2/groups/"+url.PathEscape(id), fields)
}

func (g *GroupsClient) Delete(ctx context.Context, id string) CallResult {
	return g.c.Delete(ctx, "/api/v2/groups/"+url.PathEscape(id))
}

// GetMembers lists all members of a group.
func (g *GroupsClient) GetMembers(ctx context.Context, id string) ([]json.RawMessage, error) {
	base := "/api/v2/groups/" + url.PathEscape(id) + "/members"
	pager := NewPager(ctx, func(ctx context.Context, pageSize, pageNumber int) CallResult {
		return g.c.Get(ctx, pagePath(base, pageSize, pageNumber))
	}, 25, 0)
	return pager.Collect()
}

// AddMembers adds users to a group at the given group version.
func (g *GroupsClient) AddMembers(ctx context.Context, id string, memberIDs []string, version int) CallResult {
	return g.c.Post(ctx, "/api/v2/groups/"+url.PathEscape(id)+"/members", map[string]any{
		"memberIds": memberIDs,
		"version":   version,
	})
}

// RemoveMembers removes users from a group.
func (g *GroupsClient) RemoveMembers(ctx context.Context, id string, memberIDs []string) CallResult {
	ids := url.QueryEscape(strings.Join(memberIDs, ","))
	return g.c.Delete(ctx, "/api/v2/groups/"+url.PathEscape(id)+"/members?ids="+ids)
}
