package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// QueuesClient covers the /api/v2/routing/queues surface.
type QueuesClient struct {
	c *Client
}

// Queues returns the queues resource client.
func (c *Client) Queues() *QueuesClient {
	return &QueuesClient{c: c}
}

func (q *QueuesClient) Get(ctx context.Context, id string) CallResult {
	return q.c.Get(ctx, "/api/v2/routing/queues/"+url.PathEscape(id))
}

// Search finds queues by name.
func (q *QueuesClient) Search(ctx context.Context, name string) ([]json.RawMessage, error) {
	return searchResults(q.c.Post(ctx, "/api/v2/routing/queues/search", searchQuery{
		PageSize: 100,
		Query: []queryTerm{{
			Type:   "CONTAINS",
			Fields: []string{"name"},
			Value:  name,
		}},
	}))
}

func (q *QueuesClient) ListPage(ctx context.Context, pageSize, pageNumber int) CallResult {
	return q.c.Get(ctx, pagePath("/api/v2/routing/queues", pageSize, pageNumber))
}

func (q *QueuesClient) Create(ctx context.Context, name, description string) CallResult {
	body := map[string]any{"name": name}
	if description != "" {
		body["description"] = description
	}
	return q.c.Post(ctx, "/api/v2/routing/queues", body)
}

func (q *QueuesClient) Update(ctx context.Context, id string, fields map[string]any) CallResult {
	return q.c.Put(ctx, "/api/v2/routing/queues/"+url.PathEscape(id), fields)
}

func (q *QueuesClient) Delete(ctx context.Context, id string) CallResult {
	return q.c.Delete(ctx, "/api/v2/routing/queues/"+url.PathEscape(id)+"?forceDelete=true")
}

// GetMembers lists all members of a queue.
func (q *QueuesClient) GetMembers(ctx context.Context, id string) ([]json.RawMessage, error) {
	base := "/api/v2/routing/queues/" + url.PathEscape(id) + "/members"
	pager := NewPager(ctx, func(ctx context.Context, pageSize, pageNumber int) CallResult {
		return q.c.Get(ctx, pagePath(base, pageSize, pageNumber))
	}, 25, 0)
	return pager.Collect()
}

type queueMember struct {
	ID     string `json:"id"`
	Joined bool   `json:"joined"`
}

// AddMembers joins users to a queue.
func (q *QueuesClient) AddMembers(ctx context.Context, id string, memberIDs []string) CallResult {
	return q.c.Post(ctx, "/api/v2/routing/queues/"+url.PathEscape(id)+"/members",
		queueMembership(memberIDs, true))
}

// RemoveMembers detaches users from a queue. The endpoint reuses the member
// POST with joined=false.
func (q *QueuesClient) RemoveMembers(ctx context.Context, id string, memberIDs []string) CallResult {
	return q.c.Post(ctx, "/api/v2/routing/queues/"+url.PathEscape(id)+"/members",
		queueMembership(memberIDs, false))
}

func queueMembership(memberIDs []string, joined bool) []queueMember {
	members := make([]queueMember, 0, len(memberIDs))
	for _, m := range memberIDs {
		members = append(members, queueMember{ID: m, Joined: joined})
	}
	return members
}
