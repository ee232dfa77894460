package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// RoutingClient covers skills, languages, and wrap-up codes under
// /api/v2/routing plus the per-user routing skill assignments.
type RoutingClient struct {
	c *Client
}

// Routing returns the routing resource client.
func (c *Client) Routing() *RoutingClient {
	return &RoutingClient{c: c}
}

// Skills lists every routing skill in the org.
func (r *RoutingClient) Skills(ctx context.Context) ([]json.RawMessage, error) {
	pager := NewPager(ctx, func(ctx context.Context, pageSize, pageNumber int) CallResult {
		return r.c.Get(ctx, pagePath("/api/v2/routing/skills", pageSize, pageNumber))
	}, 50, 0)
	return pager.Collect()
}

func (r *RoutingClient) Skill(ctx context.Context, id string) CallResult {
	return r.c.Get(ctx, "/api/v2/routing/skills/"+url.PathEscape(id))
}

func (r *RoutingClient) ListSkillsPage(ctx context.Context, pageSize, pageNumber int) CallResult {
	return r.c.Get(ctx, pagePath("/api/v2/routing/skills", pageSize, pageNumber))
}

func (r *RoutingClient) CreateSkill(ctx context.Context, name string) CallResult {
	return r.c.Post(ctx, "/api/v2/routing/skills", map[string]any{"name": name})
}

func (r *RoutingClient) UpdateSkill(ctx context.Context, id string, fields map[string]any) CallResult {
	return r.c.Put(ctx, "/api/v2/routing/skills/"+url.PathEscape(id), fields)
}

func (r *RoutingClient) DeleteSkill(ctx context.Context, id string) CallResult {
	return r.c.Delete(ctx, "/api/v2/routing/skills/"+url.PathEscape(id))
}

// UserSkills lists the routing skills assigned to a user.
func (r *RoutingClient) UserSkills(ctx context.Context, userID string) CallResult {
	return r.c.Get(ctx, "/api/v2/users/"+url.PathEscape(userID)+"/routingskills")
}

// AddUserSkill assigns a skill to a user with the given proficiency (0-5).
func (r *RoutingClient) AddUserSkill(ctx context.Context, userID, skillID string, proficiency float64) CallResult {
	return r.c.Post(ctx, "/api/v2/users/"+url.PathEscape(userID)+"/routingskills", map[string]any{
		"id":          skillID,
		"proficiency": proficiency,
	})
}

func (r *RoutingClient) RemoveUserSkill(ctx context.Context, userID, skillID string) CallResult {
	return r.c.Delete(ctx, "/api/v2/users/"+url.PathEscape(userID)+"/routingskills/"+url.PathEscape(skillID))
}

// Languages lists the org's routing languages.
func (r *RoutingClient) Languages(ctx context.Context) ([]json.RawMessage, error) {
	pager := NewPager(ctx, func(ctx context.Context, pageSize, pageNumber int) CallResult {
		return r.c.Get(ctx, pagePath("/api/v2/routing/languages", pageSize, pageNumber))
	}, 50, 0)
	return pager.Collect()
}

// WrapupCodes lists the org's wrap-up codes.
func (r *RoutingClient) WrapupCodes(ctx context.Context) ([]json.RawMessage, error) {
	pager := NewPager(ctx, func(ctx context.Context, pageSize, pageNumber int) CallResult {
		return r.c.Get(ctx, pagePath("/api/v2/routing/wrapupcodes", pageSize, pageNumber))
	}, 50, 0)
	return pager.Collect()
}
