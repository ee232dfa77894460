package api

import (
	"context"
	"net/url"
)

// ConversationsClient covers active conversations and the conversation
// analytics query endpoint.
type ConversationsClient struct {
	c *Client
}

// Conversations returns the conversations resource client.
func (c *Client) Conversations() *ConversationsClient {
	return &ConversationsClient{c: c}
}

// Active lists conversations the token's org currently has in flight.
func (cc *ConversationsClient) Active(ctx context.Context) CallResult {
	return cc.c.Get(ctx, "/api/v2/conversations")
}

func (cc *ConversationsClient) Get(ctx context.Context, id string) CallResult {
	return cc.c.Get(ctx, "/api/v2/conversations/"+url.PathEscape(id))
}

// Details fetches the analytics record for one conversation.
func (cc *ConversationsClient) Details(ctx context.Context, id string) CallResult {
	return cc.c.Get(ctx, "/api/v2/analytics/conversations/"+url.PathEscape(id)+"/details")
}

// Disconnect force-terminates a conversation.
func (cc *ConversationsClient) Disconnect(ctx context.Context, id string) CallResult {
	return cc.c.Post(ctx, "/api/v2/conversations/"+url.PathEscape(id)+"/disconnect", nil)
}

// AnalyticsQuery runs a conversation details query over the given ISO-8601
// interval (e.g. 2026-08-01T00:00:00Z/2026-08-02T00:00:00Z).
func (cc *ConversationsClient) AnalyticsQuery(ctx context.Context, interval string) CallResult {
	return cc.c.Post(ctx, "/api/v2/analytics/conversations/details/query", map[string]any{
		"interval": interval,
	})
}
