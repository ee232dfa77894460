package simulator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminlayers/gcadm/internal/api"
)

func decodeEntity(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var e map[string]any
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestInstancesDoNotShareState(t *testing.T) {
	ctx := context.Background()
	a, b := New(), New()

	res := a.Queues().Create(ctx, "Overflow", "")
	require.True(t, res.Success)

	aQueues, err := a.Queues().Search(ctx, "Overflow")
	require.NoError(t, err)
	assert.Len(t, aQueues, 1)

	bQueues, err := b.Queues().Search(ctx, "Overflow")
	require.NoError(t, err)
	assert.Empty(t, bQueues)
}

func TestUsersGetAndSearch(t *testing.T) {
	ctx := context.Background()
	s := New()

	res := s.Users().Get(ctx, "user-0000")
	require.True(t, res.Success)
	e := decodeEntity(t, res.Data)
	assert.Equal(t, "Alice Johnson", e["name"])
	assert.Equal(t, "alice.johnson@acmecorp.com", e["email"])

	res = s.Users().Get(ctx, "user-9999")
	assert.False(t, res.Success)
	assert.Equal(t, 404, res.StatusCode)

	hits, err := s.Users().Search(ctx, "garcia")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Maria Garcia", decodeEntity(t, hits[0])["name"])
}

func TestUsersSearchByEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	res := s.Users().SearchByEmail(ctx, "BOB.MARTINEZ@acmecorp.com")
	require.True(t, res.Success)
	assert.Equal(t, "Bob Martinez", decodeEntity(t, res.Data)["name"])

	res = s.Users().SearchByEmail(ctx, "nobody@acmecorp.com")
	assert.False(t, res.Success)
	assert.Equal(t, 404, res.StatusCode)
}

func TestUsersUpdatePersists(t *testing.T) {
	ctx := context.Background()
	s := New()

	res := s.Users().Update(ctx, "user-0003", map[string]any{"title": "Senior Agent"})
	require.True(t, res.Success)

	res = s.Users().Get(ctx, "user-0003")
	require.True(t, res.Success)
	assert.Equal(t, "Senior Agent", decodeEntity(t, res.Data)["title"])
}

func TestListPageShape(t *testing.T) {
	ctx := context.Background()
	s := New()

	res := s.Users().ListPage(ctx, 10, 2)
	require.True(t, res.Success)

	var page api.Page
	require.NoError(t, json.Unmarshal(res.Data, &page))
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 30, page.Total)
	assert.Len(t, page.Entities, 10)
}

func TestGroupLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	created := s.Groups().Create(ctx, "Night Shift", "After-hours team")
	require.True(t, created.Success)
	assert.Equal(t, 201, created.StatusCode)
	id := decodeEntity(t, created.Data)["id"].(string)
	assert.NotEmpty(t, id)

	res := s.Groups().AddMembers(ctx, id, []string{"user-0001", "user-0002"}, 1)
	require.True(t, res.Success)
	assert.Equal(t, float64(2), decodeEntity(t, res.Data)["added"])

	members, err := s.Groups().GetMembers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	res = s.Groups().RemoveMembers(ctx, id, []string{"user-0001"})
	require.True(t, res.Success)
	members, err = s.Groups().GetMembers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	res = s.Groups().Delete(ctx, id)
	require.True(t, res.Success)
	assert.Equal(t, 204, res.StatusCode)
	assert.False(t, s.Groups().Get(ctx, id).Success)
}

func TestGroupUpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	s := New()

	res := s.Groups().Update(ctx, "grp-0001", map[string]any{"description": "updated"})
	require.True(t, res.Success)
	e := decodeEntity(t, res.Data)
	assert.Equal(t, "updated", e["description"])
	assert.Equal(t, float64(2), e["version"])
}

func TestQueueMembership(t *testing.T) {
	ctx := context.Background()
	s := New()

	members, err := s.Queues().GetMembers(ctx, "queue-0005")
	require.NoError(t, err)
	assert.Len(t, members, 4)

	res := s.Queues().AddMembers(ctx, "queue-0005", []string{"user-0010"})
	require.True(t, res.Success)
	members, err = s.Queues().GetMembers(ctx, "queue-0005")
	require.NoError(t, err)
	assert.Len(t, members, 5)

	// Re-adding the same member is a no-op.
	s.Queues().AddMembers(ctx, "queue-0005", []string{"user-0010"})
	members, _ = s.Queues().GetMembers(ctx, "queue-0005")
	assert.Len(t, members, 5)
}

func TestUserQueuesReflectMembership(t *testing.T) {
	ctx := context.Background()
	s := New()

	// user-0000 is seeded into queues 1, 2, and 5.
	queues, err := s.Users().GetQueues(ctx, "user-0000")
	require.NoError(t, err)
	assert.Len(t, queues, 3)
}

func TestSkillAssignment(t *testing.T) {
	ctx := context.Background()
	s := New()

	created := s.Routing().CreateSkill(ctx, "German")
	require.True(t, created.Success)
	skillID := decodeEntity(t, created.Data)["id"].(string)

	res := s.Routing().AddUserSkill(ctx, "user-0000", skillID, 3.5)
	require.True(t, res.Success)

	res = s.Routing().UserSkills(ctx, "user-0000")
	require.True(t, res.Success)
	var payload struct {
		Entities []map[string]any `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &payload))

	var found bool
	for _, sk := range payload.Entities {
		if sk["id"] == skillID {
			found = true
			assert.Equal(t, 3.5, sk["proficiency"])
		}
	}
	assert.True(t, found)

	res = s.Routing().RemoveUserSkill(ctx, "user-0000", skillID)
	require.True(t, res.Success)
	res = s.Routing().RemoveUserSkill(ctx, "user-0000", skillID)
	assert.False(t, res.Success)
}

func TestAddUserSkillUnknownSkill(t *testing.T) {
	s := New()
	res := s.Routing().AddUserSkill(context.Background(), "user-0000", "skill-nope", 1)
	assert.False(t, res.Success)
	assert.Equal(t, 404, res.StatusCode)
}

func TestConversationsUnavailable(t *testing.T) {
	ctx := context.Background()
	s := New()

	res := s.Conversations().Active(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, 501, res.StatusCode)
	assert.Equal(t, "Not available in demo mode", res.Err)

	res = s.Conversations().Get(ctx, "conv-1")
	assert.Equal(t, 501, res.StatusCode)

	res = s.Conversations().AnalyticsQuery(ctx, "2026-08-01T00:00:00Z/2026-08-02T00:00:00Z")
	assert.True(t, res.Success)
}

func TestLanguagesAndWrapupCodes(t *testing.T) {
	ctx := context.Background()
	s := New()

	langs, err := s.Routing().Languages(ctx)
	require.NoError(t, err)
	assert.Len(t, langs, 2)

	codes, err := s.Routing().WrapupCodes(ctx)
	require.NoError(t, err)
	assert.Len(t, codes, 3)
}
