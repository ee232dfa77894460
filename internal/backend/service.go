// Package backend defines the capability surface a resource backend must
// provide, the live implementation over the HTTP client, and a runtime
// validator used as a startup diagnostic.
package backend

import (
	"context"
	"encoding/json"

	"github.com/adminlayers/gcadm/internal/api"
)

// Users is the user directory capability.
type Users interface {
	Get(ctx context.Context, id string) api.CallResult
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
	SearchByEmail(ctx context.Context, email string) api.CallResult
	ListPage(ctx context.Context, pageSize, pageNumber int) api.CallResult
	Update(ctx context.Context, id string, fields map[string]any) api.CallResult
	GetQueues(ctx context.Context, id string) ([]json.RawMessage, error)
	GetGroups(ctx context.Context, id string) api.CallResult
}

// Groups is the group management capability.
type Groups interface {
	Get(ctx context.Context, id string) api.CallResult
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
	ListPage(ctx context.Context, pageSize, pageNumber int) api.CallResult
	Create(ctx context.Context, name, description string) api.CallResult
	Update(ctx context.Context, id string, fields map[string]any) api.CallResult
	Delete(ctx context.Context, id string) api.CallResult
	GetMembers(ctx context.Context, id string) ([]json.RawMessage, error)
	AddMembers(ctx context.Context, id string, memberIDs []string, version int) api.CallResult
	RemoveMembers(ctx context.Context, id string, memberIDs []string) api.CallResult
}

// Queues is the routing queue capability.
type Queues interface {
	Get(ctx context.Context, id string) api.CallResult
	Search(ctx context.Context, name string) ([]json.RawMessage, error)
	ListPage(ctx context.Context, pageSize, pageNumber int) api.CallResult
	Create(ctx context.Context, name, description string) api.CallResult
	Update(ctx context.Context, id string, fields map[string]any) api.CallResult
	Delete(ctx context.Context, id string) api.CallResult
	GetMembers(ctx context.Context, id string) ([]json.RawMessage, error)
	AddMembers(ctx context.Context, id string, memberIDs []string) api.CallResult
	RemoveMembers(ctx context.Context, id string, memberIDs []string) api.CallResult
}

// Routing covers skills, per-user skill assignments, languages, and
// wrap-up codes.
type Routing interface {
	Skills(ctx context.Context) ([]json.RawMessage, error)
	Skill(ctx context.Context, id string) api.CallResult
	ListSkillsPage(ctx context.Context, pageSize, pageNumber int) api.CallResult
	CreateSkill(ctx context.Context, name string) api.CallResult
	UpdateSkill(ctx context.Context, id string, fields map[string]any) api.CallResult
	DeleteSkill(ctx context.Context, id string) api.CallResult
	UserSkills(ctx context.Context, userID string) api.CallResult
	AddUserSkill(ctx context.Context, userID, skillID string, proficiency float64) api.CallResult
	RemoveUserSkill(ctx context.Context, userID, skillID string) api.CallResult
	Languages(ctx context.Context) ([]json.RawMessage, error)
	WrapupCodes(ctx context.Context) ([]json.RawMessage, error)
}

// Conversations covers live conversations and analytics queries.
type Conversations interface {
	Active(ctx context.Context) api.CallResult
	Get(ctx context.Context, id string) api.CallResult
	Details(ctx context.Context, id string) api.CallResult
	Disconnect(ctx context.Context, id string) api.CallResult
	AnalyticsQuery(ctx context.Context, interval string) api.CallResult
}

// Service is the full backend surface the commands operate on.
type Service interface {
	Users() Users
	Groups() Groups
	Queues() Queues
	Routing() Routing
	Conversations() Conversations
}
