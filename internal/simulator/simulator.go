// Package simulator provides an in-memory backend with a seeded dataset,
// used for demo mode and as a test double. Mutations are real: created and
// updated entities are visible to subsequent calls on the same instance,
// and two instances never share state.
package simulator

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/adminlayers/gcadm/internal/api"
	"github.com/adminlayers/gcadm/internal/backend"
)

// dataset is the mutable arena an instance operates on.
type dataset struct {
	users  []entity
	groups []entity
	queues []entity
	skills []entity

	userSkills   map[string][]entity
	groupMembers map[string][]string
	queueMembers map[string][]string
}

// Simulator implements backend.Service over an instance-owned dataset.
type Simulator struct {
	mu sync.Mutex
	d  *dataset
}

var _ backend.Service = (*Simulator)(nil)

// New creates a simulator with a fresh copy of the seed dataset.
func New() *Simulator {
	return &Simulator{d: seedDataset()}
}

func (s *Simulator) Users() backend.Users                 { return &simUsers{s} }
func (s *Simulator) Groups() backend.Groups               { return &simGroups{s} }
func (s *Simulator) Queues() backend.Queues               { return &simQueues{s} }
func (s *Simulator) Routing() backend.Routing             { return &simRouting{s} }
func (s *Simulator) Conversations() backend.Conversations { return &simConversations{} }

// helpers

func toRaw(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return data
}

func okEntity(e any) api.CallResult {
	return api.OK(toRaw(e), 200)
}

func notFound(kind string) api.CallResult {
	return api.Fail(kind+" not found", 404)
}

// pageOf windows entities into the standard page shape.
func pageOf(entities []entity, pageSize, pageNumber int) api.CallResult {
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageNumber <= 0 {
		pageNumber = 1
	}
	total := len(entities)
	pageCount := (total + pageSize - 1) / pageSize

	start := (pageNumber - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	raw := make([]json.RawMessage, 0, end-start)
	for _, e := range entities[start:end] {
		raw = append(raw, toRaw(e))
	}
	return api.OK(toRaw(api.Page{
		Entities:   raw,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		PageCount:  pageCount,
		Total:      total,
	}), 200)
}

func findEntity(entities []entity, id string) (entity, int) {
	for i, e := range entities {
		if e["id"] == id {
			return e, i
		}
	}
	return nil, -1
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func strField(e entity, key string) string {
	v, _ := e[key].(string)
	return v
}

func rawSlice(entities []entity) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(entities))
	for _, e := range entities {
		out = append(out, toRaw(e))
	}
	return out
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// users

type simUsers struct{ s *Simulator }

func (u *simUsers) Get(_ context.Context, id string) api.CallResult {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if e, _ := findEntity(u.s.d.users, id); e != nil {
		return okEntity(e)
	}
	return notFound("user")
}

func (u *simUsers) Search(_ context.Context, query string) ([]json.RawMessage, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	var hits []entity
	for _, e := range u.s.d.users {
		if containsFold(strField(e, "name"), query) || containsFold(strField(e, "email"), query) {
			hits = append(hits, e)
		}
	}
	return rawSlice(hits), nil
}

func (u *simUsers) SearchByEmail(_ context.Context, email string) api.CallResult {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, e := range u.s.d.users {
		if strings.EqualFold(strField(e, "email"), email) {
			return okEntity(e)
		}
	}
	return api.Fail("no user with email "+email, 404)
}

func (u *simUsers) ListPage(_ context.Context, pageSize, pageNumber int) api.CallResult {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return pageOf(u.s.d.users, pageSize, pageNumber)
}

func (u *simUsers) Update(_ context.Context, id string, fields map[string]any) api.CallResult {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	e, _ := findEntity(u.s.d.users, id)
	if e == nil {
		return notFound("user")
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		e[k] = v
	}
	return okEntity(e)
}

func (u *simUsers) GetQueues(_ context.Context, id string) ([]json.RawMessage, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	var queues []entity
	for _, q := range u.s.d.queues {
		for _, member := range u.s.d.queueMembers[strField(q, "id")] {
			if member == id {
				queues = append(queues, q)
				break
			}
		}
	}
	return rawSlice(queues), nil
}

func (u *simUsers) GetGroups(_ context.Context, id string) api.CallResult {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	e, _ := findEntity(u.s.d.users, id)
	if e == nil {
		return notFound("user")
	}

	var groups []entity
	for _, g := range u.s.d.groups {
		for _, member := range u.s.d.groupMembers[strField(g, "id")] {
			if member == id {
				groups = append(groups, g)
				break
			}
		}
	}

	expanded := entity{}
	for k, v := range e {
		expanded[k] = v
	}
	expanded["groups"] = groups
	return okEntity(expanded)
}

// groups

type simGroups struct{ s *Simulator }

func (g *simGroups) Get(_ context.Context, id string) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	if e, _ := findEntity(g.s.d.groups, id); e != nil {
		return okEntity(e)
	}
	return notFound("group")
}

func (g *simGroups) Search(_ context.Context, query string) ([]json.RawMessage, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	var hits []entity
	for _, e := range g.s.d.groups {
		if containsFold(strField(e, "name"), query) {
			hits = append(hits, e)
		}
	}
	return rawSlice(hits), nil
}

func (g *simGroups) ListPage(_ context.Context, pageSize, pageNumber int) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	return pageOf(g.s.d.groups, pageSize, pageNumber)
}

func (g *simGroups) Create(_ context.Context, name, description string) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	e := entity{
		"id":           newID(),
		"name":         name,
		"description":  description,
		"state":        "active",
		"type":         "official",
		"visibility":   "public",
		"rulesVisible": true,
		"version":      1,
	}
	g.s.d.groups = append(g.s.d.groups, e)
	return api.OK(toRaw(e), 201)
}

func (g *simGroups) Update(_ context.Context, id string, fields map[string]any) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	e, _ := findEntity(g.s.d.groups, id)
	if e == nil {
		return notFound("group")
	}
	for k, v := range fields {
		if k == "id" || k == "version" {
			continue
		}
		e[k] = v
	}
	e["version"] = intField(e, "version") + 1
	return okEntity(e)
}

func (g *simGroups) Delete(_ context.Context, id string) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	_, i := findEntity(g.s.d.groups, id)
	if i < 0 {
		return notFound("group")
	}
	g.s.d.groups = append(g.s.d.groups[:i], g.s.d.groups[i+1:]...)
	delete(g.s.d.groupMembers, id)
	return api.OK(nil, 204)
}

func (g *simGroups) GetMembers(_ context.Context, id string) ([]json.RawMessage, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	var members []entity
	for _, uid := range g.s.d.groupMembers[id] {
		if e, _ := findEntity(g.s.d.users, uid); e != nil {
			members = append(members, e)
		}
	}
	return rawSlice(members), nil
}

func (g *simGroups) AddMembers(_ context.Context, id string, memberIDs []string, version int) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	e, _ := findEntity(g.s.d.groups, id)
	if e == nil {
		return notFound("group")
	}

	added := 0
	for _, uid := range memberIDs {
		if !containsString(g.s.d.groupMembers[id], uid) {
			g.s.d.groupMembers[id] = append(g.s.d.groupMembers[id], uid)
			added++
		}
	}
	e["version"] = intField(e, "version") + 1
	return okEntity(entity{"added": added})
}

func (g *simGroups) RemoveMembers(_ context.Context, id string, memberIDs []string) api.CallResult {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	e, _ := findEntity(g.s.d.groups, id)
	if e == nil {
		return notFound("group")
	}

	kept := g.s.d.groupMembers[id][:0]
	for _, uid := range g.s.d.groupMembers[id] {
		if !containsString(memberIDs, uid) {
			kept = append(kept, uid)
		}
	}
	g.s.d.groupMembers[id] = kept
	e["version"] = intField(e, "version") + 1
	return api.OK(nil, 204)
}

// queues

type simQueues struct{ s *Simulator }

func (q *simQueues) Get(_ context.Context, id string) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if e, _ := findEntity(q.s.d.queues, id); e != nil {
		return okEntity(e)
	}
	return notFound("queue")
}

func (q *simQueues) Search(_ context.Context, name string) ([]json.RawMessage, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	var hits []entity
	for _, e := range q.s.d.queues {
		if containsFold(strField(e, "name"), name) {
			hits = append(hits, e)
		}
	}
	return rawSlice(hits), nil
}

func (q *simQueues) ListPage(_ context.Context, pageSize, pageNumber int) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return pageOf(q.s.d.queues, pageSize, pageNumber)
}

func (q *simQueues) Create(_ context.Context, name, description string) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	e := entity{
		"id":          newID(),
		"name":        name,
		"description": description,
		"state":       "active",
	}
	q.s.d.queues = append(q.s.d.queues, e)
	return api.OK(toRaw(e), 201)
}

func (q *simQueues) Update(_ context.Context, id string, fields map[string]any) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	e, _ := findEntity(q.s.d.queues, id)
	if e == nil {
		return notFound("queue")
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		e[k] = v
	}
	return okEntity(e)
}

func (q *simQueues) Delete(_ context.Context, id string) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	_, i := findEntity(q.s.d.queues, id)
	if i < 0 {
		return notFound("queue")
	}
	q.s.d.queues = append(q.s.d.queues[:i], q.s.d.queues[i+1:]...)
	delete(q.s.d.queueMembers, id)
	return api.OK(nil, 204)
}

func (q *simQueues) GetMembers(_ context.Context, id string) ([]json.RawMessage, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	var members []entity
	for _, uid := range q.s.d.queueMembers[id] {
		if e, _ := findEntity(q.s.d.users, uid); e != nil {
			members = append(members, e)
		}
	}
	return rawSlice(members), nil
}

func (q *simQueues) AddMembers(_ context.Context, id string, memberIDs []string) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if e, _ := findEntity(q.s.d.queues, id); e == nil {
		return notFound("queue")
	}
	for _, uid := range memberIDs {
		if !containsString(q.s.d.queueMembers[id], uid) {
			q.s.d.queueMembers[id] = append(q.s.d.queueMembers[id], uid)
		}
	}
	return api.OK(nil, 204)
}

func (q *simQueues) RemoveMembers(_ context.Context, id string, memberIDs []string) api.CallResult {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if e, _ := findEntity(q.s.d.queues, id); e == nil {
		return notFound("queue")
	}
	kept := q.s.d.queueMembers[id][:0]
	for _, uid := range q.s.d.queueMembers[id] {
		if !containsString(memberIDs, uid) {
			kept = append(kept, uid)
		}
	}
	q.s.d.queueMembers[id] = kept
	return api.OK(nil, 204)
}

// routing

type simRouting struct{ s *Simulator }

func (r *simRouting) Skills(_ context.Context) ([]json.RawMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return rawSlice(r.s.d.skills), nil
}

func (r *simRouting) Skill(_ context.Context, id string) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, _ := findEntity(r.s.d.skills, id); e != nil {
		return okEntity(e)
	}
	return notFound("skill")
}

func (r *simRouting) ListSkillsPage(_ context.Context, pageSize, pageNumber int) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return pageOf(r.s.d.skills, pageSize, pageNumber)
}

func (r *simRouting) CreateSkill(_ context.Context, name string) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := entity{"id": newID(), "name": name, "state": "active"}
	r.s.d.skills = append(r.s.d.skills, e)
	return api.OK(toRaw(e), 201)
}

func (r *simRouting) UpdateSkill(_ context.Context, id string, fields map[string]any) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, _ := findEntity(r.s.d.skills, id)
	if e == nil {
		return notFound("skill")
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		e[k] = v
	}
	return okEntity(e)
}

func (r *simRouting) DeleteSkill(_ context.Context, id string) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, i := findEntity(r.s.d.skills, id)
	if i < 0 {
		return notFound("skill")
	}
	r.s.d.skills = append(r.s.d.skills[:i], r.s.d.skills[i+1:]...)
	return api.OK(nil, 204)
}

func (r *simRouting) UserSkills(_ context.Context, userID string) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, _ := findEntity(r.s.d.users, userID); e == nil {
		return notFound("user")
	}
	return okEntity(entity{"entities": r.s.d.userSkills[userID]})
}

func (r *simRouting) AddUserSkill(_ context.Context, userID, skillID string, proficiency float64) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, _ := findEntity(r.s.d.users, userID); e == nil {
		return notFound("user")
	}
	skill, _ := findEntity(r.s.d.skills, skillID)
	if skill == nil {
		return notFound("skill")
	}

	assigned := entity{
		"id":          skillID,
		"name":        skill["name"],
		"state":       "active",
		"proficiency": proficiency,
	}
	for i, existing := range r.s.d.userSkills[userID] {
		if existing["id"] == skillID {
			r.s.d.userSkills[userID][i] = assigned
			return okEntity(assigned)
		}
	}
	r.s.d.userSkills[userID] = append(r.s.d.userSkills[userID], assigned)
	return okEntity(assigned)
}

func (r *simRouting) RemoveUserSkill(_ context.Context, userID, skillID string) api.CallResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	skills := r.s.d.userSkills[userID]
	for i, existing := range skills {
		if existing["id"] == skillID {
			r.s.d.userSkills[userID] = append(skills[:i], skills[i+1:]...)
			return api.OK(nil, 204)
		}
	}
	return notFound("user skill")
}

func (r *simRouting) Languages(_ context.Context) ([]json.RawMessage, error) {
	return rawSlice(seedLanguages), nil
}

func (r *simRouting) WrapupCodes(_ context.Context) ([]json.RawMessage, error) {
	return rawSlice(seedWrapupCodes), nil
}

// conversations

type simConversations struct{}

const demoUnavailable = "Not available in demo mode"

func (simConversations) Active(context.Context) api.CallResult {
	return api.Fail(demoUnavailable, 501)
}

func (simConversations) Get(context.Context, string) api.CallResult {
	return api.Fail(demoUnavailable, 501)
}

func (simConversations) Details(context.Context, string) api.CallResult {
	return api.Fail(demoUnavailable, 501)
}

func (simConversations) Disconnect(context.Context, string) api.CallResult {
	return api.Fail(demoUnavailable, 501)
}

func (simConversations) AnalyticsQuery(context.Context, string) api.CallResult {
	return api.OK(toRaw(entity{"conversations": []entity{}}), 200)
}

func intField(e entity, key string) int {
	switch v := e[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
