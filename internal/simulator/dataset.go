package simulator

import (
	"fmt"
	"strings"
)

// entity is a loosely typed API object, kept as a map so field updates
// behave like the real API's partial updates.
type entity = map[string]any

type seedUser struct {
	name, department, title string
}

var seedUsers = []seedUser{
	{"Alice Johnson", "Support", "Senior Agent"},
	{"Bob Martinez", "Support", "Team Lead"},
	{"Carol Williams", "Sales", "Account Executive"},
	{"David Chen", "Support", "Agent"},
	{"Emma Davis", "Engineering", "Developer"},
	{"Frank Wilson", "Support", "Senior Agent"},
	{"Grace Lee", "Sales", "Sales Manager"},
	{"Henry Brown", "Support", "Agent"},
	{"Iris Taylor", "QA", "Quality Analyst"},
	{"James Anderson", "Support", "Agent"},
	{"Karen Thomas", "Support", "Supervisor"},
	{"Liam Jackson", "Sales", "SDR"},
	{"Maria Garcia", "Support", "Agent"},
	{"Nathan White", "Engineering", "DevOps Engineer"},
	{"Olivia Harris", "Support", "Senior Agent"},
	{"Patrick Martin", "Support", "Agent"},
	{"Quinn Robinson", "Sales", "Account Manager"},
	{"Rachel Clark", "Support", "Agent"},
	{"Samuel Lewis", "QA", "QA Lead"},
	{"Tina Walker", "Support", "Agent"},
	{"Ulysses Hall", "Support", "Agent"},
	{"Victoria Allen", "Sales", "VP Sales"},
	{"William Young", "Engineering", "CTO"},
	{"Xena King", "Support", "Agent"},
	{"Yuki Wright", "Support", "Trainer"},
	{"Zachary Scott", "Support", "Agent"},
	{"Angela Adams", "HR", "HR Manager"},
	{"Brandon Baker", "Support", "Agent"},
	{"Catherine Nelson", "Support", "Senior Agent"},
	{"Derek Hill", "Support", "Agent"},
}

var seedSkillNames = []string{
	"English", "Spanish", "French", "Billing", "Technical Support",
	"Salesforce", "Escalation Handling", "Chat Support", "Email Support",
	"Product Knowledge", "Returns & Refunds", "Account Management",
}

var seedLanguages = []entity{
	{"id": "lang-001", "name": "English", "state": "active"},
	{"id": "lang-002", "name": "Spanish", "state": "active"},
}

var seedWrapupCodes = []entity{
	{"id": "wc-001", "name": "Resolved", "state": "active"},
	{"id": "wc-002", "name": "Follow-up Required", "state": "active"},
	{"id": "wc-003", "name": "Escalated", "state": "active"},
}

func seedDataset() *dataset {
	d := &dataset{
		userSkills:   make(map[string][]entity),
		groupMembers: make(map[string][]string),
		queueMembers: make(map[string][]string),
	}

	for i, u := range seedUsers {
		id := fmt.Sprintf("user-%04d", i)
		d.users = append(d.users, entity{
			"id":         id,
			"name":       u.name,
			"email":      strings.ToLower(strings.ReplaceAll(u.name, " ", ".")) + "@acmecorp.com",
			"department": u.department,
			"title":      u.title,
			"state":      "active",
		})
	}

	for i, name := range seedSkillNames {
		d.skills = append(d.skills, entity{
			"id":    fmt.Sprintf("skill-%04d", i+1),
			"name":  name,
			"state": "active",
		})
	}

	// Deterministic skill assignments: user i gets 1-4 skills starting at
	// a rotating offset, with a proficiency derived from the indices.
	for i, u := range d.users {
		n := 1 + i%4
		var assigned []entity
		for j := 0; j < n; j++ {
			skill := d.skills[(i+j*3)%len(d.skills)]
			assigned = append(assigned, entity{
				"id":          skill["id"],
				"name":        skill["name"],
				"state":       "active",
				"proficiency": float64(1 + (i+j)%5),
			})
		}
		d.userSkills[u["id"].(string)] = assigned
	}

	groups := []struct {
		name, description, visibility string
	}{
		{"Tier 1 Support", "Front-line support agents", "public"},
		{"Tier 2 Support", "Escalation support team", "public"},
		{"Sales Team", "All sales representatives", "public"},
		{"All Hands", "All employees", "public"},
		{"Weekend Coverage", "Weekend shift agents", "members"},
	}
	for i, g := range groups {
		id := fmt.Sprintf("grp-%04d", i+1)
		d.groups = append(d.groups, entity{
			"id":           id,
			"name":         g.name,
			"description":  g.description,
			"state":        "active",
			"type":         "official",
			"visibility":   g.visibility,
			"rulesVisible": true,
			"version":      1,
		})
	}
	d.groupMembers["grp-0001"] = userIDs(d.users[:15])
	d.groupMembers["grp-0002"] = userIDs(d.users[:8])
	d.groupMembers["grp-0003"] = userIDsByDept(d.users, "Sales")
	d.groupMembers["grp-0004"] = userIDs(d.users)
	d.groupMembers["grp-0005"] = userIDs(d.users[:10])

	queues := []struct {
		name, description string
	}{
		{"General Support", "General inbound support"},
		{"Billing Support", "Billing and payments"},
		{"Sales Inbound", "Inbound sales calls"},
		{"Technical Support", "Technical troubleshooting"},
		{"VIP Support", "High-priority customer support"},
	}
	for i, q := range queues {
		d.queues = append(d.queues, entity{
			"id":          fmt.Sprintf("queue-%04d", i+1),
			"name":        q.name,
			"description": q.description,
			"state":       "active",
		})
	}
	d.queueMembers["queue-0001"] = userIDs(d.users[:12])
	d.queueMembers["queue-0002"] = userIDs(d.users[:8])
	d.queueMembers["queue-0003"] = userIDsByDept(d.users, "Sales")
	d.queueMembers["queue-0004"] = userIDs(d.users[3:8])
	d.queueMembers["queue-0005"] = userIDs(d.users[:4])

	return d
}

func userIDs(users []entity) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u["id"].(string))
	}
	return out
}

func userIDsByDept(users []entity, dept string) []string {
	var out []string
	for _, u := range users {
		if u["department"] == dept {
			out = append(out, u["id"].(string))
		}
	}
	return out
}
