package backend

import "reflect"

// requirement names one capability group and the methods it must expose.
type requirement struct {
	name     string // lowercase, used in messages
	accessor string // method on the backend returning the group
	methods  []string
}

// requirements is the capability table the validator walks. Conversations
// is intentionally absent: it is optional and backends without it (or with
// a stubbed one) are still considered complete.
var requirements = []requirement{
	{
		name:     "users",
		accessor: "Users",
		methods:  []string{"Get", "Search", "SearchByEmail", "ListPage", "Update", "GetQueues", "GetGroups"},
	},
	{
		name:     "groups",
		accessor: "Groups",
		methods:  []string{"Get", "Search", "ListPage", "Create", "Update", "Delete", "GetMembers", "AddMembers", "RemoveMembers"},
	},
	{
		name:     "queues",
		accessor: "Queues",
		methods:  []string{"Get", "Search", "ListPage", "Create", "Update", "Delete", "GetMembers", "AddMembers", "RemoveMembers"},
	},
	{
		name:     "routing",
		accessor: "Routing",
		methods:  []string{"Skills", "Skill", "ListSkillsPage", "CreateSkill", "UpdateSkill", "DeleteSkill", "UserSkills", "AddUserSkill", "RemoveUserSkill"},
	},
}

// Validate checks a backend value against the capability table and returns
// the missing capabilities as "group.Method" strings, empty when the
// backend is complete. It accepts any value so partially built backends can
// be diagnosed, not just ones that already satisfy Service.
func Validate(svc any) []string {
	var missing []string
	if svc == nil {
		for _, req := range requirements {
			missing = append(missing, req.all()...)
		}
		return missing
	}

	v := reflect.ValueOf(svc)
	for _, req := range requirements {
		accessor := v.MethodByName(req.accessor)
		if !accessor.IsValid() {
			missing = append(missing, req.all()...)
			continue
		}
		out := accessor.Call(nil)
		if len(out) != 1 || isNilValue(out[0]) {
			missing = append(missing, req.all()...)
			continue
		}

		group := out[0]
		// Unwrap the interface so MethodByName sees the concrete type's
		// full method set.
		if group.Kind() == reflect.Interface {
			group = group.Elem()
		}
		for _, m := range req.methods {
			if !group.MethodByName(m).IsValid() {
				missing = append(missing, req.name+"."+m)
			}
		}
	}
	return missing
}

func (r requirement) all() []string {
	out := make([]string, 0, len(r.methods))
	for _, m := range r.methods {
		out = append(out, r.name+"."+m)
	}
	return out
}

func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
