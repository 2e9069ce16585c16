// Package permissions holds the role-based access policy as pure decision
// functions. Handlers evaluate these before touching the persistence layer,
// so every (role, action, ownership) combination can be tested directly.
package permissions

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Roles assignable to a stored user. Anonymous only exists for requests
// without credentials and is never persisted.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

func (r Role) Authenticated() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type Action int

const (
	ActionList Action = iota
	ActionRetrieve
	ActionCreate
	ActionUpdate
	ActionPartialUpdate
	ActionDestroy
)

// Safe reports whether the action is read-only.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// ContentAllowed decides access to reviews and comments: reads are open to
// everyone, creating requires authentication, and modifying an existing
// resource requires ownership or a moderator/admin role.
func ContentAllowed(role Role, action Action, owner bool) bool {
	if action.Safe() {
		return true
	}
	if !role.Authenticated() {
		return false
	}
	if action == ActionCreate {
		return true
	}
	return owner || role == RoleModerator || role == RoleAdmin
}

// AdminAllowed decides access to categories, genres, titles and user
// management: reads stay open, every write is admin only.
func AdminAllowed(role Role, action Action) bool {
	if action.Safe() {
		return true
	}
	return role == RoleAdmin
}

// ProfileAllowed decides access to the caller's own profile ("me" route).
// Any authenticated role may read and patch it; role immutability on that
// route is enforced by the serializer, not here.
func ProfileAllowed(role Role, action Action) bool {
	if action != ActionRetrieve && action != ActionPartialUpdate {
		return false
	}
	return role.Authenticated()
}
