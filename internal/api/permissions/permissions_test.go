package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentAllowed_SafeActionsOpenToEveryone(t *testing.T) {
	roles := []Role{RoleAnonymous, RoleUser, RoleModerator, RoleAdmin}
	for _, role := range roles {
		assert.True(t, ContentAllowed(role, ActionList, false), "list as %s", role)
		assert.True(t, ContentAllowed(role, ActionRetrieve, false), "retrieve as %s", role)
	}
}

func TestContentAllowed_CreateRequiresAuthentication(t *testing.T) {
	assert.False(t, ContentAllowed(RoleAnonymous, ActionCreate, false))
	assert.True(t, ContentAllowed(RoleUser, ActionCreate, false))
	assert.True(t, ContentAllowed(RoleModerator, ActionCreate, false))
	assert.True(t, ContentAllowed(RoleAdmin, ActionCreate, false))
}

func TestContentAllowed_Mutations(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		owner    bool
		expected bool
	}{
		{"anonymous never mutates", RoleAnonymous, false, false},
		{"user cannot touch others", RoleUser, false, false},
		{"user edits own", RoleUser, true, true},
		{"moderator edits any", RoleModerator, false, true},
		{"admin edits any", RoleAdmin, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, action := range []Action{ActionUpdate, ActionPartialUpdate, ActionDestroy} {
				assert.Equal(t, tt.expected, ContentAllowed(tt.role, action, tt.owner))
			}
		})
	}
}

func TestAdminAllowed(t *testing.T) {
	assert.True(t, AdminAllowed(RoleAnonymous, ActionList))
	assert.True(t, AdminAllowed(RoleUser, ActionRetrieve))

	assert.False(t, AdminAllowed(RoleAnonymous, ActionCreate))
	assert.False(t, AdminAllowed(RoleUser, ActionCreate))
	assert.False(t, AdminAllowed(RoleModerator, ActionDestroy))
	assert.True(t, AdminAllowed(RoleAdmin, ActionCreate))
	assert.True(t, AdminAllowed(RoleAdmin, ActionDestroy))
}

func TestProfileAllowed(t *testing.T) {
	assert.False(t, ProfileAllowed(RoleAnonymous, ActionRetrieve))
	assert.True(t, ProfileAllowed(RoleUser, ActionRetrieve))
	assert.True(t, ProfileAllowed(RoleUser, ActionPartialUpdate))
	assert.True(t, ProfileAllowed(RoleModerator, ActionRetrieve))

	// The profile route has no list or destroy semantics.
	assert.False(t, ProfileAllowed(RoleAdmin, ActionList))
	assert.False(t, ProfileAllowed(RoleAdmin, ActionDestroy))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleModerator))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(RoleAnonymous))
	assert.False(t, ValidRole(Role("superuser")))
}
