package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	ownerID := uuid.New()
	owner := &User{ID: ownerID}
	stranger := &User{ID: uuid.New()}
	admin := &User{ID: uuid.New(), IsSuperuser: true}

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"anonymous", nil, false},
		{"owner", owner, true},
		{"stranger", stranger, false},
		{"superuser", admin, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanMutate(tc.user, ownerID))
		})
	}
}

func TestCanReadAll(t *testing.T) {
	assert.False(t, CanReadAll(nil))
	assert.False(t, CanReadAll(&User{ID: uuid.New()}))
	assert.True(t, CanReadAll(&User{ID: uuid.New(), IsSuperuser: true}))
}

func TestSelfDeleteRules(t *testing.T) {
	regular := &User{ID: uuid.New()}
	admin := &User{ID: uuid.New(), IsSuperuser: true}

	assert.True(t, CanSelfDelete(regular))
	assert.False(t, CanSelfDelete(admin))
	assert.False(t, CanSelfDelete(nil))

	// The administrative path mirrors the same rule: superusers delete
	// others, never themselves; regular users delete nobody.
	assert.True(t, CanDeleteUser(admin, regular.ID))
	assert.False(t, CanDeleteUser(admin, admin.ID))
	assert.False(t, CanDeleteUser(regular, admin.ID))
	assert.False(t, CanDeleteUser(nil, regular.ID))
}
