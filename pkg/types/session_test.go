package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr error
	}{
		{"", RoleAdmin, nil},
		{"admin", RoleAdmin, nil},
		{"user", RoleUser, nil},
		{"root", "", ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionCapabilities(t *testing.T) {
	admin := Session{User: "ana", Role: RoleAdmin}
	user := Session{User: "bo", Role: RoleUser}
	nobody := Session{}

	assert.True(t, admin.Can(ManageCategories))
	assert.True(t, admin.Can(ManageItems))
	assert.False(t, user.Can(ManageCategories))
	assert.True(t, user.Can(ManageItems))
	assert.False(t, nobody.Can(ManageItems))

	assert.NoError(t, admin.Require(ManageCategories))
	assert.ErrorIs(t, user.Require(ManageCategories), ErrForbidden)
	assert.False(t, admin.Can("launch_rockets"))
}
