package user_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Validate(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		for _, role := range []user.Role{user.Client, user.Owner, user.Delivery} {
			require.NoError(t, role.Validate())
		}
	})

	t.Run("invalid roles", func(t *testing.T) {
		for _, role := range []user.Role{user.UnknownRole, user.Role(42), user.Role(-1)} {
			require.Error(t, role.Validate())
		}
	})
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "Client", user.Client.String())
	assert.Equal(t, "Owner", user.Owner.String())
	assert.Equal(t, "Delivery", user.Delivery.String())
	assert.Equal(t, "Unknown", user.UnknownRole.String())
	assert.Equal(t, "Unknown", user.Role(42).String())
}

func TestRoleFromString(t *testing.T) {
	t.Run("valid names round-trip", func(t *testing.T) {
		for _, role := range []user.Role{user.Client, user.Owner, user.Delivery} {
			parsed, err := user.RoleFromString(role.String())
			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})

	t.Run("invalid names", func(t *testing.T) {
		for _, name := range []string{"", "client", "Admin", "Unknown"} {
			_, err := user.RoleFromString(name)
			require.Error(t, err)
		}
	})
}

func TestNewActor(t *testing.T) {
	t.Run("valid actor", func(t *testing.T) {
		id := kernel.NewUUID()
		actor, err := user.NewActor(id, user.Client)
		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.ID().IsEqual(id))
		assert.Equal(t, user.Client, actor.Role())
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := user.NewActor(kernel.UUID{}, user.Client)
		require.Error(t, err)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := user.NewActor(kernel.NewUUID(), user.UnknownRole)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var actor user.Actor
		require.ErrorIs(t, actor.Validate(), user.ErrActorIsNotConstructed)
	})
}
