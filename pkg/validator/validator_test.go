package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email string `validate:"required,email"`
	Senha string `validate:"required,min=6"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		err := Validate(loginPayload{Email: "user@example.com", Senha: "secret123"})
		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		err := Validate(loginPayload{})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		fields := vErr.Fields()
		assert.Equal(t, "is required", fields["Email"])
		assert.Equal(t, "is required", fields["Senha"])
	})

	t.Run("invalid email", func(t *testing.T) {
		err := Validate(loginPayload{Email: "not-an-email", Senha: "secret123"})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "must be a valid email address", vErr.Fields()["Email"])
	})

	t.Run("too short", func(t *testing.T) {
		err := Validate(loginPayload{Email: "user@example.com", Senha: "abc"})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "must be at least 6 characters", vErr.Fields()["Senha"])
	})
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("user@example.com"))
	assert.True(t, IsEmail("a.b+c@sub.example.org"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("user-at-example.com"))
	assert.False(t, IsEmail("user@"))
}
