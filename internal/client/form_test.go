package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want FieldErrors
	}{
		{
			name: "valid form",
			form: LoginForm{Email: "user@example.com", Senha: "secret123"},
			want: nil,
		},
		{
			name: "empty email",
			form: LoginForm{Senha: "secret123"},
			want: FieldErrors{"email": MsgEmailRequired},
		},
		{
			name: "malformed email",
			form: LoginForm{Email: "user-at-example", Senha: "secret123"},
			want: FieldErrors{"email": MsgEmailInvalid},
		},
		{
			name: "empty password",
			form: LoginForm{Email: "user@example.com"},
			want: FieldErrors{"senha": MsgSenhaRequired},
		},
		{
			name: "both empty",
			form: LoginForm{},
			want: FieldErrors{"email": MsgEmailRequired, "senha": MsgSenhaRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Validate())
		})
	}
}
