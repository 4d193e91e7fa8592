package client

import (
	"github.com/tiagomuniz-ia/agendapro-final/pkg/validator"
)

// Login form field messages shown to the user.
const (
	MsgEmailRequired = "Email é obrigatório"
	MsgEmailInvalid  = "Email inválido"
	MsgSenhaRequired = "Senha é obrigatória"
)

// LoginForm holds the credentials collected from the login form.
type LoginForm struct {
	Email string
	Senha string
}

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string]string

// Validate runs the pre-flight form validation. A non-empty result blocks
// submission: no network call may be issued for an invalid form.
func (f LoginForm) Validate() FieldErrors {
	errs := make(FieldErrors)

	switch {
	case f.Email == "":
		errs["email"] = MsgEmailRequired
	case !validator.IsEmail(f.Email):
		errs["email"] = MsgEmailInvalid
	}

	if f.Senha == "" {
		errs["senha"] = MsgSenhaRequired
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
