package domain

import (
	"time"
)

// User represents a row of the usuarios table. Field names on the wire keep
// the Portuguese schema of the AgendaPro product.
type User struct {
	ID                  int64      `json:"id"`
	Nome                string     `json:"nome"`
	Email               string     `json:"email"`
	SenhaHash           string     `json:"-"`
	Telefone            string     `json:"telefone,omitempty"`
	Cargo               string     `json:"cargo"`
	FotoURL             string     `json:"foto_url"`
	Tema                string     `json:"tema"`
	Idioma              string     `json:"idioma,omitempty"`
	ReceberNotificacoes bool       `json:"receber_notificacoes"`
	DataCriacao         time.Time  `json:"data_criacao"`
	UltimoAcesso        *time.Time `json:"ultimo_acesso,omitempty"`
	Ativo               bool       `json:"ativo"`
}

// Profile is the subset of user fields returned by a successful login.
// The password hash is never part of it.
type Profile struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Cargo   string `json:"cargo"`
	FotoURL string `json:"foto_url"`
	Tema    string `json:"tema"`
}

// Profile returns the login profile subset for the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:      u.ID,
		Nome:    u.Nome,
		Email:   u.Email,
		Cargo:   u.Cargo,
		FotoURL: u.FotoURL,
		Tema:    u.Tema,
	}
}
