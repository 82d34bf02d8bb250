package model

import "time"

// Person is the owner of stored documents, identified by CPF.
// The CPF is treated as an opaque unique string; no checksum validation is
// performed. Persons are created once and never mutated or deleted.
type Person struct {
	ID        string    `json:"-"`
	CPF       string    `json:"cpf"`
	CreatedAt time.Time `json:"created_at"`
}
