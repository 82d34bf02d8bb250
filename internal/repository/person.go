package repository

import (
	"context"

	"custodia/internal/model"
)

// PersonRepository defines data access for persons using SQL queries only.
// No business logic here, strictly persistence operations.
type PersonRepository interface {
	// Create inserts a new person record and returns the stored row.
	// The unique constraint on cpf surfaces as a database error; duplicate
	// detection happens in the service via FindByCPF first.
	Create(ctx context.Context, p *model.Person) (*model.Person, error)

	// FindByCPF returns a person by CPF, or sql.ErrNoRows if unknown.
	FindByCPF(ctx context.Context, cpf string) (*model.Person, error)

	// FindByID returns a person by primary key, or sql.ErrNoRows if unknown.
	FindByID(ctx context.Context, id string) (*model.Person, error)
}
