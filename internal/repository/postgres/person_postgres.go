package postgres

import (
	"context"
	"database/sql"

	"custodia/internal/model"
	"custodia/internal/repository"
)

// PersonPostgres is a PostgreSQL implementation of repository.PersonRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PersonPostgres struct {
	db *sql.DB
}

// NewPersonPostgres creates a new PersonPostgres repository.
func NewPersonPostgres(db *sql.DB) *PersonPostgres {
	return &PersonPostgres{db: db}
}

var _ repository.PersonRepository = (*PersonPostgres)(nil)

// Create inserts a new person row and returns the stored record.
func (r *PersonPostgres) Create(ctx context.Context, p *model.Person) (*model.Person, error) {
	const q = `
		INSERT INTO usuarios (id, cpf, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, cpf, created_at
	`
	row := r.db.QueryRowContext(ctx, q, p.ID, p.CPF, p.CreatedAt)
	var out model.Person
	if err := row.Scan(&out.ID, &out.CPF, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByCPF fetches a single person by CPF.
func (r *PersonPostgres) FindByCPF(ctx context.Context, cpf string) (*model.Person, error) {
	const q = `
		SELECT id, cpf, created_at
		FROM usuarios
		WHERE cpf = $1
	`
	row := r.db.QueryRowContext(ctx, q, cpf)
	var p model.Person
	if err := row.Scan(&p.ID, &p.CPF, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID fetches a single person by primary key.
func (r *PersonPostgres) FindByID(ctx context.Context, id string) (*model.Person, error) {
	const q = `
		SELECT id, cpf, created_at
		FROM usuarios
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Person
	if err := row.Scan(&p.ID, &p.CPF, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
