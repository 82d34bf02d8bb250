package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"custodia/internal/model"
	"custodia/internal/repository"
)

// PersonService defines the use cases for managing persons. Persons are
// created once, looked up by CPF, and never mutated or deleted.
type PersonService interface {
	// Create registers a new person. Fails with ErrPersonExists if the CPF is
	// already registered.
	Create(ctx context.Context, cpf string) (*model.Person, error)

	// Get returns the person registered under the CPF, or ErrPersonNotFound.
	Get(ctx context.Context, cpf string) (*model.Person, error)
}

type personService struct {
	repo repository.PersonRepository
}

// NewPersonService constructs a new PersonService.
func NewPersonService(repo repository.PersonRepository) PersonService {
	return &personService{repo: repo}
}

func (s *personService) Create(ctx context.Context, cpf string) (*model.Person, error) {
	if cpf == "" {
		return nil, ErrCPFRequired
	}
	if _, err := s.repo.FindByCPF(ctx, cpf); err == nil {
		return nil, ErrPersonExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find person: %w", err)
	}

	p := &model.Person{
		ID:        uuid.New().String(),
		CPF:       cpf,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return stored, nil
}

func (s *personService) Get(ctx context.Context, cpf string) (*model.Person, error) {
	if cpf == "" {
		return nil, ErrCPFRequired
	}
	p, err := s.repo.FindByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return p, nil
}
