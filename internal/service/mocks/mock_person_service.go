package mocks

import (
	"context"

	"custodia/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) Create(ctx context.Context, cpf string) (*model.Person, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonService) Get(ctx context.Context, cpf string) (*model.Person, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}
