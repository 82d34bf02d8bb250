package mocks

import (
	"context"
	"io"

	"custodia/internal/model"
	"custodia/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Save(ctx context.Context, cpf string, tipo model.DocumentType, originalFilename string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, cpf, tipo, originalFilename, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Replace(ctx context.Context, fileName string, tipo model.DocumentType, originalFilename string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, fileName, tipo, originalFilename, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, fileName string) error {
	args := m.Called(ctx, fileName)
	return args.Error(0)
}

func (m *MockDocumentService) List(ctx context.Context, cpf string) ([]service.DocumentEntry, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DocumentEntry), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, fileName string) (io.ReadCloser, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
