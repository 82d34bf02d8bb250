package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"custodia/internal/config"
	"custodia/internal/model"
	repoMocks "custodia/internal/repository/mocks"
	"custodia/internal/storage"
	storeMocks "custodia/internal/storage/mocks"
)

func newDocumentService() (*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *repoMocks.MockPersonRepository, DocumentService) {
	mStore := new(storeMocks.MockStorage)
	mDocs := new(repoMocks.MockDocumentRepository)
	mPersons := new(repoMocks.MockPersonRepository)
	return mStore, mDocs, mPersons, NewDocumentService(mStore, mDocs, mPersons)
}

func TestDocumentService_Save(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		cpf              string
		tipo             model.DocumentType
		originalFilename string
		setupMocks       func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader
		wantName         string
		wantErr          error
	}{
		{
			name:             "first upload, person exists, no prior file",
			cpf:              "12345678900",
			tipo:             model.TypeRG,
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				r := strings.NewReader("%PDF content")
				mPersons.On("FindByCPF", ctx, "12345678900").
					Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
				mStore.On("Exists", ctx, "rg_12345678900.pdf").Return(false, nil)
				mStore.On("Put", ctx, "rg_12345678900.pdf", r, int64(12)).Return(nil)
				mDocs.On("Upsert", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.Tipo == model.TypeRG && d.FileName == "rg_12345678900.pdf" && d.PersonID == "person-id"
				})).Return(&model.Document{FileName: "rg_12345678900.pdf"}, nil)
				return r
			},
			wantName: "rg_12345678900.pdf",
		},
		{
			name:             "overwrite backs up live file first",
			cpf:              "12345678900",
			tipo:             model.TypeCPF,
			originalFilename: "NEW.PDF",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				r := strings.NewReader("second")
				mPersons.On("FindByCPF", ctx, "12345678900").
					Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
				mStore.On("Exists", ctx, "cpf_12345678900.pdf").Return(true, nil)
				mStore.On("Backup", ctx, "cpf_12345678900.pdf").Return(nil)
				mStore.On("Put", ctx, "cpf_12345678900.pdf", r, int64(6)).Return(nil)
				mDocs.On("Upsert", ctx, mock.Anything).
					Return(&model.Document{FileName: "cpf_12345678900.pdf"}, nil)
				return r
			},
			wantName: "cpf_12345678900.pdf",
		},
		{
			name:             "unknown person created implicitly",
			cpf:              "98765432100",
			tipo:             model.TypeCertidao,
			originalFilename: "certidao.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				r := strings.NewReader("x")
				mPersons.On("FindByCPF", ctx, "98765432100").Return(nil, sql.ErrNoRows)
				mPersons.On("Create", ctx, mock.MatchedBy(func(p *model.Person) bool {
					return p.CPF == "98765432100"
				})).Return(&model.Person{ID: "new-person", CPF: "98765432100"}, nil)
				mStore.On("Exists", ctx, "certidao_98765432100.pdf").Return(false, nil)
				mStore.On("Put", ctx, "certidao_98765432100.pdf", r, int64(1)).Return(nil)
				mDocs.On("Upsert", ctx, mock.Anything).
					Return(&model.Document{FileName: "certidao_98765432100.pdf"}, nil)
				return r
			},
			wantName: "certidao_98765432100.pdf",
		},
		{
			name:             "invalid type rejected before any side effect",
			cpf:              "12345678900",
			tipo:             model.DocumentType("passaporte"),
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidType,
		},
		{
			name:             "non-pdf suffix rejected before any side effect",
			cpf:              "12345678900",
			tipo:             model.TypeRG,
			originalFilename: "scan.png",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidFormat,
		},
		{
			name:             "missing cpf",
			cpf:              "",
			tipo:             model.TypeRG,
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrCPFRequired,
		},
		{
			name:             "path-like cpf rejected before any side effect",
			cpf:              "../../etc",
			tipo:             model.TypeRG,
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidCPF,
		},
		{
			name:             "nil reader",
			cpf:              "12345678900",
			tipo:             model.TypeRG,
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "backup failure aborts before write",
			cpf:              "12345678900",
			tipo:             model.TypeRG,
			originalFilename: "scan.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository, mPersons *repoMocks.MockPersonRepository) io.Reader {
				r := strings.NewReader("x")
				mPersons.On("FindByCPF", ctx, "12345678900").
					Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
				mStore.On("Exists", ctx, "rg_12345678900.pdf").Return(true, nil)
				mStore.On("Backup", ctx, "rg_12345678900.pdf").Return(errors.New("disk full"))
				return r
			},
			wantErr: errors.New("backup before overwrite: disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore, mDocs, mPersons, svc := newDocumentService()
			r := tt.setupMocks(mStore, mDocs, mPersons)

			var size int64
			if sr, ok := r.(*strings.Reader); ok {
				size = sr.Size()
			}

			name, err := svc.Save(ctx, tt.cpf, tt.tipo, tt.originalFilename, r, size)

			if tt.wantErr != nil {
				assert.Error(t, err)
				switch {
				case errors.Is(tt.wantErr, ErrInvalidType),
					errors.Is(tt.wantErr, ErrInvalidFormat),
					errors.Is(tt.wantErr, ErrCPFRequired),
					errors.Is(tt.wantErr, ErrInvalidCPF),
					errors.Is(tt.wantErr, ErrReaderNil):
					assert.ErrorIs(t, err, tt.wantErr)
				default:
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Empty(t, name)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantName, name)
			}

			mStore.AssertExpectations(t)
			mDocs.AssertExpectations(t)
			mPersons.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("type change renames the live file", func(t *testing.T) {
		mStore, mDocs, mPersons, svc := newDocumentService()
		r := strings.NewReader("new content")

		mDocs.On("FindByFileName", ctx, "rg_12345678900.pdf").
			Return(&model.Document{ID: "doc-id", Tipo: model.TypeRG, FileName: "rg_12345678900.pdf", PersonID: "person-id"}, nil)
		mPersons.On("FindByID", ctx, "person-id").
			Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
		mStore.On("Exists", ctx, "rg_12345678900.pdf").Return(true, nil)
		mStore.On("Exists", ctx, "cpf_12345678900.pdf").Return(false, nil)
		mStore.On("Backup", ctx, "rg_12345678900.pdf").Return(nil)
		mStore.On("Delete", ctx, "rg_12345678900.pdf").Return(nil)
		mStore.On("Put", ctx, "cpf_12345678900.pdf", r, int64(11)).Return(nil)
		mDocs.On("ReplaceByFileName", ctx, "rg_12345678900.pdf", mock.MatchedBy(func(d *model.Document) bool {
			return d.Tipo == model.TypeCPF && d.FileName == "cpf_12345678900.pdf" && d.PersonID == "person-id"
		})).Return(&model.Document{FileName: "cpf_12345678900.pdf"}, nil)

		name, err := svc.Replace(ctx, "rg_12345678900.pdf", model.TypeCPF, "b.pdf", r, 11)

		assert.NoError(t, err)
		assert.Equal(t, "cpf_12345678900.pdf", name)
		mStore.AssertExpectations(t)
		mDocs.AssertExpectations(t)
		mPersons.AssertExpectations(t)
	})

	t.Run("rename onto an occupied slot backs up the target first", func(t *testing.T) {
		mStore, mDocs, mPersons, svc := newDocumentService()
		r := strings.NewReader("new content")

		mDocs.On("FindByFileName", ctx, "rg_12345678900.pdf").
			Return(&model.Document{ID: "doc-id", Tipo: model.TypeRG, FileName: "rg_12345678900.pdf", PersonID: "person-id"}, nil)
		mPersons.On("FindByID", ctx, "person-id").
			Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
		mStore.On("Exists", ctx, "rg_12345678900.pdf").Return(true, nil)
		mStore.On("Exists", ctx, "cpf_12345678900.pdf").Return(true, nil)
		mStore.On("Backup", ctx, "cpf_12345678900.pdf").Return(nil)
		mStore.On("Backup", ctx, "rg_12345678900.pdf").Return(nil)
		mStore.On("Delete", ctx, "rg_12345678900.pdf").Return(nil)
		mStore.On("Put", ctx, "cpf_12345678900.pdf", r, int64(11)).Return(nil)
		mDocs.On("ReplaceByFileName", ctx, "rg_12345678900.pdf", mock.Anything).
			Return(&model.Document{FileName: "cpf_12345678900.pdf"}, nil)

		name, err := svc.Replace(ctx, "rg_12345678900.pdf", model.TypeCPF, "b.pdf", r, 11)

		assert.NoError(t, err)
		assert.Equal(t, "cpf_12345678900.pdf", name)
		mStore.AssertExpectations(t)
		mDocs.AssertExpectations(t)
	})

	t.Run("target backup failure aborts before any write", func(t *testing.T) {
		mStore, mDocs, mPersons, svc := newDocumentService()

		mDocs.On("FindByFileName", ctx, "rg_12345678900.pdf").
			Return(&model.Document{ID: "doc-id", Tipo: model.TypeRG, FileName: "rg_12345678900.pdf", PersonID: "person-id"}, nil)
		mPersons.On("FindByID", ctx, "person-id").
			Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
		mStore.On("Exists", ctx, "rg_12345678900.pdf").Return(true, nil)
		mStore.On("Exists", ctx, "cpf_12345678900.pdf").Return(true, nil)
		mStore.On("Backup", ctx, "cpf_12345678900.pdf").Return(errors.New("disk full"))

		_, err := svc.Replace(ctx, "rg_12345678900.pdf", model.TypeCPF, "b.pdf", strings.NewReader("x"), 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "backup target file")
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mDocs.AssertNotCalled(t, "ReplaceByFileName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing live file returns not found without side effects", func(t *testing.T) {
		mStore, mDocs, mPersons, svc := newDocumentService()

		mDocs.On("FindByFileName", ctx, "rg_00000000000.pdf").Return(nil, sql.ErrNoRows)
		mPersons.On("FindByCPF", ctx, "00000000000").Return(nil, sql.ErrNoRows)
		mStore.On("Exists", ctx, "rg_00000000000.pdf").Return(false, nil)

		name, err := svc.Replace(ctx, "rg_00000000000.pdf", model.TypeRG, "b.pdf", strings.NewReader("x"), 1)

		assert.ErrorIs(t, err, ErrDocumentNotFound)
		assert.Empty(t, name)
		mStore.AssertNotCalled(t, "Backup", mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mDocs.AssertNotCalled(t, "ReplaceByFileName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid type rejected before any mutation", func(t *testing.T) {
		mStore, mDocs, _, svc := newDocumentService()

		_, err := svc.Replace(ctx, "rg_1.pdf", model.DocumentType("bogus"), "b.pdf", strings.NewReader("x"), 1)

		assert.ErrorIs(t, err, ErrInvalidType)
		mStore.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		mStore.AssertNotCalled(t, "Backup", mock.Anything, mock.Anything)
		mDocs.AssertNotCalled(t, "ReplaceByFileName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner parsed from file name when index has no record", func(t *testing.T) {
		mStore, mDocs, mPersons, svc := newDocumentService()
		r := strings.NewReader("y")

		mDocs.On("FindByFileName", ctx, "rg_55566677788.pdf").Return(nil, sql.ErrNoRows)
		mPersons.On("FindByCPF", ctx, "55566677788").Return(nil, sql.ErrNoRows)
		mStore.On("Exists", ctx, "rg_55566677788.pdf").Return(true, nil)
		mStore.On("Exists", ctx, "historico_55566677788.pdf").Return(false, nil)
		mStore.On("Backup", ctx, "rg_55566677788.pdf").Return(nil)
		mStore.On("Delete", ctx, "rg_55566677788.pdf").Return(nil)
		mStore.On("Put", ctx, "historico_55566677788.pdf", r, int64(1)).Return(nil)

		name, err := svc.Replace(ctx, "rg_55566677788.pdf", model.TypeHistorico, "b.pdf", r, 1)

		assert.NoError(t, err)
		assert.Equal(t, "historico_55566677788.pdf", name)
		mDocs.AssertNotCalled(t, "ReplaceByFileName", mock.Anything, mock.Anything, mock.Anything)
	})
}

// Exercises Replace against the real filesystem-backed store. After a type
// change renames rg onto an occupied cpf slot, both prior files must survive
// in the backup area and only the new content stays live.
func TestDocumentService_Replace_CollisionPreservesTarget(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	store, err := storage.NewLocal(config.StorageConfig{
		UploadDir: "storage/arquivos",
		BackupDir: "storage/backup",
	}, fs)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "storage/arquivos/cpf_111.pdf", []byte("CPF-ORIGINAL"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "storage/arquivos/rg_111.pdf", []byte("RG-ORIGINAL"), 0o644))

	mDocs := new(repoMocks.MockDocumentRepository)
	mPersons := new(repoMocks.MockPersonRepository)
	mDocs.On("FindByFileName", ctx, "rg_111.pdf").
		Return(&model.Document{ID: "doc-id", Tipo: model.TypeRG, FileName: "rg_111.pdf", PersonID: "person-id"}, nil)
	mPersons.On("FindByID", ctx, "person-id").
		Return(&model.Person{ID: "person-id", CPF: "111"}, nil)
	mDocs.On("ReplaceByFileName", ctx, "rg_111.pdf", mock.Anything).
		Return(&model.Document{FileName: "cpf_111.pdf"}, nil)

	svc := NewDocumentService(store, mDocs, mPersons)

	name, err := svc.Replace(ctx, "rg_111.pdf", model.TypeCPF, "b.pdf", strings.NewReader("NEW"), 3)
	require.NoError(t, err)
	require.Equal(t, "cpf_111.pdf", name)

	backupCPF, err := afero.ReadFile(fs, "storage/backup/cpf_111.pdf")
	require.NoError(t, err)
	assert.Equal(t, "CPF-ORIGINAL", string(backupCPF))

	backupRG, err := afero.ReadFile(fs, "storage/backup/rg_111.pdf")
	require.NoError(t, err)
	assert.Equal(t, "RG-ORIGINAL", string(backupRG))

	live, err := afero.ReadFile(fs, "storage/arquivos/cpf_111.pdf")
	require.NoError(t, err)
	assert.Equal(t, "NEW", string(live))

	oldLive, err := afero.Exists(fs, "storage/arquivos/rg_111.pdf")
	require.NoError(t, err)
	assert.False(t, oldLive)
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path backs up then removes", func(t *testing.T) {
		mStore, mDocs, _, svc := newDocumentService()

		mStore.On("Exists", ctx, "rg_1.pdf").Return(true, nil)
		mStore.On("Backup", ctx, "rg_1.pdf").Return(nil)
		mStore.On("Delete", ctx, "rg_1.pdf").Return(nil)
		mDocs.On("DeleteByFileName", ctx, "rg_1.pdf").Return(nil)

		err := svc.Delete(ctx, "rg_1.pdf")

		assert.NoError(t, err)
		mStore.AssertExpectations(t)
		mDocs.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		mStore, mDocs, _, svc := newDocumentService()

		mStore.On("Exists", ctx, "missing.pdf").Return(false, nil)

		err := svc.Delete(ctx, "missing.pdf")

		assert.ErrorIs(t, err, ErrDocumentNotFound)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mDocs.AssertNotCalled(t, "DeleteByFileName", mock.Anything, mock.Anything)
	})

	t.Run("backup failure leaves live file untouched", func(t *testing.T) {
		mStore, mDocs, _, svc := newDocumentService()

		mStore.On("Exists", ctx, "rg_1.pdf").Return(true, nil)
		mStore.On("Backup", ctx, "rg_1.pdf").Return(errors.New("disk full"))

		err := svc.Delete(ctx, "rg_1.pdf")

		assert.Error(t, err)
		mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mDocs.AssertNotCalled(t, "DeleteByFileName", mock.Anything, mock.Anything)
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("known person", func(t *testing.T) {
		_, mDocs, mPersons, svc := newDocumentService()

		mPersons.On("FindByCPF", ctx, "12345678900").
			Return(&model.Person{ID: "person-id", CPF: "12345678900"}, nil)
		mDocs.On("ListByOwner", ctx, "person-id").Return([]model.Document{
			{Tipo: model.TypeRG, FileName: "rg_12345678900.pdf"},
			{Tipo: model.TypeCPF, FileName: "cpf_12345678900.pdf"},
		}, nil)

		entries, err := svc.List(ctx, "12345678900")

		assert.NoError(t, err)
		assert.Equal(t, []DocumentEntry{
			{Tipo: model.TypeRG, Arquivo: "rg_12345678900.pdf"},
			{Tipo: model.TypeCPF, Arquivo: "cpf_12345678900.pdf"},
		}, entries)
	})

	t.Run("unknown person yields empty list, not an error", func(t *testing.T) {
		_, mDocs, mPersons, svc := newDocumentService()

		mPersons.On("FindByCPF", ctx, "00000000000").Return(nil, sql.ErrNoRows)

		entries, err := svc.List(ctx, "00000000000")

		assert.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
		mDocs.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("streams live file", func(t *testing.T) {
		mStore, _, _, svc := newDocumentService()

		mStore.On("Exists", ctx, "rg_1.pdf").Return(true, nil)
		mStore.On("Get", ctx, "rg_1.pdf").Return(io.NopCloser(strings.NewReader("pdf")), nil)

		rc, err := svc.Download(ctx, "rg_1.pdf")

		assert.NoError(t, err)
		b, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, "pdf", string(b))
	})

	t.Run("missing file", func(t *testing.T) {
		mStore, _, _, svc := newDocumentService()

		mStore.On("Exists", ctx, "missing.pdf").Return(false, nil)

		rc, err := svc.Download(ctx, "missing.pdf")

		assert.ErrorIs(t, err, ErrDocumentNotFound)
		assert.Nil(t, rc)
	})
}
