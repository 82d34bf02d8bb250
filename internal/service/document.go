package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"custodia/internal/model"
	"custodia/internal/repository"
	"custodia/internal/storage"
)

var (
	ErrCPFRequired      = errors.New("cpf is required")
	ErrInvalidCPF       = errors.New("invalid cpf")
	ErrPersonExists     = errors.New("person already exists")
	ErrPersonNotFound   = errors.New("person not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidType      = errors.New("invalid document type")
	ErrInvalidFormat    = errors.New("only PDF files are accepted")
	ErrReaderNil        = errors.New("reader is nil")
)

// DocumentEntry is the service-level DTO for one listed document.
type DocumentEntry struct {
	Tipo    model.DocumentType `json:"tipo"`
	Arquivo string             `json:"arquivo"`
}

// DocumentService defines the use cases for the document lifecycle. Every
// destructive operation (overwrite, rename-on-type-change, delete) snapshots
// the current live file into the backup area first, and the index is updated
// in the same operation so disk and index stay in step.
type DocumentService interface {
	// Save stores a new document for the person, creating the person record
	// implicitly if unknown. An existing document of the same type is backed
	// up and replaced. Returns the canonical file name.
	Save(ctx context.Context, cpf string, tipo model.DocumentType, originalFilename string, r io.Reader, size int64) (string, error)

	// Replace swaps the document currently stored under fileName for new
	// content, possibly under a new type (and therefore a new name). When
	// the new name lands on a live document the person already holds, that
	// file is backed up before being overwritten.
	Replace(ctx context.Context, fileName string, tipo model.DocumentType, originalFilename string, r io.Reader, size int64) (string, error)

	// Delete backs up and removes the document stored under fileName.
	Delete(ctx context.Context, fileName string) error

	// List returns the person's documents. Unknown persons yield an empty
	// list, not an error.
	List(ctx context.Context, cpf string) ([]DocumentEntry, error)

	// Download streams the live file stored under fileName.
	Download(ctx context.Context, fileName string) (io.ReadCloser, error)
}

type documentService struct {
	store   storage.Storage
	docs    repository.DocumentRepository
	persons repository.PersonRepository
	locks   keyedMutex
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, persons repository.PersonRepository) DocumentService {
	return &documentService{store: store, docs: docs, persons: persons}
}

// validateUpload rejects bad input before any side effect. The PDF check
// trusts the declared file name suffix; magic bytes are not inspected.
func validateUpload(tipo model.DocumentType, originalFilename string, r io.Reader) error {
	if r == nil {
		return ErrReaderNil
	}
	if !tipo.Valid() {
		return ErrInvalidType
	}
	if !strings.HasSuffix(strings.ToLower(originalFilename), ".pdf") {
		return ErrInvalidFormat
	}
	return nil
}

func (s *documentService) Save(ctx context.Context, cpf string, tipo model.DocumentType, originalFilename string, r io.Reader, size int64) (string, error) {
	if cpf == "" {
		return "", ErrCPFRequired
	}
	// The CPF ends up inside the canonical file name; a path-like value
	// must never reach the store.
	if !model.ValidCPFToken(cpf) {
		return "", ErrInvalidCPF
	}
	if err := validateUpload(tipo, originalFilename, r); err != nil {
		return "", err
	}

	person, err := s.findOrCreatePerson(ctx, cpf)
	if err != nil {
		return "", err
	}

	name := model.CanonicalFileName(tipo, cpf)

	unlock := s.locks.Lock(name)
	defer unlock()

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return "", fmt.Errorf("check live file: %w", err)
	}
	if exists {
		if err := s.store.Backup(ctx, name); err != nil {
			return "", fmt.Errorf("backup before overwrite: %w", err)
		}
	}

	if err := s.store.Put(ctx, name, r, size); err != nil {
		return "", fmt.Errorf("write live file: %w", err)
	}

	doc := &model.Document{
		ID:        uuid.New().String(),
		Tipo:      tipo,
		FileName:  name,
		PersonID:  person.ID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.docs.Upsert(ctx, doc); err != nil {
		return "", fmt.Errorf("index document: %w", err)
	}
	return name, nil
}

func (s *documentService) Replace(ctx context.Context, fileName string, tipo model.DocumentType, originalFilename string, r io.Reader, size int64) (string, error) {
	if err := validateUpload(tipo, originalFilename, r); err != nil {
		return "", err
	}

	cpf, personID, err := s.resolveOwner(ctx, fileName)
	if err != nil {
		return "", err
	}
	newName := model.CanonicalFileName(tipo, cpf)

	// Both the old and the new slot mutate below; hold both locks.
	unlock := s.locks.LockPair(fileName, newName)
	defer unlock()

	exists, err := s.store.Exists(ctx, fileName)
	if err != nil {
		return "", fmt.Errorf("check live file: %w", err)
	}
	if !exists {
		return "", ErrDocumentNotFound
	}

	// A type change can rename onto a live document the person already
	// holds; that file is about to be overwritten, so snapshot it too.
	if newName != fileName {
		occupied, err := s.store.Exists(ctx, newName)
		if err != nil {
			return "", fmt.Errorf("check target file: %w", err)
		}
		if occupied {
			if err := s.store.Backup(ctx, newName); err != nil {
				return "", fmt.Errorf("backup target file: %w", err)
			}
		}
	}

	if err := s.store.Backup(ctx, fileName); err != nil {
		return "", fmt.Errorf("backup before replace: %w", err)
	}
	if err := s.store.Delete(ctx, fileName); err != nil {
		return "", fmt.Errorf("remove old live file: %w", err)
	}
	if err := s.store.Put(ctx, newName, r, size); err != nil {
		return "", fmt.Errorf("write live file: %w", err)
	}

	// No person record means nothing is indexed for this file; the disk
	// rename alone keeps the two stores consistent.
	if personID != "" {
		doc := &model.Document{
			ID:        uuid.New().String(),
			Tipo:      tipo,
			FileName:  newName,
			PersonID:  personID,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := s.docs.ReplaceByFileName(ctx, fileName, doc); err != nil {
			return "", fmt.Errorf("reindex document: %w", err)
		}
	}
	return newName, nil
}

func (s *documentService) Delete(ctx context.Context, fileName string) error {
	unlock := s.locks.Lock(fileName)
	defer unlock()

	exists, err := s.store.Exists(ctx, fileName)
	if err != nil {
		return fmt.Errorf("check live file: %w", err)
	}
	if !exists {
		return ErrDocumentNotFound
	}

	if err := s.store.Backup(ctx, fileName); err != nil {
		return fmt.Errorf("backup before delete: %w", err)
	}
	if err := s.store.Delete(ctx, fileName); err != nil {
		return fmt.Errorf("remove live file: %w", err)
	}
	if err := s.docs.DeleteByFileName(ctx, fileName); err != nil {
		return fmt.Errorf("unindex document: %w", err)
	}
	return nil
}

func (s *documentService) List(ctx context.Context, cpf string) ([]DocumentEntry, error) {
	if cpf == "" {
		return nil, ErrCPFRequired
	}
	person, err := s.persons.FindByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []DocumentEntry{}, nil
		}
		return nil, err
	}
	docs, err := s.docs.ListByOwner(ctx, person.ID)
	if err != nil {
		return nil, err
	}
	entries := make([]DocumentEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, DocumentEntry{Tipo: d.Tipo, Arquivo: d.FileName})
	}
	return entries, nil
}

func (s *documentService) Download(ctx context.Context, fileName string) (io.ReadCloser, error) {
	exists, err := s.store.Exists(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("check live file: %w", err)
	}
	if !exists {
		return nil, ErrDocumentNotFound
	}
	return s.store.Get(ctx, fileName)
}

func (s *documentService) findOrCreatePerson(ctx context.Context, cpf string) (*model.Person, error) {
	person, err := s.persons.FindByCPF(ctx, cpf)
	if err == nil {
		return person, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find person: %w", err)
	}
	person, err = s.persons.Create(ctx, &model.Person{
		ID:        uuid.New().String(),
		CPF:       cpf,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return person, nil
}

// resolveOwner finds the owner of a stored file. The index is authoritative;
// parsing the CPF out of the file name is only a fallback for files present
// on disk but absent from the index. The returned person ID is empty when no
// person record exists for the owner.
func (s *documentService) resolveOwner(ctx context.Context, fileName string) (cpf, personID string, err error) {
	doc, err := s.docs.FindByFileName(ctx, fileName)
	if err == nil {
		p, ferr := s.persons.FindByID(ctx, doc.PersonID)
		if ferr == nil {
			return p.CPF, p.ID, nil
		}
		if !errors.Is(ferr, sql.ErrNoRows) {
			return "", "", fmt.Errorf("find person: %w", ferr)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("find document record: %w", err)
	}

	parsed, ok := model.OwnerFromFileName(fileName)
	if !ok {
		return "", "", ErrDocumentNotFound
	}
	p, ferr := s.persons.FindByCPF(ctx, parsed)
	if ferr == nil {
		return p.CPF, p.ID, nil
	}
	if !errors.Is(ferr, sql.ErrNoRows) {
		return "", "", fmt.Errorf("find person: %w", ferr)
	}
	return parsed, "", nil
}
