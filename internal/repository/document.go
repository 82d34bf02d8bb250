package repository

import (
	"context"

	"custodia/internal/model"
)

// DocumentRepository defines data access for document index records using SQL
// queries only. No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Upsert replaces the record occupying the (owner, type) slot inside a
	// single transaction: any existing row for doc.PersonID and doc.Tipo is
	// deleted, then doc is inserted. At no point can two rows share a slot.
	Upsert(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByFileName returns the record stored under the given file name, or
	// sql.ErrNoRows if unknown.
	FindByFileName(ctx context.Context, name string) (*model.Document, error)

	// ListByOwner returns every document belonging to a person, in insertion
	// order. An unknown person yields an empty slice, not an error.
	ListByOwner(ctx context.Context, personID string) ([]model.Document, error)

	// ReplaceByFileName reindexes a rename inside one transaction: the
	// record stored under oldName and any record occupying doc's
	// (owner, type) slot are deleted, then doc is inserted. At no point can
	// two rows share a file name or a slot.
	ReplaceByFileName(ctx context.Context, oldName string, doc *model.Document) (*model.Document, error)

	// DeleteByFileName removes the record stored under the given file name.
	// It returns nil if the record did not exist.
	DeleteByFileName(ctx context.Context, name string) error
}
