package postgres

import (
	"context"
	"database/sql"

	"custodia/internal/model"
	"custodia/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Upsert deletes any row occupying the (owner, type) slot and inserts doc,
// all inside one transaction so the slot never holds two rows.
func (r *DocumentPostgres) Upsert(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qDelete = `DELETE FROM documentos WHERE usuario_id = $1 AND tipo = $2`
	if _, err := tx.ExecContext(ctx, qDelete, doc.PersonID, doc.Tipo); err != nil {
		return nil, err
	}

	const qInsert = `
		INSERT INTO documentos (id, tipo, nome_arquivo, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tipo, nome_arquivo, usuario_id, created_at
	`
	row := tx.QueryRowContext(ctx, qInsert,
		doc.ID,
		doc.Tipo,
		doc.FileName,
		doc.PersonID,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.Tipo,
		&out.FileName,
		&out.PersonID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByFileName fetches a single document record by its stored file name.
func (r *DocumentPostgres) FindByFileName(ctx context.Context, name string) (*model.Document, error) {
	const q = `
		SELECT id, tipo, nome_arquivo, usuario_id, created_at
		FROM documentos
		WHERE nome_arquivo = $1
	`
	row := r.db.QueryRowContext(ctx, q, name)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Tipo,
		&d.FileName,
		&d.PersonID,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByOwner returns all documents of a person in insertion order.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, personID string) ([]model.Document, error) {
	const q = `
		SELECT id, tipo, nome_arquivo, usuario_id, created_at
		FROM documentos
		WHERE usuario_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.Tipo,
			&d.FileName,
			&d.PersonID,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// ReplaceByFileName reindexes a rename. The old record and any record
// holding the target (owner, type) slot are removed before the insert so the
// UNIQUE constraints on nome_arquivo and (usuario_id, tipo) cannot trip.
func (r *DocumentPostgres) ReplaceByFileName(ctx context.Context, oldName string, doc *model.Document) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qDeleteOld = `DELETE FROM documentos WHERE nome_arquivo = $1`
	if _, err := tx.ExecContext(ctx, qDeleteOld, oldName); err != nil {
		return nil, err
	}

	const qDeleteSlot = `DELETE FROM documentos WHERE usuario_id = $1 AND tipo = $2`
	if _, err := tx.ExecContext(ctx, qDeleteSlot, doc.PersonID, doc.Tipo); err != nil {
		return nil, err
	}

	const qInsert = `
		INSERT INTO documentos (id, tipo, nome_arquivo, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tipo, nome_arquivo, usuario_id, created_at
	`
	row := tx.QueryRowContext(ctx, qInsert,
		doc.ID,
		doc.Tipo,
		doc.FileName,
		doc.PersonID,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.Tipo,
		&out.FileName,
		&out.PersonID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteByFileName removes a record by file name. Missing rows are not an error.
func (r *DocumentPostgres) DeleteByFileName(ctx context.Context, name string) error {
	const q = `DELETE FROM documentos WHERE nome_arquivo = $1`
	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
