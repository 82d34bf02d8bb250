package model

import (
	"fmt"
	"strings"
	"time"
)

// DocumentType is the fixed category of a stored document.
type DocumentType string

const (
	TypeCPF        DocumentType = "cpf"
	TypeRG         DocumentType = "rg"
	TypeHistorico  DocumentType = "historico"
	TypeCertidao   DocumentType = "certidao"
	TypeResidencia DocumentType = "residencia"
)

// DocumentTypes lists every accepted document type.
var DocumentTypes = []DocumentType{TypeCPF, TypeRG, TypeHistorico, TypeCertidao, TypeResidencia}

// Valid reports whether t is one of the accepted document types.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t DocumentType) String() string { return string(t) }

// Document represents one stored PDF belonging to a person.
// At most one document exists per (owner, type) pair; uploading a new one
// replaces the previous record.
type Document struct {
	ID        string       `json:"id"`
	Tipo      DocumentType `json:"tipo"`
	FileName  string       `json:"arquivo"`
	PersonID  string       `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

// CanonicalFileName derives the on-disk name for a document from its type and
// its owner's CPF. The name doubles as the storage key and the index key, so
// it must stay deterministic.
func CanonicalFileName(tipo DocumentType, cpf string) string {
	return fmt.Sprintf("%s_%s.pdf", tipo, cpf)
}

// ValidFileName reports whether name is a well-formed canonical file name:
// a known type, an underscore, a plain CPF token and the .pdf suffix. Route
// parameters go through this check so path-like input never reaches the
// store.
func ValidFileName(name string) bool {
	base := strings.TrimSuffix(name, ".pdf")
	if base == name {
		return false
	}
	tipo, cpf, found := strings.Cut(base, "_")
	return found && DocumentType(tipo).Valid() && ValidCPFToken(cpf)
}

// ValidCPFToken reports whether cpf is usable inside a canonical file name:
// non-empty and free of path separators and dots.
func ValidCPFToken(cpf string) bool {
	return cpf != "" && !strings.ContainsAny(cpf, `/\.`)
}

// OwnerFromFileName recovers the owner CPF embedded in a canonical file name.
// It exists only as a compatibility shim for callers that hold nothing but a
// file name; resolving the owner through the index is preferred.
func OwnerFromFileName(name string) (string, bool) {
	base := strings.TrimSuffix(name, ".pdf")
	if base == name {
		return "", false
	}
	_, cpf, found := strings.Cut(base, "_")
	if !found || cpf == "" {
		return "", false
	}
	return cpf, true
}
