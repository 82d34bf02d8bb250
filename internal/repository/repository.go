// Package repository contains the data access layer for the document index:
// the authoritative mapping from persons to their currently stored documents.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository
