package repository

import (
	"context"
	"errors"

	"github.com/vaultpass/passgen/internal/model"
)

var (
	// ErrStorageUnavailable is returned when the store cannot be opened or read.
	ErrStorageUnavailable = errors.New("password store unavailable")

	// ErrCorruptData is returned when the store content is not a name to password mapping.
	ErrCorruptData = errors.New("password store is corrupt")
)

// Repository persists the whole name to password mapping as one unit.
type Repository interface {
	// Init creates an empty store if none exists. An existing store is left untouched.
	Init(ctx context.Context) error

	// LoadAll reads the full mapping.
	LoadAll(ctx context.Context) (*model.Entries, error)

	// ReplaceAll rewrites the full mapping. Either every entry is written or
	// the previous contents remain.
	ReplaceAll(ctx context.Context, entries *model.Entries) error
}

var (
	_ Repository = (*FileRepository)(nil)
	_ Repository = (*MySQLRepository)(nil)
)
