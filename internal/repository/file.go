package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/vaultpass/passgen/internal/model"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// writeData copies the encoded store into the pending file. Tests replace it
// to fail part way through a write.
var writeData = func(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// FileRepository stores all entries as one JSON object in a single file.
type FileRepository struct {
	path string
}

// NewFileRepository creates a FileRepository backed by the file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the backing file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Init writes an empty object to the backing file unless it already exists.
func (r *FileRepository) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), dirMode); err != nil {
		return fmt.Errorf("%w: creating store directory: %v", ErrStorageUnavailable, err)
	}

	return r.write(&model.Entries{})
}

// LoadAll reads and parses the backing file.
func (r *FileRepository) LoadAll(ctx context.Context) (*model.Entries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	entries := &model.Entries{}
	if err := json.Unmarshal(data, entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, r.path, err)
	}

	return entries, nil
}

// ReplaceAll writes entries to a temporary file next to the store and renames
// it over the original.
func (r *FileRepository) ReplaceAll(ctx context.Context, entries *model.Entries) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(entries)
}

func (r *FileRepository) write(entries *model.Entries) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}

	pending, err := renameio.NewPendingFile(r.path, renameio.WithPermissions(fileMode))
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, r.path, err)
	}
	defer pending.Cleanup()

	if err := writeData(pending, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, r.path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrStorageUnavailable, r.path, err)
	}

	return nil
}
