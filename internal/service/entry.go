package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/repository"
)

// MaxNameLength is the longest entry name in characters. The mysql store
// holds names in a VARCHAR(255) column.
const MaxNameLength = 255

var (
	ErrNameRequired  = errors.New("entry name is required")
	ErrNameTooLong   = fmt.Errorf("entry name must be at most %d characters", MaxNameLength)
	ErrNameInvalid   = errors.New("entry name must be valid UTF-8")
	ErrEntryNotFound = errors.New("password entry not found")
)

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrNameRequired
	case !utf8.ValidString(name):
		return ErrNameInvalid
	case utf8.RuneCountInString(name) > MaxNameLength:
		return ErrNameTooLong
	}
	return nil
}

// EntryService handles saved password business logic. Every operation
// reloads the full mapping; mutations rewrite it in full.
type EntryService struct {
	mu        sync.Mutex
	repo      repository.Repository
	generator *GeneratorService
	clip      clipboard.Writer
}

// NewEntryService creates a new EntryService.
func NewEntryService(repo repository.Repository, generator *GeneratorService, clip clipboard.Writer) *EntryService {
	return &EntryService{
		repo:      repo,
		generator: generator,
		clip:      clip,
	}
}

// LoadAll returns every stored entry.
func (s *EntryService) LoadAll(ctx context.Context) (*model.Entries, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.LoadAll(ctx)
}

// Save stores password under name, overwriting any existing entry.
func (s *EntryService) Save(ctx context.Context, name, password string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	_, existed := entries.Get(name)
	entries.Set(name, password)

	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return err
	}

	slog.Debug("entry saved", "name", name, "overwrite", existed, "entries", entries.Len())
	return nil
}

// GenerateAndSave generates a password from req and stores it under name.
func (s *EntryService) GenerateAndSave(ctx context.Context, name string, req model.GenerateRequest) (model.GenerateResponse, error) {
	if err := validateName(name); err != nil {
		return model.GenerateResponse{}, err
	}

	resp, err := s.generator.Generate(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	if err := s.Save(ctx, name, resp.Password); err != nil {
		return model.GenerateResponse{}, err
	}

	return resp, nil
}

// Get returns the password stored under name. ok is false for the
// NoSelection sentinel and for unknown names.
func (s *EntryService) Get(ctx context.Context, name string) (password string, ok bool, err error) {
	if name == model.NoSelection {
		return "", false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.LoadAll(ctx)
	if err != nil {
		return "", false, err
	}

	password, ok = entries.Get(name)
	return password, ok, nil
}

// Delete removes the entry stored under name. Nothing is written when the
// name is absent.
func (s *EntryService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	if !entries.Delete(name) {
		return fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}

	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return err
	}

	slog.Debug("entry deleted", "name", name, "entries", entries.Len())
	return nil
}

// ListNames returns the stored names in store order.
func (s *EntryService) ListNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	return entries.Names(), nil
}

// SelectionNames returns ListNames with a leading NoSelection sentinel, the
// shape a picker widget expects.
func (s *EntryService) SelectionNames(ctx context.Context) ([]string, error) {
	names, err := s.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{model.NoSelection}, names...), nil
}

// Copy places the password stored under name on the clipboard.
func (s *EntryService) Copy(ctx context.Context, name string) error {
	password, ok, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrEntryNotFound, name)
	}

	return s.clip.WriteAll(password)
}
