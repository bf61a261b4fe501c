package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/repository"
	"github.com/vaultpass/passgen/internal/service"
)

// newClipboard is replaced in tests.
var newClipboard = func() clipboard.Writer { return clipboard.NewSystem() }

// app bundles the services a command needs.
type app struct {
	repo      repository.Repository
	generator *service.GeneratorService
	entries   *service.EntryService
	close     func()
}

// openApp builds the services from the environment. --store forces the file
// driver at the given path.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if storePath != "" {
		cfg.StoreDriver = config.DriverFile
		cfg.StorePath = storePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	a := &app{close: func() {}}

	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.repo = repository.NewMySQLRepository(db)
		a.close = func() { db.Close() }
	default:
		a.repo = repository.NewFileRepository(cfg.StorePath)
	}

	a.generator = service.NewGeneratorService(crypto.GeneratorOptions{Length: cfg.DefaultLength})
	a.entries = service.NewEntryService(a.repo, a.generator, newClipboard())
	return a, nil
}

// storeHint adds a remedy to errors the user can fix.
func storeHint(err error) error {
	if errors.Is(err, repository.ErrStorageUnavailable) {
		return fmt.Errorf("%w (run 'passgen init' to create the store)", err)
	}
	return err
}
