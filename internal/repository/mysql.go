package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vaultpass/passgen/internal/model"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS password_entries (
		id       BIGINT AUTO_INCREMENT PRIMARY KEY,
		name     VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
		password TEXT CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
		UNIQUE KEY uq_password_entries_name (name)
	)`

// MySQLRepository stores entries as rows of the password_entries table.
// Row id order is the insertion order. Names compare byte for byte, so
// "Gmail" and "gmail" are distinct entries.
type MySQLRepository struct {
	db *sql.DB
}

// NewMySQLRepository creates a new MySQLRepository.
func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// Init creates the password_entries table if it does not exist.
func (r *MySQLRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// LoadAll retrieves every entry ordered by insertion.
func (r *MySQLRepository) LoadAll(ctx context.Context) (*model.Entries, error) {
	query := `SELECT name, password FROM password_entries ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	entries := &model.Entries{}
	for rows.Next() {
		var name, password string
		if err := rows.Scan(&name, &password); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
		entries.Set(name, password)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return entries, nil
}

// ReplaceAll deletes every row and inserts entries within one transaction.
func (r *MySQLRepository) ReplaceAll(ctx context.Context, entries *model.Entries) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM password_entries`); err != nil {
		return fmt.Errorf("%w: clearing entries: %v", ErrStorageUnavailable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO password_entries (name, password) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer stmt.Close()

	for _, e := range entries.All() {
		if _, err := stmt.ExecContext(ctx, e.Name, e.Password); err != nil {
			return fmt.Errorf("%w: inserting %q: %v", ErrStorageUnavailable, e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}
