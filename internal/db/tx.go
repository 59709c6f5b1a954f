// Package db holds small database/sql helpers shared by the storage code.
package db

import (
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction, committing on success and rolling
// back if fn returns an error.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck // the fn error is the one to report
		return err
	}
	return tx.Commit()
}
