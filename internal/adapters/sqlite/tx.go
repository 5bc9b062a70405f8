package sqlite

import (
	"database/sql"
	"time"

	"roadtrack/internal/ports"
)

// kvTx implements ports.KeyValueTx
type kvTx struct {
	tx *sql.Tx
}

// Ensure kvTx implements KeyValueTx
var _ ports.KeyValueTx = (*kvTx)(nil)

// Set inserts or replaces a value
func (t *kvTx) Set(key, value string) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().Unix())
	return err
}

// Delete removes a key
func (t *kvTx) Delete(key string) error {
	_, err := t.tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Commit commits the transaction
func (t *kvTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *kvTx) Rollback() error {
	return t.tx.Rollback()
}
