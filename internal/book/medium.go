package book

import (
	"database/sql"
	"errors"
	"sync"
)

// Medium is the persistent string-keyed storage the record books live on.
// Values are whole JSON documents written back on every mutation; there is
// no partial update. Load returns (nil, nil) for a missing key.
type Medium interface {
	Load(key string) ([]byte, error)
	Store(key string, value []byte) error
	Delete(key string) error
}

// MemMedium is an in-process Medium, used in tests and for clients that
// do not want durable books.
type MemMedium struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemMedium() *MemMedium {
	return &MemMedium{data: map[string][]byte{}}
}

func (m *MemMedium) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemMedium) Store(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemMedium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// SQLMedium stores entries in the service database's kv table. Works on
// both supported drivers; the upsert syntax is shared.
type SQLMedium struct {
	db *sql.DB
}

func NewSQLMedium(db *sql.DB) *SQLMedium { return &SQLMedium{db: db} }

func (m *SQLMedium) Load(key string) ([]byte, error) {
	var v []byte
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key=$1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (m *SQLMedium) Store(key string, value []byte) error {
	_, err := m.db.Exec(`INSERT INTO kv (key, value) VALUES ($1,$2)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value`, key, value)
	return err
}

func (m *SQLMedium) Delete(key string) error {
	_, err := m.db.Exec(`DELETE FROM kv WHERE key=$1`, key)
	return err
}
