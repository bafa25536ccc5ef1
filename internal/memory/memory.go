// Package memory keeps a translation memory: original→translation pairs
// remembered across runs, keyed by a hash of the source text. The memory
// always has an in-process map; when a PostgreSQL pool is attached, entries
// are also persisted and survive the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"locextract/internal/textutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS translation_memory (
	hash       TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	translated TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Memory stores translation pairs in-process, optionally backed by PostgreSQL.
type Memory struct {
	pool    *pgxpool.Pool
	mu      sync.RWMutex
	entries map[string]string // hash → translated text
}

// New creates a memory backed by the given pool. A nil pool keeps the
// memory process-local.
func New(pool *pgxpool.Pool) *Memory {
	return &Memory{
		pool:    pool,
		entries: make(map[string]string),
	}
}

// EnsureSchema creates the backing table if a pool is attached.
func (m *Memory) EnsureSchema(ctx context.Context) error {
	if m.pool == nil {
		return nil
	}
	if _, err := m.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure memory schema: %w", err)
	}
	return nil
}

// Get retrieves a remembered translation for the source text.
func (m *Memory) Get(ctx context.Context, sourceText string) (string, bool) {
	hash := textutil.Hash(sourceText)

	m.mu.RLock()
	if v, ok := m.entries[hash]; ok {
		m.mu.RUnlock()
		return v, true
	}
	m.mu.RUnlock()

	if m.pool == nil {
		return "", false
	}

	var translated string
	err := m.pool.QueryRow(ctx,
		`SELECT translated FROM translation_memory WHERE hash = $1`, hash,
	).Scan(&translated)
	if err != nil {
		return "", false
	}

	m.mu.Lock()
	m.entries[hash] = translated
	m.mu.Unlock()

	return translated, true
}

// Set remembers one translation pair.
func (m *Memory) Set(ctx context.Context, sourceText, translated string) error {
	hash := textutil.Hash(sourceText)

	m.mu.Lock()
	m.entries[hash] = translated
	m.mu.Unlock()

	if m.pool == nil {
		return nil
	}

	_, err := m.pool.Exec(ctx,
		`INSERT INTO translation_memory (hash, source, translated)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (hash) DO UPDATE SET translated = EXCLUDED.translated, updated_at = now()`,
		hash, sourceText, translated,
	)
	if err != nil {
		return fmt.Errorf("memory set: %w", err)
	}
	return nil
}

// SetBatch remembers multiple pairs, stopping at the first failure.
func (m *Memory) SetBatch(ctx context.Context, pairs map[string]string) error {
	for source, translated := range pairs {
		if err := m.Set(ctx, source, translated); err != nil {
			return fmt.Errorf("store %q: %w", textutil.Truncate(source, 30), err)
		}
	}
	return nil
}

// Preload loads all persisted pairs into the in-process map.
func (m *Memory) Preload(ctx context.Context) error {
	if m.pool == nil {
		return nil
	}

	rows, err := m.pool.Query(ctx, `SELECT hash, translated FROM translation_memory`)
	if err != nil {
		return fmt.Errorf("preload memory: %w", err)
	}
	defer rows.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for rows.Next() {
		var hash, translated string
		if err := rows.Scan(&hash, &translated); err != nil {
			return fmt.Errorf("scan memory row: %w", err)
		}
		m.entries[hash] = translated
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate memory rows: %w", err)
	}

	log.Info().Int("count", count).Msg("Preloaded translation memory")
	return nil
}

// Len reports the number of in-process entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
