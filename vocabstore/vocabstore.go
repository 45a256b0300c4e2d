package vocabstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/circus"
)

// Sentinel errors for persistence.
var (
	// ErrNotFrozen is returned when Save is given an unfrozen vocabulary.
	ErrNotFrozen = errors.New("vocabstore: vocabulary is not frozen")

	// ErrModelNotFound is returned when no model of the given name exists.
	ErrModelNotFound = errors.New("vocabstore: model not found")
)

// Store is a SQLite-backed repository of fitted generator state, keyed by
// model name.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at the given path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("vocabstore: opening database: %w", err)
	}
	// SQLite doesn't support concurrent writers.
	db.SetMaxOpenConns(1)
	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("vocabstore: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS models (
			name    TEXT PRIMARY KEY,
			lower   INTEGER NOT NULL,
			upper   INTEGER NOT NULL,
			on_bond INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS vocab (
			model TEXT    NOT NULL,
			key   TEXT    NOT NULL,
			idx   INTEGER NOT NULL,
			PRIMARY KEY (model, idx)
		);

		CREATE INDEX IF NOT EXISTS idx_vocab_model ON vocab(model);
	`
	_, err := db.Exec(schema)
	return err
}

// Save persists the generator configuration and frozen vocabulary under
// name, replacing any previous model of that name atomically. Returns
// ErrNotFrozen for a vocabulary still in fit mode.
func (s *Store) Save(ctx context.Context, name string, cfg circus.Config, vocab *circus.Vocabulary) error {
	if vocab == nil || !vocab.Frozen() {
		return ErrNotFrozen
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("vocabstore: beginning save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO models (name, lower, upper, on_bond)
		VALUES (?, ?, ?, ?)
	`, name, cfg.Lower, cfg.Upper, cfg.OnBond)
	if err != nil {
		return fmt.Errorf("vocabstore: inserting model %q: %w", name, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM vocab WHERE model = ?", name); err != nil {
		return fmt.Errorf("vocabstore: clearing vocab of %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vocab (model, key, idx) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("vocabstore: preparing vocab insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range vocab.Snapshot() {
		if _, err = stmt.ExecContext(ctx, name, p.Key, p.Index); err != nil {
			return fmt.Errorf("vocabstore: inserting key %q of %q: %w", p.Key, name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("vocabstore: committing save of %q: %w", name, err)
	}
	return nil
}

// Load reconstructs the configuration and frozen vocabulary stored under
// name. Returns ErrModelNotFound for an unknown name.
func (s *Store) Load(ctx context.Context, name string) (circus.Config, *circus.Vocabulary, error) {
	var cfg circus.Config
	err := s.db.QueryRowContext(ctx, `
		SELECT lower, upper, on_bond FROM models WHERE name = ?
	`, name).Scan(&cfg.Lower, &cfg.Upper, &cfg.OnBond)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return circus.Config{}, nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
		}
		return circus.Config{}, nil, fmt.Errorf("vocabstore: loading model %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, idx FROM vocab WHERE model = ? ORDER BY idx
	`, name)
	if err != nil {
		return circus.Config{}, nil, fmt.Errorf("vocabstore: loading vocab of %q: %w", name, err)
	}
	defer rows.Close()

	var pairs []circus.KeyIndex
	for rows.Next() {
		var p circus.KeyIndex
		if err = rows.Scan(&p.Key, &p.Index); err != nil {
			return circus.Config{}, nil, fmt.Errorf("vocabstore: scanning vocab of %q: %w", name, err)
		}
		pairs = append(pairs, p)
	}
	if err = rows.Err(); err != nil {
		return circus.Config{}, nil, fmt.Errorf("vocabstore: reading vocab of %q: %w", name, err)
	}

	vocab, err := circus.FromSnapshot(pairs)
	if err != nil {
		return circus.Config{}, nil, fmt.Errorf("vocabstore: model %q: %w", name, err)
	}
	return cfg, vocab, nil
}

// LoadGenerator reconstructs a ready-to-transform Generator stored under
// name. Extra options (workers, unknown-key policy) apply on top of the
// persisted configuration.
func (s *Store) LoadGenerator(ctx context.Context, name string, opts ...circus.Option) (*circus.Generator, error) {
	cfg, vocab, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return circus.Restore(cfg, vocab, opts...)
}

// List returns the stored model names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM models ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("vocabstore: listing models: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err = rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Delete removes the named model and its vocabulary. Returns
// ErrModelNotFound when nothing was stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("vocabstore: beginning delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM models WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("vocabstore: deleting model %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM vocab WHERE model = ?", name); err != nil {
		return fmt.Errorf("vocabstore: deleting vocab of %q: %w", name, err)
	}
	return tx.Commit()
}
