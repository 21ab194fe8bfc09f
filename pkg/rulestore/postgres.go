package rulestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/fieldrules/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresSource.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresSource reads documents from the form_rules table created by
// pg.Migrate. Definitions are stored as text so YAML documents and the key
// order of JSON documents survive.
type PostgresSource struct {
	db DB
}

func NewPostgresSource(db DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Definition is a stored document with its modification time.
type Definition struct {
	Document
	UpdatedAt time.Time
}

func (s *PostgresSource) Documents(ctx context.Context) ([]Document, error) {
	rows, err := s.db.Query(ctx, `SELECT name, definition FROM form_rules ORDER BY name`)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadRules, err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		var (
			d   Document
			def string
		)
		if err := row.Scan(&d.Name, &def); err != nil {
			return Document{}, err
		}
		d.Data = []byte(def)
		return d, nil
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadRules, err)
	}
	return docs, nil
}

// Get returns the stored definition of one form.
func (s *PostgresSource) Get(ctx context.Context, name string) (Definition, error) {
	var (
		d   Definition
		def string
	)
	err := s.db.QueryRow(ctx,
		`SELECT name, definition, updated_at FROM form_rules WHERE name = $1`, name,
	).Scan(&d.Name, &def, &d.UpdatedAt)
	if pg.IsNotFoundError(err) {
		return Definition{}, fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
	if err != nil {
		return Definition{}, errors.Join(ErrFailedToLoadRules, err)
	}
	d.Data = []byte(def)
	return d, nil
}

// Put stores or replaces the document of a form. The caller is expected to
// have checked it with rules.Parse.
func (s *PostgresSource) Put(ctx context.Context, doc Document) error {
	if doc.Name == "" {
		return ErrEmptyFormName
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO form_rules (name, definition, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`,
		doc.Name, string(doc.Data),
	)
	if err != nil {
		return errors.Join(ErrFailedToSaveRules, err)
	}
	return nil
}

// Delete removes a form. Deleting an unknown form returns ErrFormNotFound.
func (s *PostgresSource) Delete(ctx context.Context, name string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM form_rules WHERE name = $1`, name)
	if err != nil {
		return errors.Join(ErrFailedToSaveRules, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
	return nil
}
