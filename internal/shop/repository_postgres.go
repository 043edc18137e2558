package shop

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a new shop state (one row per shop key)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, key string, state *State) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shop_states (key, state)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, key, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShopExists
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, key string) (*State, error) {
	query := `SELECT state FROM shop_states WHERE key = $1`

	var doc []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}

	state := &State{}
	if err := json.Unmarshal(doc, state); err != nil {
		return nil, err
	}
	return state, nil
}

// --------------------------------------------------
// Atomic read-modify-write of one shop state
// --------------------------------------------------
// The row is locked for the duration of the transaction, so the state the
// callback sees is the state the write replaces. A failed callback rolls
// the transaction back and persists nothing.
func (r *PostgresRepository) Update(ctx context.Context, key string, fn func(*State) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx,
		`SELECT state FROM shop_states WHERE key = $1 FOR UPDATE`,
		key,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrShopNotFound
	}
	if err != nil {
		return err
	}

	state := &State{}
	if err := json.Unmarshal(doc, state); err != nil {
		return err
	}

	if err := fn(state); err != nil {
		return err
	}

	next, err := json.Marshal(state)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE shop_states SET state = $1, updated_at = NOW() WHERE key = $2`,
		next, key,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
