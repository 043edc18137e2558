package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) Save(account *Account) error {
	// Generate UUIDs if not already set
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.Address == "" {
		account.Address = uuid.New().String()
	}

	query := `
		INSERT INTO accounts (id, name, email, password, address)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(context.Background(), query,
		account.ID, account.Name, account.Email, account.Password, account.Address,
	)
	return err
}

func (r *PostgresAccountRepository) ExistsByEmail(email string) (bool, error) {
	query := `SELECT 1 FROM accounts WHERE email=$1 LIMIT 1`
	row := r.db.QueryRow(context.Background(), query, email)

	var exists int
	err := row.Scan(&exists)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresAccountRepository) FindByEmail(email string) (*Account, error) {
	query := `
		SELECT id, name, email, password, address
		FROM accounts WHERE email=$1
	`
	row := r.db.QueryRow(context.Background(), query, email)

	account := &Account{}
	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.Password, &account.Address); err != nil {
		return nil, errors.New("account not found")
	}
	return account, nil
}
