package auth

import (
	"errors"

	"github.com/google/uuid"
)

type InMemoryAccountRepository struct {
	accounts map[string]*Account
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[string]*Account),
	}
}

func (r *InMemoryAccountRepository) Save(account *Account) error {
	// Generate UUIDs if not already set
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.Address == "" {
		account.Address = uuid.New().String()
	}
	r.accounts[account.Email] = account
	return nil
}

func (r *InMemoryAccountRepository) ExistsByEmail(email string) (bool, error) {
	_, exists := r.accounts[email]
	return exists, nil
}

func (r *InMemoryAccountRepository) FindByEmail(email string) (*Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return nil, errors.New("account not found")
	}
	return account, nil
}
