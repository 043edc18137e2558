package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	repo AccountRepository
}

func NewService(repo AccountRepository) *Service {
	return &Service{repo: repo}
}

// REGISTER
func (s *Service) Register(name, email, password string) (*Account, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("missing required fields")
	}

	exists, _ := s.repo.ExistsByEmail(email)
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	account := &Account{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.repo.Save(account); err != nil {
		return nil, err
	}

	return account, nil
}

// LOGIN
func (s *Service) Login(email, password string) (*Account, error) {
	account, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(account.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}
