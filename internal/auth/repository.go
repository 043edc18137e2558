package auth

// AccountRepository defines the data-access contract.
// Service depends ONLY on this interface.
type AccountRepository interface {
	Save(account *Account) error
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (*Account, error)
}
