package auth

// Account is the domain entity. Address is the account's payment identity
// on the token service; shop ownership and purchases key on it.
type Account struct {
	ID       string
	Name     string
	Email    string
	Password string
	Address  string
}
