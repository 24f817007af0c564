package auth

// Principal is the authenticated identity supplied to every mutating or
// retrieving operation
type Principal struct {
	ID        uint
	Username  string
	Superuser bool
}
