package utils

import "golang.org/x/crypto/bcrypt"

// PasswordHasher returns a hash function bound to the given bcrypt cost.
// Costs outside bcrypt's range fall back to the library default.
func PasswordHasher(cost int) func(string) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return func(password string) (string, error) {
		bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		return string(bytes), err
	}
}

// CheckPasswordHash compares a plain password with its hashed version.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
