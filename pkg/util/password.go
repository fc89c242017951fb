package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost for account passwords. Raising it invalidates nothing;
// existing hashes carry their own cost and keep verifying.
const bcryptCost = 12

// HashPassword hashes a plain text password for storage in users.password_hash
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plain text password matches the stored hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
