package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor for password hashing. Raising it makes
// every hash and login proportionally more expensive.
const bcryptCost = 10

// PasswordHasher computes and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type bcryptHasher struct{}

// NewPasswordHasher returns the bcrypt-backed hasher used across the service.
func NewPasswordHasher() PasswordHasher {
	return bcryptHasher{}
}

func (bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is treated
// as a mismatch, never an error.
func (bcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
