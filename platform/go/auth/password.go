package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt cost factor used for all stored password hashes.
const passwordHashCost = 10

// HashPassword returns a salted bcrypt hash of the plaintext password.
// Plaintext passwords are never stored or logged.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
