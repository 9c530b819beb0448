package auth

import "golang.org/x/crypto/bcrypt"

// VerifyPassword compares a bcrypt hash with a plaintext candidate.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword hashes a plaintext password with the given bcrypt cost.
// Used by provisioning tooling and tests.
func HashPassword(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
