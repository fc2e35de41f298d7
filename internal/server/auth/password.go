package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the API has always used for stored
// password hashes.
const bcryptCost = 10

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	// Hash produces a salted digest of the plaintext. Two calls with the
	// same plaintext yield different digests.
	Hash(password string) (string, error)

	// Verify reports whether plaintext matches the digest. A mismatch is a
	// normal false result, not an error.
	Verify(password, digest string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
