package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns room passwords into stored hashes and checks incoming
// passwords against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(storedHash, password string) bool
}

// NewPasswordHasher returns the hasher registered under name ("sha256" or "bcrypt").
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch name {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hash %q", name)
	}
}

// SHA256Hasher stores the unsalted hex SHA-256 digest of the password.
// It is fast and unsalted, so it only offers placeholder protection.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	return sha256Hex(password), nil
}

func (SHA256Hasher) Verify(storedHash, password string) bool {
	if storedHash == "" {
		return true
	}
	incoming := ""
	if password != "" {
		incoming = sha256Hex(password)
	}
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(incoming)) == 1
}

// BcryptHasher stores salted bcrypt hashes. Rooms created while the service
// used SHA256Hasher keep working.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(storedHash, password string) bool {
	if storedHash == "" {
		return true
	}
	if !strings.HasPrefix(storedHash, "$2") {
		return SHA256Hasher{}.Verify(storedHash, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
