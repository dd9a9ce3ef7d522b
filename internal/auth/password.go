// Package auth implements credential hashing and session cookie signing.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentialFormat reports a stored credential that does not have
// the expected "salt,digest" shape.
var ErrInvalidCredentialFormat = errors.New("invalid credential format")

const (
	saltLength   = 5
	saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// MakeSalt returns a fresh random salt of alphabetic characters.
func MakeSalt() (string, error) {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}

// HashPassword derives a stored credential of the form "salt,digest", where
// digest is the hex SHA-256 of name+password+salt.
func HashPassword(name, password string) (string, error) {
	salt, err := MakeSalt()
	if err != nil {
		return "", err
	}
	return hashWithSalt(name, password, salt), nil
}

func hashWithSalt(name, password, salt string) string {
	digest := sha256.Sum256([]byte(name + password + salt))
	return salt + "," + hex.EncodeToString(digest[:])
}

// VerifyPassword re-derives the digest using the salt embedded in stored and
// compares exactly. A mismatch returns (false, nil); only a malformed stored
// value is an error.
func VerifyPassword(name, password, stored string) (bool, error) {
	salt, _, ok := strings.Cut(stored, ",")
	if !ok || len(salt) != saltLength {
		return false, ErrInvalidCredentialFormat
	}
	expected := hashWithSalt(name, password, salt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(stored)) == 1, nil
}
