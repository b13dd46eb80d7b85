package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// The user.password column holds either a bcrypt hash or, for accounts
// created by old game launchers, a bare MD5 digest.

func MD5Hex(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// IsLegacyMD5 reports whether a stored hash is a bare MD5 digest.
func IsLegacyMD5(stored string) bool {
	return len(stored) == 32 && !strings.HasPrefix(stored, "$2")
}

const bcryptCost = bcrypt.DefaultCost

// HashPassword produces the value stored in user.password for new accounts.
// The 60-byte bcrypt output fits the column's varchar(64).
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("crypto: empty password")
	}
	bs, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// VerifyPassword checks plain against a stored hash, detecting the scheme
// from the stored form.
func VerifyPassword(plain, stored string) bool {
	if IsLegacyMD5(stored) {
		return MD5Hex(plain) == stored
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return false
}
