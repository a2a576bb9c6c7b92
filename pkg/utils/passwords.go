package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashPassword derives a salted HMAC-SHA256 digest in the form "salt$hex".
func HashPassword(plain string) string {
	salt := RandText(16)
	return salt + "$" + hashWithSalt(plain, salt)
}

// CheckPassword compares a plain password against a stored "salt$hex" digest
// in constant time.
func CheckPassword(stored, plain string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	expected := hashWithSalt(plain, parts[0])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(parts[1])) == 1
}

func hashWithSalt(plain, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(plain))
	return hex.EncodeToString(mac.Sum(nil))
}
