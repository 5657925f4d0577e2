package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n characters of SHA256(input). Used for log
// correlation keys that must not reveal the raw value.
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) {
		return full
	}
	return full[:n]
}

// HashIP hashes a client IP with a salt so votes can be correlated for abuse
// review without storing raw addresses.
func HashIP(ip, salt string) string {
	return SHA256Hex(salt + ip)
}
