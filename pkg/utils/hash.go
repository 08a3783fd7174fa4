package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the hex encoded sha256 of data.
func Fingerprint(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
