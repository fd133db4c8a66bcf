package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// shortDigestLength is the number of hex characters kept by ShortDigest.
const shortDigestLength = 12

// SHA256 returns the hex encoded SHA-256 of s.
func SHA256(s string) string {
	return SHA256Bytes([]byte(s))
}

// SHA256Bytes returns the hex encoded SHA-256 of b.
func SHA256Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// SHA256Reader drains r and returns the hex encoded SHA-256 of everything read.
func SHA256Reader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ShortDigest is the truncated SHA-256 used for template IDs and inline source URLs.
func ShortDigest(b []byte) string {
	return SHA256Bytes(b)[:shortDigestLength]
}
