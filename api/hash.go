package api

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHash is the sole incremental re-parse trigger (I5): a pure
// function of bytes, deterministic across invocations (P6). Used both
// for FileInfo.ContentHash (whole file) and Symbol.ContentHash (one
// symbol's content span, for re-embed detection).
func ContentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ContentHashString is a convenience wrapper for callers holding a string.
func ContentHashString(s string) string {
	return ContentHash([]byte(s))
}
