package common

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Hash is a 32-byte blake2b digest used to key analysis artifacts.
type Hash [32]byte

// ComputeHash computes the BLAKE2b hash of the given data
func ComputeHash(data []byte) []byte {
	hash := blake2b.Sum256(data)
	return hash[:]
}

func Blake2Hash(data []byte) Hash {
	return BytesToHash(ComputeHash(data))
}

// BytesToHash converts a byte slice to a Hash, right-aligned.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Hex returns the hexadecimal string representation of the hash.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// String returns the string representation of the hash.
func (h Hash) String() string {
	return h.Hex()
}

func (h Hash) StringShort() string {
	return fmt.Sprintf("%s..%s", h.Hex()[2:6], h.Hex()[62:66])
}

func IsNilHash(h Hash) bool {
	return h == Hash{}
}
