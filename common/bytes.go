package common

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Uint64ToBytes encodes a uint64 value into a byte slice in LittleEndian order
func Uint64ToBytes(val uint64) []byte {
	bytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(bytes, val)
	return bytes
}

func Uint32ToBytes(val uint32) []byte {
	bytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(bytes, val)
	return bytes
}

func Uint16ToBytes(val uint16) []byte {
	bytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(bytes, val)
	return bytes
}

func BytesToUint64(data []byte) uint64 {
	if len(data) < 8 {
		panic("BytesToUint64: byte slice too short")
	}
	return binary.LittleEndian.Uint64(data)
}

func BytesToUint32(data []byte) uint32 {
	if len(data) < 4 {
		panic("BytesToUint32: byte slice too short")
	}
	return binary.LittleEndian.Uint32(data)
}

func BytesToUint16(data []byte) uint16 {
	if len(data) < 2 {
		panic("BytesToUint16: byte slice too short")
	}
	return binary.LittleEndian.Uint16(data)
}

func Bytes2Hex(d []byte) string {
	return "0x" + hex.EncodeToString(d)
}

// Hex2Bytes decodes a hex string, tolerating an optional 0x prefix and
// embedded whitespace. Invalid input yields nil.
func Hex2Bytes(s string) []byte {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}
