package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2Hash(t *testing.T) {
	h1 := Blake2Hash([]byte("mov.l @r5+, r7"))
	h2 := Blake2Hash([]byte("mov.l @r5+, r7"))
	h3 := Blake2Hash([]byte("mov.l @r5+, r8"))

	assert.Equal(t, h1, h2, "hash must be deterministic")
	assert.NotEqual(t, h1, h3)
	assert.False(t, IsNilHash(h1))
	assert.True(t, IsNilHash(Hash{}))
	assert.Len(t, h1.Hex(), 2+64)
	assert.Equal(t, h1.Hex(), h1.String())
}

func TestByteConversions(t *testing.T) {
	assert.Equal(t, uint64(0xdeadbeef01020304), BytesToUint64(Uint64ToBytes(0xdeadbeef01020304)))
	assert.Equal(t, uint32(0x7fffffff), BytesToUint32(Uint32ToBytes(0x7fffffff)))
	assert.Equal(t, uint16(0x9301), BytesToUint16(Uint16ToBytes(0x9301)))
}

func TestHex2Bytes(t *testing.T) {
	require.Equal(t, []byte{0x30, 0x0c}, Hex2Bytes("300c"))
	require.Equal(t, []byte{0x30, 0x0c}, Hex2Bytes("0x300c"))
	require.Equal(t, []byte{0x30, 0x0c}, Hex2Bytes(" 30 0c\n"))
	require.Nil(t, Hex2Bytes("zz"))
	assert.Equal(t, "0x300c", Bytes2Hex([]byte{0x30, 0x0c}))
}
