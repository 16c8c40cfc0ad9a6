package lifter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/narwhalsec/shil/sh"
)

func TestMovSemantics(t *testing.T) {
	t.Run("immediate sign-extends", func(t *testing.T) {
		m := newMachine()
		m.exec(t, 0xe2fe) // mov #-2, r2
		assert.Equal(t, uint64(0xfffffffe), m.regs[cell(2)])
	})

	t.Run("byte load sign-extends", func(t *testing.T) {
		m := newMachine()
		m.regs[cell(11)] = 0x1000
		m.store(0x1002, 8, 0x80)
		m.exec(t, 0x84b2) // mov.b @(2,r11), r0
		assert.Equal(t, uint64(0xffffff80), m.regs[cell(0)])
	})

	t.Run("long store with displacement", func(t *testing.T) {
		m := newMachine()
		m.regs[cell(2)] = 0x2000
		m.regs[cell(3)] = 0xcafebabe
		m.exec(t, 0x1234) // mov.l r3, @(16,r2)
		assert.Equal(t, uint64(0xcafebabe), m.load(0x2010, 32))
	})

	t.Run("word store truncates", func(t *testing.T) {
		m := newMachine()
		m.regs["gbr"] = 0x9000
		m.regs[cell(0)] = 0x12345678
		m.exec(t, 0xc101) // mov.w r0, @(2,gbr)
		assert.Equal(t, uint64(0x5678), m.load(0x9002, 16))
	})

	t.Run("indexed load", func(t *testing.T) {
		m := newMachine()
		m.regs[cell(0)] = 4
		m.regs[cell(13)] = 0x300
		m.store(0x304, 32, 0x11223344)
		m.exec(t, 0x09de) // mov.l @(r0,r13), r9
		assert.Equal(t, uint64(0x11223344), m.regs[cell(9)])
	})

	t.Run("pc word displacement", func(t *testing.T) {
		m := newMachine()
		m.regs["pc"] = 0x8002
		m.store(0x800a, 16, 0x8000)
		m.exec(t, 0x9902) // mov.w @(2,pc), r9
		assert.Equal(t, uint64(0xffff8000), m.regs[cell(9)])
	})

	t.Run("pc long displacement masks the base", func(t *testing.T) {
		m := newMachine()
		m.regs["pc"] = 0x8002
		m.store(0x800c, 32, 0x12345678)
		m.exec(t, 0xd902) // mov.l @(2,pc), r9
		assert.Equal(t, uint64(0x12345678), m.regs[cell(9)])
	})
}

func TestMovtSemantics(t *testing.T) {
	m := newMachine()
	m.regs[sh.SrT] = 1
	m.exec(t, 0x0829) // movt r8
	assert.Equal(t, uint64(1), m.regs[cell(8)])

	m.regs[sh.SrT] = 0
	m.exec(t, 0x0829)
	assert.Equal(t, uint64(0), m.regs[cell(8)])
}

func TestSwapSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(2)] = 0x12345678
	m.exec(t, 0x6128) // swap.b r2, r1
	assert.Equal(t, uint64(0x12347856), m.regs[cell(1)])

	m.regs[cell(5)] = 0xdeadbeef
	m.exec(t, 0x6659) // swap.w r5, r6
	assert.Equal(t, uint64(0xbeefdead), m.regs[cell(6)])
}

func TestXtrctSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(7)] = 0xaaaabbbb
	m.regs[cell(13)] = 0xccccdddd
	m.exec(t, 0x2d7d) // xtrct r7, r13
	assert.Equal(t, uint64(0xbbbbcccc), m.regs[cell(13)])
}

func TestCmpSemantics(t *testing.T) {
	// two-operand forms on r8 (Rm) and r9 (Rn)
	execT := func(t *testing.T, word uint16, rm, rn uint64) uint64 {
		t.Helper()
		m := newMachine()
		m.regs[cell(8)] = rm
		m.regs[cell(9)] = rn
		m.exec(t, word)
		return m.regs[sh.SrT]
	}

	assert.Equal(t, uint64(1), execT(t, 0x3980, 5, 5))          // cmp/eq
	assert.Equal(t, uint64(0), execT(t, 0x3980, 5, 6))          // cmp/eq
	assert.Equal(t, uint64(0), execT(t, 0x3982, 0xffffffff, 1)) // cmp/hs unsigned
	assert.Equal(t, uint64(1), execT(t, 0x3982, 1, 0xffffffff)) // cmp/hs unsigned
	assert.Equal(t, uint64(1), execT(t, 0x3983, 0xffffffff, 1)) // cmp/ge signed
	assert.Equal(t, uint64(0), execT(t, 0x3983, 1, 0xffffffff)) // cmp/ge signed
	assert.Equal(t, uint64(1), execT(t, 0x3983, 7, 7))          // cmp/ge on equal
	assert.Equal(t, uint64(0), execT(t, 0x3986, 5, 5))          // cmp/hi strict
	assert.Equal(t, uint64(1), execT(t, 0x3986, 4, 5))          // cmp/hi strict
	assert.Equal(t, uint64(1), execT(t, 0x3987, 0x80000000, 0x7fffffff)) // cmp/gt signed

	// sign tests on r9
	assert.Equal(t, uint64(1), execT(t, 0x4911, 0, 0))          // cmp/pz zero counts
	assert.Equal(t, uint64(0), execT(t, 0x4911, 0, 0x80000000)) // cmp/pz
	assert.Equal(t, uint64(0), execT(t, 0x4915, 0, 0))          // cmp/pl strict
	assert.Equal(t, uint64(1), execT(t, 0x4915, 0, 1))          // cmp/pl

	// immediate form compares against r0
	m := newMachine()
	m.regs[cell(0)] = 0xfffffffc
	m.exec(t, 0x88fc) // cmp/eq #-4, r0
	assert.Equal(t, uint64(1), m.regs[sh.SrT])
}

func TestCmpStrSemantics(t *testing.T) {
	tests := []struct {
		rm, rn uint64
		want   uint64
	}{
		{0x11223344, 0x55334477, 0}, // no lane matches
		{0x11223344, 0x55223377, 1}, // middle lanes match
		{0x11223344, 0x11000000, 1}, // highest lane matches
		{0xdeadbeef, 0x000000ef, 1}, // lowest lane matches
		{0xdeadbeef, 0xdeadbeef, 1},
	}
	for _, tc := range tests {
		m := newMachine()
		m.regs[cell(13)] = tc.rm
		m.regs[cell(11)] = tc.rn
		m.exec(t, 0x2bdc) // cmp/str r13, r11
		assert.Equal(t, tc.want, m.regs[sh.SrT], "0x%08x vs 0x%08x", tc.rm, tc.rn)
	}
}

func TestDivSetupSemantics(t *testing.T) {
	m := newMachine()
	m.regs[sh.SrM] = 1
	m.regs[sh.SrQ] = 1
	m.regs[sh.SrT] = 1
	m.exec(t, 0x0019) // div0u
	assert.Zero(t, m.regs[sh.SrM])
	assert.Zero(t, m.regs[sh.SrQ])
	assert.Zero(t, m.regs[sh.SrT])

	// div0s r8, r9: M tracks the divisor sign, Q the dividend sign
	m.regs[cell(8)] = 0x80000000
	m.regs[cell(9)] = 1
	m.exec(t, 0x2987)
	assert.Equal(t, uint64(1), m.regs[sh.SrM])
	assert.Equal(t, uint64(0), m.regs[sh.SrQ])
	assert.Equal(t, uint64(1), m.regs[sh.SrT])

	m.regs[cell(8)] = 0x80000000
	m.regs[cell(9)] = 0x80000000
	m.exec(t, 0x2987)
	assert.Equal(t, uint64(1), m.regs[sh.SrM])
	assert.Equal(t, uint64(1), m.regs[sh.SrQ])
	assert.Equal(t, uint64(0), m.regs[sh.SrT])
}

func TestMulSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(8)] = 0x10000
	m.regs[cell(9)] = 0x10000
	m.exec(t, 0x0987) // mul.l r8, r9: only the low 32 bits land
	assert.Zero(t, m.regs["macl"])

	m.regs[cell(8)] = 0xffff // -1 as a word
	m.regs[cell(9)] = 2
	m.exec(t, 0x298f) // muls.w r8, r9
	assert.Equal(t, uint64(0xfffffffe), m.regs["macl"])

	m.exec(t, 0x298e) // mulu.w r8, r9
	assert.Equal(t, uint64(0x1fffe), m.regs["macl"])
}

func TestDmulSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(8)] = 0xffffffff
	m.regs[cell(9)] = 0xffffffff
	m.exec(t, 0x398d) // dmuls.l r8, r9: (-1) * (-1)
	assert.Equal(t, uint64(1), m.regs["macl"])
	assert.Equal(t, uint64(0), m.regs["mach"])

	m.exec(t, 0x3985) // dmulu.l r8, r9: full unsigned square
	assert.Equal(t, uint64(1), m.regs["macl"])
	assert.Equal(t, uint64(0xfffffffe), m.regs["mach"])
}

func TestNegSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(8)] = 5
	m.exec(t, 0x698b) // neg r8, r9
	assert.Equal(t, uint64(0xfffffffb), m.regs[cell(9)])

	m.regs[cell(8)] = 0
	m.regs[sh.SrT] = 0
	m.exec(t, 0x698a) // negc r8, r9: 0 - 0 - 0
	assert.Equal(t, uint64(0), m.regs[cell(9)])
	assert.Equal(t, uint64(0), m.regs[sh.SrT])

	m.regs[cell(8)] = 1
	m.exec(t, 0x698a) // 0 - 1 borrows
	assert.Equal(t, uint64(0xffffffff), m.regs[cell(9)])
	assert.Equal(t, uint64(1), m.regs[sh.SrT])

	m.regs[cell(8)] = 0
	m.regs[sh.SrT] = 1
	m.exec(t, 0x698a) // 0 - 0 - 1 borrows
	assert.Equal(t, uint64(0xffffffff), m.regs[cell(9)])
	assert.Equal(t, uint64(1), m.regs[sh.SrT])
}

func TestLogicSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(1)] = 0x0ff0
	m.regs[cell(7)] = 0xff00
	m.exec(t, 0x2719) // and r1, r7
	assert.Equal(t, uint64(0x0f00), m.regs[cell(7)])

	m.regs[cell(3)] = 0x00f0
	m.regs[cell(10)] = 0x0f00
	m.exec(t, 0x2a3b) // or r3, r10
	assert.Equal(t, uint64(0x0ff0), m.regs[cell(10)])

	m.regs[cell(0)] = 0xffffffff
	m.exec(t, 0xc922) // and #34, r0
	assert.Equal(t, uint64(34), m.regs[cell(0)])

	m.exec(t, 0xcb80) // or #128, r0
	assert.Equal(t, uint64(34|128), m.regs[cell(0)])

	m.regs[cell(0)] = 0x7fffffff
	m.exec(t, 0x6807) // not r0, r8
	assert.Equal(t, uint64(0x80000000), m.regs[cell(8)])
}

func TestLogicByteReadModifyWrite(t *testing.T) {
	m := newMachine()
	m.regs[cell(0)] = 2
	m.regs["gbr"] = 0x600
	m.store(0x602, 8, 0xff)

	m.exec(t, 0xcd0f) // and.b #15, @(r0,gbr)
	assert.Equal(t, uint64(0x0f), m.load(0x602, 8))

	m.exec(t, 0xcff0) // or.b #240, @(r0,gbr)
	assert.Equal(t, uint64(0xff), m.load(0x602, 8))
}

func TestExtendSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(8)] = 0x12345680
	m.exec(t, 0x698e) // exts.b r8, r9
	assert.Equal(t, uint64(0xffffff80), m.regs[cell(9)])

	m.regs[cell(8)] = 0x1234567f
	m.exec(t, 0x698e)
	assert.Equal(t, uint64(0x7f), m.regs[cell(9)])

	m.regs[cell(8)] = 0xffffffff
	m.exec(t, 0x698c) // extu.b r8, r9
	assert.Equal(t, uint64(0xff), m.regs[cell(9)])

	m.regs[cell(8)] = 0x12348000
	m.exec(t, 0x698f) // exts.w r8, r9
	assert.Equal(t, uint64(0xffff8000), m.regs[cell(9)])

	m.regs[cell(8)] = 0xffffffff
	m.exec(t, 0x698d) // extu.w r8, r9
	assert.Equal(t, uint64(0xffff), m.regs[cell(9)])
}

func TestDtSemantics(t *testing.T) {
	m := newMachine()
	m.regs[cell(8)] = 2
	m.exec(t, 0x4810) // dt r8
	assert.Equal(t, uint64(1), m.regs[cell(8)])
	assert.Zero(t, m.regs[sh.SrT])

	m.exec(t, 0x4810)
	assert.Zero(t, m.regs[cell(8)])
	assert.Equal(t, uint64(1), m.regs[sh.SrT])

	m.exec(t, 0x4810) // wraps below zero
	assert.Equal(t, uint64(0xffffffff), m.regs[cell(8)])
	assert.Zero(t, m.regs[sh.SrT])
}
