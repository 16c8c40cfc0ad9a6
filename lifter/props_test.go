package lifter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

func TestRegisterRoundTrip(t *testing.T) {
	l := New()
	for _, flags := range []struct{ md, rb uint64 }{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		m := newMachine()
		m.regs[sh.SrD] = flags.md
		m.regs[sh.SrR] = flags.rb
		for reg := uint16(0); reg < 16; reg++ {
			want := uint64(0x1000) + uint64(reg)
			write, err := l.regWrite(reg, il.U(32, want))
			require.NoError(t, err)
			m.run(t, write)

			read, err := l.regRead(reg)
			require.NoError(t, err)
			assert.Equal(t, want, m.pure(read), "r%d md=%d rb=%d", reg, flags.md, flags.rb)
		}
	}
}

func TestBankedRegisterSelection(t *testing.T) {
	l := New()
	write, err := l.regWrite(3, il.U(32, 0xabcd))
	require.NoError(t, err)
	read, err := l.regRead(3)
	require.NoError(t, err)

	for _, tc := range []struct {
		md, rb uint64
		target string
		other  string
	}{
		{0, 0, "r3b0", "r3b1"},
		{0, 1, "r3b0", "r3b1"},
		{1, 0, "r3b0", "r3b1"},
		{1, 1, "r3b1", "r3b0"},
	} {
		m := newMachine()
		m.regs[sh.SrD] = tc.md
		m.regs[sh.SrR] = tc.rb
		m.regs["r3b0"] = 0x30
		m.regs["r3b1"] = 0x31
		m.run(t, write)

		assert.Equal(t, uint64(0xabcd), m.regs[tc.target], "md=%d rb=%d", tc.md, tc.rb)
		assert.NotEqual(t, uint64(0xabcd), m.regs[tc.other], "md=%d rb=%d", tc.md, tc.rb)
		assert.Equal(t, uint64(0xabcd), m.pure(read), "md=%d rb=%d", tc.md, tc.rb)
	}
}

func TestAddFamily(t *testing.T) {
	m := newMachine()
	m.regs["r8"] = 1
	m.regs["r9"] = 0xffffffff
	m.exec(t, 0x398c) // add r8, r9: wraps, no flag
	assert.Zero(t, m.regs["r9"])

	m.regs["r9"] = 5
	m.exec(t, 0x7903) // add #3, r9
	assert.Equal(t, uint64(8), m.regs["r9"])
	m.exec(t, 0x79fd) // add #-3, r9
	assert.Equal(t, uint64(5), m.regs["r9"])
}

func TestAddcCarryChain(t *testing.T) {
	tests := []struct {
		x, y, tin, want, tout uint64
	}{
		{1, 2, 0, 3, 0},
		{1, 2, 1, 4, 0},
		{0xffffffff, 1, 0, 0, 1},
		{0xffffffff, 0, 1, 0, 1},
		{0xfffffffe, 1, 1, 0, 1},
		{0xfffffffd, 1, 1, 0xffffffff, 0},
		{0x80000000, 0x80000000, 1, 1, 1},
	}
	for _, tc := range tests {
		m := newMachine()
		m.regs["r8"] = tc.x
		m.regs["r9"] = tc.y
		m.regs[sh.SrT] = tc.tin
		m.exec(t, 0x398e) // addc r8, r9
		assert.Equal(t, tc.want, m.regs["r9"], "0x%x + 0x%x + %d", tc.x, tc.y, tc.tin)
		assert.Equal(t, tc.tout, m.regs[sh.SrT], "carry of 0x%x + 0x%x + %d", tc.x, tc.y, tc.tin)
	}
}

func TestAddvOverflow(t *testing.T) {
	tests := []struct {
		x, y, want, tout uint64
	}{
		{0x7fffffff, 1, 0x80000000, 1},
		{1, 1, 2, 0},
		{0x80000000, 0x80000000, 0, 1},
		{0x7fffffff, 0x80000000, 0xffffffff, 0},
	}
	for _, tc := range tests {
		m := newMachine()
		m.regs["r8"] = tc.x
		m.regs["r9"] = tc.y
		m.exec(t, 0x398f) // addv r8, r9
		assert.Equal(t, tc.want, m.regs["r9"], "0x%x + 0x%x", tc.x, tc.y)
		assert.Equal(t, tc.tout, m.regs[sh.SrT], "overflow of 0x%x + 0x%x", tc.x, tc.y)
	}
}

func TestSubOperandOrder(t *testing.T) {
	m := newMachine()
	m.regs["r8"] = 3
	m.regs["r9"] = 10
	m.exec(t, 0x3988) // sub r8, r9: r9 - r8
	assert.Equal(t, uint64(7), m.regs["r9"])
}

func TestSubcBorrowChain(t *testing.T) {
	tests := []struct {
		n, m, tin, want, tout uint64
	}{
		{10, 3, 0, 7, 0},
		{0, 1, 0, 0xffffffff, 1},
		{0, 0, 1, 0xffffffff, 1},
		{5, 2, 1, 2, 0},
		{0x80000000, 0x80000000, 1, 0xffffffff, 1},
	}
	for _, tc := range tests {
		m := newMachine()
		m.regs["r9"] = tc.n
		m.regs["r8"] = tc.m
		m.regs[sh.SrT] = tc.tin
		m.exec(t, 0x398a) // subc r8, r9
		assert.Equal(t, tc.want, m.regs["r9"], "0x%x - 0x%x - %d", tc.n, tc.m, tc.tin)
		assert.Equal(t, tc.tout, m.regs[sh.SrT], "borrow of 0x%x - 0x%x - %d", tc.n, tc.m, tc.tin)
	}
}

func TestSubvUnderflow(t *testing.T) {
	tests := []struct {
		n, m, want, tout uint64
	}{
		{0x80000000, 1, 0x7fffffff, 1},
		{0, 1, 0xffffffff, 0},
		{0x7fffffff, 0xffffffff, 0x80000000, 1},
		{5, 3, 2, 0},
	}
	for _, tc := range tests {
		m := newMachine()
		m.regs["r9"] = tc.n
		m.regs["r8"] = tc.m
		m.exec(t, 0x398b) // subv r8, r9
		assert.Equal(t, tc.want, m.regs["r9"], "0x%x - 0x%x", tc.n, tc.m)
		assert.Equal(t, tc.tout, m.regs[sh.SrT], "underflow of 0x%x - 0x%x", tc.n, tc.m)
	}
}

// rotcl mimics ROTCL on one register cell: the division walkthrough shifts
// quotient bits in through T between divide steps. ROTCL itself is not a
// lifted class.
func (m *machine) rotcl(name string) {
	carry := (m.regs[name] >> 31) & 1
	m.regs[name] = maskW(32, m.regs[name]<<1|m.regs[sh.SrT])
	m.regs[sh.SrT] = carry
}

func TestDiv1UnsignedDivision(t *testing.T) {
	// DIV0U, then 32 x (ROTCL low word; DIV1), then one more ROTCL of the
	// low word recovers the quotient. A set Q leaves the partial remainder
	// one divisor short.
	div1 := lift(t, 0x3104) // div1 r0, r1
	tests := []struct{ dividend, divisor uint32 }{
		{16, 3},
		{7, 3},
		{6, 3},
		{100, 7},
		{5, 9},
		{1, 1},
		{0x12345678, 0x1234},
		{0xffffffff, 2},
	}
	for _, tc := range tests {
		m := newMachine()
		m.regs[cell(0)] = uint64(tc.divisor)
		m.regs[cell(1)] = 0
		m.regs[cell(2)] = uint64(tc.dividend)
		m.exec(t, 0x0019) // div0u
		for i := 0; i < 32; i++ {
			m.rotcl(cell(2))
			m.run(t, div1)
		}
		m.rotcl(cell(2))

		quotient := uint32(m.regs[cell(2)])
		remainder := uint32(m.regs[cell(1)])
		if m.regs[sh.SrQ] == 1 {
			remainder += tc.divisor
		}
		assert.Equal(t, tc.dividend/tc.divisor, quotient, "%d / %d", tc.dividend, tc.divisor)
		assert.Equal(t, tc.dividend%tc.divisor, remainder, "%d %% %d", tc.dividend, tc.divisor)
	}
}

func TestDiv1SignedSteps(t *testing.T) {
	// single steps through the M=1 rows, which the unsigned walkthrough
	// never reaches
	m := newMachine()
	m.regs[sh.SrM] = 1
	m.regs[sh.SrT] = 1
	m.regs[cell(0)] = 3
	m.regs[cell(1)] = 5
	m.exec(t, 0x3104) // div1 r0, r1: old Q = 0, M = 1 adds the divisor
	assert.Equal(t, uint64(14), m.regs[cell(1)])
	assert.Equal(t, uint64(1), m.regs[sh.SrQ])
	assert.Equal(t, uint64(1), m.regs[sh.SrT])

	m = newMachine()
	m.regs[sh.SrM] = 1
	m.regs[sh.SrQ] = 1
	m.regs[cell(0)] = 1
	m.regs[cell(1)] = 0x80000000
	m.exec(t, 0x3104) // old Q = 1, M = 1 subtracts
	assert.Equal(t, uint64(0xffffffff), m.regs[cell(1)])
	assert.Equal(t, uint64(1), m.regs[sh.SrQ])
	assert.Equal(t, uint64(1), m.regs[sh.SrT])
}

func TestMacLongAccumulate(t *testing.T) {
	mac := func(t *testing.T, s, mach, macl uint64, a, b uint32) *machine {
		t.Helper()
		m := newMachine()
		m.regs[sh.SrS] = s
		m.regs["mach"] = mach
		m.regs["macl"] = macl
		m.regs["r8"] = 0x100
		m.regs["r9"] = 0x200
		m.store(0x100, 32, uint64(a))
		m.store(0x200, 32, uint64(b))
		m.exec(t, 0x098f) // mac.l @r8+, @r9+
		assert.Equal(t, uint64(0x104), m.regs["r8"])
		assert.Equal(t, uint64(0x204), m.regs["r9"])
		return m
	}

	t.Run("wraps with saturation off", func(t *testing.T) {
		m := mac(t, 0, 0xffffffff, 0xffffffff, 2, 2) // acc = -1
		assert.Equal(t, uint64(3), m.regs["macl"])
		assert.Equal(t, uint64(0), m.regs["mach"])
	})

	t.Run("in range with saturation on", func(t *testing.T) {
		m := mac(t, 1, 0, 5, 2, 3)
		assert.Equal(t, uint64(11), m.regs["macl"])
		assert.Equal(t, uint64(0), m.regs["mach"])
	})

	t.Run("clamps at the 48-bit maximum", func(t *testing.T) {
		m := mac(t, 1, 0x00007fff, 0xffffffff, 1, 1)
		assert.Equal(t, uint64(0xffffffff), m.regs["macl"])
		assert.Equal(t, uint64(0x00007fff), m.regs["mach"])
	})

	t.Run("clamps at the 48-bit minimum", func(t *testing.T) {
		m := mac(t, 1, 0xffff8000, 0, 0xffffffff, 1) // product is -1
		assert.Equal(t, uint64(0), m.regs["macl"])
		assert.Equal(t, uint64(0xffff8000), m.regs["mach"])
	})

	t.Run("wraps past the 48-bit maximum with saturation off", func(t *testing.T) {
		m := mac(t, 0, 0x00007fff, 0xffffffff, 1, 1)
		assert.Equal(t, uint64(0), m.regs["macl"])
		assert.Equal(t, uint64(0x00008000), m.regs["mach"])
	})
}

func TestMacWordAccumulate(t *testing.T) {
	mac := func(t *testing.T, s, mach, macl uint64, a, b uint16) *machine {
		t.Helper()
		m := newMachine()
		m.regs[sh.SrS] = s
		m.regs["mach"] = mach
		m.regs["macl"] = macl
		m.regs["r8"] = 0x100
		m.regs["r9"] = 0x200
		m.store(0x100, 16, uint64(a))
		m.store(0x200, 16, uint64(b))
		m.exec(t, 0x498f) // mac.w @r8+, @r9+
		assert.Equal(t, uint64(0x102), m.regs["r8"])
		assert.Equal(t, uint64(0x202), m.regs["r9"])
		return m
	}

	t.Run("64-bit accumulate with saturation off", func(t *testing.T) {
		m := mac(t, 0, 0, 0xffffffff, 1, 1)
		assert.Equal(t, uint64(0), m.regs["macl"])
		assert.Equal(t, uint64(1), m.regs["mach"])
	})

	t.Run("operands are signed words", func(t *testing.T) {
		m := mac(t, 0, 0, 0, 0xffff, 2) // (-1) * 2
		assert.Equal(t, uint64(0xfffffffe), m.regs["macl"])
		assert.Equal(t, uint64(0xffffffff), m.regs["mach"])
	})

	t.Run("saturation clamps macl and leaves mach", func(t *testing.T) {
		m := mac(t, 1, 0xaaaa5555, 0x7fffffff, 1, 1)
		assert.Equal(t, uint64(0x7fffffff), m.regs["macl"])
		assert.Equal(t, uint64(0xaaaa5555), m.regs["mach"])
	})

	t.Run("saturation clamps at the negative bound", func(t *testing.T) {
		m := mac(t, 1, 0, 0x80000000, 0xffff, 1)
		assert.Equal(t, uint64(0x80000000), m.regs["macl"])
	})
}

func TestAddressingEffectsRunOnce(t *testing.T) {
	t.Run("post-increment", func(t *testing.T) {
		m := newMachine()
		m.regs["r8"] = 0x100
		m.store(0x100, 32, 0xfeedface)
		m.exec(t, 0x6986) // mov.l @r8+, r9
		assert.Equal(t, uint64(0x104), m.regs["r8"])
		assert.Equal(t, uint64(0xfeedface), m.regs["r9"])
	})

	t.Run("byte scaling increments by one", func(t *testing.T) {
		m := newMachine()
		m.regs["r8"] = 0x100
		m.store(0x100, 8, 0x7f)
		m.exec(t, 0x6984) // mov.b @r8+, r9
		assert.Equal(t, uint64(0x101), m.regs["r8"])
		assert.Equal(t, uint64(0x7f), m.regs["r9"])
	})

	t.Run("pre-decrement", func(t *testing.T) {
		m := newMachine()
		m.regs["r8"] = 0x104
		m.regs["r9"] = 0xcafebabe
		m.exec(t, 0x2896) // mov.l r9, @-r8
		assert.Equal(t, uint64(0x100), m.regs["r8"])
		assert.Equal(t, uint64(0xcafebabe), m.load(0x100, 32))
	})

	t.Run("post-increment source naming the destination", func(t *testing.T) {
		m := newMachine()
		m.regs["r8"] = 0x400
		m.store(0x400, 32, 0x11223344)
		m.exec(t, 0x6886) // mov.l @r8+, r8: the loaded value wins
		assert.Equal(t, uint64(0x11223344), m.regs["r8"])
	})
}
