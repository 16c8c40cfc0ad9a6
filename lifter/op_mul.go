package lifter

import (
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

const wideBits = 2 * sh.RegBits

// macPair concatenates MACH:MACL into one 64-bit value.
func macPair() il.Pure {
	high := il.Shl(il.Unsigned(wideBits, il.VarG("mach", sh.RegBits)), uReg(sh.RegBits))
	return il.Or(high, il.Unsigned(wideBits, il.VarG("macl", sh.RegBits)))
}

// splitMac writes the 64-bit local named mac back into MACH:MACL.
func splitMac() (lowWrite, highWrite il.Effect) {
	low := il.Unsigned(sh.RegBits, il.And(il.VarL("mac", wideBits), il.U(wideBits, 0xffffffff)))
	high := il.Unsigned(sh.RegBits, il.Shr(il.VarL("mac", wideBits), uReg(sh.RegBits)))
	return il.SetG("macl", low), il.SetG("mach", high)
}

// clampSigned bounds a 64-bit signed value to [min, max].
func clampSigned(x il.Pure, min, max *il.ConstExpr) il.Pure {
	return il.Ite(il.Sgt(x, max),
		max.Dup(),
		il.Ite(il.Slt(x.Dup(), min), min.Dup(), x.Dup()))
}

// DMULS.L / DMULU.L Rm, Rn: full 64-bit product of Rn and Rm into MACH:MACL,
// signed or unsigned.
func (l *Lifter) liftDmul(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	var product il.Pure
	if op.Class == sh.OpDmuls {
		product = il.Mul(il.Signed(wideBits, rm), il.Signed(wideBits, rn))
	} else {
		product = il.Mul(il.Unsigned(wideBits, rm), il.Unsigned(wideBits, rn))
	}
	wide := il.SetL("res_wide", product)
	low := il.Unsigned(sh.RegBits, il.And(il.VarL("res_wide", wideBits), il.U(wideBits, 0xffffffff)))
	high := il.Unsigned(sh.RegBits, il.Shr(il.VarL("res_wide", wideBits), uReg(sh.RegBits)))
	return il.Seq(wide, il.SetG("macl", low), il.SetG("mach", high)), nil
}

// MUL.L Rm, Rn: truncating 32-bit product into MACL.
func (l *Lifter) liftMul(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	return il.SetG("macl", il.Mul(rm, rn)), nil
}

// MULS.W Rm, Rn: signed 16x16 product into MACL.
func (l *Lifter) liftMuls(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	m := il.Signed(sh.RegBits, il.Signed(16, rm))
	n := il.Signed(sh.RegBits, il.Signed(16, rn))
	return il.SetG("macl", il.Mul(m, n)), nil
}

// MULU.W Rm, Rn: unsigned 16x16 product into MACL.
func (l *Lifter) liftMulu(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	m := il.Unsigned(sh.RegBits, il.Unsigned(16, rm))
	n := il.Unsigned(sh.RegBits, il.Unsigned(16, rn))
	return il.SetG("macl", il.Mul(m, n)), nil
}

// MAC.L / MAC.W @Rm+, @Rn+: multiply the two loaded operands and accumulate
// into MACH:MACL. With the S bit set the long form clamps the accumulator to
// the signed 48-bit range and the word form saturates MACL as a signed
// 32-bit add. Both post-increments run after the accumulation.
func (l *Lifter) liftMac(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.getParam(op.Param[0], op.Scaling)
	if err != nil {
		return nil, err
	}
	rn, err := l.getParam(op.Param[1], op.Scaling)
	if err != nil {
		return nil, err
	}

	var eff il.Effect
	switch op.Scaling {
	case sh.ScalingL:
		mac := il.SetL("mac", macPair())
		product := il.Mul(il.Signed(wideBits, rm.Pure), il.Signed(wideBits, rn.Pure))
		sum := il.Add(product, il.VarL("mac", wideBits))
		sat := clampSigned(sum, il.S(wideBits, -0x800000000000), il.S(wideBits, 0x7fffffffffff))
		accumulate := il.Branch(srBit(sh.SrS),
			il.SetL("mac", sat),
			il.SetL("mac", sum.Dup()))
		lowWrite, highWrite := splitMac()
		eff = il.Seq(mac, accumulate, lowWrite, highWrite)
	case sh.ScalingW:
		mac := il.SetL("mac", macPair())
		product := il.Mul(il.Signed(sh.RegBits, rm.Pure), il.Signed(sh.RegBits, rn.Pure))
		sum := il.Add(il.Signed(wideBits, product), il.VarL("mac", wideBits))
		low := il.Unsigned(sh.RegBits, il.And(sum, il.U(wideBits, 0xffffffff)))
		high := il.Unsigned(sh.RegBits, il.Shr(sum.Dup(), uReg(sh.RegBits)))
		satSum := il.Add(il.Signed(wideBits, product.Dup()), il.Signed(wideBits, il.VarG("macl", sh.RegBits)))
		sat := clampSigned(satSum, il.S(wideBits, -0x80000000), il.S(wideBits, 0x7fffffff))
		eff = il.Seq(mac, il.Branch(srBit(sh.SrS),
			il.SetG("macl", il.Unsigned(sh.RegBits, sat)),
			il.Seq(il.SetG("macl", low), il.SetG("mach", high))))
	default:
		return nil, errScaling(op)
	}

	return il.Seq(eff, rn.Post, rm.Post), nil
}
