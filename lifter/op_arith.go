package lifter

import (
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

// resL reads the instruction-scoped result temporary the flag-setting
// arithmetic ops bind. Binding the result first keeps the T computation on
// pre-write operand values even when the destination is also a source.
func resL() *il.VarExpr {
	return il.VarL("res", sh.RegBits)
}

// ADD Rm, Rn: Rn + Rm -> Rn. Also ADD #imm, Rn.
func (l *Lifter) liftAdd(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	return l.setPure(op, 1, il.Add(rm, rn))
}

// ADDC Rm, Rn: Rn + Rm + T -> Rn, carry -> T.
func (l *Lifter) liftAddc(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	res := il.SetL("res", il.Add(il.Add(rm, rn), zextT()))
	tbit := il.SetG(sh.SrT, addCarry(resL(), rm.Dup(), rn.Dup()))
	write, err := l.setPure(op, 1, resL())
	if err != nil {
		return nil, err
	}
	return il.Seq(res, tbit, write), nil
}

// ADDV Rm, Rn: Rn + Rm -> Rn, signed overflow -> T.
func (l *Lifter) liftAddv(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	res := il.SetL("res", il.Add(rm, rn))
	tbit := il.SetG(sh.SrT, addOverflow(resL(), rm.Dup(), rn.Dup()))
	write, err := l.setPure(op, 1, resL())
	if err != nil {
		return nil, err
	}
	return il.Seq(res, tbit, write), nil
}

// SUB Rm, Rn: Rn - Rm -> Rn.
func (l *Lifter) liftSub(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	return l.setPure(op, 1, il.Sub(rn, rm))
}

// SUBC Rm, Rn: Rn - Rm - T -> Rn, borrow -> T.
func (l *Lifter) liftSubc(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	res := il.SetL("res", il.Sub(il.Sub(rn, rm), zextT()))
	tbit := il.SetG(sh.SrT, subBorrow(resL(), rn.Dup(), rm.Dup()))
	write, err := l.setPure(op, 1, resL())
	if err != nil {
		return nil, err
	}
	return il.Seq(res, tbit, write), nil
}

// SUBV Rm, Rn: Rn - Rm -> Rn, signed underflow -> T.
func (l *Lifter) liftSubv(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	res := il.SetL("res", il.Sub(rn, rm))
	tbit := il.SetG(sh.SrT, subUnderflow(resL(), rn.Dup(), rm.Dup()))
	write, err := l.setPure(op, 1, resL())
	if err != nil {
		return nil, err
	}
	return il.Seq(res, tbit, write), nil
}

// NEG Rm, Rn: 0 - Rm -> Rn.
func (l *Lifter) liftNeg(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	return l.setPure(op, 1, il.Sub(uReg(0), rm))
}

// NEGC Rm, Rn: 0 - Rm - T -> Rn, borrow -> T.
func (l *Lifter) liftNegc(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	res := il.SetL("res", il.Sub(il.Sub(uReg(0), rm), zextT()))
	tbit := il.SetG(sh.SrT, subBorrow(resL(), uReg(0), rm.Dup()))
	write, err := l.setPure(op, 1, resL())
	if err != nil {
		return nil, err
	}
	return il.Seq(res, tbit, write), nil
}

// DT Rn: Rn - 1 -> Rn, then T = 1 when the result is zero.
func (l *Lifter) liftDt(op *sh.Op, pc uint64) (il.Effect, error) {
	rn, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	res := il.SetL("res", il.Sub(rn, uReg(1)))
	tbit := il.SetG(sh.SrT, il.IsZero(resL()))
	write, err := l.setPure(op, 0, resL())
	if err != nil {
		return nil, err
	}
	return il.Seq(res, tbit, write), nil
}

// EXTS.B / EXTS.W Rm, Rn: sign-extend the low byte or word of Rm into Rn.
// The sign test runs at the narrowed width.
func (l *Lifter) liftExts(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	var lowMask, signMask uint64
	switch op.Scaling {
	case sh.ScalingB:
		lowMask, signMask = 0xff, 0xffffff00
	case sh.ScalingW:
		lowMask, signMask = 0xffff, 0xffff0000
	default:
		return nil, errScaling(op)
	}
	low := il.And(rm, uReg(lowMask))
	msb := il.Msb(il.Unsigned(op.Scaling.Bits(), rm.Dup()))
	negative, err := l.setPure(op, 1, il.Or(low, uReg(signMask)))
	if err != nil {
		return nil, err
	}
	positive, err := l.setPure(op, 1, low.Dup())
	if err != nil {
		return nil, err
	}
	return il.Branch(msb, negative, positive), nil
}

// EXTU.B / EXTU.W Rm, Rn: zero-extend the low byte or word of Rm into Rn.
func (l *Lifter) liftExtu(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	switch op.Scaling {
	case sh.ScalingB:
		return l.setPure(op, 1, il.And(rm, uReg(0xff)))
	case sh.ScalingW:
		return l.setPure(op, 1, il.And(rm, uReg(0xffff)))
	}
	return nil, errScaling(op)
}
