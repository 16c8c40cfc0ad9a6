package lifter

import (
	"fmt"

	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

// liftCmp covers the two-operand compares (CMP/EQ, HS, GE, HI, GT) and the
// sign tests against zero (CMP/PZ, CMP/PL). All of them only set T.
func (l *Lifter) liftCmp(op *sh.Op, pc uint64) (il.Effect, error) {
	p0, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	switch op.Class {
	case sh.OpCmpPz:
		return il.SetG(sh.SrT, il.Sge(p0, sReg(0))), nil
	case sh.OpCmpPl:
		return il.SetG(sh.SrT, il.Sgt(p0, sReg(0))), nil
	}
	p1, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	var cond il.Pure
	switch op.Class {
	case sh.OpCmpEq:
		cond = il.Eq(p0, p1)
	case sh.OpCmpHs:
		cond = il.Uge(p1, p0)
	case sh.OpCmpGe:
		cond = il.Sge(p1, p0)
	case sh.OpCmpHi:
		cond = il.Ugt(p1, p0)
	case sh.OpCmpGt:
		cond = il.Sgt(p1, p0)
	default:
		return nil, fmt.Errorf("%w: %s is not a compare", ErrUnsupported, op.Class)
	}
	return il.SetG(sh.SrT, cond), nil
}

// CMP/STR Rm, Rn: T = 1 when any byte lane of Rm ^ Rn is zero.
func (l *Lifter) liftCmpStr(op *sh.Op, pc uint64) (il.Effect, error) {
	p0, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	p1, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	var diff il.Pure = il.Xor(p0, p1)
	var anyZero il.Pure = il.Eq(il.And(diff, uReg(0xff)), uReg(0))
	for lane := 1; lane < 4; lane++ {
		diff = il.Shr(diff.Dup(), uReg(8))
		anyZero = il.Or(anyZero, il.Eq(il.And(diff, uReg(0xff)), uReg(0)))
	}
	return il.SetG(sh.SrT, anyZero), nil
}
