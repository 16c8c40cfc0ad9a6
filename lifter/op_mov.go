package lifter

import (
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

// MOV family. The source operand's addressing-mode effects run before the
// destination write. An effectful source is stashed in a local between its
// pre and post effects, so the load sees the pre-increment address and the
// loaded value still lands last when the source register is also the
// destination.
func (l *Lifter) liftMov(op *sh.Op, pc uint64) (il.Effect, error) {
	src, err := l.getParam(op.Param[0], op.Scaling)
	if err != nil {
		return nil, err
	}
	if src.Pre == nil && src.Post == nil {
		return l.setParam(op.Param[1], src.Pure, op.Scaling)
	}
	bind := il.SetL("val", src.Pure)
	write, err := l.setParam(op.Param[1], il.VarL("val", src.Pure.Width()), op.Scaling)
	if err != nil {
		return nil, err
	}
	return il.Seq(src.Pre, bind, src.Post, write), nil
}

// MOVT Rn: T -> Rn.
func (l *Lifter) liftMovt(op *sh.Op, pc uint64) (il.Effect, error) {
	return l.setPure(op, 0, zextT())
}

// SWAP.B swaps the two low bytes and keeps the high word; SWAP.W swaps the
// two words.
func (l *Lifter) liftSwap(op *sh.Op, pc uint64) (il.Effect, error) {
	src, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	switch op.Scaling {
	case sh.ScalingB:
		lowByte := il.And(src, uReg(0xff))
		nextByte := il.And(il.Shr(src.Dup(), uReg(8)), uReg(0xff))
		highWord := il.And(src.Dup(), uReg(0xffff0000))
		lowWord := il.Or(il.Shl(lowByte, uReg(8)), nextByte)
		return l.setPure(op, 1, il.Or(highWord, lowWord))
	case sh.ScalingW:
		high := il.Shl(src, uReg(16))
		low := il.Shr(src.Dup(), uReg(16))
		return l.setPure(op, 1, il.Or(high, low))
	}
	return nil, errScaling(op)
}

// XTRCT Rm, Rn: the middle 32 bits of Rm:Rn -> Rn.
func (l *Lifter) liftXtrct(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	return l.setPure(op, 1, il.Or(il.Shl(rm, uReg(16)), il.Shr(rn, uReg(16))))
}
