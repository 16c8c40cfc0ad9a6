package lifter

import (
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

// DIV0U: clear M, Q and T to prepare an unsigned division.
func (l *Lifter) liftDiv0u(op *sh.Op, pc uint64) (il.Effect, error) {
	return il.Seq(
		il.SetG(sh.SrM, il.Bool(false)),
		il.SetG(sh.SrQ, il.Bool(false)),
		il.SetG(sh.SrT, il.Bool(false)),
	), nil
}

// DIV0S Rm, Rn: M = MSB of divisor, Q = MSB of dividend, T = M ^ Q.
func (l *Lifter) liftDiv0s(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	rn, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	setm := il.SetG(sh.SrM, il.Msb(rm))
	setq := il.SetG(sh.SrQ, il.Msb(rn))
	sett := il.SetG(sh.SrT, il.Xor(il.Msb(rm.Dup()), il.Msb(rn.Dup())))
	return il.Seq(setm, setq, sett), nil
}

// DIV1 Rm, Rn: one non-restoring division step on the partial remainder in
// Rn against the divisor in Rm (SH-1/SH-2/SH-DSP software manual, DIV1).
//
// The step saves Q, shifts the new dividend MSB into Q and T into Rn, then
// adds or subtracts the divisor depending on (saved Q, M). The new Q encodes
// whether the partial remainder stayed in range, detected through unsigned
// wraparound of the add or subtract. Reads of Rn below are deliberately live,
// not duplicates: the init sequence mutates Rn between steps.
func (l *Lifter) liftDiv1(op *sh.Op, pc uint64) (il.Effect, error) {
	// All operand shapes below are register reads and writes, so after one
	// probing read of each operand the builders cannot fail.
	if _, err := l.purePar(op, 0); err != nil {
		return nil, err
	}
	if _, err := l.purePar(op, 1); err != nil {
		return nil, err
	}
	rm := func() il.Pure {
		p, _ := l.purePar(op, 0)
		return p
	}
	rn := func() il.Pure {
		p, _ := l.purePar(op, 1)
		return p
	}

	oldQ := il.SetL("old_q", srBit(sh.SrQ))
	newQ := il.SetG(sh.SrQ, il.Msb(rn()))
	shl, err := l.setPure(op, 1, il.Shl(rn(), uReg(1)))
	if err != nil {
		return nil, err
	}
	ort, err := l.setPure(op, 1, il.Or(rn(), zextT()))
	if err != nil {
		return nil, err
	}
	init := il.Seq(oldQ, newQ, shl, ort)

	// One (saved Q, M) table row: stash Rn, apply the divisor, record
	// whether the operation wrapped, then fold the wrap bit into Q. The
	// fold direction flips between rows; the branch reads the Q written
	// by init.
	buildCase := func(subtract, invertWhenQ bool) (il.Effect, error) {
		tmp0 := il.SetL("tmp0", rn())
		var applied il.Pure
		if subtract {
			applied = il.Sub(rn(), rm())
		} else {
			applied = il.Add(rn(), rm())
		}
		step, err := l.setPure(op, 1, applied)
		if err != nil {
			return nil, err
		}
		var wrapped il.Pure
		if subtract {
			wrapped = il.Ugt(rn(), il.VarL("tmp0", sh.RegBits))
		} else {
			wrapped = il.Ult(rn(), il.VarL("tmp0", sh.RegBits))
		}
		tmp1 := il.SetL("tmp1", wrapped)
		qSame := il.SetG(sh.SrQ, il.VarL("tmp1", 1))
		qInverted := il.SetG(sh.SrQ, il.IsZero(il.VarL("tmp1", 1)))
		var qBit il.Effect
		if invertWhenQ {
			qBit = il.Branch(srBit(sh.SrQ), qInverted, qSame)
		} else {
			qBit = il.Branch(srBit(sh.SrQ), qSame, qInverted)
		}
		return il.Seq(tmp0, step, tmp1, qBit), nil
	}

	q0m0, err := buildCase(true, true)
	if err != nil {
		return nil, err
	}
	q0m1, err := buildCase(false, false)
	if err != nil {
		return nil, err
	}
	q1m0, err := buildCase(false, true)
	if err != nil {
		return nil, err
	}
	q1m1, err := buildCase(true, false)
	if err != nil {
		return nil, err
	}

	q0 := il.Branch(srBit(sh.SrM), q0m1, q0m0)
	q1 := il.Branch(srBit(sh.SrM), q1m1, q1m0)
	qSwitch := il.Branch(il.VarL("old_q", 1), q1, q0)

	return il.Seq(init, qSwitch, il.SetG(sh.SrT, il.Eq(srBit(sh.SrQ), srBit(sh.SrM)))), nil
}
