package lifter

import (
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/sh"
)

// AND / OR over registers, an immediate into R0, or a byte immediate into
// @(R0, GBR). Both operands are read independently before the destination
// write; the memory form loads, combines and stores at the same address.
func (l *Lifter) liftBitwise(op *sh.Op, pc uint64) (il.Effect, error) {
	p0, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	p1, err := l.purePar(op, 1)
	if err != nil {
		return nil, err
	}
	var combined il.Pure
	if op.Class == sh.OpAnd {
		combined = il.And(p0, p1)
	} else {
		combined = il.Or(p0, p1)
	}
	return l.setPure(op, 1, combined)
}

// NOT Rm, Rn: bitwise complement of Rm into Rn.
func (l *Lifter) liftNot(op *sh.Op, pc uint64) (il.Effect, error) {
	rm, err := l.purePar(op, 0)
	if err != nil {
		return nil, err
	}
	return l.setPure(op, 1, il.Not(rm))
}
