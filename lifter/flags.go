package lifter

import (
	"github.com/narwhalsec/shil/il"
)

// The T-bit predicates below inspect bit 31 of a bitwise formula over the
// raw result and the operands. Callers pass unduplicated trees; duplication
// for reuse happens here.

func bit31(x il.Pure) il.Pure {
	return il.NonZero(il.And(uReg(1<<31), x))
}

// addCarry is true when res = x + y carried out of the top bit. Also valid
// when res includes a carry-in.
func addCarry(res, x, y il.Pure) il.Pure {
	xy := il.And(x, y)
	nres := il.Not(res)
	ry := il.And(nres, y.Dup())
	xr := il.And(x.Dup(), nres.Dup())
	return bit31(il.Or(il.Or(xy, ry), xr))
}

// subBorrow is true when res = x - y borrowed from the top bit. Also valid
// when res includes a borrow-in.
func subBorrow(res, x, y il.Pure) il.Pure {
	nx := il.Not(x)
	xy := il.And(nx, y)
	ry := il.And(y.Dup(), res)
	xr := il.And(res.Dup(), nx.Dup())
	return bit31(il.Or(il.Or(xy, ry), xr))
}

// addOverflow is true when res = x + y overflowed as a signed addition.
func addOverflow(res, x, y il.Pure) il.Pure {
	xy := il.And(il.And(il.Not(res), x), y)
	ry := il.And(il.And(res.Dup(), il.Not(x.Dup())), il.Not(y.Dup()))
	return bit31(il.Or(xy, ry))
}

// subUnderflow is true when res = x - y underflowed as a signed subtraction.
func subUnderflow(res, x, y il.Pure) il.Pure {
	xy := il.And(il.And(il.Not(res), x), il.Not(y))
	ry := il.And(il.And(res.Dup(), il.Not(x.Dup())), y.Dup())
	return bit31(il.Or(xy, ry))
}
