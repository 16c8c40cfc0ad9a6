// Package il implements a side-effect-explicit intermediate language for
// machine-code lifting. Values are pure expression trees (Pure); observable
// state changes are ordered effect trees (Effect). Trees are immutable once
// built: reusing a subtree in two places requires an explicit Dup, which
// copies value-only semantics and never re-executes effects.
package il

import "fmt"

// Pure is a side-effect-free value expression. Boolean-valued expressions
// report a width of 1.
type Pure interface {
	fmt.Stringer

	// Width returns the bit width of the value this expression evaluates to.
	Width() uint8

	// Dup returns a value-identical deep copy of the expression.
	Dup() Pure

	isPure()
}

// Effect is an ordered unit of observable state change.
type Effect interface {
	fmt.Stringer

	isEffect()
}

type BinKind uint8

const (
	BinAdd BinKind = iota
	BinSub
	BinMul
	BinAnd
	BinOr
	BinXor
)

type CmpKind uint8

const (
	CmpEq CmpKind = iota
	CmpUlt
	CmpUle
	CmpUgt
	CmpUge
	CmpSlt
	CmpSle
	CmpSgt
	CmpSge
)

type UnKind uint8

const (
	UnNot UnKind = iota
	UnMsb
	UnIsZero
	UnNonZero
)

// ConstExpr is a bitvector constant of width W. V holds the two's-complement
// bit pattern truncated to W bits.
type ConstExpr struct {
	W uint8
	V uint64
}

// VarExpr reads a global storage location (register, status bit) or, when
// Local is set, an instruction-scoped temporary bound by SetL.
type VarExpr struct {
	Name  string
	W     uint8
	Local bool
}

// IteExpr selects between two values of equal width on a boolean condition.
type IteExpr struct {
	Cond Pure
	Then Pure
	Else Pure
}

// BinExpr combines two equal-width operands.
type BinExpr struct {
	Kind BinKind
	X    Pure
	Y    Pure
}

// CmpExpr compares two equal-width operands, yielding a boolean.
type CmpExpr struct {
	Kind CmpKind
	X    Pure
	Y    Pure
}

// UnExpr is a unary operator: bitwise complement, most-significant-bit test,
// or zero/non-zero test. The tests yield booleans.
type UnExpr struct {
	Kind UnKind
	X    Pure
}

// ShiftExpr shifts X by N bits, filling with zeroes. The shift amount may
// have any width.
type ShiftExpr struct {
	Left bool
	X    Pure
	N    Pure
}

// CastExpr resizes X to W bits. Widening zero-extends, or sign-extends when
// Signed is set; narrowing keeps the low W bits.
type CastExpr struct {
	W      uint8
	Signed bool
	X      Pure
}

// LoadExpr reads Bits bits of memory at Addr.
type LoadExpr struct {
	Bits uint8
	Addr Pure
}

// SetEffect writes Val to a global storage location, or binds an
// instruction-scoped temporary when Local is set.
type SetEffect struct {
	Name  string
	Local bool
	Val   Pure
}

// StoreEffect writes Val (Val.Width() bits) to memory at Addr.
type StoreEffect struct {
	Addr Pure
	Val  Pure
}

// BranchEffect executes exactly one of Then/Else depending on Cond.
type BranchEffect struct {
	Cond Pure
	Then Effect
	Else Effect
}

// SeqEffect executes its children in order.
type SeqEffect struct {
	Effects []Effect
}

// NopEffect changes nothing.
type NopEffect struct{}

func (*ConstExpr) isPure() {}
func (*VarExpr) isPure()   {}
func (*IteExpr) isPure()   {}
func (*BinExpr) isPure()   {}
func (*CmpExpr) isPure()   {}
func (*UnExpr) isPure()    {}
func (*ShiftExpr) isPure() {}
func (*CastExpr) isPure()  {}
func (*LoadExpr) isPure()  {}

func (*SetEffect) isEffect()    {}
func (*StoreEffect) isEffect()  {}
func (*BranchEffect) isEffect() {}
func (*SeqEffect) isEffect()    {}
func (*NopEffect) isEffect()    {}

func (e *ConstExpr) Width() uint8 { return e.W }
func (e *VarExpr) Width() uint8   { return e.W }
func (e *IteExpr) Width() uint8   { return e.Then.Width() }
func (e *BinExpr) Width() uint8   { return e.X.Width() }
func (e *CmpExpr) Width() uint8   { return 1 }
func (e *ShiftExpr) Width() uint8 { return e.X.Width() }
func (e *CastExpr) Width() uint8  { return e.W }
func (e *LoadExpr) Width() uint8  { return e.Bits }

func (e *UnExpr) Width() uint8 {
	if e.Kind == UnNot {
		return e.X.Width()
	}
	return 1
}

func (e *ConstExpr) Dup() Pure { c := *e; return &c }
func (e *VarExpr) Dup() Pure   { v := *e; return &v }

func (e *IteExpr) Dup() Pure {
	return &IteExpr{Cond: e.Cond.Dup(), Then: e.Then.Dup(), Else: e.Else.Dup()}
}

func (e *BinExpr) Dup() Pure {
	return &BinExpr{Kind: e.Kind, X: e.X.Dup(), Y: e.Y.Dup()}
}

func (e *CmpExpr) Dup() Pure {
	return &CmpExpr{Kind: e.Kind, X: e.X.Dup(), Y: e.Y.Dup()}
}

func (e *UnExpr) Dup() Pure {
	return &UnExpr{Kind: e.Kind, X: e.X.Dup()}
}

func (e *ShiftExpr) Dup() Pure {
	return &ShiftExpr{Left: e.Left, X: e.X.Dup(), N: e.N.Dup()}
}

func (e *CastExpr) Dup() Pure {
	return &CastExpr{W: e.W, Signed: e.Signed, X: e.X.Dup()}
}

func (e *LoadExpr) Dup() Pure {
	return &LoadExpr{Bits: e.Bits, Addr: e.Addr.Dup()}
}
