package il

// mask truncates v to w bits. Widths above 63 keep the full word.
func mask(w uint8, v uint64) uint64 {
	if w >= 64 {
		return v
	}
	return v & (1<<w - 1)
}

// U builds an unsigned bitvector constant of the given width.
func U(width uint8, v uint64) *ConstExpr {
	return &ConstExpr{W: width, V: mask(width, v)}
}

// S builds a bitvector constant of the given width from a signed value,
// sign-extending into the width.
func S(width uint8, v int64) *ConstExpr {
	return &ConstExpr{W: width, V: mask(width, uint64(v))}
}

// Bool builds a width-1 constant.
func Bool(b bool) *ConstExpr {
	v := uint64(0)
	if b {
		v = 1
	}
	return &ConstExpr{W: 1, V: v}
}

// VarG reads a global storage location.
func VarG(name string, width uint8) *VarExpr {
	return &VarExpr{Name: name, W: width}
}

// VarL reads an instruction-scoped temporary previously bound by SetL.
func VarL(name string, width uint8) *VarExpr {
	return &VarExpr{Name: name, W: width, Local: true}
}

// Ite yields then when cond is true, otherwise els.
func Ite(cond, then, els Pure) *IteExpr {
	return &IteExpr{Cond: cond, Then: then, Else: els}
}

func Add(x, y Pure) *BinExpr { return &BinExpr{Kind: BinAdd, X: x, Y: y} }
func Sub(x, y Pure) *BinExpr { return &BinExpr{Kind: BinSub, X: x, Y: y} }
func Mul(x, y Pure) *BinExpr { return &BinExpr{Kind: BinMul, X: x, Y: y} }

// And, Or and Xor are bitwise on bitvectors and double as boolean connectives
// on width-1 operands.
func And(x, y Pure) *BinExpr { return &BinExpr{Kind: BinAnd, X: x, Y: y} }
func Or(x, y Pure) *BinExpr  { return &BinExpr{Kind: BinOr, X: x, Y: y} }
func Xor(x, y Pure) *BinExpr { return &BinExpr{Kind: BinXor, X: x, Y: y} }

func Eq(x, y Pure) *CmpExpr  { return &CmpExpr{Kind: CmpEq, X: x, Y: y} }
func Ult(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpUlt, X: x, Y: y} }
func Ule(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpUle, X: x, Y: y} }
func Ugt(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpUgt, X: x, Y: y} }
func Uge(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpUge, X: x, Y: y} }
func Slt(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpSlt, X: x, Y: y} }
func Sle(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpSle, X: x, Y: y} }
func Sgt(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpSgt, X: x, Y: y} }
func Sge(x, y Pure) *CmpExpr { return &CmpExpr{Kind: CmpSge, X: x, Y: y} }

// Not is the bitwise complement.
func Not(x Pure) *UnExpr { return &UnExpr{Kind: UnNot, X: x} }

// Msb tests the most significant bit of x at x's own width.
func Msb(x Pure) *UnExpr { return &UnExpr{Kind: UnMsb, X: x} }

func IsZero(x Pure) *UnExpr  { return &UnExpr{Kind: UnIsZero, X: x} }
func NonZero(x Pure) *UnExpr { return &UnExpr{Kind: UnNonZero, X: x} }

// Shl shifts left by n bits, filling with zeroes.
func Shl(x, n Pure) *ShiftExpr { return &ShiftExpr{Left: true, X: x, N: n} }

// Shr shifts right by n bits, filling with zeroes.
func Shr(x, n Pure) *ShiftExpr { return &ShiftExpr{X: x, N: n} }

// Unsigned resizes x to width bits, zero-extending when widening.
func Unsigned(width uint8, x Pure) *CastExpr {
	return &CastExpr{W: width, X: x}
}

// Signed resizes x to width bits, sign-extending when widening.
func Signed(width uint8, x Pure) *CastExpr {
	return &CastExpr{W: width, Signed: true, X: x}
}

// Load reads bits bits of memory at addr.
func Load(bits uint8, addr Pure) *LoadExpr {
	return &LoadExpr{Bits: bits, Addr: addr}
}

// SetG writes val to a global storage location.
func SetG(name string, val Pure) *SetEffect {
	return &SetEffect{Name: name, Val: val}
}

// SetL binds an instruction-scoped temporary. Temporary names must not
// collide with global names or with each other within one instruction tree.
func SetL(name string, val Pure) *SetEffect {
	return &SetEffect{Name: name, Local: true, Val: val}
}

// Store writes val.Width() bits of memory at addr.
func Store(addr, val Pure) *StoreEffect {
	return &StoreEffect{Addr: addr, Val: val}
}

// Branch executes then when cond is true, otherwise els. Nil arms run as Nop.
func Branch(cond Pure, then, els Effect) *BranchEffect {
	if then == nil {
		then = Nop()
	}
	if els == nil {
		els = Nop()
	}
	return &BranchEffect{Cond: cond, Then: then, Else: els}
}

// Seq runs effects in order. Nil entries are dropped and nested sequences are
// flattened; an empty sequence collapses to Nop.
func Seq(effects ...Effect) Effect {
	out := make([]Effect, 0, len(effects))
	for _, e := range effects {
		switch t := e.(type) {
		case nil:
			continue
		case *SeqEffect:
			out = append(out, t.Effects...)
		default:
			out = append(out, e)
		}
	}
	switch len(out) {
	case 0:
		return Nop()
	case 1:
		return out[0]
	}
	return &SeqEffect{Effects: out}
}

func Nop() *NopEffect { return &NopEffect{} }
