package il

import (
	"fmt"
	"strings"
)

var binNames = map[BinKind]string{
	BinAdd: "add",
	BinSub: "sub",
	BinMul: "mul",
	BinAnd: "and",
	BinOr:  "or",
	BinXor: "xor",
}

var cmpNames = map[CmpKind]string{
	CmpEq:  "eq",
	CmpUlt: "ult",
	CmpUle: "ule",
	CmpUgt: "ugt",
	CmpUge: "uge",
	CmpSlt: "slt",
	CmpSle: "sle",
	CmpSgt: "sgt",
	CmpSge: "sge",
}

var unNames = map[UnKind]string{
	UnNot:     "not",
	UnMsb:     "msb",
	UnIsZero:  "is_zero",
	UnNonZero: "non_zero",
}

func (k BinKind) String() string { return binNames[k] }
func (k CmpKind) String() string { return cmpNames[k] }
func (k UnKind) String() string  { return unNames[k] }

func (e *ConstExpr) String() string {
	return fmt.Sprintf("(bv %d 0x%x)", e.W, e.V)
}

func (e *VarExpr) String() string {
	if e.Local {
		return fmt.Sprintf("(varl %s)", e.Name)
	}
	return fmt.Sprintf("(var %s)", e.Name)
}

func (e *IteExpr) String() string {
	return fmt.Sprintf("(ite %s %s %s)", e.Cond, e.Then, e.Else)
}

func (e *BinExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Kind, e.X, e.Y)
}

func (e *CmpExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Kind, e.X, e.Y)
}

func (e *UnExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Kind, e.X)
}

func (e *ShiftExpr) String() string {
	if e.Left {
		return fmt.Sprintf("(shl %s %s)", e.X, e.N)
	}
	return fmt.Sprintf("(shr %s %s)", e.X, e.N)
}

func (e *CastExpr) String() string {
	if e.Signed {
		return fmt.Sprintf("(signed %d %s)", e.W, e.X)
	}
	return fmt.Sprintf("(unsigned %d %s)", e.W, e.X)
}

func (e *LoadExpr) String() string {
	return fmt.Sprintf("(loadw %d %s)", e.Bits, e.Addr)
}

func (e *SetEffect) String() string {
	if e.Local {
		return fmt.Sprintf("(setl %s %s)", e.Name, e.Val)
	}
	return fmt.Sprintf("(set %s %s)", e.Name, e.Val)
}

func (e *StoreEffect) String() string {
	return fmt.Sprintf("(storew %s %s)", e.Addr, e.Val)
}

func (e *BranchEffect) String() string {
	return fmt.Sprintf("(branch %s %s %s)", e.Cond, e.Then, e.Else)
}

func (e *SeqEffect) String() string {
	var b strings.Builder
	b.WriteString("(seq")
	for _, sub := range e.Effects {
		b.WriteByte(' ')
		b.WriteString(sub.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (e *NopEffect) String() string { return "(nop)" }
