// Package sh models the SuperH (SH-4) instruction set surface needed for
// lifting: operation classes, addressing modes, operand encoding and the
// register name space shared with the IL.
package sh

import (
	"fmt"
	"strings"
)

// OpClass identifies a decoded operation. The set is closed: consumers
// dispatch over it exhaustively and treat OpInvalid as "not liftable".
type OpClass uint8

const (
	OpInvalid OpClass = iota
	OpMov
	OpMovt
	OpSwap
	OpXtrct
	OpAdd
	OpAddc
	OpAddv
	OpCmpEq
	OpCmpHs
	OpCmpGe
	OpCmpHi
	OpCmpGt
	OpCmpPz
	OpCmpPl
	OpCmpStr
	OpDiv1
	OpDiv0s
	OpDiv0u
	OpDmuls
	OpDmulu
	OpDt
	OpExts
	OpExtu
	OpMac
	OpMul
	OpMuls
	OpMulu
	OpNeg
	OpNegc
	OpSub
	OpSubc
	OpSubv
	OpAnd
	OpNot
	OpOr
	NumOpClasses
)

var classNames = [NumOpClasses]string{
	OpInvalid: "invalid",
	OpMov:     "mov",
	OpMovt:    "movt",
	OpSwap:    "swap",
	OpXtrct:   "xtrct",
	OpAdd:     "add",
	OpAddc:    "addc",
	OpAddv:    "addv",
	OpCmpEq:   "cmp/eq",
	OpCmpHs:   "cmp/hs",
	OpCmpGe:   "cmp/ge",
	OpCmpHi:   "cmp/hi",
	OpCmpGt:   "cmp/gt",
	OpCmpPz:   "cmp/pz",
	OpCmpPl:   "cmp/pl",
	OpCmpStr:  "cmp/str",
	OpDiv1:    "div1",
	OpDiv0s:   "div0s",
	OpDiv0u:   "div0u",
	OpDmuls:   "dmuls.l",
	OpDmulu:   "dmulu.l",
	OpDt:      "dt",
	OpExts:    "exts",
	OpExtu:    "extu",
	OpMac:     "mac",
	OpMul:     "mul.l",
	OpMuls:    "muls.w",
	OpMulu:    "mulu.w",
	OpNeg:     "neg",
	OpNegc:    "negc",
	OpSub:     "sub",
	OpSubc:    "subc",
	OpSubv:    "subv",
	OpAnd:     "and",
	OpNot:     "not",
	OpOr:      "or",
}

func (c OpClass) String() string {
	if c >= NumOpClasses {
		return "invalid"
	}
	return classNames[c]
}

// AddrMode is the addressing mode of one operand.
type AddrMode uint8

const (
	ModeInvalid AddrMode = iota
	ModeRegDirect
	ModeRegIndirect        // @Rn
	ModeRegIndirectInc     // @Rn+
	ModeRegIndirectDec     // @-Rn
	ModeRegIndirectDisp    // @(disp,Rn)
	ModeRegIndirectIndexed // @(R0,Rn)
	ModeGBRIndirectDisp    // @(disp,GBR)
	ModeGBRIndirectIndexed // @(R0,GBR)
	ModePCRelativeDisp     // @(disp,PC)
	ModePCRelative         // disp (branch target)
	ModePCRelativeReg      // Rn (PC+Rn target)
	ModeImmU               // #imm, zero-extended
	ModeImmS               // #imm, sign-extended
)

// Memory reports whether the mode reads or writes through memory.
func (m AddrMode) Memory() bool {
	switch m {
	case ModeRegIndirect, ModeRegIndirectInc, ModeRegIndirectDec,
		ModeRegIndirectDisp, ModeRegIndirectIndexed,
		ModeGBRIndirectDisp, ModeGBRIndirectIndexed, ModePCRelativeDisp:
		return true
	}
	return false
}

// Scaling is the access width class of an instruction: byte, word or long.
type Scaling uint8

const (
	ScalingInvalid Scaling = iota
	ScalingB
	ScalingW
	ScalingL
)

// Size returns the access width in bytes (0 for invalid).
func (s Scaling) Size() uint32 {
	switch s {
	case ScalingB:
		return 1
	case ScalingW:
		return 2
	case ScalingL:
		return 4
	}
	return 0
}

// Bits returns the access width in bits (0 for invalid).
func (s Scaling) Bits() uint8 {
	return uint8(s.Size()) * 8
}

func (s Scaling) suffix() string {
	switch s {
	case ScalingB:
		return ".b"
	case ScalingW:
		return ".w"
	case ScalingL:
		return ".l"
	}
	return ""
}

// Param is one operand. Val holds up to two mode-dependent fields:
//
//	ModeRegDirect, Mode*Indirect*:  Val[0] = register index
//	ModeRegIndirectDisp:            Val[0] = register, Val[1] = raw displacement
//	ModeRegIndirectIndexed:         Val[0] = base register (R0 is the index)
//	ModeGBRIndirectDisp,
//	ModePCRelativeDisp:             Val[0] = raw displacement
//	ModePCRelative:                 Val[0] = displacement, sign-extended to 16 bits
//	ModeImmU:                       Val[0] = immediate, zero-extended
//	ModeImmS:                       Val[0] = immediate, sign-extended to 16 bits
//
// Raw displacements are unscaled; effective-address computation and display
// multiply by the instruction's scaling size.
type Param struct {
	Mode AddrMode
	Val  [2]uint16
}

func Reg(r uint16) Param     { return Param{Mode: ModeRegDirect, Val: [2]uint16{r, 0}} }
func Ind(r uint16) Param     { return Param{Mode: ModeRegIndirect, Val: [2]uint16{r, 0}} }
func IndInc(r uint16) Param  { return Param{Mode: ModeRegIndirectInc, Val: [2]uint16{r, 0}} }
func IndDec(r uint16) Param  { return Param{Mode: ModeRegIndirectDec, Val: [2]uint16{r, 0}} }
func IndIdx(r uint16) Param  { return Param{Mode: ModeRegIndirectIndexed, Val: [2]uint16{r, 0}} }
func GBRIdx() Param          { return Param{Mode: ModeGBRIndirectIndexed} }
func GBRDisp(d uint16) Param { return Param{Mode: ModeGBRIndirectDisp, Val: [2]uint16{d, 0}} }
func PCDisp(d uint16) Param  { return Param{Mode: ModePCRelativeDisp, Val: [2]uint16{d, 0}} }
func PCRelReg(r uint16) Param {
	return Param{Mode: ModePCRelativeReg, Val: [2]uint16{r, 0}}
}

func IndDisp(r, d uint16) Param {
	return Param{Mode: ModeRegIndirectDisp, Val: [2]uint16{r, d}}
}

func PCRel(d int16) Param {
	return Param{Mode: ModePCRelative, Val: [2]uint16{uint16(d), 0}}
}

func ImmU(v uint16) Param { return Param{Mode: ModeImmU, Val: [2]uint16{v, 0}} }

func ImmS(v int16) Param { return Param{Mode: ModeImmS, Val: [2]uint16{uint16(v), 0}} }

// Format renders the operand in assembly syntax. Displacements are shown
// scaled to bytes, the way SH listings write them.
func (p Param) Format(s Scaling) string {
	size := s.Size()
	if size == 0 {
		size = 1
	}
	switch p.Mode {
	case ModeRegDirect:
		return regName(p.Val[0])
	case ModeRegIndirect:
		return "@" + regName(p.Val[0])
	case ModeRegIndirectInc:
		return "@" + regName(p.Val[0]) + "+"
	case ModeRegIndirectDec:
		return "@-" + regName(p.Val[0])
	case ModeRegIndirectDisp:
		return fmt.Sprintf("@(%d,%s)", uint32(p.Val[1])*size, regName(p.Val[0]))
	case ModeRegIndirectIndexed:
		return fmt.Sprintf("@(r0,%s)", regName(p.Val[0]))
	case ModeGBRIndirectDisp:
		return fmt.Sprintf("@(%d,gbr)", uint32(p.Val[0])*size)
	case ModeGBRIndirectIndexed:
		return "@(r0,gbr)"
	case ModePCRelativeDisp:
		return fmt.Sprintf("@(%d,pc)", uint32(p.Val[0])*size)
	case ModePCRelative:
		return fmt.Sprintf("%+d", int16(p.Val[0]))
	case ModePCRelativeReg:
		return regName(p.Val[0])
	case ModeImmU:
		return fmt.Sprintf("#%d", p.Val[0])
	case ModeImmS:
		return fmt.Sprintf("#%d", int16(p.Val[0]))
	}
	return "?"
}

func regName(r uint16) string {
	return fmt.Sprintf("r%d", r)
}

// Op is one decoded instruction.
type Op struct {
	Class   OpClass
	Param   [2]Param
	Scaling Scaling
	Raw     uint16
}

// suffixed classes always carry a .b/.w/.l width in their mnemonic.
func classAlwaysSuffixed(c OpClass) bool {
	switch c {
	case OpSwap, OpExts, OpExtu, OpMac:
		return true
	}
	return false
}

// Mnemonic returns the mnemonic including the width suffix where the
// assembly syntax carries one (mov.l, swap.b, and.b for the GBR form, ...).
func (o Op) Mnemonic() string {
	name := o.Class.String()
	if strings.ContainsRune(name, '.') {
		return name
	}
	switch {
	case classAlwaysSuffixed(o.Class):
		return name + o.Scaling.suffix()
	case o.Class == OpMov && (o.Param[0].Mode.Memory() || o.Param[1].Mode.Memory()):
		return name + o.Scaling.suffix()
	case (o.Class == OpAnd || o.Class == OpOr) && o.Param[1].Mode.Memory():
		return name + o.Scaling.suffix()
	}
	return name
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Mnemonic())
	for i, p := range o.Param {
		if p.Mode == ModeInvalid {
			break
		}
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.Format(o.Scaling))
	}
	return b.String()
}
