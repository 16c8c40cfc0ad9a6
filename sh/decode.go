package sh

import "encoding/binary"

// instrDef matches one encoding: word&mask == bits. build extracts the
// operands from the instruction word.
type instrDef struct {
	mask    uint16
	bits    uint16
	class   OpClass
	scaling Scaling
	build   func(w uint16) [2]Param
}

func rn(w uint16) uint16    { return (w >> 8) & 0xf }
func rm(w uint16) uint16    { return (w >> 4) & 0xf }
func imm8(w uint16) uint16  { return w & 0xff }
func disp4(w uint16) uint16 { return w & 0xf }

// sext8 widens an 8-bit field into the sign-extended 16-bit form Param
// carries for signed immediates and displacements.
func sext8(v uint16) uint16 {
	return uint16(int16(int8(v)))
}

func params(a, b Param) [2]Param { return [2]Param{a, b} }

func one(a Param) [2]Param { return [2]Param{a, {}} }

// regReg builds the common "<op> Rm, Rn" operand pair.
func regReg(w uint16) [2]Param {
	return params(Reg(rm(w)), Reg(rn(w)))
}

func rnOnly(w uint16) [2]Param { return one(Reg(rn(w))) }

// instrTable holds every encoding this module decodes. Masks are ordered
// most-specific first; the first match wins. Words matching nothing decode
// to OpInvalid with the raw word preserved.
var instrTable = []instrDef{
	// full-word encodings
	{0xffff, 0x0019, OpDiv0u, ScalingL, nil},

	// single-register encodings
	{0xf0ff, 0x0029, OpMovt, ScalingL, rnOnly},
	{0xf0ff, 0x4010, OpDt, ScalingL, rnOnly},
	{0xf0ff, 0x4011, OpCmpPz, ScalingL, rnOnly},
	{0xf0ff, 0x4015, OpCmpPl, ScalingL, rnOnly},

	// immediate and displacement encodings
	{0xff00, 0x8800, OpCmpEq, ScalingL, func(w uint16) [2]Param {
		return params(ImmS(int16(sext8(imm8(w)))), Reg(0))
	}},
	{0xff00, 0xc900, OpAnd, ScalingL, func(w uint16) [2]Param {
		return params(ImmU(imm8(w)), Reg(0))
	}},
	{0xff00, 0xcd00, OpAnd, ScalingB, func(w uint16) [2]Param {
		return params(ImmU(imm8(w)), GBRIdx())
	}},
	{0xff00, 0xcb00, OpOr, ScalingL, func(w uint16) [2]Param {
		return params(ImmU(imm8(w)), Reg(0))
	}},
	{0xff00, 0xcf00, OpOr, ScalingB, func(w uint16) [2]Param {
		return params(ImmU(imm8(w)), GBRIdx())
	}},
	{0xff00, 0x8000, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(Reg(0), IndDisp(rm(w), disp4(w)))
	}},
	{0xff00, 0x8100, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(Reg(0), IndDisp(rm(w), disp4(w)))
	}},
	{0xff00, 0x8400, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(IndDisp(rm(w), disp4(w)), Reg(0))
	}},
	{0xff00, 0x8500, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(IndDisp(rm(w), disp4(w)), Reg(0))
	}},
	{0xff00, 0xc000, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(Reg(0), GBRDisp(imm8(w)))
	}},
	{0xff00, 0xc100, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(Reg(0), GBRDisp(imm8(w)))
	}},
	{0xff00, 0xc200, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(Reg(0), GBRDisp(imm8(w)))
	}},
	{0xff00, 0xc400, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(GBRDisp(imm8(w)), Reg(0))
	}},
	{0xff00, 0xc500, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(GBRDisp(imm8(w)), Reg(0))
	}},
	{0xff00, 0xc600, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(GBRDisp(imm8(w)), Reg(0))
	}},

	// register-pair encodings
	{0xf00f, 0x0004, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndIdx(rn(w)))
	}},
	{0xf00f, 0x0005, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndIdx(rn(w)))
	}},
	{0xf00f, 0x0006, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndIdx(rn(w)))
	}},
	{0xf00f, 0x000c, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(IndIdx(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x000d, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(IndIdx(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x000e, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(IndIdx(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x0007, OpMul, ScalingL, regReg},
	{0xf00f, 0x000f, OpMac, ScalingL, func(w uint16) [2]Param {
		return params(IndInc(rm(w)), IndInc(rn(w)))
	}},

	{0xf00f, 0x2000, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(Reg(rm(w)), Ind(rn(w)))
	}},
	{0xf00f, 0x2001, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(Reg(rm(w)), Ind(rn(w)))
	}},
	{0xf00f, 0x2002, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(Reg(rm(w)), Ind(rn(w)))
	}},
	{0xf00f, 0x2004, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndDec(rn(w)))
	}},
	{0xf00f, 0x2005, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndDec(rn(w)))
	}},
	{0xf00f, 0x2006, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndDec(rn(w)))
	}},
	{0xf00f, 0x2007, OpDiv0s, ScalingL, regReg},
	{0xf00f, 0x2009, OpAnd, ScalingL, regReg},
	{0xf00f, 0x200b, OpOr, ScalingL, regReg},
	{0xf00f, 0x200c, OpCmpStr, ScalingL, regReg},
	{0xf00f, 0x200d, OpXtrct, ScalingL, regReg},
	{0xf00f, 0x200e, OpMulu, ScalingL, regReg},
	{0xf00f, 0x200f, OpMuls, ScalingL, regReg},

	{0xf00f, 0x3000, OpCmpEq, ScalingL, regReg},
	{0xf00f, 0x3002, OpCmpHs, ScalingL, regReg},
	{0xf00f, 0x3003, OpCmpGe, ScalingL, regReg},
	{0xf00f, 0x3004, OpDiv1, ScalingL, regReg},
	{0xf00f, 0x3005, OpDmulu, ScalingL, regReg},
	{0xf00f, 0x3006, OpCmpHi, ScalingL, regReg},
	{0xf00f, 0x3007, OpCmpGt, ScalingL, regReg},
	{0xf00f, 0x3008, OpSub, ScalingL, regReg},
	{0xf00f, 0x300a, OpSubc, ScalingL, regReg},
	{0xf00f, 0x300b, OpSubv, ScalingL, regReg},
	{0xf00f, 0x300c, OpAdd, ScalingL, regReg},
	{0xf00f, 0x300d, OpDmuls, ScalingL, regReg},
	{0xf00f, 0x300e, OpAddc, ScalingL, regReg},
	{0xf00f, 0x300f, OpAddv, ScalingL, regReg},

	{0xf00f, 0x400f, OpMac, ScalingW, func(w uint16) [2]Param {
		return params(IndInc(rm(w)), IndInc(rn(w)))
	}},

	{0xf00f, 0x6000, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(Ind(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x6001, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(Ind(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x6002, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(Ind(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x6003, OpMov, ScalingL, regReg},
	{0xf00f, 0x6004, OpMov, ScalingB, func(w uint16) [2]Param {
		return params(IndInc(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x6005, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(IndInc(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x6006, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(IndInc(rm(w)), Reg(rn(w)))
	}},
	{0xf00f, 0x6007, OpNot, ScalingL, regReg},
	{0xf00f, 0x6008, OpSwap, ScalingB, regReg},
	{0xf00f, 0x6009, OpSwap, ScalingW, regReg},
	{0xf00f, 0x600a, OpNegc, ScalingL, regReg},
	{0xf00f, 0x600b, OpNeg, ScalingL, regReg},
	{0xf00f, 0x600c, OpExtu, ScalingB, regReg},
	{0xf00f, 0x600d, OpExtu, ScalingW, regReg},
	{0xf00f, 0x600e, OpExts, ScalingB, regReg},
	{0xf00f, 0x600f, OpExts, ScalingW, regReg},

	// wide-field encodings
	{0xf000, 0x1000, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(Reg(rm(w)), IndDisp(rn(w), disp4(w)))
	}},
	{0xf000, 0x5000, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(IndDisp(rm(w), disp4(w)), Reg(rn(w)))
	}},
	{0xf000, 0x7000, OpAdd, ScalingL, func(w uint16) [2]Param {
		return params(ImmS(int16(sext8(imm8(w)))), Reg(rn(w)))
	}},
	{0xf000, 0x9000, OpMov, ScalingW, func(w uint16) [2]Param {
		return params(PCDisp(imm8(w)), Reg(rn(w)))
	}},
	{0xf000, 0xd000, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(PCDisp(imm8(w)), Reg(rn(w)))
	}},
	{0xf000, 0xe000, OpMov, ScalingL, func(w uint16) [2]Param {
		return params(ImmS(int16(sext8(imm8(w)))), Reg(rn(w)))
	}},
}

// Decode decodes a single instruction word. Words outside the supported set
// decode to OpInvalid with the raw word preserved.
func Decode(word uint16) Op {
	for _, def := range instrTable {
		if word&def.mask == def.bits {
			op := Op{Class: def.class, Scaling: def.scaling, Raw: word}
			if def.build != nil {
				op.Param = def.build(word)
			}
			return op
		}
	}
	return Op{Class: OpInvalid, Raw: word}
}

// DecodeBytes decodes a buffer of instruction words in the given byte order.
// A trailing odd byte is ignored.
func DecodeBytes(buf []byte, order binary.ByteOrder) []Op {
	ops := make([]Op, 0, len(buf)/2)
	for i := 0; i+1 < len(buf); i += 2 {
		ops = append(ops, Decode(order.Uint16(buf[i:])))
	}
	return ops
}
