package lifter

import (
	"fmt"

	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/log"
	"github.com/narwhalsec/shil/sh"
)

func uReg(v uint64) *il.ConstExpr  { return il.U(sh.RegBits, v) }
func sReg(v int64) *il.ConstExpr   { return il.S(sh.RegBits, v) }
func uAddr(v uint64) *il.ConstExpr { return il.U(sh.AddrBits, v) }
func sAddr(v int64) *il.ConstExpr  { return il.S(sh.AddrBits, v) }

func srBit(name string) *il.VarExpr { return il.VarG(name, 1) }

// zextT widens the T bit to register width, the form arithmetic on the
// carry/borrow chain consumes.
func zextT() *il.CastExpr {
	return il.Unsigned(sh.RegBits, srBit(sh.SrT))
}

// bankCond is true when both SR.MD and SR.RB are set, selecting bank 1
// behind r0..r7.
func bankCond() il.Pure {
	return il.And(srBit(sh.SrD), srBit(sh.SrR))
}

// regRead builds the read of a general register. Banked registers resolve
// the active bank inside the IL.
func (l *Lifter) regRead(reg uint16) (il.Pure, error) {
	if !sh.ValidGPR(reg) {
		log.Error(log.LiftModule, "invalid register", "reg", reg)
		return nil, fmt.Errorf("%w: r%d", ErrInvalidReg, reg)
	}
	if !sh.BankedIndex(reg) {
		name, _ := sh.RegisterName(reg)
		return il.VarG(name, sh.RegBits), nil
	}
	bank1, _ := sh.BankedName(reg, 1)
	bank0, _ := sh.BankedName(reg, 0)
	return il.Ite(bankCond(), il.VarG(bank1, sh.RegBits), il.VarG(bank0, sh.RegBits)), nil
}

// regWrite builds the write of a general register. For banked registers the
// value reaches exactly one physical bank; the duplicate feeding the other
// arm is value-only.
func (l *Lifter) regWrite(reg uint16, val il.Pure) (il.Effect, error) {
	if !sh.ValidGPR(reg) {
		log.Error(log.LiftModule, "invalid register", "reg", reg)
		return nil, fmt.Errorf("%w: r%d", ErrInvalidReg, reg)
	}
	if !sh.BankedIndex(reg) {
		name, _ := sh.RegisterName(reg)
		return il.SetG(name, val), nil
	}
	bank1, _ := sh.BankedName(reg, 1)
	bank0, _ := sh.BankedName(reg, 0)
	return il.Branch(bankCond(), il.SetG(bank1, val), il.SetG(bank0, val.Dup())), nil
}

// effectiveAddr computes the address an operand refers to. Displacements
// scale by the access size; the PC-relative displacement form masks PC down
// to a multiple of 4 for long accesses.
func (l *Lifter) effectiveAddr(p sh.Param, s sh.Scaling) (il.Pure, error) {
	size := uint64(s.Size())
	switch p.Mode {
	case sh.ModeRegIndirect, sh.ModeRegIndirectInc, sh.ModeRegIndirectDec:
		return l.regRead(p.Val[0])
	case sh.ModeRegIndirectDisp:
		base, err := l.regRead(p.Val[0])
		if err != nil {
			return nil, err
		}
		return il.Add(base, il.Mul(uAddr(uint64(p.Val[1])), uAddr(size))), nil
	case sh.ModeRegIndirectIndexed:
		base, err := l.regRead(p.Val[0])
		if err != nil {
			return nil, err
		}
		index, err := l.regRead(p.Val[1])
		if err != nil {
			return nil, err
		}
		return il.Add(base, index), nil
	case sh.ModeGBRIndirectDisp:
		return il.Add(il.VarG("gbr", sh.RegBits), il.Mul(uAddr(uint64(p.Val[0])), uAddr(size))), nil
	case sh.ModeGBRIndirectIndexed:
		index, err := l.regRead(p.Val[0])
		if err != nil {
			return nil, err
		}
		return il.Add(il.VarG("gbr", sh.RegBits), index), nil
	case sh.ModePCRelativeDisp:
		var pc il.Pure = il.VarG("pc", sh.AddrBits)
		if size == 4 {
			// instruction fetch addresses are word-aligned; long
			// accesses are computed from the 4-aligned PC
			pc = il.And(pc, uAddr(0xfffffffc))
		}
		pc = il.Add(pc, uAddr(4))
		return il.Add(pc, il.Mul(uAddr(uint64(p.Val[0])), uAddr(size))), nil
	case sh.ModePCRelative:
		relative := il.Mul(sAddr(int64(int16(p.Val[0]))), sAddr(2))
		return il.Add(il.Add(il.VarG("pc", sh.AddrBits), uAddr(4)), relative), nil
	case sh.ModePCRelativeReg:
		reg, err := l.regRead(p.Val[0])
		if err != nil {
			return nil, err
		}
		return il.Add(il.Add(il.VarG("pc", sh.AddrBits), uAddr(4)), reg), nil
	}
	log.Warn(log.LiftModule, "no effective address for mode", "mode", p.Mode)
	return nil, fmt.Errorf("%w: %d", ErrNoEffectiveAddr, p.Mode)
}

// paramHelper carries an operand's value expression together with the
// effects its addressing mode demands around the consuming operation. The
// pre effect must run before the value is consumed, the post effect after.
type paramHelper struct {
	Pre  il.Effect
	Pure il.Pure
	Post il.Effect
}

// getParam builds the read of one operand. Memory operands load
// s.Bits() bits at the effective address; post-increment loads at the
// unmodified register, pre-decrement at the already decremented one.
func (l *Lifter) getParam(p sh.Param, s sh.Scaling) (paramHelper, error) {
	bits := s.Bits()
	if bits == 0 {
		bits = sh.RegBits
	}
	var ret paramHelper
	switch p.Mode {
	case sh.ModeRegDirect:
		pure, err := l.regRead(p.Val[0])
		if err != nil {
			return ret, err
		}
		ret.Pure = pure
	case sh.ModeRegIndirect, sh.ModeRegIndirectDisp, sh.ModeRegIndirectIndexed,
		sh.ModeGBRIndirectDisp, sh.ModeGBRIndirectIndexed, sh.ModePCRelativeDisp:
		addr, err := l.effectiveAddr(p, s)
		if err != nil {
			return ret, err
		}
		ret.Pure = il.Load(bits, addr)
	case sh.ModeRegIndirectInc:
		addr, err := l.effectiveAddr(p, s)
		if err != nil {
			return ret, err
		}
		ret.Pure = il.Load(bits, addr)
		reg, err := l.regRead(p.Val[0])
		if err != nil {
			return ret, err
		}
		post, err := l.regWrite(p.Val[0], il.Add(reg, uAddr(uint64(s.Size()))))
		if err != nil {
			return ret, err
		}
		ret.Post = post
	case sh.ModeRegIndirectDec:
		reg, err := l.regRead(p.Val[0])
		if err != nil {
			return ret, err
		}
		pre, err := l.regWrite(p.Val[0], il.Sub(reg, uAddr(uint64(s.Size()))))
		if err != nil {
			return ret, err
		}
		ret.Pre = pre
		addr, err := l.effectiveAddr(p, s)
		if err != nil {
			return ret, err
		}
		ret.Pure = il.Load(bits, addr)
	case sh.ModePCRelative, sh.ModePCRelativeReg:
		addr, err := l.effectiveAddr(p, s)
		if err != nil {
			return ret, err
		}
		ret.Pure = addr
	case sh.ModeImmU:
		ret.Pure = il.U(bits, uint64(p.Val[0]))
	case sh.ModeImmS:
		ret.Pure = il.S(bits, int64(int16(p.Val[0])))
	default:
		log.Error(log.LiftModule, "invalid addressing mode", "mode", p.Mode)
		return ret, fmt.Errorf("%w: %d", ErrInvalidMode, p.Mode)
	}
	return ret, nil
}

// applyEffects wraps target between an operand's pre and post effects. Any
// of the three may be nil.
func applyEffects(target, pre, post il.Effect) il.Effect {
	if target == nil {
		if pre == nil {
			return post
		}
		target = pre
	} else if pre != nil {
		target = il.Seq(pre, target)
	}
	if post != nil {
		target = il.Seq(target, post)
	}
	return target
}

// setParam builds the write of val to one operand, including the addressing
// mode's own effects. Register writes sign-extend narrow values to register
// width (the memory-load forms of MOV extend on the way in); memory writes
// truncate val to the access width.
func (l *Lifter) setParam(p sh.Param, val il.Pure, s sh.Scaling) (il.Effect, error) {
	switch p.Mode {
	case sh.ModeRegDirect:
		if val.Width() < sh.RegBits {
			val = il.Signed(sh.RegBits, val)
		}
		return l.regWrite(p.Val[0], val)
	case sh.ModeRegIndirect, sh.ModeRegIndirectInc, sh.ModeRegIndirectDec,
		sh.ModeRegIndirectDisp, sh.ModeRegIndirectIndexed,
		sh.ModeGBRIndirectDisp, sh.ModeGBRIndirectIndexed:
		// fall through to the store path below
	default:
		log.Error(log.LiftModule, "cannot write to addressing mode", "mode", p.Mode)
		return nil, fmt.Errorf("%w: %d", ErrBadWriteTarget, p.Mode)
	}

	helper, err := l.getParam(p, s)
	if err != nil {
		return nil, err
	}
	addr, err := l.effectiveAddr(p, s)
	if err != nil {
		return nil, err
	}
	if bits := s.Bits(); bits != 0 && val.Width() != bits {
		val = il.Unsigned(bits, val)
	}
	return applyEffects(il.Store(addr, val), helper.Pre, helper.Post), nil
}

// purePar reads operand i, discarding addressing-mode effects. Only valid
// for operands whose mode carries none (registers, immediates) or where the
// caller deliberately reuses the bare value.
func (l *Lifter) purePar(op *sh.Op, i int) (il.Pure, error) {
	helper, err := l.getParam(op.Param[i], op.Scaling)
	if err != nil {
		return nil, err
	}
	return helper.Pure, nil
}

// setPure writes val to operand i.
func (l *Lifter) setPure(op *sh.Op, i int, val il.Pure) (il.Effect, error) {
	return l.setParam(op.Param[i], val, op.Scaling)
}
