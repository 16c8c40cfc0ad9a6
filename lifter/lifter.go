// Package lifter translates decoded SH operations into il effect trees.
//
// Registers r0..r7 are banked: reads and writes go to one of two physical
// banks selected by the SR.MD and SR.RB bits, resolved inside the emitted IL
// rather than at lift time. All addressing-mode side effects (pre-decrement,
// post-increment) are explicit effects ordered around the consuming
// operation.
package lifter

import (
	"errors"
	"fmt"

	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/log"
	"github.com/narwhalsec/shil/sh"
)

var (
	// ErrUnsupported marks words outside the lifted instruction set. This
	// is an expected outcome for arbitrary input, not a fault.
	ErrUnsupported = errors.New("unsupported instruction")

	// ErrInvalidReg marks a register index outside the file.
	ErrInvalidReg = errors.New("invalid register")

	// ErrInvalidMode marks an operand with an unknown addressing mode.
	ErrInvalidMode = errors.New("invalid addressing mode")

	// ErrNoEffectiveAddr marks an effective-address request for a mode
	// that has none (register direct, immediates).
	ErrNoEffectiveAddr = errors.New("no effective address for addressing mode")

	// ErrBadWriteTarget marks a write to a read-only operand (immediates,
	// PC-relative targets).
	ErrBadWriteTarget = errors.New("cannot write to addressing mode")

	// ErrInvalidScaling marks an operation whose scaling tag does not fit
	// its class, such as a longword swap.
	ErrInvalidScaling = errors.New("invalid operand scaling")
)

func errScaling(op *sh.Op) error {
	log.Error(log.LiftModule, "invalid operand scaling", "class", op.Class, "word", op.Raw)
	return fmt.Errorf("%w: %s (0x%04x)", ErrInvalidScaling, op.Class, op.Raw)
}

// Lifter translates sh.Op values into IL. It is stateless and safe for
// concurrent use.
type Lifter struct{}

func New() *Lifter {
	return &Lifter{}
}

// Lift translates one decoded operation at the given address. Classes
// outside the supported set return ErrUnsupported and no effect.
func (l *Lifter) Lift(op *sh.Op, pc uint64) (il.Effect, error) {
	switch op.Class {
	case sh.OpMov:
		return l.liftMov(op, pc)
	case sh.OpMovt:
		return l.liftMovt(op, pc)
	case sh.OpSwap:
		return l.liftSwap(op, pc)
	case sh.OpXtrct:
		return l.liftXtrct(op, pc)
	case sh.OpAdd:
		return l.liftAdd(op, pc)
	case sh.OpAddc:
		return l.liftAddc(op, pc)
	case sh.OpAddv:
		return l.liftAddv(op, pc)
	case sh.OpCmpEq, sh.OpCmpHs, sh.OpCmpGe, sh.OpCmpHi, sh.OpCmpGt, sh.OpCmpPz, sh.OpCmpPl:
		return l.liftCmp(op, pc)
	case sh.OpCmpStr:
		return l.liftCmpStr(op, pc)
	case sh.OpDiv1:
		return l.liftDiv1(op, pc)
	case sh.OpDiv0s:
		return l.liftDiv0s(op, pc)
	case sh.OpDiv0u:
		return l.liftDiv0u(op, pc)
	case sh.OpDmuls, sh.OpDmulu:
		return l.liftDmul(op, pc)
	case sh.OpDt:
		return l.liftDt(op, pc)
	case sh.OpExts:
		return l.liftExts(op, pc)
	case sh.OpExtu:
		return l.liftExtu(op, pc)
	case sh.OpMac:
		return l.liftMac(op, pc)
	case sh.OpMul:
		return l.liftMul(op, pc)
	case sh.OpMuls:
		return l.liftMuls(op, pc)
	case sh.OpMulu:
		return l.liftMulu(op, pc)
	case sh.OpNeg:
		return l.liftNeg(op, pc)
	case sh.OpNegc:
		return l.liftNegc(op, pc)
	case sh.OpSub:
		return l.liftSub(op, pc)
	case sh.OpSubc:
		return l.liftSubc(op, pc)
	case sh.OpSubv:
		return l.liftSubv(op, pc)
	case sh.OpAnd, sh.OpOr:
		return l.liftBitwise(op, pc)
	case sh.OpNot:
		return l.liftNot(op, pc)
	}
	return nil, fmt.Errorf("%w: %s (0x%04x)", ErrUnsupported, op.Class, op.Raw)
}

// LiftWord decodes and lifts a raw instruction word.
func (l *Lifter) LiftWord(word uint16, pc uint64) (il.Effect, error) {
	op := sh.Decode(word)
	return l.Lift(&op, pc)
}
