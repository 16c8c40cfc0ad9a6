package il

import "fmt"

// ValidatePure walks a value expression and reports the first width
// inconsistency found. Lifters are expected to produce well-formed trees;
// this exists so tests and tools can assert it.
func ValidatePure(p Pure) error {
	switch e := p.(type) {
	case *ConstExpr:
		if e.W == 0 {
			return fmt.Errorf("il: zero-width constant")
		}
	case *VarExpr:
		if e.Name == "" {
			return fmt.Errorf("il: unnamed variable")
		}
		if e.W == 0 {
			return fmt.Errorf("il: zero-width variable %q", e.Name)
		}
	case *IteExpr:
		if w := e.Cond.Width(); w != 1 {
			return fmt.Errorf("il: ite condition has width %d, want 1", w)
		}
		if tw, ew := e.Then.Width(), e.Else.Width(); tw != ew {
			return fmt.Errorf("il: ite arms disagree on width: %d vs %d", tw, ew)
		}
		return firstErr(ValidatePure(e.Cond), ValidatePure(e.Then), ValidatePure(e.Else))
	case *BinExpr:
		if xw, yw := e.X.Width(), e.Y.Width(); xw != yw {
			return fmt.Errorf("il: %s operands disagree on width: %d vs %d", e.Kind, xw, yw)
		}
		return firstErr(ValidatePure(e.X), ValidatePure(e.Y))
	case *CmpExpr:
		if xw, yw := e.X.Width(), e.Y.Width(); xw != yw {
			return fmt.Errorf("il: %s operands disagree on width: %d vs %d", e.Kind, xw, yw)
		}
		return firstErr(ValidatePure(e.X), ValidatePure(e.Y))
	case *UnExpr:
		return ValidatePure(e.X)
	case *ShiftExpr:
		return firstErr(ValidatePure(e.X), ValidatePure(e.N))
	case *CastExpr:
		if e.W == 0 {
			return fmt.Errorf("il: cast to zero width")
		}
		return ValidatePure(e.X)
	case *LoadExpr:
		if e.Bits == 0 || e.Bits%8 != 0 {
			return fmt.Errorf("il: load of %d bits", e.Bits)
		}
		return ValidatePure(e.Addr)
	default:
		return fmt.Errorf("il: unknown pure node %T", p)
	}
	return nil
}

// ValidateEffect walks an effect tree and reports the first malformed node.
func ValidateEffect(eff Effect) error {
	switch e := eff.(type) {
	case *SetEffect:
		if e.Name == "" {
			return fmt.Errorf("il: set with empty name")
		}
		if e.Val == nil {
			return fmt.Errorf("il: set %q with nil value", e.Name)
		}
		return ValidatePure(e.Val)
	case *StoreEffect:
		if w := e.Val.Width(); w%8 != 0 {
			return fmt.Errorf("il: store of %d bits", w)
		}
		return firstErr(ValidatePure(e.Addr), ValidatePure(e.Val))
	case *BranchEffect:
		if w := e.Cond.Width(); w != 1 {
			return fmt.Errorf("il: branch condition has width %d, want 1", w)
		}
		return firstErr(ValidatePure(e.Cond), ValidateEffect(e.Then), ValidateEffect(e.Else))
	case *SeqEffect:
		for _, sub := range e.Effects {
			if err := ValidateEffect(sub); err != nil {
				return err
			}
		}
	case *NopEffect:
	default:
		return fmt.Errorf("il: unknown effect node %T", eff)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
