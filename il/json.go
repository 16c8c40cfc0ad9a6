package il

import (
	"encoding/json"
	"fmt"
)

// PureJSON converts a value expression into a JSON-encodable structure with
// an "op" discriminator per node. Map keys marshal in sorted order, so the
// output is deterministic and safe for byte-level golden comparisons.
func PureJSON(p Pure) any {
	switch e := p.(type) {
	case *ConstExpr:
		return map[string]any{"op": "bv", "width": e.W, "value": fmt.Sprintf("0x%x", e.V)}
	case *VarExpr:
		op := "var"
		if e.Local {
			op = "varl"
		}
		return map[string]any{"op": op, "name": e.Name}
	case *IteExpr:
		return map[string]any{"op": "ite", "cond": PureJSON(e.Cond), "then": PureJSON(e.Then), "else": PureJSON(e.Else)}
	case *BinExpr:
		return map[string]any{"op": e.Kind.String(), "x": PureJSON(e.X), "y": PureJSON(e.Y)}
	case *CmpExpr:
		return map[string]any{"op": e.Kind.String(), "x": PureJSON(e.X), "y": PureJSON(e.Y)}
	case *UnExpr:
		return map[string]any{"op": e.Kind.String(), "x": PureJSON(e.X)}
	case *ShiftExpr:
		op := "shr"
		if e.Left {
			op = "shl"
		}
		return map[string]any{"op": op, "x": PureJSON(e.X), "n": PureJSON(e.N)}
	case *CastExpr:
		op := "unsigned"
		if e.Signed {
			op = "signed"
		}
		return map[string]any{"op": op, "width": e.W, "x": PureJSON(e.X)}
	case *LoadExpr:
		return map[string]any{"op": "loadw", "bits": e.Bits, "addr": PureJSON(e.Addr)}
	default:
		return map[string]any{"op": "unknown", "type": fmt.Sprintf("%T", p)}
	}
}

// EffectJSON converts an effect tree into a JSON-encodable structure.
func EffectJSON(eff Effect) any {
	switch e := eff.(type) {
	case *SetEffect:
		op := "setg"
		if e.Local {
			op = "setl"
		}
		return map[string]any{"op": op, "name": e.Name, "val": PureJSON(e.Val)}
	case *StoreEffect:
		return map[string]any{"op": "storew", "addr": PureJSON(e.Addr), "val": PureJSON(e.Val)}
	case *BranchEffect:
		return map[string]any{"op": "branch", "cond": PureJSON(e.Cond), "then": EffectJSON(e.Then), "else": EffectJSON(e.Else)}
	case *SeqEffect:
		subs := make([]any, len(e.Effects))
		for i, sub := range e.Effects {
			subs[i] = EffectJSON(sub)
		}
		return map[string]any{"op": "seq", "effects": subs}
	case *NopEffect:
		return map[string]any{"op": "nop"}
	default:
		return map[string]any{"op": "unknown", "type": fmt.Sprintf("%T", eff)}
	}
}

// MarshalEffect renders an effect tree as compact JSON.
func MarshalEffect(eff Effect) ([]byte, error) {
	return json.Marshal(EffectJSON(eff))
}

// MarshalEffectIndent renders an effect tree as indented JSON.
func MarshalEffectIndent(eff Effect) ([]byte, error) {
	return json.MarshalIndent(EffectJSON(eff), "", "  ")
}
