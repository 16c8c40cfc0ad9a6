package il

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// EffectTree renders an effect tree for terminal display.
func EffectTree(eff Effect) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue("il")
	addEffect(tree, eff)
	return tree
}

func addEffect(t treeprint.Tree, eff Effect) {
	switch e := eff.(type) {
	case *SetEffect:
		op := "setg"
		if e.Local {
			op = "setl"
		}
		br := t.AddBranch(fmt.Sprintf("%s %s", op, e.Name))
		addPure(br, e.Val)
	case *StoreEffect:
		br := t.AddBranch("storew")
		addPure(br.AddBranch("addr"), e.Addr)
		addPure(br.AddBranch("val"), e.Val)
	case *BranchEffect:
		br := t.AddBranch("branch")
		addPure(br.AddBranch("cond"), e.Cond)
		addEffect(br.AddBranch("then"), e.Then)
		addEffect(br.AddBranch("else"), e.Else)
	case *SeqEffect:
		br := t.AddBranch("seq")
		for _, sub := range e.Effects {
			addEffect(br, sub)
		}
	case *NopEffect:
		t.AddNode("nop")
	default:
		t.AddNode(fmt.Sprintf("%T", eff))
	}
}

func addPure(t treeprint.Tree, p Pure) {
	switch e := p.(type) {
	case *ConstExpr:
		t.AddNode(fmt.Sprintf("bv:%d 0x%x", e.W, e.V))
	case *VarExpr:
		if e.Local {
			t.AddNode("varl " + e.Name)
		} else {
			t.AddNode("var " + e.Name)
		}
	case *IteExpr:
		br := t.AddBranch("ite")
		addPure(br.AddBranch("cond"), e.Cond)
		addPure(br.AddBranch("then"), e.Then)
		addPure(br.AddBranch("else"), e.Else)
	case *BinExpr:
		br := t.AddBranch(e.Kind.String())
		addPure(br, e.X)
		addPure(br, e.Y)
	case *CmpExpr:
		br := t.AddBranch(e.Kind.String())
		addPure(br, e.X)
		addPure(br, e.Y)
	case *UnExpr:
		br := t.AddBranch(e.Kind.String())
		addPure(br, e.X)
	case *ShiftExpr:
		op := "shr"
		if e.Left {
			op = "shl"
		}
		br := t.AddBranch(op)
		addPure(br, e.X)
		addPure(br, e.N)
	case *CastExpr:
		op := "unsigned"
		if e.Signed {
			op = "signed"
		}
		br := t.AddBranch(fmt.Sprintf("%s:%d", op, e.W))
		addPure(br, e.X)
	case *LoadExpr:
		br := t.AddBranch(fmt.Sprintf("loadw:%d", e.Bits))
		addPure(br, e.Addr)
	default:
		t.AddNode(fmt.Sprintf("%T", p))
	}
}
