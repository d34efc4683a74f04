package codegen

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
	"github.com/neri/toyscript-wasm/tir"
	"github.com/neri/toyscript-wasm/typesys"
)

// lowerStmts lowers a statement sequence, stopping at the first
// statement that terminates every subsequent path (return/break/
// continue), since anything textually after it is unreachable.
func (fg *funcGen) lowerStmts(sc *scope, stmts []ast.Statement) (bool, error) {
	for _, st := range stmts {
		t, err := fg.lowerStmt(sc, st)
		if err != nil {
			return false, err
		}
		if t {
			return true, nil
		}
	}
	return false, nil
}

func (fg *funcGen) lowerStmt(sc *scope, st ast.Statement) (bool, error) {
	fg.b.SetLine(st.Position().Line)
	switch s := st.(type) {
	case *ast.BlockStmt:
		return fg.lowerStmts(sc.child(nil, nil), s.Body)
	case *ast.VarDecl:
		return fg.lowerVarDecl(sc, s)
	case *ast.IfStmt:
		return fg.lowerIf(sc, s)
	case *ast.WhileStmt:
		return fg.lowerWhile(sc, s)
	case *ast.ForStmt:
		return fg.lowerFor(sc, s)
	case *ast.ReturnStmt:
		return fg.lowerReturn(sc, s)
	case *ast.BreakStmt:
		return fg.lowerBreak(sc, s)
	case *ast.ContinueStmt:
		return fg.lowerContinue(sc, s)
	case *ast.ExprStmt:
		return fg.lowerExprStmt(sc, s)
	}
	return false, cerr.New(cerr.PhaseCodegen, cerr.KindInternal).At(st.Position()).
		Detail("unhandled statement kind").Build()
}

func (fg *funcGen) lowerVarDecl(sc *scope, vd *ast.VarDecl) (bool, error) {
	for i, name := range vd.Names {
		typ, err := fg.declTypeOf(vd, i)
		if err != nil {
			return false, err
		}

		init := vd.Inits[i]
		if typ == nil && init == nil {
			return false, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(vd.Pos).
				Name(name).Detail("variable declared with neither a type nor an initializer").Build()
		}
		if !vd.Mutable && init == nil {
			return false, cerr.New(cerr.PhaseCodegen, cerr.KindTypeMismatch).At(vd.Pos).
				Name(name).Detail("const without assignment").Build()
		}

		var ssa tir.SsaIndex
		var finalType = typ
		if init != nil {
			v, vt, err := fg.lowerExpr(sc, init, typ)
			if err != nil {
				return false, err
			}
			ssa = v
			if finalType == nil {
				finalType = vt
			} else {
				ssa, err = fg.implicitCast(ssa, vt, finalType, init.Position())
				if err != nil {
					return false, err
				}
			}
		} else {
			ssa = fg.zeroValue(finalType)
		}

		idx := fg.b.AddLocal(name, fg.types.StorageType(finalType))
		fg.b.EmitLocalSet(idx, ssa)
		if err := sc.declare(name, idx, finalType, vd.Pos); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (fg *funcGen) lowerIf(sc *scope, st *ast.IfStmt) (bool, error) {
	type branch struct {
		cond ast.Expression
		body []ast.Statement
	}
	branches := make([]branch, 0, 1+len(st.ElseIfs))
	branches = append(branches, branch{st.Cond, st.Then})
	for _, ei := range st.ElseIfs {
		branches = append(branches, branch{ei.Cond, ei.Body})
	}

	outer := fg.b.OpenBlock()
	allTerminate := true

	for _, br := range branches {
		condSsa, condTyp, err := fg.lowerExpr(sc, br.cond, fg.boolType())
		if err != nil {
			return false, err
		}
		condSsa, err = fg.implicitCast(condSsa, condTyp, fg.boolType(), br.cond.Position())
		if err != nil {
			return false, err
		}

		blk := fg.b.OpenBlock()
		eqz := fg.b.EmitUnOp(tir.Eqz, condSsa)
		fg.b.EmitBrIf(eqz, blk)

		t, err := fg.lowerStmts(sc.child(nil, nil), br.body)
		if err != nil {
			return false, err
		}
		if !t {
			fg.b.EmitBr(outer)
		}
		allTerminate = allTerminate && t

		if err := fg.b.CloseBlock(blk); err != nil {
			return false, err
		}
	}

	if st.Else != nil {
		t, err := fg.lowerStmts(sc.child(nil, nil), st.Else)
		if err != nil {
			return false, err
		}
		allTerminate = allTerminate && t
	} else {
		allTerminate = false
	}

	if err := fg.b.CloseBlock(outer); err != nil {
		return false, err
	}
	return allTerminate, nil
}

func (fg *funcGen) lowerWhile(sc *scope, st *ast.WhileStmt) (bool, error) {
	outer := fg.b.OpenBlock()
	loop := fg.b.OpenLoop()

	condSsa, condTyp, err := fg.lowerExpr(sc, st.Cond, fg.boolType())
	if err != nil {
		return false, err
	}
	condSsa, err = fg.implicitCast(condSsa, condTyp, fg.boolType(), st.Cond.Position())
	if err != nil {
		return false, err
	}
	eqz := fg.b.EmitUnOp(tir.Eqz, condSsa)
	fg.b.EmitBrIf(eqz, outer)

	if _, err := fg.lowerStmts(sc.child(&outer, &loop), st.Body); err != nil {
		return false, err
	}
	fg.b.EmitBr(loop)

	if err := fg.b.CloseBlock(loop); err != nil {
		return false, err
	}
	if err := fg.b.CloseBlock(outer); err != nil {
		return false, err
	}
	return false, nil
}

func (fg *funcGen) lowerFor(sc *scope, st *ast.ForStmt) (bool, error) {
	forScope := sc.child(nil, nil)
	if st.Init != nil {
		if _, err := fg.lowerStmt(forScope, st.Init); err != nil {
			return false, err
		}
	}

	outer := fg.b.OpenBlock()
	loop := fg.b.OpenLoop()

	if st.Cond != nil {
		condSsa, condTyp, err := fg.lowerExpr(forScope, st.Cond, fg.boolType())
		if err != nil {
			return false, err
		}
		condSsa, err = fg.implicitCast(condSsa, condTyp, fg.boolType(), st.Cond.Position())
		if err != nil {
			return false, err
		}
		eqz := fg.b.EmitUnOp(tir.Eqz, condSsa)
		fg.b.EmitBrIf(eqz, outer)
	}

	cont := fg.b.OpenBlock()
	if _, err := fg.lowerStmts(forScope.child(&outer, &cont), st.Body); err != nil {
		return false, err
	}
	if err := fg.b.CloseBlock(cont); err != nil {
		return false, err
	}

	if st.Post != nil {
		if _, err := fg.lowerStmt(forScope, st.Post); err != nil {
			return false, err
		}
	}
	fg.b.EmitBr(loop)

	if err := fg.b.CloseBlock(loop); err != nil {
		return false, err
	}
	if err := fg.b.CloseBlock(outer); err != nil {
		return false, err
	}
	return false, nil
}

func (fg *funcGen) lowerBreak(sc *scope, st *ast.BreakStmt) (bool, error) {
	if sc.breakIndex == nil {
		return false, cerr.New(cerr.PhaseCodegen, cerr.KindSyntax).At(st.Pos).
			Detail("break outside of a loop").Build()
	}
	fg.b.EmitBr(*sc.breakIndex)
	return true, nil
}

func (fg *funcGen) lowerContinue(sc *scope, st *ast.ContinueStmt) (bool, error) {
	if sc.continueIndex == nil {
		return false, cerr.New(cerr.PhaseCodegen, cerr.KindSyntax).At(st.Pos).
			Detail("continue outside of a loop").Build()
	}
	fg.b.EmitBr(*sc.continueIndex)
	return true, nil
}

func (fg *funcGen) lowerReturn(sc *scope, st *ast.ReturnStmt) (bool, error) {
	if st.Value == nil {
		if fg.result != nil {
			return false, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(st.Pos).
				Detail("function declares a %s return value; bare return is not allowed", fg.result.Identifier).Build()
		}
		fg.b.EmitReturnVoid()
		return true, nil
	}
	if fg.result == nil {
		return false, cerr.New(cerr.PhaseType, cerr.KindTypeMismatch).At(st.Pos).
			Detail("function declares no return value; return with a value is not allowed").Build()
	}
	ssa, typ, err := fg.lowerExpr(sc, st.Value, fg.result)
	if err != nil {
		return false, err
	}
	ssa, err = fg.implicitCast(ssa, typ, fg.result, st.Value.Position())
	if err != nil {
		return false, err
	}
	fg.b.EmitReturn(ssa)
	return true, nil
}

func (fg *funcGen) lowerExprStmt(sc *scope, st *ast.ExprStmt) (bool, error) {
	if ne, ok := st.X.(*ast.NewExpr); ok {
		if _, err := fg.lowerNewCall(sc, ne); err != nil {
			return false, err
		}
		return false, nil
	}
	ssa, typ, err := fg.lowerExpr(sc, st.X, nil)
	if err != nil {
		return false, err
	}
	if !typ.IsVoid() && !typ.IsNever() {
		fg.b.EmitDrop(ssa)
	}
	return false, nil
}

// declTypeOf resolves a VarDecl declarator's explicit type annotation,
// if any; a nil return with a nil error means the declarator has no
// annotation and its type must come from the initializer instead.
func (fg *funcGen) declTypeOf(vd *ast.VarDecl, i int) (*typesys.Descriptor, error) {
	ref := vd.Types[i]
	if ref == nil {
		return nil, nil
	}
	dt, err := fg.types.FromAST(*ref)
	if err != nil {
		return nil, err
	}
	if dt.IsSpecial() {
		return nil, cerr.New(cerr.PhaseType, cerr.KindInvalidType).At(vd.Pos).Name(ref.Name).Build()
	}
	return dt, nil
}
