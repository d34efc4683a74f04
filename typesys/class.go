package typesys

import (
	"github.com/neri/toyscript-wasm/ast"
	"github.com/neri/toyscript-wasm/cerr"
)

// ResolveClasses registers every class declaration against the type
// system, tolerating forward references between classes (and from a
// class to itself as a superclass cycle, which is caught as an
// ordinary duplicate/not-found error rather than infinite recursion).
// Each outer iteration makes one reverse-order pass over the classes
// still unresolved, then one forward-order pass, mirroring the order
// in which later declarations most often depend on earlier ones while
// still giving a later-declared class a chance to resolve an
// earlier one's forward reference. After 8 iterations any class still
// unresolved is a genuine unresolvable reference, not a transient
// ordering problem.
func (s *System) ResolveClasses(decls []*ast.ClassDecl) error {
	pending := make([]*ast.ClassDecl, 0, len(decls))
	for _, d := range decls {
		if err := s.tryResolveClass(d); err != nil {
			if !isIdentifierNotFound(err) {
				return err
			}
			pending = append(pending, d)
		}
	}

	var lastErr error
	for iter := 0; iter < 8 && len(pending) > 0; iter++ {
		pending, lastErr = s.resolvePass(pending, true)
		if lastErr != nil && !isIdentifierNotFound(lastErr) {
			return lastErr
		}
		pending, lastErr = s.resolvePass(pending, false)
		if lastErr != nil && !isIdentifierNotFound(lastErr) {
			return lastErr
		}
	}

	if len(pending) > 0 {
		name := pending[0].Name
		return cerr.New(cerr.PhaseType, cerr.KindIdentifierNotFound).
			At(pending[0].Pos).Name(name).
			Detail("unresolved after fixpoint iteration bound").Build()
	}
	return nil
}

func (s *System) resolvePass(decls []*ast.ClassDecl, reverse bool) ([]*ast.ClassDecl, error) {
	next := make([]*ast.ClassDecl, 0, len(decls))
	var lastErr error
	visit := func(d *ast.ClassDecl) error {
		err := s.tryResolveClass(d)
		if err == nil {
			return nil
		}
		if !isIdentifierNotFound(err) {
			return err
		}
		next = append(next, d)
		lastErr = err
		return nil
	}
	if reverse {
		for i := len(decls) - 1; i >= 0; i-- {
			if err := visit(decls[i]); err != nil {
				return nil, err
			}
		}
	} else {
		for _, d := range decls {
			if err := visit(d); err != nil {
				return nil, err
			}
		}
	}
	return next, lastErr
}

func isIdentifierNotFound(err error) bool {
	ce, ok := err.(*cerr.Error)
	return ok && ce.Kind == cerr.KindIdentifierNotFound
}

func (s *System) tryResolveClass(decl *ast.ClassDecl) error {
	var super *Descriptor
	if decl.SuperClass != "" {
		d, ok := s.Get(decl.SuperClass)
		if !ok {
			return cerr.IdentifierNotFound(cerr.PhaseType, decl.Pos, decl.SuperClass)
		}
		super = d
	}

	fields := make([]FieldDescriptor, 0, len(decl.Fields))
	methods := make(map[string]*MethodDescriptor)
	seen := make(map[string]bool)

	for _, f := range decl.Fields {
		if seen[f.Name] {
			return cerr.DuplicateIdentifier(cerr.PhaseType, f.Pos, f.Name)
		}
		seen[f.Name] = true
		ft, err := s.FromAST(f.Type)
		if err != nil {
			return err
		}
		if ft.IsSpecial() {
			return cerr.New(cerr.PhaseType, cerr.KindInvalidType).At(f.Pos).Name(f.Type.Name).Build()
		}
		fields = append(fields, FieldDescriptor{Name: f.Name, Type: ft, Index: len(fields)})
	}

	addMethod := func(name string, fn *ast.FunctionDecl) error {
		if seen[name] {
			return cerr.DuplicateIdentifier(cerr.PhaseType, fn.Pos, name)
		}
		seen[name] = true
		sig, err := s.resolveSignature(fn)
		if err != nil {
			return err
		}
		methods[name] = sig
		return nil
	}

	if decl.Constructor != nil {
		if err := addMethod(CtorName, decl.Constructor); err != nil {
			return err
		}
	}
	for _, m := range decl.Methods {
		if err := addMethod(m.Name, m); err != nil {
			return err
		}
	}

	return s.addClass(&ClassDescriptor{
		Index:      len(s.classes),
		Identifier: decl.Name,
		SuperClass: super,
		Fields:     fields,
		Methods:    methods,
	})
}

func (s *System) resolveSignature(fn *ast.FunctionDecl) (*MethodDescriptor, error) {
	params := make([]*Descriptor, len(fn.Params))
	for i, p := range fn.Params {
		pt, err := s.FromAST(p.Type)
		if err != nil {
			return nil, err
		}
		params[i] = pt
	}
	var result *Descriptor
	if fn.Result != nil {
		rt, err := s.FromAST(*fn.Result)
		if err != nil {
			return nil, err
		}
		result = rt
	}
	return &MethodDescriptor{Name: fn.Name, Params: params, Result: result}, nil
}
