// Package enumvalidator reports string literals assigned to enum-typed fields.
//
// Enum types are named string types such as model.NegotiationStatus. Writing
// n.Status = "ACCEPTED" compiles, but bypasses the declared constants and lets
// typos reach the database, so struct fields of those types must be set from a
// constant or a variable.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "enumvalidator",
	Doc:      "reports string literals assigned to enum-typed struct fields",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var enumTypes = map[string]bool{
	"NegotiationStatus": true,
	"NotificationType":  true,
	"PaymentKind":       true,
	"EventType":         true,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.CompositeLit)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch node := n.(type) {
		case *ast.AssignStmt:
			if len(node.Lhs) != len(node.Rhs) {
				return
			}
			for i, lhs := range node.Lhs {
				sel, ok := lhs.(*ast.SelectorExpr)
				if !ok {
					continue
				}
				checkField(pass, sel.Sel, node.Rhs[i])
			}
		case *ast.CompositeLit:
			for _, elt := range node.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				key, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}
				checkField(pass, key, kv.Value)
			}
		}
	})

	return nil, nil
}

func checkField(pass *analysis.Pass, field *ast.Ident, value ast.Expr) {
	lit, ok := ast.Unparen(value).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return
	}

	obj, ok := pass.TypesInfo.ObjectOf(field).(*types.Var)
	if !ok || !obj.IsField() {
		return
	}

	name, ok := enumName(obj.Type())
	if !ok {
		return
	}

	pass.Reportf(lit.Pos(), "enum field %s assigned string literal; use a %s constant", field.Name, name)
}

func enumName(t types.Type) (string, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return "", false
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.String {
		return "", false
	}
	name := named.Obj().Name()
	return name, enumTypes[name]
}
