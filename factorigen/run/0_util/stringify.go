// Package astutil renders dst type expressions back to Go source.
package astutil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dave/dst"
)

// Qualifiers returns the package qualifiers referenced by expr, sorted and deduplicated.
// For map[string]time.Duration it returns [time].
func Qualifiers(expr dst.Expr) []string {
	var names []string

	dst.Inspect(expr, func(node dst.Node) bool {
		sel, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}

		if ident, ok := sel.X.(*dst.Ident); ok {
			names = append(names, ident.Name)
		}

		return false
	})

	slices.Sort(names)

	return slices.Compact(names)
}

// TypeString converts a type expression to its source form.
//
//nolint:cyclop // Type-switch dispatcher over the expression kinds a field can declare
func TypeString(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		return TypeString(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + TypeString(typed.X)
	case *dst.ArrayType:
		return "[" + TypeString(typed.Len) + "]" + TypeString(typed.Elt)
	case *dst.MapType:
		return "map[" + TypeString(typed.Key) + "]" + TypeString(typed.Value)
	case *dst.ChanType:
		switch typed.Dir {
		case dst.SEND:
			return "chan<- " + TypeString(typed.Value)
		case dst.RECV:
			return "<-chan " + TypeString(typed.Value)
		default:
			return "chan " + TypeString(typed.Value)
		}
	case *dst.FuncType:
		return "func" + signature(typed)
	case *dst.InterfaceType:
		return interfaceString(typed)
	case *dst.StructType:
		return structString(typed)
	case *dst.Ellipsis:
		return "..." + TypeString(typed.Elt)
	case *dst.IndexExpr:
		return TypeString(typed.X) + "[" + TypeString(typed.Index) + "]"
	case *dst.IndexListExpr:
		return TypeString(typed.X) + "[" + strings.Join(exprStrings(typed.Indices), ", ") + "]"
	case *dst.ParenExpr:
		return "(" + TypeString(typed.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// Functions - Private

func exprStrings(exprs []dst.Expr) []string {
	out := make([]string, len(exprs))
	for i, expr := range exprs {
		out[i] = TypeString(expr)
	}

	return out
}

// fieldList renders a parameter or struct field list, keeping names when present.
func fieldList(fields *dst.FieldList, sep string) string {
	if fields == nil {
		return ""
	}

	parts := make([]string, 0, len(fields.List))

	for _, field := range fields.List {
		typ := TypeString(field.Type)

		var part strings.Builder

		if len(field.Names) > 0 {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			part.WriteString(strings.Join(names, ", "))
			part.WriteString(" ")
		}

		part.WriteString(typ)

		if field.Tag != nil {
			part.WriteString(" " + field.Tag.Value)
		}

		parts = append(parts, part.String())
	}

	return strings.Join(parts, sep)
}

func interfaceString(iface *dst.InterfaceType) string {
	if iface.Methods == nil || len(iface.Methods.List) == 0 {
		return "interface{}"
	}

	parts := make([]string, 0, len(iface.Methods.List))

	for _, method := range iface.Methods.List {
		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			parts = append(parts, TypeString(method.Type))

			continue
		}

		parts = append(parts, method.Names[0].Name+signature(funcType))
	}

	return "interface{ " + strings.Join(parts, "; ") + " }"
}

func signature(funcType *dst.FuncType) string {
	out := "(" + fieldList(funcType.Params, ", ") + ")"

	if funcType.Results == nil || len(funcType.Results.List) == 0 {
		return out
	}

	results := fieldList(funcType.Results, ", ")
	if len(funcType.Results.List) == 1 && len(funcType.Results.List[0].Names) == 0 {
		return out + " " + results
	}

	return out + " (" + results + ")"
}

func structString(structType *dst.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	return "struct{ " + fieldList(structType.Fields, "; ") + " }"
}
