// Package detect finds a struct declaration in parsed package files.
package detect

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"

	"github.com/dave/dst"
)

// Field is one exported, named field of a struct.
type Field struct {
	Name string
	Type dst.Expr
}

// Import is an import of the file declaring a struct.
type Import struct {
	Name string // explicit alias, empty when none
	Path string
}

// Struct describes the struct a generator run targets.
type Struct struct {
	Name    string
	Package string
	Fields  []Field
	Imports []Import
}

// Errors returned by FindStruct.
var (
	ErrGeneric      = errors.New("generic structs are not supported")
	ErrNotStruct    = errors.New("type is not a struct")
	ErrTypeNotFound = errors.New("type not found")
)

// FindStruct looks up the type called name. When pkgName is set, only files of that
// package are searched. Embedded and unexported fields are left out of the result.
func FindStruct(files []*dst.File, pkgName, name string) (*Struct, error) {
	for _, file := range files {
		if pkgName != "" && file.Name.Name != pkgName {
			continue
		}

		spec := findTypeSpec(file, name)
		if spec == nil {
			continue
		}

		if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrGeneric, name)
		}

		structType, ok := spec.Type.(*dst.StructType)
		if !ok || spec.Assign {
			return nil, fmt.Errorf("%w: %s", ErrNotStruct, name)
		}

		return &Struct{
			Name:    name,
			Package: file.Name.Name,
			Fields:  exportedFields(structType),
			Imports: fileImports(file),
		}, nil
	}

	if pkgName != "" {
		return nil, fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, name, pkgName)
	}

	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

// Functions - Private

func exportedFields(structType *dst.StructType) []Field {
	var fields []Field

	if structType.Fields == nil {
		return fields
	}

	for _, field := range structType.Fields.List {
		for _, ident := range field.Names {
			if !token.IsExported(ident.Name) {
				continue
			}

			fields = append(fields, Field{Name: ident.Name, Type: field.Type})
		}
	}

	return fields
}

func fileImports(file *dst.File) []Import {
	imports := make([]Import, 0, len(file.Imports))

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		imp := Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}

		imports = append(imports, imp)
	}

	return imports
}

func findTypeSpec(file *dst.File, name string) *dst.TypeSpec {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*dst.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*dst.TypeSpec)
			if ok && typeSpec.Name.Name == name {
				return typeSpec
			}
		}
	}

	return nil
}
