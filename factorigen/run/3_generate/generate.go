// Package generate renders typed override helpers for a struct.
package generate

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path"
	"regexp"
	"slices"
	"strings"

	astutil "github.com/toejough/factori/factorigen/run/0_util"
	detect "github.com/toejough/factori/factorigen/run/2_detect"
)

// DefaultFactoriPath is the import path generated code uses unless configured otherwise.
const DefaultFactoriPath = "github.com/toejough/factori"

// Errors returned by Source.
var (
	ErrNoFields            = errors.New("struct has no exported fields")
	ErrUnresolvedQualifier = errors.New("unresolved package qualifier")
)

// Options controls rendering.
type Options struct {
	Prefix      string // helper name prefix, defaults to the struct name
	FactoriPath string // defaults to DefaultFactoriPath
	Lazy        bool   // also emit <Prefix><Field>Func helpers
}

// Source renders and formats the helpers for target.
func Source(target *detect.Struct, opts Options) (string, error) {
	if len(target.Fields) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoFields, target.Name)
	}

	data, err := newTemplateData(target, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	err = fieldsTemplate.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to render helpers for %s: %w", target.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("error formatting generated code: %w", err)
	}

	return string(formatted), nil
}

// Structs - Private

type fieldData struct {
	Name string
	Type string
}

type templateData struct {
	Package string
	Type    string
	Prefix  string
	Factori string
	Lazy    bool
	Imports []detect.Import
	Fields  []fieldData
}

// Functions - Private

// guessName returns the package name an unaliased import is referred to by.
func guessName(importPath string) string {
	base := path.Base(importPath)
	if versionSuffix.MatchString(base) && path.Dir(importPath) != "." {
		base = path.Base(path.Dir(importPath))
	}

	base = strings.TrimPrefix(base, "go-")
	base = gopkgVersion.ReplaceAllString(base, "")

	return strings.ReplaceAll(base, "-", "")
}

func newTemplateData(target *detect.Struct, opts Options) (*templateData, error) {
	factoriPath := opts.FactoriPath
	if factoriPath == "" {
		factoriPath = DefaultFactoriPath
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = target.Name
	}

	factori := detect.Import{Path: factoriPath}
	if guessName(factoriPath) != "factori" {
		factori.Name = "factori"
	}

	data := &templateData{
		Package: target.Package,
		Type:    target.Name,
		Prefix:  prefix,
		Factori: "factori",
		Lazy:    opts.Lazy,
		Imports: []detect.Import{factori},
	}

	for _, field := range target.Fields {
		for _, qualifier := range astutil.Qualifiers(field.Type) {
			imp, err := resolveQualifier(target, qualifier)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", target.Name, field.Name, err)
			}

			if !slices.Contains(data.Imports, imp) {
				data.Imports = append(data.Imports, imp)
			}
		}

		data.Fields = append(data.Fields, fieldData{Name: field.Name, Type: astutil.TypeString(field.Type)})
	}

	slices.SortFunc(data.Imports, func(a, b detect.Import) int { return strings.Compare(a.Path, b.Path) })

	return data, nil
}

func resolveQualifier(target *detect.Struct, qualifier string) (detect.Import, error) {
	for _, imp := range target.Imports {
		if imp.Name == qualifier || (imp.Name == "" && guessName(imp.Path) == qualifier) {
			return imp, nil
		}
	}

	return detect.Import{}, fmt.Errorf("%w: %q", ErrUnresolvedQualifier, qualifier)
}

// unexported variables.
var (
	gopkgVersion  = regexp.MustCompile(`\.v[0-9]+$`)
	versionSuffix = regexp.MustCompile(`^v[0-9]+$`)
)
