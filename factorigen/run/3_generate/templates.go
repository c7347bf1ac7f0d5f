package generate

import (
	"text/template"
)

// fieldsTemplate renders the override helpers for one struct.
//
//nolint:gochecknoglobals // Parsed once from a constant
var fieldsTemplate = template.Must(template.New("fields").Parse(`// Code generated by factorigen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Fields}}
// {{$.Prefix}}{{.Name}} overrides the {{.Name}} field of a {{$.Type}} fixture.
func {{$.Prefix}}{{.Name}}(value {{.Type}}) {{$.Factori}}.Field {
	return {{$.Factori}}.Set("{{.Name}}", value)
}
{{- if $.Lazy}}

// {{$.Prefix}}{{.Name}}Func overrides the {{.Name}} field of a {{$.Type}} fixture with a value
// computed for each instance.
func {{$.Prefix}}{{.Name}}Func(produce func() {{.Type}}) {{$.Factori}}.Field {
	return {{$.Factori}}.Set("{{.Name}}", {{$.Factori}}.Lazy(func() any { return produce() }))
}
{{- end}}
{{end}}`))
