package gen

import "text/template"

// fileTemplate lays out one generated source file: package clause, the
// fixed import of the nanoflat runtime, one Encode/Decode function pair
// per record, and one Decode function per union. Each function's body is pre-rendered Go
// source handed in as a plain string — text/template only owns the
// skeleton, not the field-by-field dispatch, the same division of labor
// codegen.go in the standard library's own "stringer" tool uses between
// its template and its Go-side value computation.
var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by nanoflatgen. DO NOT EDIT.

package {{.Package}}

import "github.com/nanoflat/nanoflat"

{{range .Functions}}
{{.}}
{{end}}
`))

type fileData struct {
	Package   string
	Functions []string
}
