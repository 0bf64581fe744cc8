package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

var scalarKinds = map[string]bool{
	"uint8": true, "int8": true, "uint16": true, "int16": true,
	"uint32": true, "int32": true, "uint64": true, "int64": true,
}

// ParseFile scans path for table (plain struct) and union (Tag-led
// struct) declarations and returns the schema they describe. Only
// exported struct types are considered; everything else in the file is
// ignored, the same way a derive macro only looks at the type it's
// attached to.
func ParseFile(path string) (Schema, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return Schema{}, fmt.Errorf("gen: parsing %s: %w", path, err)
	}

	names, structs := collectStructs(file)
	unionNames := map[string]bool{}
	for _, name := range names {
		if isUnionDecl(structs[name]) {
			unionNames[name] = true
		}
	}

	schema := Schema{Package: file.Name.Name}
	for _, name := range names {
		st := structs[name]
		if unionNames[name] {
			u, err := parseUnion(name, st)
			if err != nil {
				return Schema{}, err
			}
			schema.Unions = append(schema.Unions, u)
			continue
		}
		rec, err := parseRecord(name, st, unionNames)
		if err != nil {
			return Schema{}, err
		}
		schema.Records = append(schema.Records, rec)
	}
	return schema, nil
}

// collectStructs gathers every exported struct type declaration in file,
// keyed by name, alongside a slice preserving declaration order. A first
// pass over the whole file so that a table referencing a union (or a
// union declared after the table that uses it) resolves regardless of
// declaration order, while keeping emitted output deterministic.
func collectStructs(file *ast.File) ([]string, map[string]*ast.StructType) {
	out := map[string]*ast.StructType{}
	var names []string
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				out[ts.Name.Name] = st
				names = append(names, ts.Name.Name)
			}
		}
	}
	return names, out
}

func isUnionDecl(st *ast.StructType) bool {
	if len(st.Fields.List) == 0 {
		return false
	}
	first := st.Fields.List[0]
	if len(first.Names) != 1 || first.Names[0].Name != "Tag" {
		return false
	}
	ident, ok := first.Type.(*ast.Ident)
	return ok && ident.Name == "uint8"
}

func parseUnion(name string, st *ast.StructType) (Union, error) {
	u := Union{Name: name}
	tag := uint8(1)
	for _, f := range st.Fields.List[1:] {
		if len(f.Names) != 1 {
			return Union{}, fmt.Errorf("gen: union %s: variant field must have exactly one name", name)
		}
		variant := UnionVariant{Name: f.Names[0].Name, Tag: tag, Type: typeString(f.Type)}
		if t, ok := tagValue(f.Tag); ok {
			n, err := strconv.Atoi(t)
			if err != nil {
				return Union{}, fmt.Errorf("gen: union %s variant %s: bad tag value %q", name, variant.Name, t)
			}
			variant.Tag = uint8(n)
		}
		if variant.Tag == 0 {
			return Union{}, fmt.Errorf("gen: union %s variant %s: tag 0 is reserved for the nullary alternative", name, variant.Name)
		}
		u.Variants = append(u.Variants, variant)
		tag++
	}
	if len(u.Variants) == 0 {
		return Union{}, fmt.Errorf("gen: union %s: must declare at least one non-nullary alternative", name)
	}
	return u, nil
}

func parseRecord(name string, st *ast.StructType, unionNames map[string]bool) (Record, error) {
	rec := Record{Name: name}
	slot := 0
	for _, f := range st.Fields.List {
		if len(f.Names) != 1 {
			return Record{}, fmt.Errorf("gen: record %s: field must have exactly one name", name)
		}
		field, err := parseField(f.Names[0].Name, f.Type, slot, unionNames)
		if err != nil {
			return Record{}, fmt.Errorf("gen: record %s: %w", name, err)
		}
		if t, ok := tagValue(f.Tag); ok {
			parts := strings.Split(t, ",")
			n, err := strconv.Atoi(parts[0])
			if err != nil {
				return Record{}, fmt.Errorf("gen: record %s field %s: bad slot %q", name, field.Name, t)
			}
			field.Slot = n
			for _, p := range parts[1:] {
				if cap, ok := strings.CutPrefix(p, "cap="); ok {
					n, err := strconv.Atoi(cap)
					if err != nil {
						return Record{}, fmt.Errorf("gen: record %s field %s: bad cap %q", name, field.Name, cap)
					}
					field.Cap = n
				}
			}
		}
		rec.Fields = append(rec.Fields, field)
		if field.Kind == KindUnion {
			slot += 2
		} else {
			slot++
		}
	}
	return rec, nil
}

func parseField(name string, expr ast.Expr, slot int, unionNames map[string]bool) (Field, error) {
	f := Field{Name: name, Slot: slot}

	switch t := expr.(type) {
	case *ast.Ident:
		switch {
		case scalarKinds[t.Name]:
			f.Kind = KindScalar
			f.Elem = t.Name
			f.IsInt8 = strings.HasPrefix(t.Name, "int")
			return f, nil
		case t.Name == "String":
			f.Kind = KindString
			return f, nil
		case unionNames[t.Name]:
			f.Kind = KindUnion
			f.Elem = t.Name
			return f, nil
		default:
			f.Kind = KindTable
			f.Elem = t.Name
			return f, nil
		}
	case *ast.IndexExpr:
		baseName, ok := genericBaseName(t.X)
		if !ok {
			return Field{}, fmt.Errorf("field %s: unsupported generic field type", name)
		}
		elem := typeString(t.Index)
		switch baseName {
		case "Optional":
			if scalarKinds[elem] {
				f.Kind = KindOptionalScalar
			} else {
				f.Kind = KindOptionalTable
			}
			f.Elem = elem
			return f, nil
		case "Vector":
			f.Kind = KindVector
			f.Elem = elem
			return f, nil
		case "Bounded":
			f.Kind = KindBoundedVector
			f.Elem = elem
			return f, nil
		default:
			return Field{}, fmt.Errorf("field %s: unsupported generic base %s", name, baseName)
		}
	case *ast.SelectorExpr:
		switch t.Sel.Name {
		case "BoundedString":
			f.Kind = KindBoundedString
			return f, nil
		case "String":
			f.Kind = KindString
			return f, nil
		default:
			return Field{}, fmt.Errorf("field %s: unrecognized qualified type %s", name, t.Sel.Name)
		}
	default:
		return Field{}, fmt.Errorf("field %s: unrecognized field type", name)
	}
}

// genericBaseName returns the unqualified name of a generic type's base
// identifier, whether written bare (Vector[T]) or package-qualified
// (nanoflat.Vector[T]).
func genericBaseName(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, true
	case *ast.SelectorExpr:
		return t.Sel.Name, true
	default:
		return "", false
	}
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.IndexExpr:
		return typeString(t.X) + "[" + typeString(t.Index) + "]"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func tagValue(tag *ast.BasicLit) (string, bool) {
	if tag == nil {
		return "", false
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return "", false
	}
	for _, part := range strings.Split(raw, " ") {
		if strings.HasPrefix(part, "nanoflat:") {
			v := strings.TrimPrefix(part, "nanoflat:")
			v, err := strconv.Unquote(v)
			if err != nil {
				return "", false
			}
			return v, true
		}
	}
	return "", false
}
