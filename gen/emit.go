package gen

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger and PrintDebugInfo follow a discard-by-default convention: debug
// lines are produced only when PrintDebugInfo is set, and Logger writes to
// io.Discard until a caller points it elsewhere.
var (
	Logger         *log.Logger
	PrintDebugInfo bool
)

func init() {
	Logger = log.New(io.Discard, "gen: ", log.Lshortfile)
}

func debugf(format string, args ...any) {
	if PrintDebugInfo {
		Logger.Output(2, fmt.Sprintf(format, args...))
	}
}

var scalarWidth = map[string]int{
	"uint8": 1, "int8": 1,
	"uint16": 2, "int16": 2,
	"uint32": 4, "int32": 4,
	"uint64": 8, "int64": 8,
}

func isScalarType(name string) bool { return scalarKinds[name] }

// EmitFile renders schema as a complete Go source file.
func EmitFile(schema Schema) (string, error) {
	unions := make(map[string]Union, len(schema.Unions))
	for _, u := range schema.Unions {
		unions[u.Name] = u
	}

	data := fileData{Package: schema.Package}
	for _, rec := range schema.Records {
		debugf("emitting table %s (%d fields)", rec.Name, len(rec.Fields))
		enc, err := emitRecordEncode(rec, unions)
		if err != nil {
			return "", err
		}
		dec, err := emitRecordDecode(rec, unions)
		if err != nil {
			return "", err
		}
		data.Functions = append(data.Functions, enc, dec)
	}
	for _, u := range schema.Unions {
		debugf("emitting union %s (%d variants)", u.Name, len(u.Variants))
		data.Functions = append(data.Functions, emitUnionDecode(u))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("gen: rendering template: %w", err)
	}
	return buf.String(), nil
}

// EmitToFile parses srcPath and writes the generated source to outPath.
func EmitToFile(srcPath, outPath string) error {
	schema, err := ParseFile(srcPath)
	if err != nil {
		return err
	}
	out, err := EmitFile(schema)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(out), 0o644)
}

func maxSlotOf(rec Record) int {
	max := -1
	for _, f := range rec.Fields {
		last := f.Slot
		if f.Kind == KindUnion {
			last++
		}
		if last > max {
			max = last
		}
	}
	return max
}

func emitRecordEncode(rec Record, unions map[string]Union) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "func Encode%sTable(enc *nanoflat.Encoder, v %s) (uint32, error) {\n", rec.Name, rec.Name)
	b.WriteString("\ttableStart, err := nanoflat.BeginTable(enc)\n")
	b.WriteString("\tif err != nil {\n\t\treturn 0, err\n\t}\n")

	for _, f := range rec.Fields {
		access := "v." + f.Name
		if f.Kind == KindUnion {
			fmt.Fprintf(&b, "\twv%d, err := nanoflat.EncodeUnionDiscriminant(enc, tableStart, %s.Tag)\n", f.Slot, access)
			b.WriteString("\tif err != nil {\n\t\treturn 0, err\n\t}\n")
			fmt.Fprintf(&b, "\twv%d, err := nanoflat.EncodeUnionPayload(enc, tableStart, %s.Tag != 0)\n", f.Slot+1, access)
			b.WriteString("\tif err != nil {\n\t\treturn 0, err\n\t}\n")
			continue
		}
		expr, err := encodeValueExpr(f)
		if err != nil {
			return "", fmt.Errorf("gen: record %s field %s: %w", rec.Name, f.Name, err)
		}
		fmt.Fprintf(&b, "\twv%d, err := %s\n", f.Slot, expr)
		b.WriteString("\tif err != nil {\n\t\treturn 0, err\n\t}\n")
	}

	maxSlot := maxSlotOf(rec)
	b.WriteString("\ttableEnd := enc.Used()\n")
	b.WriteString("\tif err := nanoflat.WriteVTable(enc, tableStart, tableEnd, func(enc *nanoflat.Encoder) error {\n")
	for slot := 0; slot <= maxSlot; slot++ {
		fmt.Fprintf(&b, "\t\tif err := nanoflat.EncodeVTableEntry(enc, wv%d); err != nil {\n\t\t\treturn err\n\t\t}\n", slot)
	}
	b.WriteString("\t\treturn nil\n\t}); err != nil {\n\t\treturn 0, err\n\t}\n")

	for _, f := range rec.Fields {
		access := "v." + f.Name
		if f.Kind == KindUnion {
			b.WriteString(unionPostStatement(f, access, unions[f.Elem]))
			continue
		}
		post, ok := postStatement(f, access, fmt.Sprintf("wv%d", f.Slot))
		if ok {
			b.WriteString("\t" + post + "\n")
		}
	}

	b.WriteString("\treturn tableStart, nil\n}\n")
	return b.String(), nil
}

func unionPostStatement(f Field, access string, u Union) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\tswitch %s.Tag {\n\tcase 0:\n", access)
	for _, v := range u.Variants {
		fmt.Fprintf(&b, "\tcase %d:\n", v.Tag)
		fmt.Fprintf(&b, "\t\tif err := nanoflat.EncodePostIndirect(enc, wv%d, func(enc *nanoflat.Encoder) (uint32, error) { return Encode%sTable(enc, %s.%s) }); err != nil {\n\t\t\treturn 0, err\n\t\t}\n",
			f.Slot+1, v.Type, access, v.Name)
	}
	b.WriteString("\t}\n")
	return b.String()
}

func encodeValueExpr(f Field) (string, error) {
	access := "v." + f.Name
	switch f.Kind {
	case KindScalar:
		return fmt.Sprintf("nanoflat.EncodeScalarField(enc, tableStart, %s)", access), nil
	case KindOptionalScalar:
		return fmt.Sprintf("nanoflat.EncodeOptionalField(enc, tableStart, %s, nanoflat.EncodeScalarField[%s])", access, f.Elem), nil
	case KindOptionalTable:
		return fmt.Sprintf("nanoflat.EncodeOptionalField(enc, tableStart, %s, func(enc *nanoflat.Encoder, tableStart uint32, _ %s) (nanoflat.EncodeWV, error) { return nanoflat.EncodeIndirectField(enc, tableStart) })", access, f.Elem), nil
	case KindTable:
		return "nanoflat.EncodeIndirectField(enc, tableStart)", nil
	case KindString:
		return fmt.Sprintf("nanoflat.EncodeStringField(enc, tableStart, %s)", access), nil
	case KindBoundedString:
		return fmt.Sprintf("nanoflat.EncodeBoundedStringField(enc, tableStart, %s)", access), nil
	case KindVector, KindBoundedVector:
		if f.Kind == KindVector {
			return fmt.Sprintf("nanoflat.EncodeVectorField(enc, tableStart, %s)", access), nil
		}
		return fmt.Sprintf("nanoflat.EncodeBoundedField(enc, tableStart, %s)", access), nil
	default:
		return "", fmt.Errorf("unsupported field kind %v", f.Kind)
	}
}

func elemEncodeFns(f Field) (encodeElem, postElem string) {
	if isScalarType(f.Elem) {
		return fmt.Sprintf("nanoflat.EncodeScalarField[%s]", f.Elem), fmt.Sprintf("nanoflat.NoPost[%s]", f.Elem)
	}
	encodeElem = fmt.Sprintf("func(enc *nanoflat.Encoder, tableStart uint32, _ %s) (nanoflat.EncodeWV, error) { return nanoflat.EncodeIndirectField(enc, tableStart) }", f.Elem)
	postElem = fmt.Sprintf("func(enc *nanoflat.Encoder, item %s, wv nanoflat.EncodeWV) error { return nanoflat.EncodePostIndirect(enc, wv, func(enc *nanoflat.Encoder) (uint32, error) { return Encode%sTable(enc, item) }) }", f.Elem, f.Elem)
	return encodeElem, postElem
}

func postStatement(f Field, access, wv string) (string, bool) {
	switch f.Kind {
	case KindScalar, KindOptionalScalar:
		return "", false
	case KindTable:
		return fmt.Sprintf("if err := nanoflat.EncodePostIndirect(enc, %s, func(enc *nanoflat.Encoder) (uint32, error) { return Encode%sTable(enc, %s) }); err != nil {\n\t\treturn 0, err\n\t}", wv, f.Elem, access), true
	case KindOptionalTable:
		inner := fmt.Sprintf("func(enc *nanoflat.Encoder, item %s, wv nanoflat.EncodeWV) error { return nanoflat.EncodePostIndirect(enc, wv, func(enc *nanoflat.Encoder) (uint32, error) { return Encode%sTable(enc, item) }) }", f.Elem, f.Elem)
		return fmt.Sprintf("if err := nanoflat.EncodePostOptionalField(enc, %s, %s, %s); err != nil {\n\t\treturn 0, err\n\t}", access, wv, inner), true
	case KindString:
		return fmt.Sprintf("if err := nanoflat.EncodePostStringField(enc, %s, %s); err != nil {\n\t\treturn 0, err\n\t}", access, wv), true
	case KindBoundedString:
		return fmt.Sprintf("if err := nanoflat.EncodePostBoundedStringField(enc, %s, %s); err != nil {\n\t\treturn 0, err\n\t}", access, wv), true
	case KindVector:
		encodeElem, postElem := elemEncodeFns(f)
		return fmt.Sprintf("if err := nanoflat.EncodePostVectorField(enc, %s, %s, %s, %s); err != nil {\n\t\treturn 0, err\n\t}", access, wv, encodeElem, postElem), true
	case KindBoundedVector:
		encodeElem, postElem := elemEncodeFns(f)
		return fmt.Sprintf("if err := nanoflat.EncodePostBoundedField(enc, %s, %s, %s, %s); err != nil {\n\t\treturn 0, err\n\t}", access, wv, encodeElem, postElem), true
	default:
		return "", false
	}
}

func emitRecordDecode(rec Record, unions map[string]Union) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "func Decode%sTable(dec *nanoflat.Decoder, tableStart uint32) (%s, error) {\n", rec.Name, rec.Name)
	fmt.Fprintf(&b, "\tvar out %s\n", rec.Name)
	b.WriteString("\tvtableStart, entriesEnd, err := nanoflat.BeginTableDecode(dec, tableStart)\n")
	b.WriteString("\tif err != nil {\n\t\treturn out, err\n\t}\n")
	b.WriteString("\tcursor := vtableStart + 4\n")

	maxSlot := maxSlotOf(rec)
	entries := make([]*Field, maxSlot+1)
	for i := range rec.Fields {
		entries[rec.Fields[i].Slot] = &rec.Fields[i]
	}

	for slot := 0; slot <= maxSlot; slot++ {
		if slot > 0 && entries[slot-1] != nil && entries[slot-1].Kind == KindUnion {
			continue // second slot of a union field, consumed alongside slot-1
		}
		wv := fmt.Sprintf("wv%d", slot)
		fmt.Fprintf(&b, "\t%s, cursor, err := nanoflat.NextFieldEntry(dec, tableStart, cursor, entriesEnd)\n", wv)
		b.WriteString("\tif err != nil {\n\t\treturn out, err\n\t}\n")
		f := entries[slot]
		if f == nil {
			fmt.Fprintf(&b, "\t_ = %s\n", wv)
			continue
		}
		if f.Kind == KindUnion {
			tagWV, payloadWV := wv, fmt.Sprintf("wv%d", slot+1)
			fmt.Fprintf(&b, "\t%s, cursor, err := nanoflat.NextFieldEntry(dec, tableStart, cursor, entriesEnd)\n", payloadWV)
			b.WriteString("\tif err != nil {\n\t\treturn out, err\n\t}\n")
			b.WriteString(unionDecodeStatement(*f, "out."+f.Name, tagWV, payloadWV, unions[f.Elem]))
			continue
		}
		stmt, err := decodeFieldStatement(*f, wv)
		if err != nil {
			return "", fmt.Errorf("gen: record %s field %s: %w", rec.Name, f.Name, err)
		}
		b.WriteString(stmt)
	}

	b.WriteString("\treturn out, nil\n}\n")
	return b.String(), nil
}

func unionDecodeStatement(f Field, target, tagWV, payloadWV string, u Union) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t{\n\t\ttag, err := nanoflat.DecodeUnionDiscriminant(dec, %s)\n\t\tif err != nil {\n\t\t\treturn out, err\n\t\t}\n", tagWV)
	fmt.Fprintf(&b, "\t\t%s.Tag = tag\n", target)
	fmt.Fprintf(&b, "\t\tpayload, err := Decode%sUnion(dec, tag, %s)\n\t\tif err != nil {\n\t\t\treturn out, err\n\t\t}\n", f.Elem, payloadWV)
	b.WriteString("\t\tswitch tag {\n")
	for _, v := range u.Variants {
		fmt.Fprintf(&b, "\t\tcase %d:\n\t\t\t%s.%s = payload.(%s)\n", v.Tag, target, v.Name, v.Type)
	}
	b.WriteString("\t\t}\n\t}\n")
	return b.String()
}

func decodeFieldStatement(f Field, wv string) (string, error) {
	target := "out." + f.Name
	switch f.Kind {
	case KindScalar:
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeScalarField[%s](dec, %s)\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, f.Elem, wv), nil
	case KindOptionalScalar:
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeOptionalField(dec, %s, nanoflat.DecodeScalarField[%s])\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, wv, f.Elem), nil
	case KindTable:
		return fmt.Sprintf(
			"\t{\n\t\tbodyStart, err := dec.ResolveOffset(%s.FieldOffset())\n\t\tif err != nil {\n\t\t\treturn out, err\n\t\t}\n\t\t%s, err = Decode%sTable(dec, bodyStart)\n\t\tif err != nil {\n\t\t\treturn out, err\n\t\t}\n\t}\n",
			wv, target, f.Elem), nil
	case KindOptionalTable:
		decodeValue := fmt.Sprintf("func(dec *nanoflat.Decoder, wv nanoflat.DecodeWV) (%s, error) { bodyStart, err := dec.ResolveOffset(wv.FieldOffset()); if err != nil { var zero %s; return zero, err }; return Decode%sTable(dec, bodyStart) }", f.Elem, f.Elem, f.Elem)
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeOptionalField(dec, %s, %s)\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, wv, decodeValue), nil
	case KindString:
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeStringField(dec, %s)\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, wv), nil
	case KindBoundedString:
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeBoundedStringField(dec, %s, %d)\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, wv, f.Cap), nil
	case KindVector:
		elemSize, decodeElem := elemDecodeFns(f)
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeVectorField(dec, %s, %s, %s)\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, wv, elemSize, decodeElem), nil
	case KindBoundedVector:
		elemSize, decodeElem := elemDecodeFns(f)
		return fmt.Sprintf("\t%s, err = nanoflat.DecodeBoundedField(dec, %s, %d, %s, %s)\n\tif err != nil {\n\t\treturn out, err\n\t}\n", target, wv, f.Cap, elemSize, decodeElem), nil
	default:
		return "", fmt.Errorf("unsupported field kind %v", f.Kind)
	}
}

var readMethod = map[string]string{
	"uint8": "ReadU8", "int8": "ReadI8",
	"uint16": "ReadU16", "int16": "ReadI16",
	"uint32": "ReadU32", "int32": "ReadI32",
	"uint64": "ReadU64", "int64": "ReadI64",
}

func elemDecodeFns(f Field) (elemSize string, decodeElem string) {
	if isScalarType(f.Elem) {
		return fmt.Sprintf("%d", scalarWidth[f.Elem]), fmt.Sprintf("(*nanoflat.Decoder).%s", readMethod[f.Elem])
	}
	decodeElem = fmt.Sprintf("func(dec *nanoflat.Decoder, slot uint32) (%s, error) { return nanoflat.DecodeIndirectElem(dec, slot, Decode%sTable) }", f.Elem, f.Elem)
	return "4", decodeElem
}

func emitUnionDecode(u Union) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Decode%sUnion resolves a %s union's payload given its already-decoded\n", u.Name, u.Name)
	fmt.Fprintf(&b, "// discriminant. It returns the payload as an `any` holding the concrete\n")
	b.WriteString("// variant type; callers switch on the tag and assert the payload to that\n// variant's type, since the discriminant is a plain Go value, not a sealed interface.\n")
	fmt.Fprintf(&b, "func Decode%sUnion(dec *nanoflat.Decoder, tag uint8, payloadWV nanoflat.DecodeWV) (any, error) {\n", u.Name)
	b.WriteString("\tswitch tag {\n\tcase 0:\n\t\treturn nil, nil\n")
	for _, v := range u.Variants {
		fmt.Fprintf(&b, "\tcase %d:\n", v.Tag)
		b.WriteString("\t\tslot, err := nanoflat.RequirePayloadSlot(tag, payloadWV)\n")
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\tbodyStart, err := dec.ResolveOffset(slot)\n")
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		fmt.Fprintf(&b, "\t\treturn Decode%sTable(dec, bodyStart)\n", v.Type)
	}
	b.WriteString("\tdefault:\n\t\treturn nil, nanoflat.UnknownDiscriminantError(tag)\n\t}\n}\n")
	return b.String()
}
