package gen_test

import (
	"strings"
	"testing"

	"github.com/nanoflat/nanoflat/gen"
)

func TestEmitFileProducesExpectedFunctions(t *testing.T) {
	schema, err := gen.ParseFile("../examples/swap/schema.go")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	out, err := gen.EmitFile(schema)
	if err != nil {
		t.Fatalf("EmitFile: %v", err)
	}

	want := []string{
		"package swap",
		`import "github.com/nanoflat/nanoflat"`,
		"func EncodeTestTable(enc *nanoflat.Encoder, v Test) (uint32, error) {",
		"func DecodeTestTable(dec *nanoflat.Decoder, tableStart uint32) (Test, error) {",
		"func EncodeNestingTestTable(enc *nanoflat.Encoder, v NestingTest) (uint32, error) {",
		"func EncodeUnionTestTable(enc *nanoflat.Encoder, v UnionTest) (uint32, error) {",
		"func DecodeUnionTestTable(dec *nanoflat.Decoder, tableStart uint32) (UnionTest, error) {",
		"func DecodeTestUnionUnion(dec *nanoflat.Decoder, tag uint8, payloadWV nanoflat.DecodeWV) (any, error) {",
		"nanoflat.EncodeBoundedField(enc, tableStart, v.B)",
		"nanoflat.DecodeBoundedField(dec, wv1, 4,",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("generated source missing %q", w)
		}
	}
}

func TestEmitFileRendersUnionWithoutVariants(t *testing.T) {
	schema := gen.Schema{
		Package: "p",
		Unions:  []gen.Union{{Name: "Empty"}},
	}
	out, err := gen.EmitFile(schema)
	if err != nil {
		t.Fatalf("EmitFile: %v", err)
	}
	// EmitFile itself never rejects an alternative-less union — that
	// edge policy (spec.md §4.4, "unions with no alternatives rejected")
	// is enforced by ParseFile (see TestParseFileRejectsEmptyUnion), not
	// the emitter, which only renders whatever Schema it's handed.
	if !strings.Contains(out, "func DecodeEmptyUnion(") {
		t.Errorf("generated source missing DecodeEmptyUnion:\n%s", out)
	}
}
