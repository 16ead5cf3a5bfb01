package parser

import (
	"testing"
	"time"

	"github.com/Protocol-Lattice/turbographql/ast"
	"github.com/Protocol-Lattice/turbographql/token"
	"github.com/Protocol-Lattice/turbographql/tokenizer"
)

func parseSource(t *testing.T, src string) (*ast.Document, []*SyntaxError) {
	t.Helper()
	tokArena := tokenizer.NewArena()
	toks := tokenizer.Tokenize(src, tokArena)
	astArena := &ast.Arena{}
	return Parse(toks, astArena)
}

func asField(t *testing.T, sel ast.Selection) *ast.Field {
	t.Helper()
	f, ok := sel.(*ast.Field)
	if !ok {
		t.Fatalf("selection %#v is not a Field", sel)
	}
	return f
}

// S1
func TestParseShorthandQuery(t *testing.T) {
	doc, errs := parseSource(t, "{ hero { name } }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(doc.Definitions) != 1 {
		t.Fatalf("got %d definitions, want 1", len(doc.Definitions))
	}
	op, ok := doc.Definitions[0].(*ast.OperationDefinition)
	if !ok {
		t.Fatalf("definition is not an OperationDefinition")
	}
	if op.Op != ast.OperationQuery || op.Name != "" {
		t.Fatalf("op = %+v, want anonymous query", op)
	}
	hero := asField(t, op.SelectionSet.Selections[0])
	if hero.Name != "hero" {
		t.Fatalf("hero.Name = %q", hero.Name)
	}
	name := asField(t, hero.SelectionSet.Selections[0])
	if name.Name != "name" {
		t.Fatalf("name.Name = %q", name.Name)
	}
}

// S2
func TestParseNamedQueryWithVariable(t *testing.T) {
	doc, errs := parseSource(t, `query Q($id: ID!) { user(id: $id) { name } }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := doc.Definitions[0].(*ast.OperationDefinition)
	if op.Name != "Q" {
		t.Fatalf("op.Name = %q, want Q", op.Name)
	}
	if len(op.VariableDefinitions) != 1 {
		t.Fatalf("got %d variable definitions, want 1", len(op.VariableDefinitions))
	}
	vd := op.VariableDefinitions[0]
	if vd.Variable != "id" {
		t.Fatalf("vd.Variable = %q, want id", vd.Variable)
	}
	nn, ok := vd.Type.(*ast.NonNullType)
	if !ok {
		t.Fatalf("vd.Type = %#v, want NonNullType", vd.Type)
	}
	named, ok := nn.Inner.(*ast.NamedType)
	if !ok || named.Name != "ID" {
		t.Fatalf("vd.Type.Inner = %#v, want Named(ID)", nn.Inner)
	}

	user := asField(t, op.SelectionSet.Selections[0])
	if user.Name != "user" || len(user.Arguments) != 1 {
		t.Fatalf("user = %+v", user)
	}
	arg := user.Arguments[0]
	if arg.Name != "id" {
		t.Fatalf("arg.Name = %q, want id", arg.Name)
	}
	v, ok := arg.Value.(*ast.VariableValue)
	if !ok || v.Name != "id" {
		t.Fatalf("arg.Value = %#v, want Variable(id)", arg.Value)
	}
	inner := asField(t, user.SelectionSet.Selections[0])
	if inner.Name != "name" {
		t.Fatalf("inner.Name = %q", inner.Name)
	}
}

// S3
func TestParseFragmentDefinitionAndSpread(t *testing.T) {
	doc, errs := parseSource(t, "fragment F on User { name } { ...F }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(doc.Definitions) != 2 {
		t.Fatalf("got %d definitions, want 2", len(doc.Definitions))
	}
	frag, ok := doc.Definitions[0].(*ast.FragmentDefinition)
	if !ok || frag.Name != "F" || frag.TypeCondition != "User" {
		t.Fatalf("frag = %#v", doc.Definitions[0])
	}
	op := doc.Definitions[1].(*ast.OperationDefinition)
	spread, ok := op.SelectionSet.Selections[0].(*ast.FragmentSpread)
	if !ok || spread.Name != "F" {
		t.Fatalf("spread = %#v", op.SelectionSet.Selections[0])
	}
}

// S4
func TestParseFieldAliasAndArgumentKinds(t *testing.T) {
	doc, errs := parseSource(t, `{ a: foo(x: 1, y: 2.5e-1, z: "a\"b", w: [1,2,3], k: {a:1}) }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := doc.Definitions[0].(*ast.OperationDefinition)
	f := asField(t, op.SelectionSet.Selections[0])
	if f.Alias != "a" || f.Name != "foo" {
		t.Fatalf("f = %+v", f)
	}
	if len(f.Arguments) != 5 {
		t.Fatalf("got %d arguments, want 5", len(f.Arguments))
	}

	if _, ok := f.Arguments[0].Value.(*ast.IntValue); !ok {
		t.Errorf("x should be IntValue, got %#v", f.Arguments[0].Value)
	}
	if _, ok := f.Arguments[1].Value.(*ast.FloatValue); !ok {
		t.Errorf("y should be FloatValue, got %#v", f.Arguments[1].Value)
	}
	sv, ok := f.Arguments[2].Value.(*ast.StringValue)
	if !ok || sv.Value != `"a\"b"` {
		t.Errorf("z.Value should be the raw source view, got %#v", f.Arguments[2].Value)
	}
	if sv.Decoded() != `a"b` {
		t.Errorf("z should decode to a\"b, got %q", sv.Decoded())
	}
	lv, ok := f.Arguments[3].Value.(*ast.ListValue)
	if !ok || len(lv.Values) != 3 {
		t.Errorf("w should be a 3-element list, got %#v", f.Arguments[3].Value)
	}
	ov, ok := f.Arguments[4].Value.(*ast.ObjectValue)
	if !ok || len(ov.Fields) != 1 || ov.Fields[0].Name != "a" {
		t.Errorf("k should be {a: Int(1)}, got %#v", f.Arguments[4].Value)
	}
}

// S5
func TestParseUnterminatedStringYieldsErrorAndUnknownToken(t *testing.T) {
	tokArena := tokenizer.NewArena()
	toks := tokenizer.Tokenize(`{ "unterminated`, tokArena)

	var sawUnknownAtQuote bool
	for _, tok := range toks {
		if tok.Kind == token.UNKNOWN && tok.Offset == 2 {
			sawUnknownAtQuote = true
		}
	}
	if !sawUnknownAtQuote {
		t.Fatalf("expected an UNKNOWN token at offset 2, got %+v", toks)
	}

	astArena := &ast.Arena{}
	_, errs := Parse(toks, astArena)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
}

// S6
func TestParseIgnoresLeadingComment(t *testing.T) {
	doc, errs := parseSource(t, "# comment\n{ a }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := doc.Definitions[0].(*ast.OperationDefinition)
	if len(op.SelectionSet.Selections) != 1 {
		t.Fatalf("got %d selections, want 1", len(op.SelectionSet.Selections))
	}
	if asField(t, op.SelectionSet.Selections[0]).Name != "a" {
		t.Fatalf("unexpected field name")
	}
}

// P5 — error recovery. spec.md §8 P5 names "field" as the malformed token
// inside the first definition's selection set, but a bare field selection
// is syntactically well-formed GraphQL; "!" stands in for whatever is
// malformed there, so this actually exercises the recorded-error path the
// property describes.
func TestParseRecoversAfterMalformedDefinition(t *testing.T) {
	doc, errs := parseSource(t, "query Bad { ! } query Good { ok }")
	if len(errs) == 0 {
		t.Fatalf("expected at least one error")
	}
	if len(doc.Definitions) != 2 {
		t.Fatalf("got %d definitions, want 2", len(doc.Definitions))
	}
	good, ok := doc.Definitions[1].(*ast.OperationDefinition)
	if !ok || good.Name != "Good" {
		t.Fatalf("second definition = %#v, want well-formed Good", doc.Definitions[1])
	}
	if asField(t, good.SelectionSet.Selections[0]).Name != "ok" {
		t.Fatalf("Good's field should be 'ok'")
	}
}

// P7 — keyword non-reservation as argument names.
func TestParseAcceptsKeywordsAsArgumentNames(t *testing.T) {
	doc, errs := parseSource(t, "{ foo(type: 1, on: 2, mutation: 3) }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := doc.Definitions[0].(*ast.OperationDefinition)
	f := asField(t, op.SelectionSet.Selections[0])
	if len(f.Arguments) != 3 {
		t.Fatalf("got %d arguments, want 3", len(f.Arguments))
	}
	names := []string{f.Arguments[0].Name, f.Arguments[1].Name, f.Arguments[2].Name}
	want := []string{"type", "on", "mutation"}
	for i, w := range want {
		if names[i] != w {
			t.Errorf("arg[%d].Name = %q, want %q", i, names[i], w)
		}
	}
}

// P4 — progress guard bounds parsing of malformed input to a linear number
// of steps rather than looping forever.
func TestParseTerminatesOnGarbageInput(t *testing.T) {
	done := make(chan struct{})
	go func() {
		parseSource(t, "} } } { { { : : : @@@ $$$ ... ... on on on")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("parser did not terminate on malformed input")
	}
}

func TestParseEmptyInputYieldsEmptyDocumentNoErrors(t *testing.T) {
	doc, errs := parseSource(t, "   \n\t  ")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on blank input: %v", errs)
	}
	if len(doc.Definitions) != 0 {
		t.Fatalf("got %d definitions, want 0", len(doc.Definitions))
	}
}
