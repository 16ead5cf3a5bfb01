// Package parser implements the hand-written recursive-descent parser of
// spec.md §4.4: it consumes a dense token sequence and builds an AST in an
// arena, recovering from syntax errors at definition boundaries instead of
// aborting on the first one.
package parser

import (
	"fmt"

	"github.com/Protocol-Lattice/turbographql/ast"
	"github.com/Protocol-Lattice/turbographql/token"
)

// SyntaxError is one recorded parse failure: a human-readable message tied
// to the byte offset and kind of the offending token (spec.md §7).
type SyntaxError struct {
	Offset  int
	Kind    token.Kind
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s (found %s)", e.Offset, e.Message, e.Kind)
}

// Parser holds the cursor over a token sequence and the errors accumulated
// while walking it. The zero value is not usable; construct with New.
type Parser struct {
	tokens []token.Token
	pos    int
	arena  *ast.Arena
	errors []*SyntaxError
}

// New constructs a Parser over tokens, allocating AST nodes into arena.
// tokens must outlive the call to Parse (spec.md §6.1); it is never mutated.
func New(tokens []token.Token, arena *ast.Arena) *Parser {
	return &Parser{tokens: tokens, arena: arena}
}

// Parse runs the parser to completion and returns whatever Document was
// built, along with every error recorded along the way. It never panics out
// of this entry point: a fatal failure inside a production is recorded as an
// error and parsing resumes at the next definition boundary (spec.md §4.4.3).
func Parse(tokens []token.Token, arena *ast.Arena) (*ast.Document, []*SyntaxError) {
	p := New(tokens, arena)
	return p.parseDocument(), p.errors
}

// --- cursor primitives -------------------------------------------------

// peek returns the token k positions ahead of the cursor, or a synthetic EOF
// token if that position is past the end of the sequence (spec.md §4.4).
func (p *Parser) peek(k int) token.Token {
	idx := p.pos + k
	if idx < 0 || idx >= len(p.tokens) {
		return token.EOFToken(p.eofOffset())
	}
	return p.tokens[idx]
}

func (p *Parser) eofOffset() int {
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		return last.Offset + len(last.Lexeme)
	}
	return 0
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

// check reports whether the current token has the given kind.
func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.peek(0).Kind == kind
}

// advance consumes and returns the current token, synthesizing EOF past the
// end rather than ever running the cursor out of bounds.
func (p *Parser) advance() token.Token {
	tok := p.peek(0)
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// match advances and returns true if the current token has kind; otherwise
// it leaves the cursor untouched and returns false.
func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect requires kind at the cursor; on mismatch it records a recoverable
// error and leaves the cursor in place (spec.md §4.4 "do not advance").
func (p *Parser) expect(kind token.Kind, message string) bool {
	if p.match(kind) {
		return true
	}
	p.errorf(message)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.peek(0)
	p.errors = append(p.errors, &SyntaxError{
		Offset:  tok.Offset,
		Kind:    tok.Kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// synchronize advances past the current definition on an unrecoverable
// error, stopping at the next token that can start a definition (query,
// mutation, subscription, fragment, or the '{' of a shorthand query) or at
// end of input so the top-level loop can resume (spec.md §4.4 "Error recovery").
func (p *Parser) synchronize() {
	for !p.atEnd() {
		switch p.peek(0).Kind {
		case token.QUERY, token.MUTATION, token.SUBSCRIPTION, token.FRAGMENT, token.LBRACE:
			return
		}
		p.advance()
	}
}

// guardProgress records the cursor before a loop iteration and, if the
// iteration made no progress, records an error and forces one advance to
// prevent an infinite loop (spec.md §4.4 "Progress guard").
func (p *Parser) guardProgress(before int) {
	if p.pos == before && !p.atEnd() {
		p.errorf("parser made no progress at %s; forcing advance", p.peek(0).Kind)
		p.advance()
	}
}

// --- productions ---------------------------------------------------------

func (p *Parser) parseDocument() *ast.Document {
	doc := p.arena.NewDocument(ast.Document{})
	for !p.atEnd() {
		before := p.pos
		if def := p.parseDefinitionRecovering(); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
		p.guardProgress(before)
	}
	return doc
}

// parseDefinitionRecovering wraps parseDefinition with a recover so that a
// panic escaping from a deeper invariant violation (e.g. the arena, or an
// unexpected nil dereference while building one definition) never crosses
// the public Parse entry point. It is recorded as a Fatal error per spec.md
// §4.4.3 and treated the same as a recoverable error: synchronize to the
// next definition boundary and let the top-level loop continue.
func (p *Parser) parseDefinitionRecovering() (def ast.Definition) {
	defer func() {
		if r := recover(); r != nil {
			p.errorf("internal error while parsing definition: %v", r)
			p.synchronize()
			def = nil
		}
	}()
	return p.parseDefinition()
}

func (p *Parser) parseDefinition() ast.Definition {
	if p.check(token.FRAGMENT) {
		return p.parseFragmentDefinition()
	}
	switch p.peek(0).Kind {
	case token.QUERY, token.MUTATION, token.SUBSCRIPTION, token.LBRACE:
		return p.parseOperationDefinition()
	}
	p.errorf("expected a query, mutation, subscription, fragment, or '{', found %s", p.peek(0).Kind)
	p.synchronize()
	return nil
}

func (p *Parser) parseOperationDefinition() *ast.OperationDefinition {
	pos := p.peek(0).Offset
	op := ast.OperationQuery

	// Shorthand query: an operation that begins with '{' directly.
	if p.check(token.LBRACE) {
		ss := p.parseSelectionSet()
		return p.arena.NewOperationDefinition(ast.OperationDefinition{
			Op:           op,
			SelectionSet: ss,
			Pos:          pos,
		})
	}

	switch p.peek(0).Kind {
	case token.QUERY:
		op = ast.OperationQuery
	case token.MUTATION:
		op = ast.OperationMutation
	case token.SUBSCRIPTION:
		op = ast.OperationSubscription
	}
	p.advance()

	var name string
	if p.check(token.IDENTIFIER) {
		name = p.advance().Lexeme
	}

	var varDefs []*ast.VariableDefinition
	if p.check(token.LPAREN) {
		varDefs = p.parseVariableDefinitions()
	}

	directives := p.parseDirectives()
	ss := p.expectSelectionSet()

	return p.arena.NewOperationDefinition(ast.OperationDefinition{
		Op:                  op,
		Name:                name,
		VariableDefinitions: varDefs,
		Directives:          directives,
		SelectionSet:        ss,
		Pos:                 pos,
	})
}

func (p *Parser) parseFragmentDefinition() *ast.FragmentDefinition {
	pos := p.peek(0).Offset
	p.advance() // 'fragment'

	var name string
	if p.isNameLike(p.peek(0).Kind) {
		name = p.advance().Lexeme
	} else {
		p.errorf("expected a fragment name, found %s", p.peek(0).Kind)
	}

	p.expect(token.ON, "expected keyword 'on' in fragment definition")

	var typeCondition string
	if p.isNameLike(p.peek(0).Kind) {
		typeCondition = p.advance().Lexeme
	} else {
		p.errorf("expected a type condition name, found %s", p.peek(0).Kind)
	}

	directives := p.parseDirectives()
	ss := p.expectSelectionSet()

	return p.arena.NewFragmentDefinition(ast.FragmentDefinition{
		Name:          name,
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  ss,
		Pos:           pos,
	})
}

// expectSelectionSet requires the cursor to be at '{' and parses the
// selection set there; on mismatch it records an error without consuming
// the unexpected token and returns an empty placeholder, the same
// recoverable shape every other required-selection-set call site uses.
func (p *Parser) expectSelectionSet() *ast.SelectionSet {
	if p.check(token.LBRACE) {
		return p.parseSelectionSet()
	}
	p.errorf("expected a selection set, found %s", p.peek(0).Kind)
	return p.arena.NewSelectionSet(ast.SelectionSet{Pos: p.peek(0).Offset})
}

func (p *Parser) parseSelectionSet() *ast.SelectionSet {
	pos := p.peek(0).Offset
	p.advance() // '{'
	var selections []ast.Selection
	for !p.check(token.RBRACE) && !p.atEnd() {
		before := p.pos
		if sel := p.parseSelection(); sel != nil {
			selections = append(selections, sel)
		}
		p.match(token.COMMA)
		p.guardProgress(before)
	}
	p.expect(token.RBRACE, "expected '}' to close selection set")
	return p.arena.NewSelectionSet(ast.SelectionSet{Selections: selections, Pos: pos})
}

func (p *Parser) parseSelection() ast.Selection {
	if p.check(token.ELLIPSIS) {
		pos := p.advance().Offset
		if p.check(token.ON) {
			p.advance()
			var typeCondition string
			if p.isNameLike(p.peek(0).Kind) {
				typeCondition = p.advance().Lexeme
			} else {
				p.errorf("expected a type condition name, found %s", p.peek(0).Kind)
			}
			directives := p.parseDirectives()
			ss := p.expectSelectionSet()
			return p.arena.NewInlineFragment(ast.InlineFragment{
				TypeCondition: typeCondition,
				Directives:    directives,
				SelectionSet:  ss,
				Pos:           pos,
			})
		}
		if p.check(token.LBRACE) {
			directives := p.parseDirectives()
			ss := p.parseSelectionSet()
			return p.arena.NewInlineFragment(ast.InlineFragment{
				Directives:   directives,
				SelectionSet: ss,
				Pos:          pos,
			})
		}
		var name string
		if p.isNameLike(p.peek(0).Kind) {
			name = p.advance().Lexeme
		} else {
			p.errorf("expected a fragment name, found %s", p.peek(0).Kind)
		}
		directives := p.parseDirectives()
		return p.arena.NewFragmentSpread(ast.FragmentSpread{Name: name, Directives: directives, Pos: pos})
	}
	return p.parseField()
}

func (p *Parser) parseField() *ast.Field {
	pos := p.peek(0).Offset
	if !p.isNameLike(p.peek(0).Kind) {
		p.errorf("expected a field name, found %s", p.peek(0).Kind)
		p.advance()
		return nil
	}
	first := p.advance().Lexeme

	var alias, name string
	if p.match(token.COLON) {
		alias = first
		if p.isNameLike(p.peek(0).Kind) {
			name = p.advance().Lexeme
		} else {
			p.errorf("expected a field name after alias, found %s", p.peek(0).Kind)
		}
	} else {
		name = first
	}

	var args []*ast.Argument
	if p.check(token.LPAREN) {
		args = p.parseArguments()
	}

	directives := p.parseDirectives()

	var ss *ast.SelectionSet
	if p.check(token.LBRACE) {
		ss = p.parseSelectionSet()
	}

	return p.arena.NewField(ast.Field{
		Alias:        alias,
		Name:         name,
		Arguments:    args,
		Directives:   directives,
		SelectionSet: ss,
		Pos:          pos,
	})
}

func (p *Parser) parseArguments() []*ast.Argument {
	p.advance() // '('
	var args []*ast.Argument
	for !p.check(token.RPAREN) && !p.atEnd() {
		before := p.pos
		pos := p.peek(0).Offset
		if !p.isNameLike(p.peek(0).Kind) {
			p.errorf("expected an argument name, found %s", p.peek(0).Kind)
			p.advance()
			p.guardProgress(before)
			continue
		}
		name := p.advance().Lexeme
		p.expect(token.COLON, "expected ':' after argument name")
		val := p.parseValue()
		args = append(args, p.arena.NewArgument(ast.Argument{Name: name, Value: val, Pos: pos}))
		p.match(token.COMMA)
		p.guardProgress(before)
	}
	p.expect(token.RPAREN, "expected ')' to close argument list")
	return args
}

func (p *Parser) parseDirectives() []*ast.Directive {
	var directives []*ast.Directive
	for p.check(token.DIRECTIVE_NAME) {
		tok := p.advance()
		var args []*ast.Argument
		if p.check(token.LPAREN) {
			args = p.parseArguments()
		}
		directives = append(directives, p.arena.NewDirective(ast.Directive{
			Name:      tok.Lexeme[1:], // drop the leading '@'
			Arguments: args,
			Pos:       tok.Offset,
		}))
	}
	return directives
}

func (p *Parser) parseVariableDefinitions() []*ast.VariableDefinition {
	p.advance() // '('
	var defs []*ast.VariableDefinition
	for !p.check(token.RPAREN) && !p.atEnd() {
		before := p.pos
		pos := p.peek(0).Offset
		if !p.check(token.VARIABLE) {
			p.errorf("expected a variable, found %s", p.peek(0).Kind)
			p.advance()
			p.guardProgress(before)
			continue
		}
		variable := p.advance().Lexeme[1:] // drop the leading '$'
		p.expect(token.COLON, "expected ':' after variable name")
		typ := p.parseType()

		// '=' has no dedicated punctuation kind (spec.md §6.2 only reserves
		// enumerators for { } ( ) [ ] : , ... !); it surfaces as a one-byte
		// SYMBOL token, so the default-value marker is matched by lexeme.
		var defaultValue ast.Value
		if p.check(token.SYMBOL) && p.peek(0).Lexeme == "=" {
			p.advance()
			defaultValue = p.parseValue()
		}
		directives := p.parseDirectives()

		defs = append(defs, p.arena.NewVariableDefinition(ast.VariableDefinition{
			Variable:     variable,
			Type:         typ,
			DefaultValue: defaultValue,
			Directives:   directives,
			Pos:          pos,
		}))
		p.match(token.COMMA)
		p.guardProgress(before)
	}
	p.expect(token.RPAREN, "expected ')' to close variable definitions")
	return defs
}

func (p *Parser) parseType() ast.TypeRef {
	pos := p.peek(0).Offset
	var t ast.TypeRef
	if p.check(token.LBRACKET) {
		p.advance()
		elem := p.parseType()
		p.expect(token.RBRACKET, "expected ']' to close list type")
		t = p.arena.NewListType(ast.ListType{Elem: elem, Pos: pos})
	} else if p.isNameLike(p.peek(0).Kind) {
		name := p.advance().Lexeme
		t = p.arena.NewNamedType(ast.NamedType{Name: name, Pos: pos})
	} else {
		p.errorf("expected a type name, found %s", p.peek(0).Kind)
		p.advance()
		t = p.arena.NewNamedType(ast.NamedType{Name: "", Pos: pos})
	}
	if p.check(token.BANG) {
		bangPos := p.advance().Offset
		t = p.arena.NewNonNullType(ast.NonNullType{Inner: t, Pos: bangPos})
	}
	return t
}

func (p *Parser) parseValue() ast.Value {
	tok := p.peek(0)
	switch tok.Kind {
	case token.VARIABLE:
		p.advance()
		return p.arena.NewVariableValue(ast.VariableValue{Name: tok.Lexeme[1:], Pos: tok.Offset})
	case token.NUMBER:
		p.advance()
		if isFloatLexeme(tok.Lexeme) {
			return p.arena.NewFloatValue(ast.FloatValue{Raw: tok.Lexeme, Pos: tok.Offset})
		}
		return p.arena.NewIntValue(ast.IntValue{Raw: tok.Lexeme, Pos: tok.Offset})
	case token.STRING:
		p.advance()
		return p.arena.NewStringValue(decodeStringLiteral(tok))
	case token.TRUE:
		p.advance()
		return p.arena.NewBoolValue(ast.BoolValue{Value: true, Pos: tok.Offset})
	case token.FALSE:
		p.advance()
		return p.arena.NewBoolValue(ast.BoolValue{Value: false, Pos: tok.Offset})
	case token.NULL:
		p.advance()
		return p.arena.NewNullValue(ast.NullValue{Pos: tok.Offset})
	case token.LBRACKET:
		return p.parseListValue()
	case token.LBRACE:
		return p.parseObjectValue()
	default:
		if p.isNameLike(tok.Kind) {
			p.advance()
			return p.arena.NewEnumValue(ast.EnumValue{Name: tok.Lexeme, Pos: tok.Offset})
		}
		p.errorf("expected a value, found %s", tok.Kind)
		p.advance()
		return p.arena.NewNullValue(ast.NullValue{Pos: tok.Offset})
	}
}

func (p *Parser) parseListValue() ast.Value {
	pos := p.peek(0).Offset
	p.advance() // '['
	var values []ast.Value
	for !p.check(token.RBRACKET) && !p.atEnd() {
		before := p.pos
		values = append(values, p.parseValue())
		p.match(token.COMMA)
		p.guardProgress(before)
	}
	p.expect(token.RBRACKET, "expected ']' to close list value")
	return p.arena.NewListValue(ast.ListValue{Values: values, Pos: pos})
}

func (p *Parser) parseObjectValue() ast.Value {
	pos := p.peek(0).Offset
	p.advance() // '{'
	var fields []ast.ObjectField
	for !p.check(token.RBRACE) && !p.atEnd() {
		before := p.pos
		fieldPos := p.peek(0).Offset
		if !p.isNameLike(p.peek(0).Kind) {
			p.errorf("expected an object field name, found %s", p.peek(0).Kind)
			p.advance()
			p.guardProgress(before)
			continue
		}
		name := p.advance().Lexeme
		p.expect(token.COLON, "expected ':' after object field name")
		val := p.parseValue()
		fields = append(fields, ast.ObjectField{Name: name, Value: val, Pos: fieldPos})
		p.match(token.COMMA)
		p.guardProgress(before)
	}
	p.expect(token.RBRACE, "expected '}' to close object value")
	return p.arena.NewObjectValue(ast.ObjectValue{Fields: fields, Pos: pos})
}

// isNameLike implements spec.md §4.4.2: any IDENTIFIER or non-value keyword
// is accepted where the grammar expects a name. `on` is excluded only in
// the fragment/inline-fragment head, which callers check positionally
// before this predicate ever runs (parseFragmentDefinition, parseSelection).
func (p *Parser) isNameLike(k token.Kind) bool {
	return k.IsNameLike()
}

func isFloatLexeme(lexeme string) bool {
	for i := 0; i < len(lexeme); i++ {
		switch lexeme[i] {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

// decodeStringLiteral keeps the token's lexeme untouched, quotes and
// escapes included, per spec.md §3's source-view invariant: Value is a
// view into the source buffer, never a decoded copy. Callers that need the
// unescaped/indentation-stripped text call StringValue.Decoded.
func decodeStringLiteral(tok token.Token) ast.StringValue {
	lexeme := tok.Lexeme
	block := len(lexeme) >= 6 && lexeme[:3] == `"""` && lexeme[len(lexeme)-3:] == `"""`
	return ast.StringValue{Value: lexeme, Block: block, Pos: tok.Offset}
}
