// Package token defines the dense, fixed-size token representation the
// tokenizer emits and the parser consumes.
package token

// Kind enumerates every token kind the tokenizer can produce. Unlike the
// string-typed TokenType this package's ancestor used, Kind is a small
// integer so that classifying and comparing tokens on the hot path never
// allocates or compares strings.
type Kind uint8

const (
	// UNKNOWN covers lexical errors: stray bytes, unterminated strings.
	UNKNOWN Kind = iota
	// EOF is the synthetic end-of-input kind; it is never present in a
	// tokenized sequence and is only produced by the parser's cursor.
	EOF

	// Identifiers and literals.
	IDENTIFIER
	VARIABLE       // $name, lexeme includes the sigil
	DIRECTIVE_NAME // @name, lexeme includes the sigil
	NUMBER
	STRING

	// Punctuation, one enumerator per byte.
	LBRACE   // {
	RBRACE   // }
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COLON    // :
	COMMA    // ,
	ELLIPSIS // ...
	BANG     // !
	SYMBOL   // any other single symbol byte

	// Keywords. Order matches spec.md §6.2.
	QUERY
	MUTATION
	SUBSCRIPTION
	FRAGMENT
	ON
	TRUE
	FALSE
	NULL
	TYPE
	INPUT
	ENUM
	INTERFACE
	UNION
	DIRECTIVE
	SCALAR
	EXTEND
	IMPLEMENTS
	TYPENAME // __typename
	SCHEMA   // __schema
	INTROSPECT_GET
	INTROSPECT_CREATE
	INTROSPECT_UPDATE
	INTROSPECT_DELETE

	kindCount
)

var kindNames = [kindCount]string{
	UNKNOWN:           "UNKNOWN",
	EOF:               "EOF",
	IDENTIFIER:        "IDENTIFIER",
	VARIABLE:          "VARIABLE",
	DIRECTIVE_NAME:    "DIRECTIVE",
	NUMBER:            "NUMBER",
	STRING:            "STRING",
	LBRACE:            "{",
	RBRACE:            "}",
	LPAREN:            "(",
	RPAREN:            ")",
	LBRACKET:          "[",
	RBRACKET:          "]",
	COLON:             ":",
	COMMA:             ",",
	ELLIPSIS:          "...",
	BANG:              "!",
	SYMBOL:            "SYMBOL",
	QUERY:             "query",
	MUTATION:          "mutation",
	SUBSCRIPTION:      "subscription",
	FRAGMENT:          "fragment",
	ON:                "on",
	TRUE:              "true",
	FALSE:             "false",
	NULL:              "null",
	TYPE:              "type",
	INPUT:             "input",
	ENUM:              "enum",
	INTERFACE:         "interface",
	UNION:             "union",
	DIRECTIVE:         "directive",
	SCALAR:            "scalar",
	EXTEND:            "extend",
	IMPLEMENTS:        "implements",
	TYPENAME:          "__typename",
	SCHEMA:            "__schema",
	INTROSPECT_GET:    "__get",
	INTROSPECT_CREATE: "__create",
	INTROSPECT_UPDATE: "__update",
	INTROSPECT_DELETE: "__delete",
}

// String renders a human-readable name for k, used in diagnostics.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// keywords maps the exact keyword spelling to its Kind. Populated once at
// package init and never mutated afterwards (spec.md §5 "Shared resources").
var keywords = map[string]Kind{
	"query":        QUERY,
	"mutation":     MUTATION,
	"subscription": SUBSCRIPTION,
	"fragment":     FRAGMENT,
	"on":           ON,
	"true":         TRUE,
	"false":        FALSE,
	"null":         NULL,
	"type":         TYPE,
	"input":        INPUT,
	"enum":         ENUM,
	"interface":    INTERFACE,
	"union":        UNION,
	"directive":    DIRECTIVE,
	"scalar":       SCALAR,
	"extend":       EXTEND,
	"implements":   IMPLEMENTS,
	"__typename":   TYPENAME,
	"__schema":     SCHEMA,
	"__get":        INTROSPECT_GET,
	"__create":     INTROSPECT_CREATE,
	"__update":     INTROSPECT_UPDATE,
	"__delete":     INTROSPECT_DELETE,
}

// LookupKeyword classifies an already-scanned identifier run. Strings
// 2-12 bytes long (from "on" to "subscription") that match a keyword
// literal exactly return the corresponding Kind; every other identifier,
// including the GraphQL built-in scalar names (Int, Float, String,
// Boolean, ID), is IDENTIFIER (spec.md §4.2.1).
func LookupKeyword(ident string) Kind {
	if len(ident) < 2 || len(ident) > 12 {
		return IDENTIFIER
	}
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENTIFIER
}

// IsKeyword reports whether k is one of the reserved keyword kinds, as
// opposed to IDENTIFIER, VARIABLE, a literal, punctuation, or EOF/UNKNOWN.
func (k Kind) IsKeyword() bool {
	return k >= QUERY && k < kindCount
}

// Token is a dense (kind, lexeme, offset) triple. Lexeme is a borrowed view
// into the source buffer; no token ever owns a copy of source bytes.
type Token struct {
	Kind   Kind
	Lexeme string // view into the source text
	Offset int    // byte offset of Lexeme[0] in the source
}

// EOFToken constructs the synthetic end-of-file token returned by the
// parser's cursor once it runs past the end of the token sequence. It
// carries no lexeme; its Offset is the one given (the parser passes the
// index just past the last token's lexeme).
func EOFToken(offset int) Token {
	return Token{Kind: EOF, Lexeme: "", Offset: offset}
}

// IsNameLike reports whether a token of this Kind can be accepted wherever
// the grammar expects a name (argument names, object-value field keys,
// directive/fragment/type names), per spec.md §4.4.2. IDENTIFIER and every
// keyword except true/false/null are name-like; the `on` keyword is
// name-like everywhere except the fragment/inline-fragment head, which the
// parser gates separately because that exception is positional, not
// Kind-based.
func (k Kind) IsNameLike() bool {
	switch k {
	case IDENTIFIER:
		return true
	case TRUE, FALSE, NULL:
		return false
	default:
		return k.IsKeyword()
	}
}
