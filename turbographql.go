// Package turbographql provides a high-throughput GraphQL tokenizer,
// bump-arena AST, and recursive-descent parser for Go. It re-exports the
// public surface of its subpackages as top-level aliases and constructors.
package turbographql

import (
	"log/slog"

	"github.com/Protocol-Lattice/turbographql/ast"
	"github.com/Protocol-Lattice/turbographql/internal/parseserver"
	"github.com/Protocol-Lattice/turbographql/internal/simdcap"
	"github.com/Protocol-Lattice/turbographql/parser"
	"github.com/Protocol-Lattice/turbographql/token"
	"github.com/Protocol-Lattice/turbographql/tokenizer"
)

// ===========================
// Token types
// ===========================

type (
	TokenKind = token.Kind
	Token     = token.Token
)

const (
	UNKNOWN        = token.UNKNOWN
	EOF            = token.EOF
	IDENTIFIER     = token.IDENTIFIER
	VARIABLE       = token.VARIABLE
	DIRECTIVE_NAME = token.DIRECTIVE_NAME
	NUMBER         = token.NUMBER
	STRING         = token.STRING
	LBRACE         = token.LBRACE
	RBRACE         = token.RBRACE
	LPAREN         = token.LPAREN
	RPAREN         = token.RPAREN
	LBRACKET       = token.LBRACKET
	RBRACKET       = token.RBRACKET
	COLON          = token.COLON
	COMMA          = token.COMMA
	ELLIPSIS       = token.ELLIPSIS
	BANG           = token.BANG
	SYMBOL         = token.SYMBOL
)

// ===========================
// AST types
// ===========================

type (
	Document            = ast.Document
	Definition          = ast.Definition
	OperationDefinition = ast.OperationDefinition
	FragmentDefinition  = ast.FragmentDefinition
	SelectionSet        = ast.SelectionSet
	Selection           = ast.Selection
	Field               = ast.Field
	FragmentSpread      = ast.FragmentSpread
	InlineFragment      = ast.InlineFragment
	VariableDefinition  = ast.VariableDefinition
	Directive           = ast.Directive
	Argument            = ast.Argument
	TypeRef             = ast.TypeRef
	Value               = ast.Value
	ASTArena            = ast.Arena
)

// ===========================
// Tokenizer / parser types
// ===========================

type (
	TokenArena      = tokenizer.Arena
	TokenizerOption = tokenizer.Option
	Parser          = parser.Parser
	SyntaxError     = parser.SyntaxError
)

// SimdCapability is the runtime-detected scanner capability tier (§6.1
// `SimdCapability::detect()`).
type SimdCapability = simdcap.Capability

const (
	Scalar = simdcap.Scalar
	Sse42  = simdcap.Sse42
	Neon   = simdcap.Neon
	Avx2   = simdcap.Avx2
	Avx512 = simdcap.Avx512
)

// DetectSimdCapability reports which scanner capability tier this process
// will use — a pure query with no side effects (spec.md §6.1).
func DetectSimdCapability() SimdCapability {
	return simdcap.Detect()
}

// ===========================
// Constructors
// ===========================

// NewTokenArena constructs an empty token arena ready for Tokenize.
func NewTokenArena() *TokenArena {
	return tokenizer.NewArena()
}

// NewASTArena constructs an empty AST arena ready for Parse.
func NewASTArena() *ASTArena {
	return &ast.Arena{}
}

// WithSingleQuoteStrings enables `'...'` string literals alongside the
// default `"..."` (spec.md §9 Open Questions; default remains off).
func WithSingleQuoteStrings() TokenizerOption {
	return tokenizer.WithSingleQuoteStrings()
}

// Tokenize scans text into a dense token sequence backed by arena (spec.md
// §6.1 `tokenize`).
func Tokenize(text string, arena *TokenArena, opts ...TokenizerOption) []Token {
	return tokenizer.Tokenize(text, arena, opts...)
}

// Parse builds a Document from tokens into arena, returning every recorded
// syntax error alongside it (spec.md §6.1 `parse`).
func Parse(tokens []Token, arena *ASTArena) (*Document, []*SyntaxError) {
	return parser.Parse(tokens, arena)
}

// ParseSource tokenizes and parses text in one call, threading a fresh
// token arena through internally — the common case when callers don't need
// to inspect tokens themselves.
func ParseSource(text string, astArena *ASTArena, opts ...TokenizerOption) (*Document, []*SyntaxError) {
	tokArena := NewTokenArena()
	tokens := Tokenize(text, tokArena, opts...)
	return Parse(tokens, astArena)
}

// ===========================
// Embedding: worker-pool front end
// ===========================

type (
	ParseServerPool    = parseserver.Pool
	ParseServerHandler = parseserver.Handler
	ParseResult        = parseserver.Result
)

// NewParseServerPool starts a pool of size worker goroutines, each with its
// own token and AST arena pair, ready to tokenize and parse documents
// concurrently (spec.md §5 "multiple parses may run on multiple threads").
func NewParseServerPool(size int, log *slog.Logger) *ParseServerPool {
	return parseserver.NewPool(size, log)
}

// NewParseServerHandler wraps pool in an HTTP/WebSocket front end exposing
// ServeParse and ServeStream.
func NewParseServerHandler(pool *ParseServerPool, log *slog.Logger) *ParseServerHandler {
	return parseserver.NewHandler(pool, log)
}
