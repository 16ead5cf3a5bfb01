// Package tokenizer drives the byte scanner over source text and emits a
// contiguous token sequence into an arena (spec.md §4.2). It is the only
// package that interprets raw bytes; everything downstream works in terms
// of token.Kind and offsets.
package tokenizer

import (
	"github.com/Protocol-Lattice/turbographql/internal/arena"
	"github.com/Protocol-Lattice/turbographql/internal/charclass"
	"github.com/Protocol-Lattice/turbographql/internal/scanbits"
	"github.com/Protocol-Lattice/turbographql/token"
)

// Arena is the bump allocator tokens are produced into (spec.md §4.3);
// tokens live until it is Reset or dropped.
type Arena struct {
	inner arena.Arena[token.Token]
}

// NewArena constructs an empty, ready-to-use token arena.
func NewArena() *Arena {
	return &Arena{}
}

// Reset invalidates every token previously produced into this arena and
// retains its buffer for the next Tokenize call (spec.md §4.3).
func (a *Arena) Reset() {
	a.inner.Reset()
}

const (
	// smallInputThreshold is the len(text) below which the reservation
	// heuristic assumes one token per byte rather than one token per
	// three bytes (spec.md §4.2 "Pre-reserves capacity").
	smallInputThreshold = 256
)

// Option configures tokenizer behavior for open questions spec.md §9
// leaves to the implementer.
type Option func(*options)

type options struct {
	singleQuoteStrings bool
}

// WithSingleQuoteStrings enables `'...'` as an additional string
// delimiter alongside the default `"..."`. Disabled by default — spec.md
// §9 flags this as GraphQL-incompatible and directs double-quote-only as
// the default.
func WithSingleQuoteStrings() Option {
	return func(o *options) { o.singleQuoteStrings = true }
}

// Tokenize scans text into a dense token sequence backed by arena,
// returning a borrowed view valid until the arena is reset or dropped
// (spec.md §6.1). The sequence never contains an EOF token; the parser's
// cursor synthesizes one once it runs past the end (spec.md §4.4).
func Tokenize(text string, arena *Arena, opts ...Option) []token.Token {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := len(text)
	if n >= smallInputThreshold {
		arena.inner.Reserve(n / 3)
	} else {
		arena.inner.Reserve(n)
	}

	sc := scanbits.New()
	i := 0

	if n >= 3 && text[:3] == "\xef\xbb\xbf" {
		i = 3
	}

	for i < n {
		i = sc.SkipWhitespace(text, i)
		if i >= n {
			break
		}

		if j := sc.SkipComment(text, i); j != i {
			i = j
			continue
		}

		if n-i >= 3 && text[i:i+3] == "..." {
			emit(arena, token.ELLIPSIS, text[i:i+3], i)
			i += 3
			continue
		}

		b := text[i]

		if (b == '$' || b == '@') && i+1 < n && charclass.IsIdentStart(text[i+1]) {
			end := sc.FindIdentifierEnd(text, i+1)
			kind := token.VARIABLE
			if b == '@' {
				kind = token.DIRECTIVE_NAME
			}
			emit(arena, kind, text[i:end], i)
			i = end
			continue
		}

		if kind, ok := punctuationKind(b); ok {
			emit(arena, kind, text[i:i+1], i)
			i++
			continue
		}

		if charclass.IsIdentStart(b) {
			end := sc.FindIdentifierEnd(text, i)
			ident := text[i:end]
			emit(arena, token.LookupKeyword(ident), ident, i)
			i = end
			continue
		}

		if charclass.IsDigit(b) || (b == '-' && i+1 < n && charclass.IsDigit(text[i+1])) {
			end, _ := sc.FindNumberEnd(text, i)
			emit(arena, token.NUMBER, text[i:end], i)
			i = end
			continue
		}

		if b == '"' && n-i >= 3 && text[i:i+3] == `"""` {
			end, ok := sc.FindBlockStringEnd(text, i)
			if ok {
				emit(arena, token.STRING, text[i:end], i)
			} else {
				emit(arena, token.UNKNOWN, text[i:end], i)
			}
			i = end
			continue
		}

		if b == '"' || (o.singleQuoteStrings && b == '\'') {
			end, ok := sc.FindStringEnd(text, i, b)
			if ok {
				emit(arena, token.STRING, text[i:end], i)
			} else {
				emit(arena, token.UNKNOWN, text[i:end], i)
			}
			i = end
			continue
		}

		if charclass.Is(b, charclass.Symbol) {
			emit(arena, token.SYMBOL, text[i:i+1], i)
		} else {
			emit(arena, token.UNKNOWN, text[i:i+1], i)
		}
		i++
	}

	return arena.inner.Snapshot()
}

func emit(arena *Arena, kind token.Kind, lexeme string, offset int) {
	arena.inner.New(token.Token{Kind: kind, Lexeme: lexeme, Offset: offset})
}

func punctuationKind(b byte) (token.Kind, bool) {
	switch b {
	case '{':
		return token.LBRACE, true
	case '}':
		return token.RBRACE, true
	case '(':
		return token.LPAREN, true
	case ')':
		return token.RPAREN, true
	case '[':
		return token.LBRACKET, true
	case ']':
		return token.RBRACKET, true
	case ':':
		return token.COLON, true
	case ',':
		return token.COMMA, true
	case '!':
		return token.BANG, true
	default:
		return token.UNKNOWN, false
	}
}
