// Package scanbits implements the byte scanner primitives of spec.md §4.1:
// skip_whitespace, skip_comment, find_identifier_end, find_number_end, and
// find_string_end. Each primitive has a scalar implementation and a wide,
// word-parallel implementation that must agree byte-for-byte (spec.md P2).
//
// The wide implementation does not use per-architecture SIMD intrinsics or
// assembly — those can't be compile-checked in this exercise — but the
// technique is the same one real vectorized scanners use: broadcast a
// target byte (or range) across a machine word, compare, OR the resulting
// per-byte masks, and reduce with a trailing-zero count to find the first
// hit. Here the "vector" is a uint64 treated as eight parallel byte lanes
// (the classic SWAR — SIMD Within A Register — technique); internal/simdcap
// picks how many such 8-byte lanes to sweep per outer iteration (its
// Capability.Lanes), which stands in for the spec's 16/32/64-byte windows.
// The scalar path consults the charclass predicates; the wide path encodes
// the same byte classes as per-lane masks that are exact in every lane (no
// borrow or carry crosses a lane boundary), so both paths stop at the same
// index.
package scanbits

import (
	"math/bits"

	"github.com/Protocol-Lattice/turbographql/internal/charclass"
	"github.com/Protocol-Lattice/turbographql/internal/simdcap"
)

const laneWidth = 8 // bytes per uint64 word

// --- SWAR primitives -------------------------------------------------

func loadWord(s string, i int) uint64 {
	var w uint64
	for k := 0; k < laneWidth; k++ {
		w |= uint64(s[i+k]) << (8 * uint(k))
	}
	return w
}

func broadcast(b byte) uint64 {
	return 0x0101010101010101 * uint64(b)
}

// hasZero flags (with bit 7 of each byte lane) every lane of v that is 0x00.
// Each lane's low seven bits are added to 0x7f, which sets bit 7 unless they
// are all zero; the sum never carries into the next lane, so every lane is
// exact, not only the first flagged one.
func hasZero(v uint64) uint64 {
	const low7 = 0x7f7f7f7f7f7f7f7f
	return ^(((v & low7) + low7) | v) & 0x8080808080808080
}

// hasValue flags every lane of v equal to b.
func hasValue(v uint64, b byte) uint64 {
	return hasZero(v ^ broadcast(b))
}

// hasLess flags every lane of v strictly less than n. Requires 1 <= n <= 128.
func hasLess(v uint64, n byte) uint64 {
	return ^((v & 0x7f7f7f7f7f7f7f7f) + broadcast(128-n)) &^ v & 0x8080808080808080
}

// hasMore flags every lane of v strictly greater than n. Requires 0 <= n <= 127.
func hasMore(v uint64, n byte) uint64 {
	return (((v & 0x7f7f7f7f7f7f7f7f) + broadcast(127-n)) | v) & 0x8080808080808080
}

// inRange flags every lane of v in [lo, hi] (inclusive), for 1 <= lo <= hi <= 127.
func inRange(v uint64, lo, hi byte) uint64 {
	return ^hasLess(v, lo) & ^hasMore(v, hi) & 0x8080808080808080
}

// firstLane returns the index (0..7) of the first set lane in mask, and
// whether any lane was set at all.
func firstLane(mask uint64) (int, bool) {
	if mask == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(mask) / 8, true
}

// identContinueMask flags bytes matching [A-Za-z0-9_] in a single word.
func identContinueMask(v uint64) uint64 {
	return inRange(v, '0', '9') | inRange(v, 'A', 'Z') | inRange(v, 'a', 'z') | hasValue(v, '_')
}

// whitespaceStopMask flags bytes that are NOT one of {space, tab, LF, CR} —
// i.e. the first byte where whitespace-skipping should stop.
func whitespaceStopMask(v uint64) uint64 {
	ws := hasValue(v, ' ') | hasValue(v, '\t') | hasValue(v, '\n') | hasValue(v, '\r')
	return ^ws & 0x8080808080808080
}

// identContinueStopMask flags the first byte that is NOT an identifier
// continuation byte.
func identContinueStopMask(v uint64) uint64 {
	return ^identContinueMask(v) & 0x8080808080808080
}

// digitStopMask flags the first byte that is not an ASCII digit.
func digitStopMask(v uint64) uint64 {
	return ^inRange(v, '0', '9') & 0x8080808080808080
}

// Scanner holds the capability-selected window size. The zero value never
// takes the wide path, like NewScalar; use New to pick up the process's detected
// capability, or NewScalar for the pure byte-at-a-time reference used in
// differential testing (spec.md P2).
type Scanner struct {
	lanes int // number of 8-byte words swept per outer iteration
}

// New returns a Scanner dispatched through the process's detected SIMD
// capability (spec.md §4.1 "Dispatch is runtime").
func New() Scanner {
	return Scanner{lanes: simdcap.Detect().Lanes()}
}

// NewScalar returns a Scanner that never takes the wide path — the
// reference implementation every wide path must agree with.
func NewScalar() Scanner {
	return Scanner{lanes: 0}
}

// NewWithCapability builds a Scanner pinned to a specific capability,
// primarily for testing the wide/scalar equivalence property across every
// supported window size regardless of the host CPU.
func NewWithCapability(c simdcap.Capability) Scanner {
	return Scanner{lanes: c.Lanes()}
}

// sweep scans forward from i using a SWAR stop-mask function wordStop over
// successive windows of s.lanes words, falling back to a scalar predicate
// for the tail (and for the whole input when s.lanes == 0). It returns the
// first index >= i at which scalarStop holds, or len(text) if none is
// found. It never scans past len(text).
func (s Scanner) sweep(text string, i int, wordStop func(uint64) uint64, scalarStop func(byte) bool) int {
	n := len(text)
	if s.lanes > 0 {
		window := s.lanes * laneWidth
		for i+window <= n {
			base := i
			for lane := 0; lane < s.lanes; lane++ {
				w := loadWord(text, base+lane*laneWidth)
				if mask := wordStop(w); mask != 0 {
					off, _ := firstLane(mask)
					return base + lane*laneWidth + off
				}
			}
			i = base + window
		}
	}
	for i < n && !scalarStop(text[i]) {
		i++
	}
	return i
}

// SkipWhitespace returns the first index >= i whose byte is not one of
// {0x20, 0x09, 0x0A, 0x0D}. Never scans past len(text).
func (s Scanner) SkipWhitespace(text string, i int) int {
	return s.sweep(text, i, whitespaceStopMask, func(b byte) bool { return !charclass.IsWhitespace(b) })
}

// FindIdentifierEnd returns the smallest j >= i with text[j] not in
// [A-Za-z0-9_].
func (s Scanner) FindIdentifierEnd(text string, i int) int {
	return s.sweep(text, i, identContinueStopMask, func(b byte) bool { return !charclass.IsIdentContinue(b) })
}

// findDigitRunEnd returns the smallest j >= i with text[j] not an ASCII digit.
func (s Scanner) findDigitRunEnd(text string, i int) int {
	return s.sweep(text, i, digitStopMask, func(b byte) bool { return !charclass.IsDigit(b) })
}

// SkipComment returns the index just past the comment starting at i, or i
// unchanged if text[i] does not begin a comment. Recognized forms: `#...`
// and `//...` running to the next '\n' or end of input, and `/*...*/`
// block comments. An unterminated block comment consumes to end of input
// (spec.md §4.1 — not an error at this layer).
func (s Scanner) SkipComment(text string, i int) int {
	n := len(text)
	if i >= n {
		return i
	}
	switch text[i] {
	case '#':
		return s.skipToNewlineOrEOF(text, i+1)
	case '/':
		if i+1 < n && text[i+1] == '/' {
			return s.skipToNewlineOrEOF(text, i+2)
		}
		if i+1 < n && text[i+1] == '*' {
			return s.skipBlockComment(text, i+2)
		}
		return i
	default:
		return i
	}
}

func (s Scanner) skipToNewlineOrEOF(text string, i int) int {
	nlStop := func(v uint64) uint64 { return hasValue(v, '\n') }
	return s.sweep(text, i, nlStop, func(b byte) bool { return b == '\n' })
}

// skipBlockComment finds the end of a `/*` comment whose body starts at i
// (just past the opening `/*`). It overlaps successive scan windows by one
// byte so a `*/` straddling a window boundary is never missed, per spec.md
// §4.1's multi-byte-lookahead guidance.
func (s Scanner) skipBlockComment(text string, i int) int {
	n := len(text)
	for {
		star := s.sweep(text, i, func(v uint64) uint64 { return hasValue(v, '*') }, func(b byte) bool { return b == '*' })
		if star >= n {
			return n
		}
		if star+1 < n && text[star+1] == '/' {
			return star + 2
		}
		// Overlap by one byte: resume scanning from star+1 rather than
		// star+2, in case text[star+1] is itself a '*' that precedes '/'.
		i = star + 1
	}
}

// FindNumberEnd returns the end of a maximal run matching
// -?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?, plus whether a decimal point was
// consumed. At most one decimal point and one exponent are permitted, and
// the exponent may not precede the decimal point (spec.md §4.1).
func (s Scanner) FindNumberEnd(text string, i int) (j int, hasDecimal bool) {
	n := len(text)
	j = i
	if j < n && text[j] == '-' {
		j++
	}
	j = s.findDigitRunEnd(text, j)
	if j < n && text[j] == '.' && j+1 < n && charclass.IsDigit(text[j+1]) {
		hasDecimal = true
		j = s.findDigitRunEnd(text, j+1)
	}
	if j < n && (text[j] == 'e' || text[j] == 'E') {
		k := j + 1
		if k < n && (text[k] == '+' || text[k] == '-') {
			k++
		}
		if k < n && charclass.IsDigit(text[k]) {
			j = s.findDigitRunEnd(text, k)
		}
	}
	return j, hasDecimal
}

// FindStringEnd returns the index just past the closing quote of the
// regular (non-block) string starting at i (which must point at the
// opening quote byte), and whether the string terminated successfully. A
// backslash escapes exactly the next byte; the meaning of the escape is
// not interpreted at this layer. A raw newline before the closing quote
// terminates the scan with ok == false (spec.md §4.1).
//
// The wide path is used only to find quote/backslash/newline candidates;
// whether a candidate quote is itself escaped depends on the parity of
// preceding backslashes, which is inherently sequential, so that check
// always runs scalar — mirroring how real SIMD string scanners (e.g.
// simdjson) use a vector pass to find candidates and a scalar pass to
// resolve escape state.
func (s Scanner) FindStringEnd(text string, i int, quote byte) (j int, ok bool) {
	n := len(text)
	if i >= n || text[i] != quote {
		return i, false
	}
	j = i + 1
	for j < n {
		special := func(v uint64) uint64 {
			return hasValue(v, quote) | hasValue(v, '\\') | hasValue(v, '\n')
		}
		cand := s.sweep(text, j, special, func(b byte) bool {
			return b == quote || b == '\\' || b == '\n'
		})
		if cand >= n {
			return n, false
		}
		switch text[cand] {
		case '\n':
			return cand, false
		case '\\':
			if cand+1 >= n {
				return n, false
			}
			j = cand + 2
		case quote:
			return cand + 1, true
		}
	}
	return n, false
}

// FindBlockStringEnd returns the index just past the closing `"""` of a
// block string whose opening `"""` begins at i, and whether it terminated.
// Block strings permit raw newlines and unescaped single quotes; a
// backslash still escapes the next byte (so `\"""` does not close the
// string), and termination happens only on an unescaped triple-quote.
func (s Scanner) FindBlockStringEnd(text string, i int) (j int, ok bool) {
	const delim = `"""`
	n := len(text)
	if i+3 > n || text[i:i+3] != delim {
		return i, false
	}
	j = i + 3
	for j < n {
		cand := s.sweep(text, j, func(v uint64) uint64 {
			return hasValue(v, '"') | hasValue(v, '\\')
		}, func(b byte) bool { return b == '"' || b == '\\' })
		if cand >= n {
			return n, false
		}
		if text[cand] == '\\' {
			if cand+1 >= n {
				return n, false
			}
			j = cand + 2
			continue
		}
		// text[cand] == '"': check for a full closing triple-quote.
		if cand+3 <= n && text[cand:cand+3] == delim {
			return cand + 3, true
		}
		j = cand + 1
	}
	return n, false
}
