package ast

import "strings"

// unescapeString interprets the backslash escapes the tokenizer's
// find_string_end left uninterpreted (spec.md §4.1: "no interpretation of
// escape meaning at this layer" — that interpretation belongs to whoever
// decodes a StringValue). Unrecognized escapes, \u included, are kept as
// written, backslash and all, rather than erroring; this never rejects a string the
// tokenizer already accepted.
func unescapeString(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// stripBlockIndentation applies the GraphQL block-string value algorithm:
// the common leading whitespace of every non-first line is removed, and
// wholly-blank leading and trailing lines are dropped (SPEC_FULL.md
// "Supplemented Features" — block strings).
func stripBlockIndentation(raw string) string {
	lines := strings.Split(raw, "\n")
	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
