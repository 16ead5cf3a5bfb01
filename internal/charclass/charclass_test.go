package charclass

import "testing"

func TestIsWhitespace(t *testing.T) {
	for _, b := range []byte{' ', '\t', '\n', '\r'} {
		if !IsWhitespace(b) {
			t.Errorf("IsWhitespace(%q) = false, want true", b)
		}
	}
	if IsWhitespace('a') {
		t.Errorf("IsWhitespace('a') = true, want false")
	}
}

func TestIsIdentStart(t *testing.T) {
	for _, b := range []byte("abcXYZ_") {
		if !IsIdentStart(b) {
			t.Errorf("IsIdentStart(%q) = false, want true", b)
		}
	}
	if IsIdentStart('0') {
		t.Errorf("IsIdentStart('0') = true, want false (digits cannot start identifiers)")
	}
}

func TestIsIdentContinue(t *testing.T) {
	for _, b := range []byte("abcXYZ_0123456789") {
		if !IsIdentContinue(b) {
			t.Errorf("IsIdentContinue(%q) = false, want true", b)
		}
	}
	if IsIdentContinue('-') {
		t.Errorf("IsIdentContinue('-') = true, want false")
	}
}

func TestIsDigit(t *testing.T) {
	for _, b := range []byte("0123456789") {
		if !IsDigit(b) {
			t.Errorf("IsDigit(%q) = false, want true", b)
		}
	}
	if IsDigit('a') {
		t.Errorf("IsDigit('a') = true, want false")
	}
}
