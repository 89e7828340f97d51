// Package encoding provides shared text classification utilities.
package encoding

// printable mirrors the conventional 100-character printable ASCII set:
// digits, letters, punctuation and the six whitespace characters.
var printable = func() [128]bool {
	var t [128]bool
	for c := '0'; c <= '9'; c++ {
		t[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] = true
		t[c-'a'+'A'] = true
	}
	for _, c := range "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\v\f" {
		t[c] = true
	}
	return t
}()

// IsPrintableASCII reports whether r belongs to the printable ASCII set.
func IsPrintableASCII(r rune) bool {
	return r >= 0 && r < 128 && printable[r]
}

// IsNonASCII reports whether r falls outside the printable ASCII set.
// Control characters such as NUL or DEL count as non-ASCII.
func IsNonASCII(r rune) bool {
	return !IsPrintableASCII(r)
}

// HasNonASCII reports whether s contains at least one non-ASCII character.
func HasNonASCII(s string) bool {
	for _, r := range s {
		if IsNonASCII(r) {
			return true
		}
	}
	return false
}

// NonASCII returns the distinct non-ASCII characters of s in order of first appearance.
func NonASCII(s string) []rune {
	var out []rune
	seen := make(map[rune]struct{})
	for _, r := range s {
		if !IsNonASCII(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
