package helpers

// These only fold the ASCII letters. CSS keywords and units are ASCII, and
// full Unicode case folding would let characters such as U+212A KELVIN SIGN
// match "k".

func LowerASCII(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func EqualFoldASCII(text string, lower string) bool {
	if len(text) != len(lower) {
		return false
	}
	for i := 0; i < len(text); i++ {
		if LowerASCII(rune(text[i])) != rune(lower[i]) {
			return false
		}
	}
	return true
}
