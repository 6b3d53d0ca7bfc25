package css_lexer

import (
	"strings"
	"unicode/utf8"
)

const replacementCharacter = 0xFFFD

// Token payloads keep their escapes as written. This decodes them for
// consumers that need the actual characters. A backslash followed by a
// newline, which can only appear in strings, is removed along with the
// newline.
func DecodeEscapes(text string) string {
	i := strings.IndexByte(text, '\\')
	if i < 0 {
		return text
	}

	sb := strings.Builder{}
	sb.WriteString(text[:i])

	for i < len(text) {
		c, width := utf8.DecodeRuneInString(text[i:])
		if c != '\\' {
			sb.WriteString(text[i : i+width])
			i += width
			continue
		}
		i += width

		if i == len(text) {
			sb.WriteRune(replacementCharacter)
			break
		}

		c, width = utf8.DecodeRuneInString(text[i:])
		hex, ok := isHex(c)
		if !ok {
			i += width
			switch c {
			case '\n', '\f':
			case '\r':
				if i < len(text) && text[i] == '\n' {
					i++
				}
			default:
				sb.WriteRune(c)
			}
			continue
		}

		// Parse up to five additional hex characters (so six in total)
		i++
		for n := 1; n < 6 && i < len(text); n++ {
			next, ok := isHex(rune(text[i]))
			if !ok {
				break
			}
			hex = hex*16 + next
			i++
		}

		// A single whitespace character after the hex digits is part of the escape
		if i < len(text) {
			if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i += 2
			} else if isWhitespace(rune(text[i])) {
				i++
			}
		}

		if hex == 0 || (hex >= 0xD800 && hex <= 0xDFFF) || hex > 0x10FFFF {
			sb.WriteRune(replacementCharacter)
		} else {
			sb.WriteRune(rune(hex))
		}
	}

	return sb.String()
}
