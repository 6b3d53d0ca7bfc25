package css_lexer

import "strings"

// This is entered right after "url(". Whitespace around the URL is dropped
// but whitespace between two parts of the URL is kept. Quoted strings are
// appended with their quotes.
func (lexer *Lexer) consumeURL() (Token, error) {
	in := &lexer.in
	sb := strings.Builder{}
	pendingWhitespace := ""

	for {
		start := in.mark()

		switch c := in.codePoint; {
		case c == ')':
			in.step()
			return Token{Kind: TURI, Text: sb.String()}, nil

		case c == eof:
			return Token{}, lexer.errorHere(IncompleteURI, "")

		case isWhitespace(c):
			for isWhitespace(in.codePoint) {
				in.step()
			}
			if sb.Len() > 0 {
				pendingWhitespace = in.textSince(start)
			}
			continue

		case c == '"' || c == '\'':
			if !lexer.consumeString() {
				return Token{}, lexer.errorHere(UnexpectedCharacterInURI, in.currentText())
			}

		default:
			for {
				if isURLCodePoint(in.codePoint) {
					in.step()
				} else if !lexer.consumeEscape() {
					break
				}
			}
			if in.offset == start.offset {
				return Token{}, lexer.errorHere(UnexpectedCharacterInURI, in.currentText())
			}
		}

		sb.WriteString(pendingWhitespace)
		sb.WriteString(in.textSince(start))
		pendingWhitespace = ""
	}
}

func isURLCodePoint(c rune) bool {
	switch c {
	case eof, '"', '\'', '(', ')', '\\':
		return false
	}
	return !isWhitespace(c) && !isNonPrintable(c)
}
