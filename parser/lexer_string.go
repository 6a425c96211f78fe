package parser

// readString reads a string literal delimited by matching single or
// double quotes. Supported escapes: \n, \r, \t, \\, \", \', and a
// backslash before a literal newline (which inserts a newline). A raw
// newline or end of input before the closing quote is an error.
func (l *Lexer) readString() Token {
	tok := Token{
		Type: TOKEN_STRING,
		Position: Position{
			Line:   l.line,
			Column: l.column,
			Offset: l.position,
		},
	}

	quote := l.ch
	start := l.position
	l.readChar() // skip opening quote

	var result []byte
	for l.ch != quote {
		switch l.ch {
		case 0:
			tok.Type = TOKEN_ILLEGAL
			tok.Value = "unterminated string"
			return tok
		case '\n':
			tok.Type = TOKEN_ILLEGAL
			tok.Value = "newline in string"
			return tok
		case '\\':
			l.readChar() // skip backslash
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 'r':
				result = append(result, '\r')
			case 't':
				result = append(result, '\t')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			case '\'':
				result = append(result, '\'')
			case '\n':
				result = append(result, '\n')
			case 0:
				tok.Type = TOKEN_ILLEGAL
				tok.Value = "unterminated string"
				return tok
			default:
				tok.Type = TOKEN_ILLEGAL
				tok.Value = "invalid escape sequence \\" + string(rune(l.ch))
				return tok
			}
			l.readChar()
		default:
			result = append(result, l.ch)
			l.readChar()
		}
	}

	l.readChar() // skip closing quote
	tok.Value = l.input[start:l.position] // the full quoted source text
	tok.Literal = string(result)          // the decoded value
	return tok
}
