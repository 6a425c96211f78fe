package parser

import "fmt"

// ParseError is the single failure kind reported by both front ends.
// Incomplete is set when the error was caused by running out of input;
// interactive hosts use it to prompt for a continuation line.
type ParseError struct {
	Msg        string
	Pos        Position
	Incomplete bool
}

// Error renders the message with the source position
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// errorf creates a ParseError at the current token
func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{
		Msg:        fmt.Sprintf(format, args...),
		Pos:        p.current.Position,
		Incomplete: p.current.Type == TOKEN_EOF,
	}
}

// illegalError converts an ILLEGAL token into a ParseError; the lexer
// stores the message in the token value
func (p *Parser) illegalError(tok Token) error {
	return &ParseError{
		Msg:        tok.Value,
		Pos:        tok.Position,
		Incomplete: tok.Value == "unterminated string",
	}
}

// IsIncomplete reports whether err is a ParseError caused by truncated
// input, e.g. an unclosed block or string at end of input
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}
