package parser

// Parser parses source text into an expression tree or a program. The
// same precedence ladder serves both front ends; only the treatment of
// newlines differs (the expression front end has no statement
// separators, so its lexer discards newlines entirely).
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a parser for program source (newline-aware)
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// NewExpressionParser creates a parser for a standalone expression
func NewExpressionParser(input string) *Parser {
	p := &Parser{
		lexer: NewExpressionLexer(input),
	}
	p.nextToken()
	p.nextToken()
	return p
}

// ParseExpression parses a complete expression; trailing input after the
// expression is an error
func ParseExpression(input string) (Expr, error) {
	p := NewExpressionParser(input)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_EOF {
		return nil, p.errorf("unexpected %s after expression", p.current.Type)
	}
	return expr, nil
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// skipNewlines discards newline tokens at positions where line breaks
// are insignificant (after operators, separators, and opening delimiters)
func (p *Parser) skipNewlines() {
	for p.current.Type == TOKEN_NEWLINE {
		p.nextToken()
	}
}

// expect consumes a token of the given type or reports an error
func (p *Parser) expect(t TokenType, context string) error {
	if p.current.Type == TOKEN_ILLEGAL {
		return p.illegalError(p.current)
	}
	if p.current.Type != t {
		return p.errorf("expected %s %s, got %s", t, context, p.current.Type)
	}
	p.nextToken()
	return nil
}
