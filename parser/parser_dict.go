package parser

// parseDictLiteral parses {"key": expr, ...}. Keys must syntactically be
// string literals; identifier or computed keys are a parse error.
// Duplicate keys are accepted, last write wins.
func (p *Parser) parseDictLiteral() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume '{'
	p.skipNewlines()

	var pairs []DictPair
	for p.current.Type != TOKEN_RBRACE {
		if p.current.Type == TOKEN_ILLEGAL {
			return nil, p.illegalError(p.current)
		}
		if p.current.Type != TOKEN_STRING {
			return nil, p.errorf("dict key must be a string literal, got %s", p.current.Type)
		}
		key := p.current.Literal
		p.nextToken()

		if err := p.expect(TOKEN_COLON, "after dict key"); err != nil {
			return nil, err
		}
		p.skipNewlines()

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, DictPair{Key: key, Value: value})

		p.skipNewlines()
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			p.skipNewlines()
		} else if p.current.Type != TOKEN_RBRACE {
			return nil, p.errorf("expected ',' or '}' in dict literal, got %s", p.current.Type)
		}
	}
	p.nextToken() // consume '}'

	return &DictExpr{Pos: pos, Pairs: pairs}, nil
}
