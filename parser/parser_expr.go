package parser

import (
	"strconv"

	"quill/types"
)

// The precedence ladder, lowest to highest. Each level parses a left
// operand at the next-higher level and folds a chain of its own
// operators; ternary and power recurse on their own level for right
// associativity.

// parseExpression parses a full expression (ternary level)
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseTernary()
}

// parseTernary parses cond ? then : else (right-associative)
func (p *Parser) parseTernary() (Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TOKEN_QUESTION {
		return cond, nil
	}
	pos := p.current.Position
	p.nextToken() // consume '?'
	p.skipNewlines()

	thenExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	p.skipNewlines()
	if err := p.expect(TOKEN_COLON, "in ternary expression"); err != nil {
		return nil, err
	}
	p.skipNewlines()

	elseExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	return &TernaryExpr{Pos: pos, Condition: cond, ThenExpr: thenExpr, ElseExpr: elseExpr}, nil
}

// parseBinaryChain folds a left-associative run of the given operators
func (p *Parser) parseBinaryChain(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		matched := false
		for _, op := range ops {
			if p.current.Type == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}

		opTok := p.current
		p.nextToken()
		p.skipNewlines()

		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: opTok.Position, Left: left, Operator: opTok.Type, Right: right}
	}
}

func (p *Parser) parseOr() (Expr, error) {
	return p.parseBinaryChain(p.parseAnd, TOKEN_OR)
}

func (p *Parser) parseAnd() (Expr, error) {
	return p.parseBinaryChain(p.parseEquality, TOKEN_AND)
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinaryChain(p.parseComparison, TOKEN_EQ, TOKEN_NE)
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.parseBinaryChain(p.parseAdditive, TOKEN_LT, TOKEN_LE, TOKEN_GT, TOKEN_GE)
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.parseBinaryChain(p.parseMultiplicative, TOKEN_PLUS, TOKEN_MINUS)
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	return p.parseBinaryChain(p.parsePower, TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT)
}

// parsePower parses base ^ exponent (right-associative)
func (p *Parser) parsePower() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TOKEN_CARET {
		return left, nil
	}
	opTok := p.current
	p.nextToken()
	p.skipNewlines()

	right, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Pos: opTok.Position, Left: left, Operator: TOKEN_CARET, Right: right}, nil
}

// parseUnary parses a stack of prefix operators: !x, -x, !!x, ...
func (p *Parser) parseUnary() (Expr, error) {
	if p.current.Type == TOKEN_NOT || p.current.Type == TOKEN_MINUS {
		opTok := p.current
		p.nextToken()
		p.skipNewlines()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Pos: opTok.Position, Operator: opTok.Type, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any chain of calls (args),
// index brackets, and member accesses, applied left-to-right
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TOKEN_LPAREN:
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Pos: expr.Position(), Callee: expr, Args: args}

		case TOKEN_LBRACKET:
			p.nextToken() // consume '['
			p.skipNewlines()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			p.skipNewlines()
			if err := p.expect(TOKEN_RBRACKET, "after index expression"); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Pos: expr.Position(), Object: expr, Index: index}

		case TOKEN_DOT:
			p.nextToken() // consume '.'
			if p.current.Type != TOKEN_IDENTIFIER {
				return nil, p.errorf("expected member name after '.', got %s", p.current.Type)
			}
			field := p.current.Value
			p.nextToken()
			expr = &MemberExpr{Pos: expr.Position(), Object: expr, Field: field}

		default:
			return expr, nil
		}
	}
}

// parseCallArgs parses a parenthesized argument list with an optional
// trailing comma
func (p *Parser) parseCallArgs() ([]Expr, error) {
	p.nextToken() // consume '('
	p.skipNewlines()

	var args []Expr
	for p.current.Type != TOKEN_RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipNewlines()
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			p.skipNewlines()
		} else if p.current.Type != TOKEN_RPAREN {
			return nil, p.errorf("expected ',' or ')' in argument list, got %s", p.current.Type)
		}
	}
	p.nextToken() // consume ')'
	return args, nil
}

// parsePrimary parses a literal, identifier, grouping, or container literal
func (p *Parser) parsePrimary() (Expr, error) {
	pos := p.current.Position

	switch p.current.Type {
	case TOKEN_INT:
		val, err := strconv.ParseInt(p.current.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", p.current.Value)
		}
		p.nextToken()
		return &LiteralExpr{Pos: pos, Value: types.NewInt(val)}, nil

	case TOKEN_FLOAT:
		val, err := strconv.ParseFloat(p.current.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", p.current.Value)
		}
		p.nextToken()
		return &LiteralExpr{Pos: pos, Value: types.NewFloat(val)}, nil

	case TOKEN_STRING:
		lit := p.current.Literal
		p.nextToken()
		return &LiteralExpr{Pos: pos, Value: types.NewStr(lit)}, nil

	case TOKEN_TRUE:
		p.nextToken()
		return &LiteralExpr{Pos: pos, Value: types.NewBool(true)}, nil

	case TOKEN_FALSE:
		p.nextToken()
		return &LiteralExpr{Pos: pos, Value: types.NewBool(false)}, nil

	case TOKEN_IDENTIFIER:
		name := p.current.Value
		p.nextToken()
		return &IdentifierExpr{Pos: pos, Name: name}, nil

	case TOKEN_LPAREN:
		p.nextToken() // consume '('
		p.skipNewlines()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if err := p.expect(TOKEN_RPAREN, "after parenthesized expression"); err != nil {
			return nil, err
		}
		return &ParenExpr{Pos: pos, Expr: inner}, nil

	case TOKEN_LBRACKET:
		return p.parseListLiteral()

	case TOKEN_LBRACE:
		return p.parseDictLiteral()

	case TOKEN_ILLEGAL:
		return nil, p.illegalError(p.current)

	default:
		return nil, p.errorf("unexpected %s in expression", p.current.Type)
	}
}
