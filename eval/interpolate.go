package eval

import (
	"strings"

	"quill/parser"
	"quill/types"
)

// EvaluateInterpolated scans a template, splicing the rendered result of
// each ${expr} segment into the surrounding literal text. Text without
// any ${ passes through unchanged.
func (e *Evaluator) EvaluateInterpolated(template string) (string, *types.Error) {
	var out strings.Builder
	rest := template

	for {
		idx := strings.Index(rest, "${")
		if idx < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:idx])
		rest = rest[idx+2:]

		end, ok := matchInterpolationBrace(rest)
		if !ok {
			return "", types.NewParseFailed("missing '}' in interpolation")
		}

		expr, err := parser.ParseExpression(rest[:end])
		if err != nil {
			return "", types.NewParseFailed(err.Error())
		}
		result := e.Eval(expr, types.NewContext())
		if result.IsError() {
			return "", result.Err
		}
		if !result.IsNormal() {
			return "", types.NewEvaluationFailed("control flow in interpolation")
		}
		out.WriteString(result.Val.String())

		rest = rest[end+1:]
	}
}

// matchInterpolationBrace finds the '}' closing an interpolation segment,
// tracking nested braces but ignoring braces that sit inside quoted
// string literals of the embedded expression
func matchInterpolationBrace(s string) (int, bool) {
	depth := 1
	var quote byte

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++ // skip the escaped character
			case quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
