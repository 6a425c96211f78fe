package parser

import "testing"

func TestParseListLiteral(t *testing.T) {
	tests := []struct {
		input string
		count int
	}{
		{"[]", 0},
		{"[1]", 1},
		{"[1, 2, 3]", 3},
		{"[1, 2, 3,]", 3},
		{"[1, 'two', true, [4]]", 4},
		{"[1 + 2, x]", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseExpression(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			list, ok := expr.(*ListExpr)
			if !ok {
				t.Fatalf("expected ListExpr, got %T", expr)
			}
			if len(list.Elements) != tt.count {
				t.Errorf("got %d elements, want %d", len(list.Elements), tt.count)
			}
		})
	}
}

func TestParseNestedListIndex(t *testing.T) {
	expr, err := ParseExpression("[[1, 2], [3]][0][1]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	outer, ok := expr.(*IndexExpr)
	if !ok {
		t.Fatalf("expected IndexExpr, got %T", expr)
	}
	inner, ok := outer.Object.(*IndexExpr)
	if !ok {
		t.Fatalf("expected nested IndexExpr, got %T", outer.Object)
	}
	if _, ok := inner.Object.(*ListExpr); !ok {
		t.Fatalf("expected ListExpr at base, got %T", inner.Object)
	}
}

func TestParseListErrors(t *testing.T) {
	tests := []string{
		"[1 2]",
		"[1,",
		"[",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseExpression(input); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
