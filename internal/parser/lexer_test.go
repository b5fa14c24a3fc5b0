package parser

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeBasicDirective(t *testing.T) {
	tokens, _ := Tokenize("bind *:80\n")
	got := tokenTypes(tokens)
	want := []TokenType{IDENT, IDENT, NEWLINE, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d type = %v, want %v", i, got[i], want[i])
		}
	}
	if tokens[0].Value != "bind" || tokens[1].Value != "*:80" {
		t.Errorf("unexpected token values: %q %q", tokens[0].Value, tokens[1].Value)
	}
}

func TestTokenizeBraces(t *testing.T) {
	tokens, _ := Tokenize("frontend web {\n}\n")
	got := tokenTypes(tokens)
	want := []TokenType{IDENT, IDENT, LBRACE, NEWLINE, RBRACE, NEWLINE, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d type = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeDecodesDoubleQuotedEscapes(t *testing.T) {
	tokens, _ := Tokenize(`"a\nb\tc\"d"`)
	if len(tokens) < 1 || tokens[0].Type != STRING {
		t.Fatalf("expected a STRING token, got %v", tokens)
	}
	want := "a\nb\tc\"d"
	if tokens[0].Value != want {
		t.Errorf("decoded string = %q, want %q", tokens[0].Value, want)
	}
}

func TestTokenizeRawBacktickString(t *testing.T) {
	tokens, _ := Tokenize("`a\\nb`")
	if tokens[0].Type != STRING || tokens[0].Value != `a\nb` {
		t.Fatalf("expected raw backtick content preserved, got %q", tokens[0].Value)
	}
}

func TestTokenizeLineComment(t *testing.T) {
	for _, src := range []string{"# a comment\nbind *:80", "// a comment\nbind *:80"} {
		tokens, _ := Tokenize(src)
		if tokens[0].Type != COMMENT {
			t.Fatalf("expected first token to be a COMMENT for %q, got %v", src, tokens[0].Type)
		}
	}
}

func TestTokenizeBlockComment(t *testing.T) {
	tokens, _ := Tokenize("/* multi\nline */bind")
	if tokens[0].Type != COMMENT {
		t.Fatalf("expected a COMMENT token, got %v", tokens[0].Type)
	}
	if tokens[1].Type != IDENT || tokens[1].Value != "bind" {
		t.Fatalf("expected the directive after the block comment to lex correctly, got %+v", tokens[1])
	}
}

func TestTokenizeTracksLineNumbers(t *testing.T) {
	tokens, _ := Tokenize("a\nb\nc")
	var idents []Token
	for _, tok := range tokens {
		if tok.Type == IDENT {
			idents = append(idents, tok)
		}
	}
	if len(idents) != 3 {
		t.Fatalf("expected 3 idents, got %d", len(idents))
	}
	for i, want := range []uint32{0, 1, 2} {
		if idents[i].Line != want {
			t.Errorf("ident %d Line = %d, want %d", i, idents[i].Line, want)
		}
	}
}
