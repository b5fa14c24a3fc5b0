// Package parser implements the lexer and recursive-descent parser that
// turn DSL source text into a concrete syntax tree (see internal/ir for the
// intermediate representation the lowering stage builds from that tree).
package parser

import (
	"hacfg/internal/diag"
)

// Parse tokenizes src and builds a concrete syntax tree. It returns a
// (possibly partial) File along with any parse errors encountered. path is
// used only for error attribution (empty is fine for in-memory sources).
func Parse(src, path string) (*File, []*diag.ParseError) {
	tokens, runes := Tokenize(src)
	p := &parser{tokens: tokens, src: runes, path: path}
	return p.parseFile()
}

type parser struct {
	tokens []Token
	src    []rune
	path   string
	pos    int
	errors []*diag.ParseError
}

// --- token navigation helpers ---

func (p *parser) peek() Token {
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.Type == COMMENT || t.Type == NEWLINE {
			p.pos++
			continue
		}
		return t
	}
	return Token{Type: EOF}
}

func (p *parser) next() Token {
	t := p.peek()
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(tok Token, format string, args ...any) {
	p.errors = append(p.errors, diag.NewParseError(tok.Loc(p.path), format, args...))
}

// --- grammar ---

// parseFile parses the single top-level "config NAME { ... }" block.
func (p *parser) parseFile() (*File, []*diag.ParseError) {
	first := p.peek()
	if first.Type == EOF {
		p.errorf(first, "empty input: expected a 'config' block")
		return &File{}, p.errors
	}
	if first.Type != IDENT || first.Value != "config" {
		p.errorf(first, "expected 'config' block, got %q", first.Value)
		// Best-effort: still try to parse whatever follows as the root
		// directive so downstream stages see a partial tree.
	}
	d := p.parseDirective()
	return &File{Config: d}, p.errors
}

// parseDirective parses one Directive starting at the current position. The
// grammar is uniform across every block kind in the DSL:
//
//	Directive = Name Argument* ("{" Directive* "}")?
//
// Argument collection continues past line boundaries while inside an
// unmatched "[" ... "]" (list literal), so multi-line list values parse
// without special-casing. A directive's body "{" is interpreted either as a
// nested block (frontend/backend/.../template bodies) or as a map literal's
// entries (e.g. "1:" -> "0-3") — both are represented identically as a
// Directive's Body; the lowering stage decides which interpretation applies
// based on the field it is populating.
func (p *parser) parseDirective() *Directive {
	tok := p.peek()
	if tok.Type != IDENT && tok.Type != STRING {
		p.errorf(tok, "expected directive name, got %s", tok.Type)
		p.next()
		return nil
	}

	name := p.next()
	d := &Directive{Name: name, StartLine: name.Line, EndLine: name.Line}

	bracketDepth := 0
	for {
		tok = p.peek()
		if tok.Type == EOF {
			break
		}
		if tok.Type == LBRACE && bracketDepth == 0 {
			break
		}
		if tok.Type == RBRACE && bracketDepth == 0 {
			break
		}
		if tok.Line != name.Line && bracketDepth == 0 {
			break
		}
		if tok.Type == LBRACKET {
			bracketDepth++
		}
		if tok.Type == RBRACKET && bracketDepth > 0 {
			bracketDepth--
		}
		arg := p.next()
		d.Args = append(d.Args, &Argument{Token: arg})
	}

	if p.peek().Type != LBRACE {
		return d
	}

	if name.Value == "lua" {
		p.parseLuaBody(d)
		return d
	}

	lbrace := p.next() // consume "{"
	for {
		tok = p.peek()
		if tok.Type == EOF {
			p.errorf(lbrace, "unclosed block for directive %q", name.Value)
			break
		}
		if tok.Type == RBRACE {
			d.EndLine = tok.Line
			p.next() // consume "}"
			break
		}
		sub := p.parseDirective()
		if sub != nil {
			d.Body = append(d.Body, sub)
		}
	}
	return d
}

// parseLuaBody slurps the raw text between a "lua NAME {" block's braces
// verbatim from the original source, so embedded script formatting is never
// touched by tokenization. It leaves d.Body nil and sets d.RawBody.
func (p *parser) parseLuaBody(d *Directive) {
	lbrace := p.next() // consume "{" (still holds its rune Pos)
	openPos := lbrace.Pos

	depth := 1
	i := openPos + 1
	var quote rune
	for i < len(p.src) {
		ch := p.src[i]
		if quote != 0 {
			if ch == '\\' && quote == '"' {
				i += 2
				continue
			}
			if ch == quote {
				quote = 0
			}
			i++
			continue
		}
		switch ch {
		case '"', '\'', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				goto closed
			}
		}
		i++
	}
closed:
	if depth != 0 {
		p.errorf(lbrace, "unclosed lua block for %q", d.Name.Value)
		// Consume to EOF so the parser terminates.
		p.pos = len(p.tokens)
		return
	}
	content := string(p.src[openPos+1 : i])
	d.RawBody = &content
	d.EndLine = lbrace.Line // refined below once we locate the closing brace token

	// Advance the token cursor past every token lexed from inside the raw
	// block, landing on (and consuming) the matching "}" token.
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		p.pos++
		if t.Type == RBRACE && t.Pos == i {
			d.EndLine = t.Line
			return
		}
	}
	p.errorf(lbrace, "internal error: could not locate closing brace for lua block %q", d.Name.Value)
}
