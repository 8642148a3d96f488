package parser

import (
	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/internal/lexer"
)

// parsePrelude consumes zero or more `@name = expr` definitions from the
// front of the document. A definition is the only construct that can start
// with '@' at document scope (the scale operator only ever follows a
// primary inside a form expression), so a leading '@' unambiguously starts
// one.
func (p *Parser) parsePrelude() error {
	for {
		t, err := p.peek()
		if err != nil {
			return err
		}
		if t.Kind != lexer.At {
			return nil
		}
		if err := p.parseDefinition(); err != nil {
			return err
		}
	}
}

// parseDefinition consumes one `@name = expr` line and records it in
// p.defs/p.defName. Re-defining a name overwrites its previous body but
// keeps its original position in p.defName.
func (p *Parser) parseDefinition() error {
	if _, err := p.expect(lexer.At); err != nil {
		return err
	}
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.Equals); err != nil {
		return err
	}
	kind, toks, err := p.captureDefinitionBody()
	if err != nil {
		return err
	}
	if _, exists := p.defs[nameTok.Text]; !exists {
		p.defName = append(p.defName, nameTok.Text)
	}
	p.defs[nameTok.Text] = definition{kind: kind, tokens: toks}
	return nil
}

// captureDefinitionBody classifies a definition's right-hand side by its
// first one or two tokens, parses it with the ordinary grammar for that
// kind (discarding the resulting tree — only used to advance the token
// stream correctly through nested brackets), and returns the exact token
// slice consumed, for replay at each `$name` reference.
//
// A leading '[' can only start a feature list (a definition's right-hand
// side admits a form node, a feature list, or a modifier list; only a
// feature list begins with '['). An identifier immediately followed by
// '(' can only start a modifier clause (form-expression primaries never
// apply an identifier to a parenthesized list — named forms are bare
// barewords). Anything else is a form expression.
func (p *Parser) captureDefinitionBody() (ast.DefinitionKind, []lexer.Token, error) {
	t, err := p.peek()
	if err != nil {
		return 0, nil, err
	}
	// Only look past an identifier: looking past a '{' would lex its Miller
	// payload as an ordinary number before readMillerPayload can scan it.
	var t2 lexer.Token
	if t.Kind == lexer.Identifier {
		t2, err = p.peekAt(1)
		if err != nil {
			return 0, nil, err
		}
	}

	var kind ast.DefinitionKind
	switch {
	case t.Kind == lexer.LBracket:
		kind = ast.DefinitionFeatures
	case t.Kind == lexer.Identifier && t2.Kind == lexer.LParen:
		kind = ast.DefinitionModifiers
	default:
		kind = ast.DefinitionForm
	}

	var rec []lexer.Token
	p.startRecording(&rec)
	var perr error
	switch kind {
	case ast.DefinitionFeatures:
		_, perr = p.parseFeatureList()
	case ast.DefinitionModifiers:
		var idTok lexer.Token
		idTok, perr = p.expect(lexer.Identifier)
		if perr == nil {
			_, perr = p.parseModificationClause(idTok.Text)
		}
	default:
		_, perr = p.parseFormExprInner()
	}
	p.stopRecording()
	if perr != nil {
		return 0, nil, perr
	}
	return kind, rec, nil
}
