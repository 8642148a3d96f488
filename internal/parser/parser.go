// Package parser is the recursive-descent, explicit-precedence parser for
// CDL v2. It consumes the token stream internal/lexer
// produces and builds the typed tree defined in package ast, resolving
// `@name = expr` definitions and `$name` references by token-slice
// substitution as it goes — references never reach the returned tree.
package parser

import (
	"strconv"

	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/catalog"
	"github.com/gemcore/cdl/internal/lexer"
)

const maxReferenceDepth = 32

// definition is the parser's internal record of one `@name = expr` line:
// its expression kind (decided by the shape of its first tokens) and the
// raw token slice captured for later replay at each `$name` site.
type definition struct {
	kind   ast.DefinitionKind
	tokens []lexer.Token
}

// Parser holds the state for a single Parse call: the current token source
// (the live lexer, or a sliceSource while expanding a reference), a small
// lookahead queue decoupled from the active source so pushing/popping a
// source for `$name` expansion never loses already-buffered tokens, and the
// definitions accumulated from the document prelude.
type Parser struct {
	src   tokenSource
	queue []lexer.Token

	defs    map[string]definition
	defName []string // insertion order, for Doc.Definitions

	system catalog.System // set once the crystalline header is parsed

	refDepth int

	// recording, when non-nil, receives a copy of every token dequeued by
	// next() — used by captureDefinitionBody to record the exact token
	// slice a prelude definition's body consists of, for later replay at
	// each $name reference.
	recording *[]lexer.Token
}

func (p *Parser) startRecording(dst *[]lexer.Token) {
	p.recording = dst
}

func (p *Parser) stopRecording() {
	p.recording = nil
}

// Parse parses a complete CDL v2 document and returns its typed description
// tree, or a non-nil *Error from this package for a lexical or syntax
// failure. The validator is not invoked here; see the cdl facade.
func Parse(src string) (ast.Description, error) {
	lx := lexer.New(src)
	p := &Parser{src: lx, defs: map[string]definition{}}

	if err := p.parsePrelude(); err != nil {
		return nil, err
	}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	var desc ast.Description
	switch t.Kind {
	case lexer.SystemKeyword:
		desc, err = p.parseCrystalline()
	case lexer.AmorphousKeyword:
		desc, err = p.parseAmorphous()
	case lexer.Identifier:
		err = p.errf(t.Pos, "unknown crystal system %q", t.Text)
	default:
		err = p.errUnexpected(t, lexer.SystemKeyword, lexer.AmorphousKeyword)
	}
	if err != nil {
		return nil, err
	}

	p.attachDoc(desc, lx.DocComment.String())

	end, err := p.next()
	if err != nil {
		return nil, err
	}
	if end.Kind != lexer.EOF {
		return nil, p.errUnexpected(end, lexer.EOF)
	}

	return desc, nil
}

func (p *Parser) attachDoc(desc ast.Description, comment string) {
	defs := make([]ast.Definition, 0, len(p.defName))
	for _, name := range p.defName {
		d := p.defs[name]
		defs = append(defs, ast.Definition{Name: name, Kind: d.kind, RawTokens: d.tokens})
	}
	switch d := desc.(type) {
	case *ast.CrystallineDescription:
		d.Comment = comment
		d.Definitions = defs
	case *ast.AmorphousDescription:
		d.Comment = comment
		d.Definitions = defs
	}
}

// --- token stream plumbing -------------------------------------------------

func (p *Parser) fill(n int) error {
	for len(p.queue) <= n {
		t, err := p.src.Next()
		if err != nil {
			return fromLexError(err)
		}
		p.queue = append(p.queue, t)
	}
	return nil
}

func (p *Parser) peekAt(n int) (lexer.Token, error) {
	if err := p.fill(n); err != nil {
		return lexer.Token{}, err
	}
	return p.queue[n], nil
}

func (p *Parser) peek() (lexer.Token, error) { return p.peekAt(0) }

func (p *Parser) next() (lexer.Token, error) {
	t, err := p.peekAt(0)
	if err != nil {
		return t, err
	}
	p.queue = p.queue[1:]
	if p.recording != nil {
		*p.recording = append(*p.recording, t)
	}
	return t, nil
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.Kind != k {
		return t, p.errUnexpected(t, k)
	}
	return t, nil
}

// nextNumberToken consumes and returns the next token, requiring it to be
// an Integer or Float.
func (p *Parser) nextNumberToken() (lexer.Token, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.Kind != lexer.Integer && t.Kind != lexer.Float {
		return t, p.errUnexpected(t, lexer.Integer, lexer.Float)
	}
	return t, nil
}

// readMillerPayload fetches the raw text of a Miller-index literal
// immediately following a consumed '{'. Against the live lexer this invokes
// the dedicated scan mode (internal/lexer's generic tokenizer cannot tell
// "111" apart from the dense three-component index {1,1,1}); against a
// replayed definition the payload was already captured as a single
// MillerPayload token (see below) by the same call made while recording the
// definition, so an ordinary queue pop suffices.
//
// ScanMillerPayload bypasses next(), which is where recording normally
// happens, so this records the scanned token explicitly when a definition
// body is being captured — otherwise a `{...}` literal inside `@x = ...`
// would be recorded missing its payload token entirely.
func (p *Parser) readMillerPayload() (lexer.Token, error) {
	if lx, ok := p.src.(*lexer.Lexer); ok {
		t, err := lx.ScanMillerPayload()
		if err != nil {
			return t, fromLexError(err)
		}
		if p.recording != nil {
			*p.recording = append(*p.recording, t)
		}
		return t, nil
	}
	return p.next()
}

// readPointGroup fetches the raw point-group symbol immediately following a
// consumed '[' that itself immediately follows a system keyword. Only the
// live lexer ever calls this — definitions never contain a system keyword
// (a definition's right-hand side only ever holds a form/feature/modifier
// expression), so a replayed source never needs it.
func (p *Parser) readPointGroup() (lexer.Token, error) {
	if lx, ok := p.src.(*lexer.Lexer); ok {
		t, err := lx.ScanPointGroup()
		if err != nil {
			return t, fromLexError(err)
		}
		return t, nil
	}
	return p.next()
}

// pushSource switches the active token source to expand a `$name`
// reference, saving the current source and lookahead queue to be restored
// by popSource.
func (p *Parser) pushSource(src tokenSource) (savedSrc tokenSource, savedQueue []lexer.Token) {
	savedSrc, savedQueue = p.src, p.queue
	p.src, p.queue = src, nil
	return savedSrc, savedQueue
}

func (p *Parser) popSource(savedSrc tokenSource, savedQueue []lexer.Token) {
	p.src, p.queue = savedSrc, savedQueue
}

// parseFloatToken interprets an Integer or Float token as a float64.
func parseFloatToken(t lexer.Token) (float64, error) {
	return strconv.ParseFloat(t.Text, 64)
}
