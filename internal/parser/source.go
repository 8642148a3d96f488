package parser

import "github.com/gemcore/cdl/internal/lexer"

// tokenSource is the minimal interface the precedence climber consumes
// tokens from: either the live *lexer.Lexer scanning the document text, or
// a sliceSource replaying a definition's captured tokens when expanding a
// `$name` reference. The same token stream abstraction serves both a live
// source and a recorded one.
type tokenSource interface {
	Next() (lexer.Token, error)
}

// sliceSource replays a fixed token slice, yielding lexer.EOF once
// exhausted so the climber's ordinary end-of-input handling applies without
// a special case.
type sliceSource struct {
	toks []lexer.Token
	pos  int
}

func newSliceSource(toks []lexer.Token) *sliceSource {
	return &sliceSource{toks: toks}
}

func (s *sliceSource) Next() (lexer.Token, error) {
	if s.pos >= len(s.toks) {
		return lexer.Token{Kind: lexer.EOF}, nil
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}
