package parser

import (
	"fmt"
	"strings"

	"github.com/gemcore/cdl/internal/lexer"
)

// Error is a syntax failure raised by the lexer or the parser: an
// unrecognized character, an unterminated bracket/payload, a missing token,
// or an unexpected token. It carries the byte position of the first
// offending token, the token kind actually found, and (when applicable) the
// short list of kinds that would have been accepted there. The parser
// emits a single structured failure on the first unrecoverable mismatch;
// no recovery or resync is attempted.
type Error struct {
	Pos      lexer.Position
	Found    string
	Expected []string
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: unexpected %s", e.Pos, e.Found)
	}
	return fmt.Sprintf("%s: unexpected %s, expected one of: %s", e.Pos, e.Found, strings.Join(e.Expected, ", "))
}

func fromLexError(err error) error {
	if le, ok := err.(*lexer.Error); ok {
		return &Error{Pos: le.Pos, Message: le.Message}
	}
	return err
}

func (p *Parser) errUnexpected(t lexer.Token, expected ...lexer.Kind) error {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}
	return &Error{Pos: t.Pos, Found: t.Kind.String(), Expected: names}
}

func (p *Parser) errf(pos lexer.Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
