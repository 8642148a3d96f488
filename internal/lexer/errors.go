package lexer

import "fmt"

// Error is a lex-time failure: an unrecognized character, or an unterminated
// comment/bracket/payload. It carries the position of the offending rune so
// the facade can surface it as a syntax failure.
type Error struct {
	Pos     Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func errAt(pos Position, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
