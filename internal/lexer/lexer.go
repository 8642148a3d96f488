// Package lexer converts CDL v2 source text into a stream of classified
// Tokens with source positions.
//
// The lexer holds the entire input in memory (CDL strings are short and
// parsing is sub-millisecond and O(n) in practice) and is not safe for
// concurrent use by multiple goroutines; callers run one Lexer per call,
// each owning a private token buffer.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gemcore/cdl/catalog"
)

// Lexer tokenizes a CDL source string on demand. Use Next to consume tokens
// in order and Peek to look one token ahead without consuming it.
//
// DocComment accumulates the text of every `#!` doc-comment line encountered
// so far, newline-joined; the parser reads it once the whole description
// has been parsed, so doc-comments anywhere in the document are included.
type Lexer struct {
	src        string
	pos        int
	line       int
	col        int
	peeked     *Token
	DocComment strings.Builder
}

// New returns a Lexer over src, positioned at its start.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peekRune() (rune, int) {
	if l.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *Lexer) peekRuneAt(off int) (rune, int) {
	if l.pos+off >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos+off:])
}

func (l *Lexer) advance() rune {
	r, size := l.peekRune()
	if size == 0 {
		return 0
	}
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// Next consumes and returns the next token, skipping whitespace and
// comments. It returns a non-nil *Error on malformed input.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	t, err := l.scan()
	if err != nil {
		return t, err
	}
	l.peeked = &t
	return t, nil
}

func (l *Lexer) scan() (Token, error) {
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return Token{}, err
		}
		if l.eof() {
			return Token{Kind: EOF, Pos: l.position()}, nil
		}

		start := l.position()
		r, _ := l.peekRune()

		switch {
		case r == '{':
			l.advance()
			return Token{Kind: LBrace, Text: "{", Pos: start}, nil
		case r == '}':
			l.advance()
			return Token{Kind: RBrace, Text: "}", Pos: start}, nil
		case r == '[':
			l.advance()
			return Token{Kind: LBracket, Text: "[", Pos: start}, nil
		case r == ']':
			l.advance()
			return Token{Kind: RBracket, Text: "]", Pos: start}, nil
		case r == '(':
			l.advance()
			return Token{Kind: LParen, Text: "(", Pos: start}, nil
		case r == ')':
			l.advance()
			return Token{Kind: RParen, Text: ")", Pos: start}, nil
		case r == ':':
			l.advance()
			return Token{Kind: Colon, Text: ":", Pos: start}, nil
		case r == '+':
			l.advance()
			return Token{Kind: Plus, Text: "+", Pos: start}, nil
		case r == '|':
			l.advance()
			return Token{Kind: Pipe, Text: "|", Pos: start}, nil
		case r == '@':
			l.advance()
			return Token{Kind: At, Text: "@", Pos: start}, nil
		case r == ',':
			l.advance()
			return Token{Kind: Comma, Text: ",", Pos: start}, nil
		case r == '>':
			l.advance()
			return Token{Kind: GT, Text: ">", Pos: start}, nil
		case r == '~':
			l.advance()
			return Token{Kind: Tilde, Text: "~", Pos: start}, nil
		case r == ';':
			l.advance()
			return Token{Kind: Semi, Text: ";", Pos: start}, nil
		case r == '$':
			l.advance()
			return Token{Kind: Dollar, Text: "$", Pos: start}, nil
		case r == '=':
			l.advance()
			return Token{Kind: Equals, Text: "=", Pos: start}, nil
		case unicode.IsDigit(r) || (r == '-' && isDigitRune(l.peekAfterSign())):
			return l.scanNumber()
		case isIdentStart(r):
			return l.scanIdentifier()
		default:
			return Token{}, errAt(start, "unexpected character %q", r)
		}
	}
}

func (l *Lexer) peekAfterSign() rune {
	r, _ := l.peekRuneAt(1)
	return r
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// skipWhitespaceAndComments advances past runs of whitespace, `#!`
// doc-comments (content appended to l.DocComment), `#` line comments, and
// `/* ... */` block comments.
func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		if l.eof() {
			return nil
		}
		r, _ := l.peekRune()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#':
			l.scanComment()
		case r == '/' && l.peekAfterSign() == '*':
			if err := l.scanBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// scanComment consumes a `#` or `#!` line comment. `#!` bodies (the text
// after the `!`, trimmed) are appended to l.DocComment.
func (l *Lexer) scanComment() {
	l.advance() // '#'
	doc := false
	if r, _ := l.peekRune(); r == '!' {
		l.advance()
		doc = true
	}
	start := l.pos
	for {
		if l.eof() {
			break
		}
		r, _ := l.peekRune()
		if r == '\n' {
			break
		}
		l.advance()
	}
	if doc {
		text := strings.TrimSpace(l.src[start:l.pos])
		if l.DocComment.Len() > 0 {
			l.DocComment.WriteByte('\n')
		}
		l.DocComment.WriteString(text)
	}
}

func (l *Lexer) scanBlockComment() error {
	start := l.position()
	l.advance() // '/'
	l.advance() // '*'
	for {
		if l.eof() {
			return errAt(start, "unterminated block comment")
		}
		r, _ := l.peekRune()
		if r == '*' && l.peekAfterSign() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
}

func (l *Lexer) scanNumber() (Token, error) {
	start := l.position()
	s := l.pos
	if r, _ := l.peekRune(); r == '-' {
		l.advance()
	}
	for {
		r, _ := l.peekRune()
		if !unicode.IsDigit(r) {
			break
		}
		l.advance()
	}
	isFloat := false
	if r, _ := l.peekRune(); r == '.' {
		if r2, _ := l.peekRuneAt(1); unicode.IsDigit(r2) {
			isFloat = true
			l.advance()
			for {
				r, _ := l.peekRune()
				if !unicode.IsDigit(r) {
					break
				}
				l.advance()
			}
		}
	}
	text := l.src[s:l.pos]
	kind := Integer
	if isFloat {
		kind = Float
	}
	return Token{Kind: kind, Text: text, Pos: start}, nil
}

func (l *Lexer) scanIdentifier() (Token, error) {
	start := l.position()
	s := l.pos
	for {
		r, _ := l.peekRune()
		if isIdentCont(r) {
			l.advance()
			continue
		}
		// a hyphen glues identifier-chain segments together ("pink-white-green")
		// as long as it is immediately followed by another identifier-start rune;
		// a hyphen before a digit belongs to a signed number instead.
		if r == '-' {
			if r2, _ := l.peekRuneAt(1); isIdentStart(r2) {
				l.advance()
				continue
			}
		}
		break
	}
	text := l.src[s:l.pos]
	if text == string(catalog.Amorphous) {
		return Token{Kind: AmorphousKeyword, Text: text, Pos: start}, nil
	}
	if catalog.IsSystem(text) {
		return Token{Kind: SystemKeyword, Text: text, Pos: start}, nil
	}
	return Token{Kind: Identifier, Text: text, Pos: start}, nil
}

// ScanPointGroup reads raw point-group text up to (but not including) the
// closing ']', starting immediately after the caller has consumed the '['.
// Point-group symbols may contain letters, digits, '/', and a leading '-'
// (e.g. "m3m", "-3m", "6/mmm", "-42m") — characters an ordinary identifier
// scan would reject — so the parser calls this explicitly in the one
// grammar position (immediately after a system keyword) where such a
// symbol is expected.
func (l *Lexer) ScanPointGroup() (Token, error) {
	start := l.position()
	s := l.pos
	for {
		if l.eof() {
			return Token{}, errAt(start, "unterminated point group")
		}
		r, _ := l.peekRune()
		if r == ']' {
			break
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '/' || r == '-') {
			return Token{}, errAt(l.position(), "unexpected character %q in point group", r)
		}
		l.advance()
	}
	return Token{Kind: PointGroup, Text: l.src[s:l.pos], Pos: start}, nil
}

// ScanMillerPayload reads the raw text of a Miller-index literal up to (but
// not including) the closing '}', starting immediately after the caller has
// consumed the opening '{'. The payload is not yet split into components —
// ParseMillerPayload does that — because the choice between the dense
// ("10-11") and space-separated ("12 3 4") literal styles can only be made
// once the whole payload is in hand.
func (l *Lexer) ScanMillerPayload() (Token, error) {
	start := l.position()
	s := l.pos
	for {
		if l.eof() {
			return Token{}, errAt(start, "unterminated Miller index")
		}
		r, _ := l.peekRune()
		if r == '}' {
			break
		}
		if !(unicode.IsDigit(r) || r == '-' || unicode.IsSpace(r)) {
			return Token{}, errAt(l.position(), "unexpected character %q in Miller index", r)
		}
		l.advance()
	}
	return Token{Kind: MillerPayload, Text: l.src[s:l.pos], Pos: start}, nil
}
