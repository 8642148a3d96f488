package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemcore/cdl/internal/lexer"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	lx := lexer.New(src)
	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	return toks
}

func TestNext_structuralTokens(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "{}[]():+|@,>~;$=")
	kinds := make([]lexer.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	want := []lexer.Kind{
		lexer.LBrace, lexer.RBrace, lexer.LBracket, lexer.RBracket,
		lexer.LParen, lexer.RParen, lexer.Colon, lexer.Plus, lexer.Pipe,
		lexer.At, lexer.Comma, lexer.GT, lexer.Tilde, lexer.Semi,
		lexer.Dollar, lexer.Equals, lexer.EOF,
	}
	assert.Equal(t, want, kinds)
}

func TestNext_keywordsVsIdentifiers(t *testing.T) {
	t.Parallel()

	tcs := map[string]lexer.Kind{
		"cubic":     lexer.SystemKeyword,
		"trigonal":  lexer.SystemKeyword,
		"amorphous": lexer.AmorphousKeyword,
		"octahedron": lexer.Identifier,
		"twin":      lexer.Identifier,
	}

	for input, want := range tcs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			toks := tokenize(t, input)
			require.Len(t, toks, 2) // token + EOF
			assert.Equal(t, want, toks[0].Kind)
		})
	}
}

func TestNext_numbers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		kind lexer.Kind
		text string
	}{
		"integer":          {kind: lexer.Integer, text: "12"},
		"negative integer": {kind: lexer.Integer, text: "-12"},
		"float":            {kind: lexer.Float, text: "1.5"},
		"negative float":   {kind: lexer.Float, text: "-0.8"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			toks := tokenize(t, tc.text)
			require.Len(t, toks, 2)
			assert.Equal(t, tc.kind, toks[0].Kind)
			assert.Equal(t, tc.text, toks[0].Text)
		})
	}
}

func TestNext_hyphenChainIdentifier(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "pink-white-green")
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.Identifier, toks[0].Kind)
	assert.Equal(t, "pink-white-green", toks[0].Text)
}

func TestNext_hyphenBeforeDigitStartsNumber(t *testing.T) {
	t.Parallel()

	// "a-1" is identifier "a" followed by a signed integer, not a hyphen chain:
	// a hyphen only glues to another identifier-start rune.
	toks := tokenize(t, "a-1")
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.Identifier, toks[0].Kind)
	assert.Equal(t, "a", toks[0].Text)
	assert.Equal(t, lexer.Integer, toks[1].Kind)
	assert.Equal(t, "-1", toks[1].Text)
}

func TestNext_commentsAndDocComments(t *testing.T) {
	t.Parallel()

	lx := lexer.New("# a plain comment\n#! first doc line\ncubic #! second doc line\n")
	tok, err := lx.Next()
	require.NoError(t, err)
	assert.Equal(t, lexer.SystemKeyword, tok.Kind)

	tok, err = lx.Next()
	require.NoError(t, err)
	assert.Equal(t, lexer.EOF, tok.Kind)

	assert.Equal(t, "first doc line\nsecond doc line", lx.DocComment.String())
}

func TestNext_blockComment(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "cubic /* ignore this */ :")
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.SystemKeyword, toks[0].Kind)
	assert.Equal(t, lexer.Colon, toks[1].Kind)
}

func TestNext_unterminatedBlockComment(t *testing.T) {
	t.Parallel()

	lx := lexer.New("cubic /* never closes")
	_, err := lx.Next()
	require.NoError(t, err)
	_, err = lx.Next()
	require.Error(t, err)
}

func TestNext_unexpectedCharacter(t *testing.T) {
	t.Parallel()

	lx := lexer.New("^")
	_, err := lx.Next()
	require.Error(t, err)
}

func TestPeek_doesNotConsume(t *testing.T) {
	t.Parallel()

	lx := lexer.New("cubic:")
	peeked, err := lx.Peek()
	require.NoError(t, err)
	assert.Equal(t, lexer.SystemKeyword, peeked.Kind)

	next, err := lx.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, next)
}

func TestScanPointGroup(t *testing.T) {
	t.Parallel()

	lx := lexer.New("cubic[m3m]")
	_, err := lx.Next() // consume "cubic"
	require.NoError(t, err)
	tok, err := lx.Next() // consume "["
	require.NoError(t, err)
	require.Equal(t, lexer.LBracket, tok.Kind)

	pg, err := lx.ScanPointGroup()
	require.NoError(t, err)
	assert.Equal(t, lexer.PointGroup, pg.Kind)
	assert.Equal(t, "m3m", pg.Text)
}

func TestScanMillerPayload(t *testing.T) {
	t.Parallel()

	lx := lexer.New("{10-11}")
	_, err := lx.Next() // consume "{"
	require.NoError(t, err)

	payload, err := lx.ScanMillerPayload()
	require.NoError(t, err)
	assert.Equal(t, lexer.MillerPayload, payload.Kind)
	assert.Equal(t, "10-11", payload.Text)
}
