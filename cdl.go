// Package cdl is the facade for the Crystal Description Language v2
// front-end: a tokenizer, recursive-descent parser, and validator for the
// compact textual notation gemmology/mineralogy tooling uses to describe
// crystal morphology. It exposes exactly two entry points, Parse and
// Validate — everything else (the lexer, parser, and validator internals)
// is intentionally unexported so downstream collaborators depend only on
// the typed tree in package ast and the two error types below.
package cdl

import (
	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/internal/parser"
	"github.com/gemcore/cdl/internal/validator"
)

// Parse converts CDL v2 source text into a typed description tree. It
// returns a *SyntaxError (unwrap-compatible with the structured position
// and expected-token information) on the first lexical or grammatical
// failure; it performs no semantic validation.
func Parse(text string) (ast.Description, error) {
	return parser.Parse(text)
}

// Validate parses text and checks it against every domain constraint —
// recognized systems, point groups, Miller-Bravais consistency, twin
// laws, and the rest — returning (true, "") on success or (false, reason)
// on the first syntax or semantic failure encountered.
func Validate(text string) (bool, string) {
	desc, err := Parse(text)
	if err != nil {
		return false, err.Error()
	}
	if err := validator.Validate(desc); err != nil {
		return false, err.Error()
	}
	return true, ""
}
