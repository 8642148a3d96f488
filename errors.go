package cdl

import (
	"github.com/gemcore/cdl/internal/parser"
	"github.com/gemcore/cdl/internal/validator"
)

// SyntaxError is a lexical or grammatical failure raised while parsing:
// an unrecognized character, an unterminated bracket or Miller payload, a
// missing token, or an unexpected token. It carries the offending source
// position plus, when applicable, the short list of token kinds that
// would have been accepted there.
type SyntaxError = parser.Error

// ValidationError is a semantic failure raised after a successful parse:
// an unrecognized system or point group, a Miller-Bravais inconsistency,
// or a name missing from one of the closed catalogs (twin law,
// modification kind, amorphous subtype/shape, aggregate
// arrangement/orientation).
type ValidationError = validator.Error
