package parser

import (
	"strconv"

	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/catalog"
	"github.com/gemcore/cdl/internal/lexer"
)

// parseFormExprInner parses a "+"-joined sequence of aggregate-or-lower
// terms and returns the resulting top-level form list.
//
// Aggregate attachment is the one place the precedence table's strict
// reading and the worked edge cases pull in different directions: "a ~
// cluster[5] + b" attaches the aggregate to "a" alone (tight binding, as
// the table states), while "{10-10}@1.0 + {10-11}@0.8 ~ cluster[12]"
// attaches it to the whole two-form group accumulated so far. Both
// resolve under one rule: terms accumulate into a
// pending list across '+'; hitting '~' instead wraps everything pending
// since the last aggregate (or the start) into that aggregate's inner
// node — a single form if only one is pending, a FormGroup if more than
// one — and parsing continues after it. This makes "a ~ x + b" wrap just
// "a" (nothing else was pending yet) and the scenario-7 input wrap both
// forms (both were pending when '~' appeared).
func (p *Parser) parseFormExprInner() ([]ast.FormNode, error) {
	var out []ast.FormNode
	var pending []ast.FormNode

	for {
		term, err := p.parseNestedGrowthTerm()
		if err != nil {
			return nil, err
		}
		pending = append(pending, term)

		t, err := p.peek()
		if err != nil {
			return nil, err
		}

		if t.Kind == lexer.Tilde {
			p.next()
			agg, err := p.parseAggregateClause(pending)
			if err != nil {
				return nil, err
			}
			out = append(out, ast.FormNode{AggregateSpec: agg})
			pending = nil

			t2, err := p.peek()
			if err != nil {
				return nil, err
			}
			if t2.Kind == lexer.Plus {
				p.next()
				continue
			}
			break
		}

		if t.Kind == lexer.Plus {
			p.next()
			continue
		}
		break
	}

	out = append(out, pending...)
	return out, nil
}

// parseAggregateClause parses `arrangement[count] [@spacing] [[orientation
// [, param]]]` (the '~' has already been consumed) and wraps pending (the
// forms accumulated since the previous aggregate or the start of the
// expression) as its Inner.
func (p *Parser) parseAggregateClause(pending []ast.FormNode) (*ast.AggregateSpec, error) {
	var inner ast.FormNode
	if len(pending) == 1 {
		inner = pending[0]
	} else {
		inner = ast.FormNode{FormGroup: &ast.FormGroup{Nodes: pending}}
	}

	arrTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	spec := &ast.AggregateSpec{Inner: inner, Arrangement: arrTok.Text}

	if _, err := p.expect(lexer.LBracket); err != nil {
		return nil, err
	}
	countTok, err := p.expect(lexer.Integer)
	if err != nil {
		return nil, err
	}
	count, err := parseIntToken(countTok)
	if err != nil {
		return nil, p.errf(countTok.Pos, "malformed aggregate count %q", countTok.Text)
	}
	spec.Count = count
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.At {
		p.next()
		spacing, err := p.parseSpacing()
		if err != nil {
			return nil, err
		}
		spec.Spacing = spacing
	}

	t, err = p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.LBracket {
		p.next()
		orTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		spec.Orientation = orTok.Text
		t2, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t2.Kind == lexer.Comma {
			p.next()
			paramTok, err := p.nextNumberToken()
			if err != nil {
				return nil, err
			}
			v, err := parseFloatToken(paramTok)
			if err != nil {
				return nil, p.errf(paramTok.Pos, "malformed orientation parameter %q", paramTok.Text)
			}
			spec.OrientationParam = &v
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

// parseSpacing reads a spacing literal such as "2mm": a required number
// optionally glued (no intervening whitespace) to a unit identifier. The
// lexer always tokenizes the digits and the unit separately, so adjacency
// is recovered here by comparing byte offsets.
func (p *Parser) parseSpacing() (string, error) {
	numTok, err := p.nextNumberToken()
	if err != nil {
		return "", err
	}
	spacing := numTok.Text

	t, err := p.peek()
	if err != nil {
		return "", err
	}
	if t.Kind == lexer.Identifier && t.Pos.Offset == numTok.Pos.Offset+len(numTok.Text) {
		p.next()
		spacing += t.Text
	}
	return spacing, nil
}

// parseNestedGrowthTerm parses level 3 (">" , right-associative): a
// postfixed primary optionally followed by "> " another nested-growth term.
func (p *Parser) parseNestedGrowthTerm() (ast.FormNode, error) {
	left, err := p.parsePrimaryPostfixed()
	if err != nil {
		return left, err
	}
	t, err := p.peek()
	if err != nil {
		return left, err
	}
	if t.Kind != lexer.GT {
		return left, nil
	}
	p.next()
	right, err := p.parseNestedGrowthTerm()
	if err != nil {
		return ast.FormNode{}, err
	}
	return ast.FormNode{NestedGrowth: &ast.NestedGrowth{Base: left, Overgrowth: right}}, nil
}

// parsePrimaryPostfixed parses levels 1-2: a primary followed by zero or
// more "@scale" (an '@' followed by a number) and "[features]" postfixes, in
// any order actually written
// (the grammar only ever shows scale before features, but nothing in
// §4.2 forbids the reverse, and accepting both keeps the climber simple).
func (p *Parser) parsePrimaryPostfixed() (ast.FormNode, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return node, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return node, err
		}
		switch t.Kind {
		case lexer.At:
			// '@' followed by anything but a number is not a scale (in the
			// prelude it starts the next definition); leave it to the caller.
			t2, err := p.peekAt(1)
			if err != nil {
				return node, err
			}
			if t2.Kind != lexer.Integer && t2.Kind != lexer.Float {
				break
			}
			p.next()
			numTok, err := p.nextNumberToken()
			if err != nil {
				return node, err
			}
			scale, err := parseFloatToken(numTok)
			if err != nil {
				return node, p.errf(numTok.Pos, "malformed scale %q", numTok.Text)
			}
			if node.CrystalForm == nil {
				return node, p.errf(t.Pos, "scale is only valid on a crystal form")
			}
			node.CrystalForm.Scale = scale
			continue
		case lexer.LBracket:
			feats, err := p.parseFeatureList()
			if err != nil {
				return node, err
			}
			switch {
			case node.CrystalForm != nil:
				node.CrystalForm.Features = feats
			case node.FormGroup != nil:
				node.FormGroup.Features = feats
			default:
				return node, p.errf(t.Pos, "features are only valid on a crystal form or group")
			}
			continue
		}
		break
	}
	return node, nil
}

// parsePrimary parses a Miller index, a reference, a grouped/variant
// expression, a named form, or a labeled form.
func (p *Parser) parsePrimary() (ast.FormNode, error) {
	t, err := p.peek()
	if err != nil {
		return ast.FormNode{}, err
	}
	switch t.Kind {
	case lexer.LBrace:
		p.next()
		return p.parseMillerPrimary()
	case lexer.Dollar:
		return p.parseReference()
	case lexer.LParen:
		return p.parseGroup()
	case lexer.Identifier:
		t2, err := p.peekAt(1)
		if err != nil {
			return ast.FormNode{}, err
		}
		if t2.Kind == lexer.Colon {
			p.next() // label
			p.next() // ':'
			cf, err := p.parseMillerOrNamedOnly()
			if err != nil {
				return ast.FormNode{}, err
			}
			cf.Label = t.Text
			return ast.FormNode{CrystalForm: cf}, nil
		}
		p.next()
		return p.namedFormNode(t)
	default:
		return ast.FormNode{}, p.errUnexpected(t, lexer.LBrace, lexer.Dollar, lexer.LParen, lexer.Identifier)
	}
}

// parseMillerOrNamedOnly parses the restricted primary a label may attach
// to: a Miller index or a named form, nothing else.
func (p *Parser) parseMillerOrNamedOnly() (*ast.CrystalForm, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case lexer.LBrace:
		p.next()
		node, err := p.parseMillerPrimary()
		if err != nil {
			return nil, err
		}
		return node.CrystalForm, nil
	case lexer.Identifier:
		p.next()
		node, err := p.namedFormNode(t)
		if err != nil {
			return nil, err
		}
		return node.CrystalForm, nil
	default:
		return nil, p.errUnexpected(t, lexer.LBrace, lexer.Identifier)
	}
}

// parseMillerPrimary parses a `{...}` Miller literal; the opening '{' has
// already been consumed.
func (p *Parser) parseMillerPrimary() (ast.FormNode, error) {
	payload, err := p.readMillerPayload()
	if err != nil {
		return ast.FormNode{}, err
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return ast.FormNode{}, err
	}
	comps, err := lexer.ParseMillerPayload(payload.Text, payload.Pos)
	if err != nil {
		return ast.FormNode{}, fromLexError(err)
	}

	var idx ast.MillerIndex
	if len(comps) == 4 {
		h, k, i, l := comps[0], comps[1], comps[2], comps[3]
		idx = ast.MillerIndex{H: h, K: k, L: l, I: &i}
	} else {
		idx = ast.MillerIndex{H: comps[0], K: comps[1], L: comps[2]}
	}

	return ast.FormNode{CrystalForm: &ast.CrystalForm{Miller: idx, Scale: 1.0}}, nil
}

// namedFormNode resolves an already-consumed identifier token against the
// named-form catalog for the current system.
//
// While a definition body is being captured (p.recording != nil), p.system
// hasn't been set yet — the prelude runs before the crystalline header, so
// a definition like "@x = octahedron" is captured before any system is
// known. captureDefinitionBody only keeps the token slice it records, not
// the tree this builds, so a lookup miss there just means "can't resolve
// yet"; defer resolution to each $x expansion site, where p.system is
// already set.
func (p *Parser) namedFormNode(t lexer.Token) (ast.FormNode, error) {
	if p.recording != nil && p.system == "" {
		return ast.FormNode{CrystalForm: &ast.CrystalForm{Scale: 1.0, Name: t.Text}}, nil
	}
	m, ok := catalog.LookupNamedForm(p.system, t.Text)
	if !ok {
		return ast.FormNode{}, p.errf(t.Pos, "unrecognized form name %q for system %q", t.Text, p.system)
	}
	idx := ast.MillerIndex{H: m.H, K: m.K, L: m.L}
	if m.I != nil {
		i := *m.I
		idx.I = &i
	}
	return ast.FormNode{CrystalForm: &ast.CrystalForm{Miller: idx, Scale: 1.0, Name: t.Text}}, nil
}

// parseReference parses `$name`, re-parsing name's captured definition
// body (which must be a form expression) as a fresh form expression.
// A `$name` can only reference an already-captured definition (an
// as-yet-undefined name is a plain "undefined name" error), so the
// definition graph is acyclic by construction; references still cannot
// nest more than maxReferenceDepth deep, which bounds a long chain of
// valid backward references rather than detecting a cycle.
func (p *Parser) parseReference() (ast.FormNode, error) {
	dollarTok, err := p.expect(lexer.Dollar)
	if err != nil {
		return ast.FormNode{}, err
	}
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return ast.FormNode{}, err
	}
	def, ok := p.defs[nameTok.Text]
	if !ok {
		return ast.FormNode{}, p.errf(nameTok.Pos, "reference to undefined name %q", nameTok.Text)
	}
	if def.kind != ast.DefinitionForm {
		return ast.FormNode{}, p.errf(nameTok.Pos, "%q is not a form definition", nameTok.Text)
	}
	if p.refDepth >= maxReferenceDepth {
		return ast.FormNode{}, p.errf(dollarTok.Pos, "reference expansion too deep (possible cycle) at %q", nameTok.Text)
	}

	p.refDepth++
	// While an enclosing definition body is being captured, only the
	// `$name` tokens belong to it, not the replayed tokens of name's body:
	// send those to a scratch slice (p.recording stays non-nil, which
	// namedFormNode relies on) and restore the capture afterwards.
	savedRec := p.recording
	if savedRec != nil {
		var scratch []lexer.Token
		p.recording = &scratch
	}
	savedSrc, savedQueue := p.pushSource(newSliceSource(def.tokens))
	nodes, err := p.parseFormExprInner()
	p.popSource(savedSrc, savedQueue)
	p.recording = savedRec
	p.refDepth--
	if err != nil {
		return ast.FormNode{}, err
	}

	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return ast.FormNode{FormGroup: &ast.FormGroup{Nodes: nodes}}, nil
}

// parseGroup parses `(` form-expr (`;` form-expr)* `)`, followed by an
// optional `[features]` and an optional, lookahead-gated `| twin(...)`
// that applies to the whole group rather than its last element.
func (p *Parser) parseGroup() (ast.FormNode, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return ast.FormNode{}, err
	}

	first, err := p.parseFormExprInner()
	if err != nil {
		return ast.FormNode{}, err
	}

	var variants [][]ast.FormNode
	for {
		t, err := p.peek()
		if err != nil {
			return ast.FormNode{}, err
		}
		if t.Kind != lexer.Semi {
			break
		}
		p.next()
		if variants == nil {
			variants = append(variants, first)
		}
		next, err := p.parseFormExprInner()
		if err != nil {
			return ast.FormNode{}, err
		}
		variants = append(variants, next)
	}

	group := &ast.FormGroup{Nodes: first, Variants: variants}

	// A twin clause may be written just inside the closing paren ("a + (b |
	// twin(law))", binding to this group alone) as well as just after it
	// ("(a + b) | twin(law)"); both read as "| twin(...)" to the climber, so
	// check for it in both positions.
	if err := p.maybeAttachGroupTwin(group); err != nil {
		return ast.FormNode{}, err
	}

	if _, err := p.expect(lexer.RParen); err != nil {
		return ast.FormNode{}, err
	}

	t, err := p.peek()
	if err != nil {
		return ast.FormNode{}, err
	}
	if t.Kind == lexer.LBracket {
		feats, err := p.parseFeatureList()
		if err != nil {
			return ast.FormNode{}, err
		}
		group.Features = feats
	}

	if err := p.maybeAttachGroupTwin(group); err != nil {
		return ast.FormNode{}, err
	}

	return ast.FormNode{FormGroup: group}, nil
}

// maybeAttachGroupTwin consumes a "| twin(...)" clause into group.Twin if
// one is next in the stream, and is a no-op otherwise.
func (p *Parser) maybeAttachGroupTwin(group *ast.FormGroup) error {
	t, err := p.peek()
	if err != nil {
		return err
	}
	if t.Kind != lexer.Pipe {
		return nil
	}
	t2, err := p.peekAt(1)
	if err != nil {
		return err
	}
	if t2.Kind != lexer.Identifier || t2.Text != "twin" {
		return nil
	}
	p.next()
	p.next()
	twin, err := p.parseTwinClause()
	if err != nil {
		return err
	}
	group.Twin = twin
	return nil
}

func parseIntToken(t lexer.Token) (int, error) {
	return strconv.Atoi(t.Text)
}
