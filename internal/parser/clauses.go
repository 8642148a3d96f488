package parser

import (
	"strconv"
	"strings"

	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/catalog"
	"github.com/gemcore/cdl/internal/lexer"
)

// parseFeatureList parses `[` feature (`,` feature)* `]`.
func (p *Parser) parseFeatureList() ([]ast.Feature, error) {
	if _, err := p.expect(lexer.LBracket); err != nil {
		return nil, err
	}
	var feats []ast.Feature
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind == lexer.RBracket {
			break
		}
		f, err := p.parseFeature()
		if err != nil {
			return nil, err
		}
		feats = append(feats, f)

		t2, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t2.Kind == lexer.Comma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return feats, nil
}

// parseFeature parses `name` optionally followed by `:` and a single
// value (a number, identifier, or hyphen-joined color chain).
func (p *Parser) parseFeature() (ast.Feature, error) {
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return ast.Feature{}, err
	}
	f := ast.Feature{Name: nameTok.Text}

	t, err := p.peek()
	if err != nil {
		return f, err
	}
	if t.Kind == lexer.Colon {
		p.next()
		v, err := p.parseFeatureValue()
		if err != nil {
			return f, err
		}
		f.Values = append(f.Values, v)
	}
	return f, nil
}

func (p *Parser) parseFeatureValue() (ast.FeatureValue, error) {
	t, err := p.next()
	if err != nil {
		return ast.FeatureValue{}, err
	}
	switch t.Kind {
	case lexer.Integer:
		n, err := strconv.Atoi(t.Text)
		if err != nil {
			return ast.FeatureValue{}, p.errf(t.Pos, "malformed integer %q", t.Text)
		}
		return ast.FeatureValue{Kind: ast.FeatureInt, Int: n}, nil
	case lexer.Float:
		fv, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return ast.FeatureValue{}, p.errf(t.Pos, "malformed float %q", t.Text)
		}
		return ast.FeatureValue{Kind: ast.FeatureFloat, Float: fv}, nil
	case lexer.Identifier:
		if strings.Contains(t.Text, "-") {
			return ast.FeatureValue{Kind: ast.FeatureColorChain, Chain: strings.Split(t.Text, "-")}, nil
		}
		return ast.FeatureValue{Kind: ast.FeatureIdent, Ident: t.Text}, nil
	default:
		return ast.FeatureValue{}, p.errUnexpected(t, lexer.Integer, lexer.Float, lexer.Identifier)
	}
}

// parseTwinClause parses `(` either `identifier [, integer]` (named law,
// optional repeat) or `[h,k,l], number [, type]` (custom) `)`. The leading
// "twin" identifier has already been consumed by the caller.
func (p *Parser) parseTwinClause() (*ast.TwinSpec, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}

	spec := &ast.TwinSpec{}
	if t.Kind == lexer.LBracket {
		p.next()
		h, err := p.expect(lexer.Integer)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Comma); err != nil {
			return nil, err
		}
		k, err := p.expect(lexer.Integer)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Comma); err != nil {
			return nil, err
		}
		l, err := p.expect(lexer.Integer)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		hi, _ := strconv.Atoi(h.Text)
		ki, _ := strconv.Atoi(k.Text)
		li, _ := strconv.Atoi(l.Text)
		spec.Axis = [3]int{hi, ki, li}

		if _, err := p.expect(lexer.Comma); err != nil {
			return nil, err
		}
		angleTok, err := p.nextNumberToken()
		if err != nil {
			return nil, err
		}
		angle, err := parseFloatToken(angleTok)
		if err != nil {
			return nil, p.errf(angleTok.Pos, "malformed twin angle %q", angleTok.Text)
		}
		spec.Angle = angle

		tc, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tc.Kind == lexer.Comma {
			p.next()
			typeTok, err := p.expect(lexer.Identifier)
			if err != nil {
				return nil, err
			}
			spec.Type = typeTok.Text
		}
	} else {
		nameTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		spec.Law = nameTok.Text

		tc, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tc.Kind == lexer.Comma {
			p.next()
			repTok, err := p.expect(lexer.Integer)
			if err != nil {
				return nil, err
			}
			rep, err := strconv.Atoi(repTok.Text)
			if err != nil {
				return nil, p.errf(repTok.Pos, "malformed repeat count %q", repTok.Text)
			}
			spec.Repeat = rep
		}
	}

	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return spec, nil
}

// parsePhenomenonClause parses `[` identifier (`,` param)* `]`. The leading
// "phenomenon" identifier has already been consumed by the caller.
func (p *Parser) parsePhenomenonClause() (*ast.PhenomenonSpec, error) {
	if _, err := p.expect(lexer.LBracket); err != nil {
		return nil, err
	}
	kindTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	spec := &ast.PhenomenonSpec{Kind: kindTok.Text}

	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind != lexer.Comma {
			break
		}
		p.next()
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		spec.Params = append(spec.Params, param)
	}

	if _, err := p.expect(lexer.RBracket); err != nil {
		return nil, err
	}
	return spec, nil
}

// parseParam parses `name:value` where value is a number or identifier.
func (p *Parser) parseParam() (ast.Param, error) {
	nameTok, err := p.expect(lexer.Identifier)
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return ast.Param{}, err
	}
	t, err := p.next()
	if err != nil {
		return ast.Param{}, err
	}
	switch t.Kind {
	case lexer.Integer, lexer.Float:
		v, err := parseFloatToken(t)
		if err != nil {
			return ast.Param{}, p.errf(t.Pos, "malformed parameter value %q", t.Text)
		}
		return ast.Param{Name: nameTok.Text, Value: v}, nil
	case lexer.Identifier:
		return ast.Param{Name: nameTok.Text, Ident: t.Text, IsIdent: true}, nil
	default:
		return ast.Param{}, p.errUnexpected(t, lexer.Integer, lexer.Float, lexer.Identifier)
	}
}

// parseModificationClause parses `(` param (`,` param)* `)`; kind is the
// modifier identifier already consumed by the caller.
func (p *Parser) parseModificationClause(kind string) (ast.Modification, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return ast.Modification{}, err
	}
	mod := ast.Modification{Kind: kind}
	for {
		t, err := p.peek()
		if err != nil {
			return mod, err
		}
		if t.Kind == lexer.RParen {
			break
		}
		param, err := p.parseParam()
		if err != nil {
			return mod, err
		}
		mod.Params = append(mod.Params, param)

		t2, err := p.peek()
		if err != nil {
			return mod, err
		}
		if t2.Kind == lexer.Comma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return mod, err
	}
	return mod, nil
}

// parseCrystalline parses `system[point_group]:form-expr` followed by zero
// or more `| modifier`/`| twin(...)` clauses and an optional `|
// phenomenon[...]` clause.
func (p *Parser) parseCrystalline() (*ast.CrystallineDescription, error) {
	sysTok, err := p.expect(lexer.SystemKeyword)
	if err != nil {
		return nil, err
	}
	sys := catalog.System(sysTok.Text)
	p.system = sys
	desc := &ast.CrystallineDescription{SystemName: sysTok.Text}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.LBracket {
		p.next()
		pg, err := p.readPointGroup()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		desc.PointGroup = pg.Text
	} else {
		desc.PointGroup = catalog.DefaultPointGroups[sys]
	}

	colonTok, err := p.expect(lexer.Colon)
	if err != nil {
		return nil, err
	}

	forms, err := p.parseFormExprInner()
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, p.errf(colonTok.Pos, "empty form list")
	}
	desc.Forms = forms

	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind != lexer.Pipe {
			break
		}
		p.next()
		idTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		switch idTok.Text {
		case "twin":
			twin, err := p.parseTwinClause()
			if err != nil {
				return nil, err
			}
			desc.Twin = twin
		case "phenomenon":
			ph, err := p.parsePhenomenonClause()
			if err != nil {
				return nil, err
			}
			desc.Phenomenon = ph
		default:
			mod, err := p.parseModificationClause(idTok.Text)
			if err != nil {
				return nil, err
			}
			desc.Mods = append(desc.Mods, mod)
		}
	}

	return desc, nil
}

// parseAmorphous parses `amorphous[subtype]:{shape,...}[features]` followed
// by an optional `| phenomenon[...]` clause.
func (p *Parser) parseAmorphous() (*ast.AmorphousDescription, error) {
	if _, err := p.expect(lexer.AmorphousKeyword); err != nil {
		return nil, err
	}
	p.system = catalog.Amorphous
	desc := &ast.AmorphousDescription{}

	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.LBracket {
		p.next()
		subTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		desc.Subtype = subTok.Text
	}

	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}

	for {
		shapeTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		desc.Shapes = append(desc.Shapes, shapeTok.Text)

		t2, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t2.Kind == lexer.Comma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}

	t, err = p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.LBracket {
		feats, err := p.parseFeatureList()
		if err != nil {
			return nil, err
		}
		desc.Features = feats
	}

	t, err = p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == lexer.Pipe {
		t2, err := p.peekAt(1)
		if err != nil {
			return nil, err
		}
		if t2.Kind == lexer.Identifier && t2.Text == "phenomenon" {
			p.next()
			p.next()
			ph, err := p.parsePhenomenonClause()
			if err != nil {
				return nil, err
			}
			desc.Phenomenon = ph
		}
	}

	return desc, nil
}
