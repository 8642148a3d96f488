// Package ast defines the typed description tree CDL v2 parses text into:
// CrystallineDescription and AmorphousDescription, their shared FormNode
// variants, and the leaf value types (MillerIndex, Modification, TwinSpec,
// PhenomenonSpec, Feature, Definition).
//
// The tree is built immutably by internal/parser and handed unchanged to
// internal/validator; nothing in this package re-parses or mutates a tree
// once built. Field names are stable so that a JSON encoding of these
// types is the canonical wire shape downstream collaborators consume.
package ast

import "encoding/json"

// Description is the sum type for a parsed document: either a
// *CrystallineDescription or an *AmorphousDescription.
type Description interface {
	// System reports the description's crystal system, or "amorphous".
	System() string
	// Docs returns the text of every `#!` doc-comment in the document,
	// newline-joined, or "" if none was present.
	Docs() string
}

// Doc holds documentation-comment text (from `#!` lines) and the named
// definitions accumulated from a document's prelude.
type Doc struct {
	Comment     string
	Definitions []Definition
}

// CrystallineDescription is the typed tree for a `<system>[<point_group>]:...`
// document.
type CrystallineDescription struct {
	Doc `json:"-"`

	SystemName string          `json:"system"`
	PointGroup string          `json:"point_group,omitempty"`
	Forms      []FormNode      `json:"forms"`
	Mods       []Modification  `json:"mods,omitempty"`
	Twin       *TwinSpec       `json:"twin,omitempty"`
	Phenomenon *PhenomenonSpec `json:"phenomenon,omitempty"`
}

func (d *CrystallineDescription) System() string { return d.SystemName }
func (d *CrystallineDescription) Docs() string { return d.Comment }

// AmorphousDescription is the typed tree for an `amorphous[<subtype>]:{...}`
// document.
type AmorphousDescription struct {
	Doc `json:"-"`

	Subtype    string          `json:"subtype,omitempty"` // "" means unspecified
	Shapes     []string        `json:"shapes"`
	Features   []Feature       `json:"features,omitempty"`
	Phenomenon *PhenomenonSpec `json:"phenomenon,omitempty"`
}

func (d *AmorphousDescription) System() string { return "amorphous" }
func (d *AmorphousDescription) Docs() string { return d.Comment }

// MillerIndex holds a three- or four-index Miller/Miller-Bravais index. I is
// nil for a 3-index form; when non-nil the validator enforces *I = -(H+K).
type MillerIndex struct {
	H int  `json:"h"`
	K int  `json:"k"`
	L int  `json:"l"`
	I *int `json:"i,omitempty"`
}

// Is4Index reports whether this index carries the fourth (i) component.
func (m MillerIndex) Is4Index() bool { return m.I != nil }

// Index3 returns the 3-index view of m, dropping I if present.
func (m MillerIndex) Index3() (h, k, l int) { return m.H, m.K, m.L }

// FormNode is the sum type for a node in the "+"-separated top-level form
// tree: exactly one of CrystalForm, FormGroup, NestedGrowth, or
// AggregateSpec is set on any well-formed node returned by the parser.
type FormNode struct {
	CrystalForm   *CrystalForm   `json:"crystal_form,omitempty"`
	FormGroup     *FormGroup     `json:"form_group,omitempty"`
	NestedGrowth  *NestedGrowth  `json:"nested_growth,omitempty"`
	AggregateSpec *AggregateSpec `json:"aggregate,omitempty"`
}

// CrystalForm is a single crystallographic form: a Miller index, a scale
// factor, an optional human name (set when the form was reached through a
// named-form bareword such as "octahedron"), optional features, and an
// optional label.
type CrystalForm struct {
	Miller   MillerIndex `json:"miller"`
	Scale    float64     `json:"scale"`
	Name     string      `json:"name,omitempty"` // "" unless reached via a named form
	Features []Feature   `json:"features,omitempty"`
	Label    string      `json:"label,omitempty"` // "" unless a label ("name:") preceded this form
}

// FormGroup is an ordered, parenthesized sequence of FormNodes, with
// optional features shared by the whole group, an optional label, an
// optional group-level twin, and — when the group was written with `;`
// separators — the alternative variants that syntax describes.
type FormGroup struct {
	Nodes    []FormNode `json:"nodes"`
	Features []Feature  `json:"features,omitempty"`
	Label    string     `json:"label,omitempty"`
	Twin     *TwinSpec  `json:"twin,omitempty"`

	// Variants holds each `;`-separated alternative's node sequence, in
	// source order, when the group used variant syntax `(a ; b ; c)`.
	// Nodes above always holds the first variant's sequence, so a
	// consumer that ignores Variants sees ordinary single-variant
	// behavior. Nil unless `;` was used.
	Variants [][]FormNode `json:"variants,omitempty"`
}

// NestedGrowth is a `base > overgrowth` pair; right-associative chains of
// `>` are flattened into nested NestedGrowth values (a > b > c becomes
// NestedGrowth{Base: a, Overgrowth: NestedGrowth{b, c}}).
type NestedGrowth struct {
	Base       FormNode `json:"base"`
	Overgrowth FormNode `json:"overgrowth"`
}

// AggregateSpec attaches an arrangement to an inner FormNode: `inner ~
// arrangement[count] [@spacing] [[orientation]]`.
type AggregateSpec struct {
	Inner            FormNode `json:"inner"`
	Arrangement      string   `json:"arrangement"`
	Count            int      `json:"count"`
	Spacing          string   `json:"spacing,omitempty"`     // "" if omitted
	Orientation      string   `json:"orientation,omitempty"` // "" if omitted
	OrientationParam *float64 `json:"orientation_param,omitempty"`
}

// Modification is a `kind(param: value, ...)` clause.
type Modification struct {
	Kind   string  `json:"kind"`
	Params []Param `json:"params,omitempty"`
}

// Param is a single (name, value) pair; Value is either a float64 or a
// string (identifier), discriminated by IsIdent.
type Param struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value,omitempty"`
	Ident   string  `json:"ident,omitempty"`
	IsIdent bool    `json:"is_ident"`
}

// TwinSpec is a `twin(...)` clause: either a named law with an optional
// repeat count, or a custom axis/angle/type triple.
type TwinSpec struct {
	// Named-law form.
	Law    string `json:"law,omitempty"` // "" if this is a custom twin
	Repeat int    `json:"repeat,omitempty"` // 0 means "not specified"

	// Custom form (Law == "").
	Axis  [3]int  `json:"axis,omitempty"`
	Angle float64 `json:"angle,omitempty"`
	Type  string  `json:"type,omitempty"` // "contact" | "penetration" | "cyclic" | "" if unspecified
}

// IsNamed reports whether this is a named-law twin (as opposed to custom
// axis/angle).
func (t TwinSpec) IsNamed() bool { return t.Law != "" }

// PhenomenonSpec is a `phenomenon[kind, param: value, ...]` clause.
type PhenomenonSpec struct {
	Kind   string  `json:"kind"`
	Params []Param `json:"params,omitempty"`
}

// Feature is a single bracketed feature annotation: a name plus an ordered
// list of values (numbers, identifiers, or hyphen-joined color chains).
type Feature struct {
	Name   string         `json:"name"`
	Values []FeatureValue `json:"values,omitempty"`
}

// FeatureValueKind discriminates the variant held by a FeatureValue.
type FeatureValueKind int

const (
	FeatureInt FeatureValueKind = iota
	FeatureFloat
	FeatureIdent
	FeatureColorChain
)

// FeatureValue is one value within a Feature's value list.
type FeatureValue struct {
	Kind  FeatureValueKind `json:"-"`
	Int   int              `json:"int,omitempty"`
	Float float64          `json:"float,omitempty"`
	Ident string           `json:"ident,omitempty"` // set for FeatureIdent
	Chain []string         `json:"chain,omitempty"` // set for FeatureColorChain (hyphen-joined identifiers)
}

// MarshalJSON renders only the active variant plus its kind tag, since Kind
// discriminates which of Int/Float/Ident/Chain is meaningful.
func (v FeatureValue) MarshalJSON() ([]byte, error) {
	type alias struct {
		Kind  string   `json:"kind"`
		Int   int      `json:"int,omitempty"`
		Float float64  `json:"float,omitempty"`
		Ident string   `json:"ident,omitempty"`
		Chain []string `json:"chain,omitempty"`
	}
	a := alias{}
	switch v.Kind {
	case FeatureInt:
		a.Kind, a.Int = "int", v.Int
	case FeatureFloat:
		a.Kind, a.Float = "float", v.Float
	case FeatureIdent:
		a.Kind, a.Ident = "ident", v.Ident
	case FeatureColorChain:
		a.Kind, a.Chain = "color_chain", v.Chain
	}
	return json.Marshal(a)
}

// Definition pairs a bareword name with the raw token slice of its
// right-hand side, as captured from an `@name = expr` prelude line. The
// parser resolves references by re-parsing this slice at each `$name` site;
// Definition itself carries no parsed structure.
type Definition struct {
	Name string
	Kind DefinitionKind
	// RawTokens is opaque to this package: internal/parser stores the
	// captured []lexer.Token slice (internal/lexer's token type) here,
	// typed interface{} so that package ast does not import internal/lexer.
	RawTokens interface{}
}

// DefinitionKind distinguishes the three shapes a definition's expression
// may take.
type DefinitionKind int

const (
	DefinitionForm DefinitionKind = iota
	DefinitionFeatures
	DefinitionModifiers
)
