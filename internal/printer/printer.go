// Package printer renders a parsed CDL v2 description tree back into
// canonical source text. It exists to support the idempotence property
// (serializing an accepted tree and re-parsing it yields a structurally
// equal tree) and to back cmd/cdl's default `parse` output.
//
// An Options-configurable type holding an io.Writer and a single
// top-level entry point emits CDL's own grammar.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gemcore/cdl/ast"
)

// Options controls canonical-form rendering. There is currently one knob,
// the Miller-index style; more may be added without breaking callers.
type Options struct {
	// ForceSpacedMiller always renders Miller indices space-separated
	// ("1 0 -1 0") instead of the dense form ("10-10") chosen
	// automatically when every component fits in one digit.
	ForceSpacedMiller bool
}

// DefaultOptions is used by New.
var DefaultOptions = Options{}

// Printer writes canonical CDL text to an underlying io.Writer.
type Printer struct {
	w       io.Writer
	options Options
}

// NewOptions creates a Printer with explicit options.
func NewOptions(w io.Writer, opts Options) *Printer {
	return &Printer{w: w, options: opts}
}

// New creates a Printer with DefaultOptions.
func New(w io.Writer) *Printer {
	return NewOptions(w, DefaultOptions)
}

// Print writes desc's canonical text representation, honoring p's Options.
func (p *Printer) Print(desc ast.Description) error {
	_, err := io.WriteString(p.w, p.options.render(desc))
	return err
}

// String renders desc to its canonical CDL v2 text form directly, without
// requiring a Printer/io.Writer pair — the common case for tests and the
// CLI's default text output. It uses DefaultOptions.
func String(desc ast.Description) string {
	return DefaultOptions.render(desc)
}

func (o Options) render(desc ast.Description) string {
	var b strings.Builder
	switch d := desc.(type) {
	case *ast.CrystallineDescription:
		o.writeCrystalline(&b, d)
	case *ast.AmorphousDescription:
		o.writeAmorphous(&b, d)
	}
	return b.String()
}

func (o Options) writeCrystalline(b *strings.Builder, d *ast.CrystallineDescription) {
	b.WriteString(d.SystemName)
	if d.PointGroup != "" {
		fmt.Fprintf(b, "[%s]", d.PointGroup)
	}
	b.WriteByte(':')
	o.writeFormList(b, d.Forms)
	for _, m := range d.Mods {
		b.WriteString(" | ")
		writeModification(b, m)
	}
	if d.Twin != nil {
		b.WriteString(" | ")
		writeTwin(b, d.Twin)
	}
	if d.Phenomenon != nil {
		b.WriteString(" | ")
		writePhenomenon(b, d.Phenomenon)
	}
}

func (o Options) writeAmorphous(b *strings.Builder, d *ast.AmorphousDescription) {
	b.WriteString("amorphous")
	if d.Subtype != "" {
		fmt.Fprintf(b, "[%s]", d.Subtype)
	}
	b.WriteString(":{")
	b.WriteString(strings.Join(d.Shapes, ","))
	b.WriteByte('}')
	if len(d.Features) > 0 {
		writeFeatures(b, d.Features)
	}
	if d.Phenomenon != nil {
		b.WriteString(" | ")
		writePhenomenon(b, d.Phenomenon)
	}
}

func (o Options) writeFormList(b *strings.Builder, forms []ast.FormNode) {
	for i, f := range forms {
		if i > 0 {
			b.WriteString(" + ")
		}
		o.writeFormNode(b, f)
	}
}

func (o Options) writeFormNode(b *strings.Builder, n ast.FormNode) {
	switch {
	case n.CrystalForm != nil:
		o.writeCrystalForm(b, n.CrystalForm)
	case n.FormGroup != nil:
		o.writeFormGroup(b, n.FormGroup)
	case n.NestedGrowth != nil:
		o.writeFormNode(b, n.NestedGrowth.Base)
		b.WriteString(" > ")
		o.writeFormNode(b, n.NestedGrowth.Overgrowth)
	case n.AggregateSpec != nil:
		o.writeAggregate(b, n.AggregateSpec)
	}
}

func (o Options) writeCrystalForm(b *strings.Builder, f *ast.CrystalForm) {
	if f.Label != "" {
		fmt.Fprintf(b, "%s:", f.Label)
	}
	if f.Name != "" {
		b.WriteString(f.Name)
	} else {
		o.writeMiller(b, f.Miller)
	}
	fmt.Fprintf(b, "@%s", formatFloat(f.Scale))
	if len(f.Features) > 0 {
		writeFeatures(b, f.Features)
	}
}

func (o Options) writeMiller(b *strings.Builder, m ast.MillerIndex) {
	comps := []int{m.H, m.K}
	if m.I != nil {
		comps = append(comps, *m.I)
	}
	comps = append(comps, m.L)

	dense := !o.ForceSpacedMiller
	if dense {
		for _, c := range comps {
			if c < -9 || c > 9 {
				dense = false
				break
			}
		}
	}

	b.WriteByte('{')
	if dense {
		for _, c := range comps {
			if c < 0 {
				fmt.Fprintf(b, "-%d", -c)
			} else {
				fmt.Fprintf(b, "%d", c)
			}
		}
	} else {
		strs := make([]string, len(comps))
		for i, c := range comps {
			strs[i] = strconv.Itoa(c)
		}
		b.WriteString(strings.Join(strs, " "))
	}
	b.WriteByte('}')
}

func (o Options) writeFormGroup(b *strings.Builder, g *ast.FormGroup) {
	b.WriteByte('(')
	if len(g.Variants) > 0 {
		for i, v := range g.Variants {
			if i > 0 {
				b.WriteString(" ; ")
			}
			o.writeFormList(b, v)
		}
	} else {
		o.writeFormList(b, g.Nodes)
	}
	b.WriteByte(')')
	if len(g.Features) > 0 {
		writeFeatures(b, g.Features)
	}
	if g.Twin != nil {
		b.WriteString(" | ")
		writeTwin(b, g.Twin)
	}
}

func (o Options) writeAggregate(b *strings.Builder, a *ast.AggregateSpec) {
	o.writeFormNode(b, a.Inner)
	fmt.Fprintf(b, " ~ %s[%d]", a.Arrangement, a.Count)
	if a.Spacing != "" {
		fmt.Fprintf(b, "@%s", a.Spacing)
	}
	if a.Orientation != "" {
		b.WriteByte('[')
		b.WriteString(a.Orientation)
		if a.OrientationParam != nil {
			fmt.Fprintf(b, ", %s", formatFloat(*a.OrientationParam))
		}
		b.WriteByte(']')
	}
}

func writeFeatures(b *strings.Builder, feats []ast.Feature) {
	b.WriteByte('[')
	for i, f := range feats {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
		for _, v := range f.Values {
			b.WriteByte(':')
			writeFeatureValue(b, v)
		}
	}
	b.WriteByte(']')
}

func writeFeatureValue(b *strings.Builder, v ast.FeatureValue) {
	switch v.Kind {
	case ast.FeatureInt:
		fmt.Fprintf(b, "%d", v.Int)
	case ast.FeatureFloat:
		b.WriteString(formatFloat(v.Float))
	case ast.FeatureIdent:
		b.WriteString(v.Ident)
	case ast.FeatureColorChain:
		b.WriteString(strings.Join(v.Chain, "-"))
	}
}

func writeTwin(b *strings.Builder, t *ast.TwinSpec) {
	b.WriteString("twin(")
	if t.IsNamed() {
		b.WriteString(t.Law)
		if t.Repeat != 0 {
			fmt.Fprintf(b, ", %d", t.Repeat)
		}
	} else {
		fmt.Fprintf(b, "[%d,%d,%d], %s", t.Axis[0], t.Axis[1], t.Axis[2], formatFloat(t.Angle))
		if t.Type != "" {
			fmt.Fprintf(b, ", %s", t.Type)
		}
	}
	b.WriteByte(')')
}

func writePhenomenon(b *strings.Builder, p *ast.PhenomenonSpec) {
	fmt.Fprintf(b, "phenomenon[%s", p.Kind)
	for _, param := range p.Params {
		b.WriteString(", ")
		writeParam(b, param)
	}
	b.WriteByte(']')
}

func writeModification(b *strings.Builder, m ast.Modification) {
	fmt.Fprintf(b, "%s(", m.Kind)
	for i, param := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		writeParam(b, param)
	}
	b.WriteByte(')')
}

func writeParam(b *strings.Builder, p ast.Param) {
	b.WriteString(p.Name)
	b.WriteByte(':')
	if p.IsIdent {
		b.WriteString(p.Ident)
	} else {
		b.WriteString(formatFloat(p.Value))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
