// Package validator checks a parsed CDL description tree against the
// domain constraints: recognized systems, point-group membership,
// Miller-Bravais consistency, and closed catalogs for twin laws,
// modification kinds, amorphous subtypes/shapes, and aggregate
// arrangements/orientations. It never mutates the tree it receives.
package validator

import (
	"fmt"

	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/catalog"
)

// Error is a semantic failure: the tree was syntactically well-formed but
// violates a domain constraint. Reason is a short, human-readable
// diagnostic; Path names the part of the tree that failed, when known.
type Error struct {
	Reason string
	Path   string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

func errf(path, format string, args ...interface{}) *Error {
	return &Error{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Validate runs the ordered domain checks over desc and returns the first
// violation found, or nil if desc is valid.
func Validate(desc ast.Description) error {
	switch d := desc.(type) {
	case *ast.CrystallineDescription:
		return validateCrystalline(d)
	case *ast.AmorphousDescription:
		return validateAmorphous(d)
	default:
		return errf("", "unrecognized description type %T", desc)
	}
}

func validateCrystalline(d *ast.CrystallineDescription) error {
	sys := catalog.System(d.SystemName)
	if !catalog.IsSystem(d.SystemName) || sys == catalog.Amorphous {
		return errf("system", "unknown crystal system %q", d.SystemName)
	}

	if d.PointGroup != "" && !catalog.IsPointGroup(sys, d.PointGroup) {
		return errf("point_group", "point group %q is not valid for system %q", d.PointGroup, d.SystemName)
	}

	for i, f := range d.Forms {
		if err := validateFormNode(fmt.Sprintf("forms[%d]", i), sys, f); err != nil {
			return err
		}
	}

	if d.Twin != nil {
		if err := validateTwin("twin", d.Twin); err != nil {
			return err
		}
	}

	for i, m := range d.Mods {
		if !catalog.IsModification(m.Kind) {
			return errf(fmt.Sprintf("mods[%d]", i), "unknown modification kind %q", m.Kind)
		}
	}

	return nil
}

func validateFormNode(path string, sys catalog.System, n ast.FormNode) error {
	switch {
	case n.CrystalForm != nil:
		if n.CrystalForm.Scale < 0 {
			return errf(path+".scale", "scale must be non-negative, got %g", n.CrystalForm.Scale)
		}
		return validateMiller(path+".miller", sys, n.CrystalForm.Miller)
	case n.FormGroup != nil:
		g := n.FormGroup
		for i, c := range g.Nodes {
			if err := validateFormNode(fmt.Sprintf("%s.nodes[%d]", path, i), sys, c); err != nil {
				return err
			}
		}
		for vi, variant := range g.Variants {
			for i, c := range variant {
				if err := validateFormNode(fmt.Sprintf("%s.variants[%d][%d]", path, vi, i), sys, c); err != nil {
					return err
				}
			}
		}
		if g.Twin != nil {
			if err := validateTwin(path+".twin", g.Twin); err != nil {
				return err
			}
		}
		return nil
	case n.NestedGrowth != nil:
		if err := validateFormNode(path+".base", sys, n.NestedGrowth.Base); err != nil {
			return err
		}
		return validateFormNode(path+".overgrowth", sys, n.NestedGrowth.Overgrowth)
	case n.AggregateSpec != nil:
		return validateAggregate(path, sys, n.AggregateSpec)
	default:
		return errf(path, "empty form node")
	}
}

func validateMiller(path string, sys catalog.System, m ast.MillerIndex) error {
	if m.Is4Index() {
		if sys != catalog.Hexagonal && sys != catalog.Trigonal {
			return errf(path, "4-index Miller-Bravais index is only valid for hexagonal/trigonal systems, got %q", sys)
		}
		if *m.I != -(m.H + m.K) {
			return errf(path, "Miller-Bravais index invalid: i (%d) must equal -(h+k) (%d)", *m.I, -(m.H + m.K))
		}
	}
	return nil
}

func validateAggregate(path string, sys catalog.System, a *ast.AggregateSpec) error {
	if !catalog.IsAggregateArrangement(a.Arrangement) {
		return errf(path+".arrangement", "unknown aggregate arrangement %q", a.Arrangement)
	}
	if a.Orientation != "" && !catalog.IsAggregateOrientation(a.Orientation) {
		return errf(path+".orientation", "unknown aggregate orientation %q", a.Orientation)
	}
	if a.Count < 0 {
		return errf(path+".count", "aggregate count must be non-negative, got %d", a.Count)
	}
	return validateFormNode(path+".inner", sys, a.Inner)
}

func validateTwin(path string, t *ast.TwinSpec) error {
	if !t.IsNamed() {
		return nil
	}
	if !catalog.IsTwinLaw(t.Law) {
		return errf(path+".law", "unknown twin law %q", t.Law)
	}
	if t.Repeat != 0 && t.Repeat < 2 {
		return errf(path+".repeat", "twin repeat count must be >= 2, got %d", t.Repeat)
	}
	return nil
}

func validateAmorphous(d *ast.AmorphousDescription) error {
	if d.Subtype != "" && !catalog.IsAmorphousSubtype(d.Subtype) {
		return errf("subtype", "unknown amorphous subtype %q", d.Subtype)
	}
	for i, s := range d.Shapes {
		if !catalog.IsAmorphousShape(s) {
			return errf(fmt.Sprintf("shapes[%d]", i), "unknown amorphous shape %q", s)
		}
	}
	return nil
}
