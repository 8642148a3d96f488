// Package catalog holds the immutable domain tables CDL v2 validates
// against: recognized crystal systems, the point groups permitted in each,
// named-form → Miller index mappings, twin laws, amorphous subtypes/shapes,
// and aggregate arrangements/orientations.
//
// Every table here is built once at package init and never mutated; callers
// receive read-only views (plain maps/slices are returned, but by
// convention — mirrored from how the rest of this pipeline treats the
// tree it builds — nothing downstream of catalog ever writes back into
// them).
package catalog

// System names a recognized crystal system, or the amorphous pseudo-system.
type System string

const (
	Cubic        System = "cubic"
	Hexagonal    System = "hexagonal"
	Trigonal     System = "trigonal"
	Tetragonal   System = "tetragonal"
	Orthorhombic System = "orthorhombic"
	Monoclinic   System = "monoclinic"
	Triclinic    System = "triclinic"
	Amorphous    System = "amorphous"
)

// CrystalSystems lists every recognized system, including amorphous.
var CrystalSystems = []System{
	Cubic, Hexagonal, Trigonal, Tetragonal, Orthorhombic, Monoclinic, Triclinic, Amorphous,
}

// PointGroups lists, per crystalline system, the point-group symbols CDL
// accepts in a `[...]` bracket immediately following the system keyword.
// These are the standard 32 crystal classes grouped by system.
var PointGroups = map[System][]string{
	Cubic:        {"23", "m3", "432", "-43m", "m3m"},
	Hexagonal:    {"6", "-6", "6/m", "622", "6mm", "-6m2", "6/mmm"},
	Trigonal:     {"3", "-3", "32", "3m", "-3m"},
	Tetragonal:   {"4", "-4", "4/m", "422", "4mm", "-42m", "4/mmm"},
	Orthorhombic: {"222", "mm2", "mmm"},
	Monoclinic:   {"2", "m", "2/m"},
	Triclinic:    {"1", "-1"},
}

// DefaultPointGroups holds the highest-symmetry point group for each
// crystalline system, used when a description omits its `[...]` bracket.
var DefaultPointGroups = map[System]string{
	Cubic:        "m3m",
	Hexagonal:    "6/mmm",
	Trigonal:     "-3m",
	Tetragonal:   "4/mmm",
	Orthorhombic: "mmm",
	Monoclinic:   "2/m",
	Triclinic:    "-1",
}

// MillerIndex is a catalog-level Miller or Miller-Bravais index: three
// components, or four when I is non-nil (and I = -(H+K) holds by
// construction for every entry here).
type MillerIndex struct {
	H, K, L int
	I       *int
}

func idx3(h, k, l int) MillerIndex {
	return MillerIndex{H: h, K: k, L: l}
}

func idx4(h, k, i, l int) MillerIndex {
	v := i
	return MillerIndex{H: h, K: k, L: l, I: &v}
}

// NamedForms maps a bareword form name to its canonical Miller index, scoped
// to the crystal systems where the name applies.
var NamedForms = map[System]map[string]MillerIndex{
	Cubic: {
		"cube":           idx3(1, 0, 0),
		"octahedron":     idx3(1, 1, 1),
		"dodecahedron":   idx3(1, 1, 0),
		"trapezohedron":  idx3(2, 1, 1),
		"trisoctahedron": idx3(2, 2, 1),
		"tetrahexahedron": idx3(2, 1, 0),
		"hexoctahedron":  idx3(3, 2, 1),
	},
	Hexagonal: {
		"prism":          idx4(1, 0, -1, 0),
		"prism_1":        idx4(1, 0, -1, 0),
		"prism_2":        idx4(1, 1, -2, 0),
		"basal":          idx4(0, 0, 0, 1),
		"pinacoid":       idx4(0, 0, 0, 1),
		"rhombohedron":   idx4(1, 0, -1, 1),
		"rhombohedron_r": idx4(1, 0, -1, 1),
		"rhombohedron_z": idx4(0, 1, -1, 1),
		"pyramid":        idx4(1, 0, -1, 1),
		"dipyramid":      idx4(1, 0, -1, 2),
		"scalenohedron":  idx4(2, 1, -3, 1),
	},
	Trigonal: {
		"prism":          idx4(1, 0, -1, 0),
		"prism_1":        idx4(1, 0, -1, 0),
		"prism_2":        idx4(1, 1, -2, 0),
		"basal":          idx4(0, 0, 0, 1),
		"pinacoid":       idx4(0, 0, 0, 1),
		"rhombohedron":   idx4(1, 0, -1, 1),
		"rhombohedron_r": idx4(1, 0, -1, 1),
		"rhombohedron_z": idx4(0, 1, -1, 1),
		"pyramid":        idx4(1, 0, -1, 1),
		"dipyramid":      idx4(1, 0, -1, 2),
		"scalenohedron":  idx4(2, 1, -3, 1),
	},
	Tetragonal: {
		"prism":      idx3(1, 1, 0),
		"prism_1":    idx3(1, 0, 0),
		"prism_2":    idx3(1, 1, 0),
		"pyramid":    idx3(1, 1, 1),
		"dipyramid":  idx3(1, 1, 2),
		"bipyramid":  idx3(1, 1, 2),
	},
}

// TwinLaws is the closed set of recognized named twin laws.
var TwinLaws = set(
	"spinel", "spinel_law", "iron_cross", "fluorite", "brazil", "dauphine",
	"japan", "carlsbad", "baveno", "manebach", "albite", "pericline",
	"gypsum_swallow", "staurolite_60", "staurolite_90", "trilling", "sixling",
)

// AmorphousSubtypes is the closed set of recognized amorphous subtypes.
var AmorphousSubtypes = set(
	"opalescent", "glassy", "waxy", "resinous", "cryptocrystalline",
)

// AmorphousShapes is the closed set of recognized external shape descriptors
// for amorphous materials.
var AmorphousShapes = set(
	"massive", "botryoidal", "reniform", "stalactitic", "mammillary",
	"nodular", "conchoidal",
)

// AggregateArrangements is the closed set of recognized aggregate
// arrangement names.
var AggregateArrangements = set(
	"parallel", "random", "radial", "epitaxial", "druse", "cluster",
)

// AggregateOrientations is the closed set of recognized aggregate
// orientation names.
var AggregateOrientations = set(
	"aligned", "random", "planar", "spherical",
)

// Modifications is the closed set of recognized modification kinds.
var Modifications = set(
	"elongate", "truncate", "taper", "flatten", "bevel",
)

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// IsSystem reports whether name is one of the recognized crystal systems
// (including amorphous).
func IsSystem(name string) bool {
	for _, s := range CrystalSystems {
		if string(s) == name {
			return true
		}
	}
	return false
}

// IsPointGroup reports whether group is a member of sys's point-group set.
func IsPointGroup(sys System, group string) bool {
	for _, g := range PointGroups[sys] {
		if g == group {
			return true
		}
	}
	return false
}

// LookupNamedForm resolves name to a Miller index within sys, reporting
// false if name is not a recognized form for that system.
func LookupNamedForm(sys System, name string) (MillerIndex, bool) {
	forms, ok := NamedForms[sys]
	if !ok {
		return MillerIndex{}, false
	}
	idx, ok := forms[name]
	return idx, ok
}

func has(m map[string]struct{}, name string) bool {
	_, ok := m[name]
	return ok
}

// IsTwinLaw reports whether name is a recognized twin law.
func IsTwinLaw(name string) bool { return has(TwinLaws, name) }

// IsAmorphousSubtype reports whether name is a recognized amorphous subtype.
func IsAmorphousSubtype(name string) bool { return has(AmorphousSubtypes, name) }

// IsAmorphousShape reports whether name is a recognized amorphous shape.
func IsAmorphousShape(name string) bool { return has(AmorphousShapes, name) }

// IsAggregateArrangement reports whether name is a recognized aggregate
// arrangement.
func IsAggregateArrangement(name string) bool { return has(AggregateArrangements, name) }

// IsAggregateOrientation reports whether name is a recognized aggregate
// orientation.
func IsAggregateOrientation(name string) bool { return has(AggregateOrientations, name) }

// IsModification reports whether name is a recognized modification kind.
func IsModification(name string) bool { return has(Modifications, name) }
