package main

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
)

// newSchemaCmd builds `cdl schema`, which prints a JSON Schema describing
// the wire shape of ast.Description — useful for downstream tooling that
// wants to validate the `--json` output of `cdl parse` without depending
// on this module's Go types directly.
func newSchemaCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for a parsed description tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderAny(cmd, opts, descriptionSchema(), func() error {
				return writeJSON(cmd.OutOrStdout(), descriptionSchema())
			})
		},
	}
}

func descriptionSchema() *jsonschema.Schema {
	millerIndex := objectSchema(map[string]*jsonschema.Schema{
		"h": integerSchema(),
		"k": integerSchema(),
		"l": integerSchema(),
		"i": integerSchema(),
	}, []string{"h", "k", "l"})

	featureValue := objectSchema(map[string]*jsonschema.Schema{
		"kind":  stringEnumSchema("int", "float", "ident", "color_chain"),
		"int":   integerSchema(),
		"float": numberSchema(),
		"ident": stringSchema(),
		"chain": arraySchema(stringSchema()),
	}, []string{"kind"})

	feature := objectSchema(map[string]*jsonschema.Schema{
		"name":   stringSchema(),
		"values": arraySchema(featureValue),
	}, []string{"name"})

	param := objectSchema(map[string]*jsonschema.Schema{
		"name":     stringSchema(),
		"value":    numberSchema(),
		"ident":    stringSchema(),
		"is_ident": booleanSchema(),
	}, []string{"name", "is_ident"})

	twin := objectSchema(map[string]*jsonschema.Schema{
		"law":    stringSchema(),
		"repeat": integerSchema(),
		"axis":   arraySchema(integerSchema()),
		"angle":  numberSchema(),
		"type":   stringSchema(),
	}, nil)

	phenomenon := objectSchema(map[string]*jsonschema.Schema{
		"kind":   stringSchema(),
		"params": arraySchema(param),
	}, []string{"kind"})

	crystalForm := objectSchema(map[string]*jsonschema.Schema{
		"miller":   millerIndex,
		"scale":    numberSchema(),
		"name":     stringSchema(),
		"features": arraySchema(feature),
		"label":    stringSchema(),
	}, []string{"miller", "scale"})

	// formNode, formGroup, nestedGrowth, and aggregate are mutually
	// recursive; jsonschema-go has no $ref plumbing exercised by this
	// pipeline's examples, so we bound the recursion at a fixed depth
	// matching how deeply a hand-written CDL string realistically nests.
	const maxDepth = 6

	var formNode func(depth int) *jsonschema.Schema
	formNode = func(depth int) *jsonschema.Schema {
		if depth <= 0 {
			return &jsonschema.Schema{}
		}

		child := formNode(depth - 1)

		formGroup := objectSchema(map[string]*jsonschema.Schema{
			"nodes":    arraySchema(child),
			"features": arraySchema(feature),
			"label":    stringSchema(),
			"twin":     twin,
			"variants": arraySchema(arraySchema(child)),
		}, []string{"nodes"})

		nestedGrowth := objectSchema(map[string]*jsonschema.Schema{
			"base":       child,
			"overgrowth": child,
		}, []string{"base", "overgrowth"})

		aggregate := objectSchema(map[string]*jsonschema.Schema{
			"inner":             child,
			"arrangement":       stringSchema(),
			"count":             integerSchema(),
			"spacing":           stringSchema(),
			"orientation":       stringSchema(),
			"orientation_param": numberSchema(),
		}, []string{"inner", "arrangement", "count"})

		return objectSchema(map[string]*jsonschema.Schema{
			"crystal_form":  crystalForm,
			"form_group":    formGroup,
			"nested_growth": nestedGrowth,
			"aggregate":     aggregate,
		}, nil)
	}

	crystalline := objectSchema(map[string]*jsonschema.Schema{
		"system":      stringSchema(),
		"point_group": stringSchema(),
		"forms":       arraySchema(formNode(maxDepth)),
		"mods": arraySchema(objectSchema(map[string]*jsonschema.Schema{
			"kind":   stringSchema(),
			"params": arraySchema(param),
		}, []string{"kind"})),
		"twin":       twin,
		"phenomenon": phenomenon,
	}, []string{"system", "forms"})

	amorphous := objectSchema(map[string]*jsonschema.Schema{
		"subtype":    stringSchema(),
		"shapes":     arraySchema(stringSchema()),
		"features":   arraySchema(feature),
		"phenomenon": phenomenon,
	}, []string{"shapes"})

	return &jsonschema.Schema{
		Schema: "http://json-schema.org/draft-07/schema#",
		Title:  "CDL v2 description",
		AnyOf:  []*jsonschema.Schema{crystalline, amorphous},
	}
}

func objectSchema(props map[string]*jsonschema.Schema, required []string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

func arraySchema(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

func stringSchema() *jsonschema.Schema  { return &jsonschema.Schema{Type: "string"} }
func integerSchema() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} }
func numberSchema() *jsonschema.Schema  { return &jsonschema.Schema{Type: "number"} }
func booleanSchema() *jsonschema.Schema { return &jsonschema.Schema{Type: "boolean"} }

func stringEnumSchema(values ...string) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}
