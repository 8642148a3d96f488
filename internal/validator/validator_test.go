package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemcore/cdl"
)

func TestValidate_acceptsWellFormedCrystalline(t *testing.T) {
	t.Parallel()

	ok, reason := cdl.Validate("cubic[m3m]:{111}")
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestValidate_acceptsFourIndexOnTrigonal(t *testing.T) {
	t.Parallel()

	ok, reason := cdl.Validate("trigonal[32]:{10-10}@1.0 + {10-11}@0.8")
	assert.True(t, ok, reason)
}

func TestValidate_rejectsUnknownSystem(t *testing.T) {
	t.Parallel()

	ok, reason := cdl.Validate("invalid[xxx]:{111}")
	assert.False(t, ok)
	assert.Contains(t, reason, "invalid")
}

func TestValidate_rejectsFourIndexOnCubic(t *testing.T) {
	t.Parallel()

	ok, reason := cdl.Validate("cubic[m3m]:{10-12}")
	assert.False(t, ok)
	assert.Contains(t, reason, "cubic")
}

func TestValidate_rejectsPointGroupNotInSystem(t *testing.T) {
	t.Parallel()

	ok, reason := cdl.Validate("trigonal[m3m]:{100}")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestValidate_rejectsBrokenMillerBravais(t *testing.T) {
	t.Parallel()

	// i must equal -(h+k); -(1+0) = -1, not -2.
	ok, reason := cdl.Validate("trigonal[32]:{10-20}")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestValidate_rejectsUnknownTwinLaw(t *testing.T) {
	t.Parallel()

	ok, _ := cdl.Validate("cubic[m3m]:{111} | twin(not_a_real_law)")
	assert.False(t, ok)
}

func TestValidate_rejectsTwinRepeatBelowTwo(t *testing.T) {
	t.Parallel()

	ok, _ := cdl.Validate("cubic[m3m]:{111} | twin(spinel, 1)")
	assert.False(t, ok)
}

func TestValidate_rejectsUnknownModification(t *testing.T) {
	t.Parallel()

	ok, _ := cdl.Validate("cubic[m3m]:{100} | not_a_real_modifier(x:1)")
	assert.False(t, ok)
}

func TestValidate_rejectsUnknownAggregateArrangement(t *testing.T) {
	t.Parallel()

	ok, _ := cdl.Validate("cubic[m3m]:{111} ~ not_a_real_arrangement[4]")
	assert.False(t, ok)
}

func TestValidate_rejectsUnknownAmorphousSubtype(t *testing.T) {
	t.Parallel()

	ok, _ := cdl.Validate("amorphous[not_a_real_subtype]:{massive}")
	assert.False(t, ok)
}

func TestValidate_rejectsUnknownAmorphousShape(t *testing.T) {
	t.Parallel()

	ok, _ := cdl.Validate("amorphous[glassy]:{not_a_real_shape}")
	assert.False(t, ok)
}

func TestValidate_acceptsUnknownFeatureAndPhenomenonNames(t *testing.T) {
	t.Parallel()

	// Unknown feature/phenomenon names are forward-compatible, not errors.
	ok, reason := cdl.Validate("cubic[m3m]:{111}[made_up_feature:7] | phenomenon[made_up_phenomenon]")
	assert.True(t, ok, reason)
}

func TestValidate_everyAcceptedParseIsValid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"cubic[m3m]:{111}",
		"cubic:{100} + {111}",
		"hexagonal[6/mmm]:{10-10}",
		"trigonal[32]:{10-10} ~ cluster[3][aligned]",
		"amorphous:{massive}",
		"amorphous[opalescent]:{botryoidal,nodular}",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			desc, err := cdl.Parse(in)
			require.NoError(t, err)
			ok, reason := cdl.Validate(in)
			assert.True(t, ok, reason)
			assert.NotNil(t, desc)
		})
	}
}
