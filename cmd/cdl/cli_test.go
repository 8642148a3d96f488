package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_parseValidStringPrintsText(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "parse", "cubic[m3m]:{111}")
	require.NoError(t, err)
	assert.Contains(t, out, "cubic")
}

func TestCLI_parseValidStringAsJSON(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "parse", "--json", "cubic[m3m]:{111}")
	require.NoError(t, err)
	assert.Contains(t, out, `"system"`)
}

func TestCLI_parseInvalidSyntaxReturnsError(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, "parse", "cubic[m3m]:{")
	assert.Error(t, err)
}

func TestCLI_validateAcceptsWellFormedInput(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "validate", "cubic[m3m]:{111}")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid")
}

func TestCLI_validateRejectsSemanticError(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "validate", "invalid[xxx]:{111}")
	assert.Error(t, err)
	assert.Contains(t, out, "Invalid:")
}

func TestCLI_listSystemsText(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "list", "systems")
	require.NoError(t, err)
	assert.Contains(t, out, "cubic")
}

func TestCLI_listSystemsJSON(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "list", "systems", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "[")
	assert.Contains(t, out, "cubic")
}

func TestCLI_listTwins(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "list", "twins")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestCLI_listPointGroupsFilteredToUnknownSystem(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, "list", "point-groups", "--system", "not_a_system")
	assert.Error(t, err)
}

func TestCLI_schemaEmitsJSONSchema(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "\"$schema\"")
}
