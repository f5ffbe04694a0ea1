package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/optstore/internal/options"
)

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	got, err := ParseAssignments([]string{
		"categorical_threshold=0.5",
		"numeric_categorical_threshold=null",
		"email_inference_regex=[a-z]+@corp",
		"quoted='0.5'",
		"count=3",
		"flag=true",
		"empty=",
		"pattern=^a # b$",
	})
	require.NoError(t, err)

	want := []options.Override{
		{Key: "categorical_threshold", Value: 0.5},
		{Key: "numeric_categorical_threshold", Value: nil},
		{Key: "email_inference_regex", Value: "[a-z]+@corp"},
		{Key: "quoted", Value: "0.5"},
		{Key: "count", Value: 3.0},
		{Key: "flag", Value: true},
		{Key: "empty", Value: ""},
		{Key: "pattern", Value: "^a # b$"},
	}
	assert.Equal(t, want, got)
}

func TestParseAssignmentsRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"noequals", "=value", " =1", "x=.inf", "x=-.inf", "x=.nan", "x=.NaN"} {
		_, err := ParseAssignments([]string{raw})
		assert.Error(t, err, "assignment %q", raw)
	}
}

func TestParseAssignmentsRejectsNonFiniteNumbers(t *testing.T) {
	t.Parallel()

	_, err := ParseAssignments([]string{"categorical_threshold=.inf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categorical_threshold")
	assert.Contains(t, err.Error(), "finite")
}
