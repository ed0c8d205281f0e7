package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEvalFormulaBasics(t *testing.T) {
	vars := map[string]float64{"badges": 3, "playtime": 120, "level": 25}

	cases := []struct {
		formula string
		want    int
	}{
		{"10 + badges * 10", 40},
		{"15 + badges * 10", 45},
		{"(badges + 1) * 12", 48},
		{"playtime / 60", 2},
		{"100 - level", 75},
		{"-5 + 10", 5},
		{"50", 50},
		{"7 / 2", 3}, // floored
	}
	for _, tc := range cases {
		got, err := EvalFormula(tc.formula, vars)
		require.NoError(t, err, tc.formula)
		assert.Equal(t, tc.want, got, tc.formula)
	}
}

func TestEvalFormulaCaseInsensitiveVariables(t *testing.T) {
	got, err := EvalFormula("Badges * 2", map[string]float64{"badges": 4})
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestEvalFormulaErrors(t *testing.T) {
	vars := map[string]float64{"badges": 3}

	for _, formula := range []string{
		"",
		"10 +",
		"10 +* badges",
		"(badges + 1",
		"badges ** 2",
		"10 / 0",
		"nope + 1",
		"badges; drop table users",
		"1..2 + 3",
	} {
		_, err := EvalFormula(formula, vars)
		assert.Error(t, err, "formula %q should fail", formula)
	}
}

func TestEvalFormulaNeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		formula := rapid.StringMatching(`[0-9a-z+\-*/() .]{0,30}`).Draw(t, "formula")
		_, _ = EvalFormula(formula, map[string]float64{"badges": 1, "playtime": 2, "level": 3})
	})
}
