// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/pkg/types"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.Len(t, p, len(Rules()))
	assert.Equal(t, types.SeverityError, p.Severity(RuleMissingName, false))
	assert.Equal(t, types.SeverityError, p.Severity(RuleUnknownType, false))
	assert.Equal(t, types.SeverityError, p.Severity(RuleZeroCardinality, true))
	assert.Equal(t, types.SeverityWarning, p.Severity(RuleZeroCardinality, false))
}

func TestPolicy_SeverityUnknownRule(t *testing.T) {
	p := Policy{}

	assert.Equal(t, types.SeverityError, p.Severity(Rule("custom"), true))
	assert.Equal(t, types.SeverityWarning, p.Severity(Rule("custom"), false))
}

func TestPolicy_With(t *testing.T) {
	base := DefaultPolicy()

	p, err := base.With(map[string]string{
		"text-cardinality": "ERROR",
		"missing-name":     "warn",
	})

	require.NoError(t, err)
	assert.Equal(t, ModeError, p[RuleTextCardinality])
	assert.Equal(t, ModeWarning, p[RuleMissingName])
	assert.Equal(t, ModeError, base[RuleMissingName], "base policy is untouched")
}

func TestPolicy_WithInvalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   string
	}{
		{"unknown rule", map[string]string{"bogus": "error"}, `unknown rule "bogus"`},
		{"invalid mode", map[string]string{"image-shape": "fatal"}, `invalid mode "fatal"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultPolicy().With(tt.overrides)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsKnownRule(t *testing.T) {
	for _, r := range Rules() {
		assert.True(t, IsKnownRule(string(r)), r)
	}
	assert.False(t, IsKnownRule("nope"))
}
