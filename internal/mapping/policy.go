// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/propmap/propmap/pkg/types"
)

// Rule identifies one business rule that can record an issue.
type Rule string

const (
	RuleMissingName         Rule = "missing-name"
	RuleMissingDisplayName  Rule = "missing-display-name"
	RuleMissingDataKind     Rule = "missing-data-kind"
	RuleMissingWidgetKind   Rule = "missing-widget-kind"
	RuleZeroCardinality     Rule = "zero-cardinality"
	RuleUnsupportedWidget   Rule = "unsupported-widget"
	RuleUnknownType         Rule = "unknown-type"
	RuleListCardinality     Rule = "list-cardinality"
	RuleNumberCardinality   Rule = "number-cardinality"
	RuleDateCardinality     Rule = "date-cardinality"
	RuleImageShape          Rule = "image-shape"
	RuleLongTextCardinality Rule = "long-text-cardinality"
	RuleTextCardinality     Rule = "text-cardinality"
	RuleFilteredTextWidget  Rule = "filtered-text-widget"
	RuleUnsupportedKind     Rule = "unsupported-kind"
	RuleTermsUnavailable    Rule = "terms-unavailable"
	RuleNameGeneration      Rule = "name-generation"
	RuleSpecialName         Rule = "special-name"
)

// Mode decides how a rule turns into a severity.
type Mode string

const (
	// ModeFollowRequired yields an error for required fields and a warning otherwise.
	ModeFollowRequired Mode = "required"

	// ModeError always yields an error.
	ModeError Mode = "error"

	// ModeWarning always yields a warning.
	ModeWarning Mode = "warn"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeFollowRequired || m == ModeError || m == ModeWarning
}

// Policy maps rules to severity modes. Rules missing from the policy follow
// the required flag.
type Policy map[Rule]Mode

// DefaultPolicy returns the standard severity table.
func DefaultPolicy() Policy {
	p := make(Policy, len(allRules))
	for _, r := range allRules {
		p[r] = ModeFollowRequired
	}
	p[RuleMissingName] = ModeError
	p[RuleUnknownType] = ModeError
	return p
}

var allRules = []Rule{
	RuleMissingName,
	RuleMissingDisplayName,
	RuleMissingDataKind,
	RuleMissingWidgetKind,
	RuleZeroCardinality,
	RuleUnsupportedWidget,
	RuleUnknownType,
	RuleListCardinality,
	RuleNumberCardinality,
	RuleDateCardinality,
	RuleImageShape,
	RuleLongTextCardinality,
	RuleTextCardinality,
	RuleFilteredTextWidget,
	RuleUnsupportedKind,
	RuleTermsUnavailable,
	RuleNameGeneration,
	RuleSpecialName,
}

// Rules returns all known rules in declaration order.
func Rules() []Rule {
	return append([]Rule(nil), allRules...)
}

// IsKnownRule reports whether name is a declared rule.
func IsKnownRule(name string) bool {
	for _, r := range allRules {
		if string(r) == name {
			return true
		}
	}
	return false
}

// Severity resolves the severity of rule for a field with the given
// required flag.
func (p Policy) Severity(rule Rule, required bool) types.Severity {
	mode, ok := p[rule]
	if !ok {
		mode = ModeFollowRequired
	}

	switch mode {
	case ModeError:
		return types.SeverityError
	case ModeWarning:
		return types.SeverityWarning
	default:
		if required {
			return types.SeverityError
		}
		return types.SeverityWarning
	}
}

// With returns a copy of the policy with overrides applied. Keys are rule
// names, values are modes. Unknown rules or modes are reported together.
func (p Policy) With(overrides map[string]string) (Policy, error) {
	out := make(Policy, len(p)+len(overrides))
	for r, m := range p {
		out[r] = m
	}

	var bad []string
	for name, mode := range overrides {
		if !IsKnownRule(name) {
			bad = append(bad, fmt.Sprintf("unknown rule %q", name))
			continue
		}
		m := Mode(strings.ToLower(mode))
		if !m.Valid() {
			bad = append(bad, fmt.Sprintf("invalid mode %q for rule %q", mode, name))
			continue
		}
		out[Rule(name)] = m
	}

	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, fmt.Errorf("invalid severity policy: %s", strings.Join(bad, "; "))
	}
	return out, nil
}
