// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/propmap/propmap/internal/util"
	"github.com/propmap/propmap/pkg/types"
)

// MaxNameLength is the hard limit on generated property names.
const MaxNameLength = 30

// machineNamePrefix is stripped from machine names before they are used.
const machineNamePrefix = "field_"

// Name suffixes of derived descriptors.
const (
	SuffixSummary     = "_SUM"
	SuffixDescription = "_DES"
	SuffixDisplay     = "_DIS"
)

// Role selects the prefix of a generated name.
type Role int

const (
	// RolePrimary names the descriptor that represents the field itself.
	RolePrimary Role = iota

	// RoleFileSibling names the file paired with a file selector.
	RoleFileSibling

	// RoleArticleComponentSibling names the component paired with an
	// article component selector.
	RoleArticleComponentSibling
)

// Prefix returns the fixed name prefix of the role.
func (r Role) Prefix() string {
	if r == RolePrimary {
		return "C_DPF_"
	}
	return "C_DPF_F_"
}

func (r Role) String() string {
	switch r {
	case RoleFileSibling:
		return "file"
	case RoleArticleComponentSibling:
		return "articlecomponent"
	default:
		return "primary"
	}
}

var rolePatterns = map[string]*regexp.Regexp{}

func init() {
	for _, r := range []Role{RolePrimary, RoleFileSibling} {
		p := r.Prefix()
		rolePatterns[p] = regexp.MustCompile("^" + regexp.QuoteMeta(p) + `[0-9]+_[0-9]+_[A-Z0-9_]*$`)
	}
}

var specialNamePattern = regexp.MustCompile(`^C_DPF_[0-9]+_[A-Z0-9_]*$`)

var upper = cases.Upper(language.Und)

// ComposeName builds the truncated, unvalidated name for a field.
func ComposeName(templateID, fieldID int, machineName string, role Role, suffix string) string {
	sanitized := upper.String(strings.TrimPrefix(machineName, machineNamePrefix))

	var b strings.Builder
	b.WriteString(role.Prefix())
	b.WriteString(strconv.Itoa(templateID))
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(fieldID))
	b.WriteString(suffix)
	b.WriteByte('_')
	b.WriteString(sanitized)

	return util.Truncate(b.String(), MaxNameLength)
}

// ValidName reports whether name is acceptable for the role.
func ValidName(name string, role Role) bool {
	if len(name) > MaxNameLength {
		return false
	}
	return rolePatterns[role.Prefix()].MatchString(name)
}

// SpecialName builds the name of a content type level property.
func SpecialName(templateID int, suffix string) string {
	return util.Truncate("C_DPF_"+strconv.Itoa(templateID)+suffix, MaxNameLength)
}

// ValidSpecialName reports whether name is acceptable for a content type
// level property.
func ValidSpecialName(name string) bool {
	return len(name) <= MaxNameLength && specialNamePattern.MatchString(name)
}

// generateName composes and validates the name of a field descriptor. A
// rejected name is recorded as an issue.
func generateName(f *types.SourceField, role Role, suffix string, rec *recorder) (string, bool) {
	name := ComposeName(rec.ctx.TemplateID, f.ID, f.MachineName, role, suffix)
	if !ValidName(name, role) {
		rec.add(issueName(f), f.Required, RuleNameGeneration,
			"The generated Property name did not pass validation. Entered name: '%s'.", name)
		return "", false
	}
	return name, true
}
