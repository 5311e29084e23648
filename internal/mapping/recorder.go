// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"fmt"

	"github.com/propmap/propmap/pkg/types"
)

// requiredFieldNote is appended to errors raised for required fields.
const requiredFieldNote = "(This is a required field. However, it could not be imported.)"

// recorder collects the issues of one conversion call.
type recorder struct {
	policy Policy
	ctx    types.MappingContext
	issues types.Issues
}

func newRecorder(policy Policy, ctx types.MappingContext) *recorder {
	return &recorder{policy: policy, ctx: ctx}
}

// add records an issue for rule. The severity comes from the policy and the
// required flag.
func (r *recorder) add(fieldName string, required bool, rule Rule, format string, args ...any) types.Severity {
	severity := r.policy.Severity(rule, required)
	msg := fmt.Sprintf(format, args...)
	if required && severity == types.SeverityError {
		msg += " " + requiredFieldNote
	}

	r.issues = append(r.issues, types.ValidationIssue{
		FieldName: fieldName,
		Message:   msg,
		Severity:  severity,
		Context:   r.ctx,
	})
	return severity
}

// warn records a warning regardless of policy.
func (r *recorder) warn(fieldName, format string, args ...any) {
	r.issues = append(r.issues, types.ValidationIssue{
		FieldName: fieldName,
		Message:   fmt.Sprintf(format, args...),
		Severity:  types.SeverityWarning,
		Context:   r.ctx,
	})
}

// mark returns a position usable with hasErrorsSince.
func (r *recorder) mark() int {
	return len(r.issues)
}

// hasErrorsSince reports whether an error was recorded after mark.
func (r *recorder) hasErrorsSince(mark int) bool {
	return r.issues[mark:].HasErrors()
}
