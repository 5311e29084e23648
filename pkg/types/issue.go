// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidContext is returned when a mapping context cannot scope a conversion.
var ErrInvalidContext = errors.New("invalid mapping context")

// Severity classifies a validation issue.
type Severity string

const (
	// SeverityWarning does not block descriptor emission.
	SeverityWarning Severity = "warn"

	// SeverityError blocks descriptor emission for the affected field.
	SeverityError Severity = "error"
)

// MappingContext identifies the scope of one conversion: the target template,
// the source channel and the content type.
type MappingContext struct {
	TemplateID  int    `json:"templateId" yaml:"templateId"`
	ChannelID   int    `json:"channelId" yaml:"channelId"`
	ContentType string `json:"contentType" yaml:"contentType"`
}

// Validate checks the context is usable as a mapping scope.
func (c MappingContext) Validate() error {
	if c.TemplateID <= 0 {
		return fmt.Errorf("%w: template id must be positive, got %d", ErrInvalidContext, c.TemplateID)
	}
	if c.ContentType == "" {
		return fmt.Errorf("%w: content type must not be empty", ErrInvalidContext)
	}
	return nil
}

func (c MappingContext) String() string {
	return fmt.Sprintf("channel %d / %s (template %d)", c.ChannelID, c.ContentType, c.TemplateID)
}

// ValidationIssue is one problem found while mapping a field.
type ValidationIssue struct {
	FieldName string         `json:"fieldName" yaml:"fieldName"`
	Message   string         `json:"message" yaml:"message"`
	Severity  Severity       `json:"severity" yaml:"severity"`
	Context   MappingContext `json:"context" yaml:"context"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.FieldName, i.Message)
}

// Issues is an ordered list of validation issues.
type Issues []ValidationIssue

// HasErrors reports whether any issue has error severity.
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of errors and warnings.
func (is Issues) Count() (errors, warnings int) {
	for _, i := range is {
		switch i.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
