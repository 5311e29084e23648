// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package canonical provides the profile for exports already written in
// propmap's own field layout (machine_name, data_kind, widget_kind).
package canonical

import (
	"fmt"

	"github.com/propmap/propmap/internal/mapping"
	"github.com/propmap/propmap/internal/profile"
	"github.com/propmap/propmap/pkg/types"
)

// Profile implements profile.Profile for canonical exports.
type Profile struct{}

// New creates a new canonical profile instance.
func New() *Profile {
	return &Profile{}
}

// Name returns the profile identifier.
func (p *Profile) Name() string {
	return "canonical"
}

// PublishSystem returns the publish system stamped on descriptors.
func (p *Profile) PublishSystem() string {
	return mapping.DefaultPublishSystem
}

// Special returns the content type level property options.
func (p *Profile) Special() mapping.SpecialOptions {
	return mapping.SpecialOptions{
		Visibility: []string{"public", "private"},
	}
}

// Detect reports whether the raw field uses the canonical layout.
func (p *Profile) Detect(raw map[string]any) bool {
	_, ok := raw["widget_kind"]
	return ok
}

// DecodeField decodes the raw field straight into a SourceField.
func (p *Profile) DecodeField(raw map[string]any) (*types.SourceField, error) {
	f := &types.SourceField{}
	if err := profile.Decode(raw, f); err != nil {
		return nil, fmt.Errorf("failed to decode field %v: %w", raw["machine_name"], err)
	}
	return f, nil
}

// DecodeFlags converts the raw content type settings.
func (p *Profile) DecodeFlags(raw map[string]any) (*types.ContentTypeFlags, error) {
	return profile.DecodeFlags(raw)
}

// Register registers the canonical profile with the global registry.
func Register() {
	profile.MustRegister(New())
}

func init() {
	Register()
}
