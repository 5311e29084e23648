// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package profile provides CMS profiles. A profile knows the raw export
// layout of one CMS major version and the engine parameters that go with it.
package profile

import (
	"github.com/propmap/propmap/internal/mapping"
	"github.com/propmap/propmap/pkg/types"
)

// Profile decodes raw CMS exports and parameterizes the mapping engine.
type Profile interface {
	// Name returns the profile identifier (e.g., "drupal7", "drupal8").
	Name() string

	// PublishSystem returns the publish system stamped on descriptors.
	PublishSystem() string

	// Special returns the content type level property options.
	Special() mapping.SpecialOptions

	// Detect reports whether a raw field uses this profile's layout.
	Detect(raw map[string]any) bool

	// DecodeField converts one raw field into a SourceField.
	DecodeField(raw map[string]any) (*types.SourceField, error)

	// DecodeFlags converts the raw content type settings.
	DecodeFlags(raw map[string]any) (*types.ContentTypeFlags, error)
}

// Info provides metadata about a profile.
type Info struct {
	Name        string
	Version     string
	Description string

	// Versions lists the CMS versions the profile reads.
	Versions []string
}

// InfoProvider is an optional interface profiles can implement to provide metadata.
type InfoProvider interface {
	Info() Info
}

// EngineOptions returns opts with the profile's publish system and special
// field options applied.
func EngineOptions(p Profile, opts mapping.Options) mapping.Options {
	opts.PublishSystem = p.PublishSystem()
	opts.Special = p.Special()
	return opts
}
