// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// Shape selects how converted descriptors are laid out.
type Shape string

const (
	// ShapeTree nests siblings and sub-widgets under their parent, for dialogs.
	ShapeTree Shape = "tree"

	// ShapeFlattened lists descriptors as peers grouped by object type, for
	// bulk installation.
	ShapeFlattened Shape = "flattened"
)

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	return s == ShapeTree || s == ShapeFlattened
}

// Export is a schema export as written by the CMS side. Field definitions
// stay raw until a profile decodes them.
type Export struct {
	// Profile names the CMS flavour that produced the export (drupal7, drupal8).
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`

	ChannelID int `json:"channel_id" yaml:"channel_id"`

	ContentTypes []ContentTypeExport `json:"content_types" yaml:"content_types"`
}

// ContentTypeExport is one exported content type.
type ContentTypeExport struct {
	Name       string `json:"name" yaml:"name"`
	TemplateID int    `json:"template_id" yaml:"template_id"`

	// Fields are raw field definitions in the profile's layout.
	Fields []map[string]any `json:"fields" yaml:"fields"`

	// BasicFields are the raw content type level flags.
	BasicFields map[string]any `json:"basic_fields,omitempty" yaml:"basic_fields,omitempty"`
}

// Document is the converted output for one or more exports.
type Document struct {
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty"`
	Shape   Shape  `json:"shape" yaml:"shape"`

	ContentTypes []ContentTypeResult `json:"content_types" yaml:"content_types"`

	// Collisions lists generated names claimed by more than one field.
	Collisions []Collision `json:"collisions,omitempty" yaml:"collisions,omitempty"`
}

// ContentTypeResult is the conversion result of one content type.
type ContentTypeResult struct {
	Context MappingContext `json:"context" yaml:"context"`

	// Properties is set for the tree shape.
	Properties []PropertyDescriptor `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Buckets is set for the flattened shape.
	Buckets Buckets `json:"buckets,omitempty" yaml:"buckets,omitempty"`

	Issues Issues `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Key identifies the content type result within a document.
func (r ContentTypeResult) Key() string {
	return r.Context.String()
}

// AllProperties returns every top-level descriptor regardless of shape.
func (r ContentTypeResult) AllProperties() []PropertyDescriptor {
	if len(r.Buckets) == 0 {
		return r.Properties
	}
	out := append([]PropertyDescriptor(nil), r.Properties...)
	for _, objectType := range []ObjectType{ObjectTypePublishForm, ObjectTypeImage, ObjectTypeAny} {
		out = append(out, r.Buckets[objectType]...)
	}
	return out
}

// Collision records a generated name used by more than one source.
type Collision struct {
	Name    string   `json:"name" yaml:"name"`
	Sources []string `json:"sources" yaml:"sources"`
}

// Issues returns all issues of the document in content type order.
func (d *Document) Issues() Issues {
	var out Issues
	for _, ct := range d.ContentTypes {
		out = append(out, ct.Issues...)
	}
	return out
}
