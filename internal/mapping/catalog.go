// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"github.com/propmap/propmap/pkg/types"
)

// Standard property names attached to file and image siblings.
const (
	StandardName   = "Name"
	StandardFormat = "Format"
	StandardWidth  = "Width"
	StandardHeight = "Height"
)

// StandardCatalog supplies the fixed platform properties used as file and
// image sub-widgets.
type StandardCatalog interface {
	Standard(name string) (types.PropertyDescriptor, bool)
}

// Catalog is a StandardCatalog backed by a fixed set of descriptors.
type Catalog struct {
	props map[string]types.PropertyDescriptor
}

// NewCatalog creates a catalog holding props, keyed by their names.
func NewCatalog(props ...types.PropertyDescriptor) *Catalog {
	c := &Catalog{props: make(map[string]types.PropertyDescriptor, len(props))}
	for _, p := range props {
		c.props[p.Name] = p
	}
	return c
}

// DefaultCatalog returns the built-in platform properties.
func DefaultCatalog() *Catalog {
	maxName := int64(63)
	return NewCatalog(
		types.PropertyDescriptor{
			Name:        StandardName,
			DisplayName: "Name",
			Type:        types.PropertyTypeString,
			MaxLength:   &maxName,
			Required:    true,
		},
		types.PropertyDescriptor{
			Name:        StandardFormat,
			DisplayName: "Format",
			Type:        types.PropertyTypeString,
		},
		types.PropertyDescriptor{
			Name:        StandardWidth,
			DisplayName: "Width",
			Type:        types.PropertyTypeDouble,
		},
		types.PropertyDescriptor{
			Name:        StandardHeight,
			DisplayName: "Height",
			Type:        types.PropertyTypeDouble,
		},
	)
}

// Standard returns a copy of the named property.
func (c *Catalog) Standard(name string) (types.PropertyDescriptor, bool) {
	p, ok := c.props[name]
	if !ok {
		return types.PropertyDescriptor{}, false
	}
	return p.Clone(), true
}
