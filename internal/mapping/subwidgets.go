// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"github.com/propmap/propmap/pkg/types"
)

// Image sub-widget names are shared by every template.
const (
	NameImageAltText = "C_DPF_F_IMG_ALT_TEXT"
	NameImageTitle   = "C_DPF_F_IMG_TITLE"
)

// Sub-widget length limits.
const (
	imageTextMaxLength   = 255
	descriptionMaxLength = 128
)

// fileSubWidgets returns the auxiliary properties of a file or image
// sibling. Standard catalog properties are only part of the tree shape.
func (e *Engine) fileSubWidgets(f *types.SourceField, c Classification, shape types.Shape, rec *recorder) []types.PropertyDescriptor {
	var subs []types.PropertyDescriptor

	switch f.DataKind {
	case types.DataImage:
		if c.AltText {
			subs = append(subs, e.imageText(NameImageAltText, "Alternate text"))
		}
		if c.Title {
			subs = append(subs, e.imageText(NameImageTitle, "Title"))
		}
	case types.DataFile:
		if c.Display {
			if p, ok := e.displayToggle(f, rec); ok {
				subs = append(subs, p)
			}
		}
		if c.Description {
			if p, ok := e.description(f, rec); ok {
				subs = append(subs, p)
			}
		}
	default:
		return subs
	}

	if shape != types.ShapeTree {
		return subs
	}

	standard := []string{StandardFormat, StandardName}
	if f.DataKind == types.DataImage {
		standard = append([]string{StandardHeight, StandardWidth}, standard...)
	}
	for _, name := range standard {
		if p, ok := e.catalog.Standard(name); ok {
			subs = append(subs, p)
		}
	}
	return subs
}

func (e *Engine) imageText(name, displayName string) types.PropertyDescriptor {
	maxLength := int64(imageTextMaxLength)
	return types.PropertyDescriptor{
		Name:          name,
		DisplayName:   displayName,
		Category:      e.category,
		Type:          types.PropertyTypeString,
		DefaultValue:  types.StringPtr(""),
		MaxLength:     &maxLength,
		PublishSystem: e.publishSystem,
	}
}

func (e *Engine) displayToggle(f *types.SourceField, rec *recorder) (types.PropertyDescriptor, bool) {
	name, ok := generateName(f, RoleFileSibling, SuffixDisplay, rec)
	if !ok {
		return types.PropertyDescriptor{}, false
	}

	def := ""
	if f.Settings.DisplayDefault {
		def = "true"
	}
	return types.PropertyDescriptor{
		Name:          name,
		DisplayName:   "Include file in display",
		Category:      e.category,
		Type:          types.PropertyTypeBoolean,
		DefaultValue:  types.StringPtr(def),
		PublishSystem: e.publishSystem,
		TemplateID:    rec.ctx.TemplateID,
	}, true
}

func (e *Engine) description(f *types.SourceField, rec *recorder) (types.PropertyDescriptor, bool) {
	name, ok := generateName(f, RoleFileSibling, SuffixDescription, rec)
	if !ok {
		return types.PropertyDescriptor{}, false
	}

	maxLength := int64(descriptionMaxLength)
	return types.PropertyDescriptor{
		Name:          name,
		DisplayName:   "Description",
		Category:      e.category,
		Type:          types.PropertyTypeString,
		DefaultValue:  types.StringPtr(""),
		MaxLength:     &maxLength,
		PublishSystem: e.publishSystem,
		TemplateID:    rec.ctx.TemplateID,
	}, true
}
