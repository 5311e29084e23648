// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"strings"

	"github.com/propmap/propmap/pkg/types"
)

// Name suffixes of content type level properties.
const (
	SuffixTitle    = "_TITLE"
	SuffixPromote  = "_PROMOTE"
	SuffixSticky   = "_STICKY"
	SuffixComments = "_COMMENTS"
	SuffixPublish  = "_PUBLISH"
)

// CommentOptions are the comment policies a content type can have.
var CommentOptions = []string{"Disable", "Read", "Read/Write"}

const defaultTitleMaxLength = 255

// specialDef describes one content type level property.
type specialDef struct {
	key         string
	suffix      string
	displayName string
	typ         types.PropertyType
	required    bool
	options     []string
}

// BuildSpecial converts content type level flags into descriptors. The
// descriptors are attached to the content type and never decomposed.
func (e *Engine) BuildSpecial(flags *types.ContentTypeFlags, ctx types.MappingContext) (*Result, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	if flags == nil {
		flags = &types.ContentTypeFlags{}
	}

	rec := newRecorder(e.policy, ctx)
	props := []types.PropertyDescriptor{}

	for _, item := range e.specialDefs(flags) {
		def, flag := item.def, item.flag

		name := SpecialName(ctx.TemplateID, def.suffix)
		required := def.required
		if flag != nil && !(def.required && e.special.FixedRequired) {
			required = flag.Required
		}
		if !ValidSpecialName(name) {
			rec.add(def.key, required, RuleSpecialName, "Invalid property name: '%s'.", name)
			continue
		}

		props = append(props, e.describeSpecial(def, flag, name, required, ctx))
	}

	e.log.WithField("template", ctx.TemplateID).Debugf("built %d content type properties", len(props))

	issues := rec.issues
	if issues == nil {
		issues = types.Issues{}
	}
	return &Result{Properties: props, Issues: issues}, nil
}

type specialItem struct {
	def specialDef
	flag *types.SpecialFlag
}

func (e *Engine) specialDefs(flags *types.ContentTypeFlags) []specialItem {
	var items []specialItem

	if flags.Title != nil || e.special.AlwaysTitle {
		items = append(items, specialItem{
			def: specialDef{key: "title", suffix: SuffixTitle, displayName: "Title", typ: types.PropertyTypeString, required: true},
			flag: flags.Title,
		})
	}
	items = append(items,
		specialItem{
			def: specialDef{key: "promote", suffix: SuffixPromote, displayName: "Promote", typ: types.PropertyTypeBoolean},
			flag: flags.Promote,
		},
		specialItem{
			def: specialDef{key: "sticky", suffix: SuffixSticky, displayName: "Sticky", typ: types.PropertyTypeBoolean},
			flag: flags.Sticky,
		},
	)
	if e.special.Comments {
		items = append(items, specialItem{
			def: specialDef{key: "comments", suffix: SuffixComments, displayName: "Comments", typ: types.PropertyTypeList, options: CommentOptions},
			flag: flags.Comments,
		})
	}
	items = append(items, specialItem{
		def: specialDef{key: "status", suffix: SuffixPublish, displayName: "Visibility", typ: types.PropertyTypeList, required: true, options: e.special.Visibility},
		flag: flags.Status,
	})

	return items
}

func (e *Engine) describeSpecial(def specialDef, flag *types.SpecialFlag, name string, required bool, ctx types.MappingContext) types.PropertyDescriptor {
	p := types.PropertyDescriptor{
		Name:          name,
		DisplayName:   def.displayName,
		Type:          def.typ,
		Required:      required,
		PublishSystem: e.publishSystem,
		TemplateID:    ctx.TemplateID,
	}
	if len(def.options) > 0 {
		p.ValueList = append([]string(nil), def.options...)
	}

	var raw string
	if flag != nil {
		raw = flag.Default
		if flag.DisplayName != "" {
			p.DisplayName = flag.DisplayName
		}
		if flag.Type != "" {
			p.Type = types.PropertyType(flag.Type)
		}
		if len(flag.Options) > 0 {
			p.ValueList = append([]string(nil), flag.Options...)
		}
	}

	switch def.key {
	case "title":
		maxLength := int64(defaultTitleMaxLength)
		if flag != nil && flag.MaxLength != nil {
			maxLength = int64(*flag.MaxLength)
		}
		p.MaxLength = &maxLength
		p.DefaultValue = types.StringPtr(raw)
	case "promote", "sticky":
		p.DefaultValue = types.StringPtr(boolString(raw))
	case "status":
		if raw == "" && len(p.ValueList) > 0 {
			raw = p.ValueList[0]
		}
		p.DefaultValue = types.StringPtr(raw)
	default:
		p.DefaultValue = types.StringPtr(raw)
	}

	return p
}

// boolString normalizes a stored 0/1 flag to "true" or "false".
func boolString(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return "true"
	}
	return "false"
}
