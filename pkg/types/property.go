// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// PropertyType is the target platform's property type.
type PropertyType string

const (
	// PropertyTypeUnknown marks a field the classifier could not map.
	PropertyTypeUnknown PropertyType = ""

	PropertyTypeBoolean                  PropertyType = "bool"
	PropertyTypeList                     PropertyType = "list"
	PropertyTypeMultiList                PropertyType = "multilist"
	PropertyTypeString                   PropertyType = "string"
	PropertyTypeMultiString              PropertyType = "multistring"
	PropertyTypeInteger                  PropertyType = "int"
	PropertyTypeDouble                   PropertyType = "double"
	PropertyTypeDate                     PropertyType = "date"
	PropertyTypeDateTime                 PropertyType = "datetime"
	PropertyTypeMultiline                PropertyType = "multiline"
	PropertyTypeFileSelector             PropertyType = "fileselector"
	PropertyTypeFile                     PropertyType = "file"
	PropertyTypeArticleComponentSelector PropertyType = "articlecomponentselector"
	PropertyTypeArticleComponent         PropertyType = "articlecomponent"
)

// IsComposite reports whether the type always comes with a sibling descriptor.
func (t PropertyType) IsComposite() bool {
	return t == PropertyTypeFileSelector || t == PropertyTypeArticleComponentSelector
}

// Sibling returns the type of the descriptor paired with a composite type.
func (t PropertyType) Sibling() PropertyType {
	switch t {
	case PropertyTypeFileSelector:
		return PropertyTypeFile
	case PropertyTypeArticleComponentSelector:
		return PropertyTypeArticleComponent
	default:
		return PropertyTypeUnknown
	}
}

// PropertyValue is a format filter entry attached to file-like properties.
type PropertyValue struct {
	// Value is the mime type.
	Value string `json:"value" yaml:"value"`

	// Display is the file extension including the leading dot.
	Display string `json:"display" yaml:"display"`

	// Entity is the filtered entity, always "Format" today.
	Entity string `json:"entity" yaml:"entity"`
}

// PropertyDescriptor is one output unit of the target metadata model.
type PropertyDescriptor struct {
	Name        string       `json:"name" yaml:"name"`
	DisplayName string       `json:"displayName" yaml:"displayName"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Type        PropertyType `json:"type" yaml:"type"`

	DefaultValue *string  `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	ValueList    []string `json:"valueList,omitempty" yaml:"valueList,omitempty"`

	MinValue  *string `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	MaxValue  *string `json:"maxValue,omitempty" yaml:"maxValue,omitempty"`
	MaxLength *int64  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	PropertyValues []PropertyValue `json:"propertyValues,omitempty" yaml:"propertyValues,omitempty"`
	MinResolution  string          `json:"minResolution,omitempty" yaml:"minResolution,omitempty"`
	MaxResolution  string          `json:"maxResolution,omitempty" yaml:"maxResolution,omitempty"`
	InitialHeight  *int            `json:"initialHeight,omitempty" yaml:"initialHeight,omitempty"`

	Required bool `json:"required" yaml:"required"`

	TermEntity           string `json:"termEntity,omitempty" yaml:"termEntity,omitempty"`
	SuggestionEntity     string `json:"suggestionEntity,omitempty" yaml:"suggestionEntity,omitempty"`
	AutocompleteProvider string `json:"autocompleteProvider,omitempty" yaml:"autocompleteProvider,omitempty"`
	PublishSystem        string `json:"publishSystem,omitempty" yaml:"publishSystem,omitempty"`
	TemplateID           int    `json:"templateId,omitempty" yaml:"templateId,omitempty"`

	SubWidgets []PropertyDescriptor `json:"subWidgets,omitempty" yaml:"subWidgets,omitempty"`
}

// Clone returns a deep copy of the descriptor. Pointer and slice fields are
// copied so the clone shares no state with the receiver.
func (p PropertyDescriptor) Clone() PropertyDescriptor {
	c := p
	c.DefaultValue = cloneString(p.DefaultValue)
	c.MinValue = cloneString(p.MinValue)
	c.MaxValue = cloneString(p.MaxValue)
	if p.MaxLength != nil {
		v := *p.MaxLength
		c.MaxLength = &v
	}
	if p.InitialHeight != nil {
		v := *p.InitialHeight
		c.InitialHeight = &v
	}
	if p.ValueList != nil {
		c.ValueList = make([]string, len(p.ValueList))
		copy(c.ValueList, p.ValueList)
	}
	if p.PropertyValues != nil {
		c.PropertyValues = make([]PropertyValue, len(p.PropertyValues))
		copy(c.PropertyValues, p.PropertyValues)
	}
	if p.SubWidgets != nil {
		c.SubWidgets = make([]PropertyDescriptor, len(p.SubWidgets))
		for i, w := range p.SubWidgets {
			c.SubWidgets[i] = w.Clone()
		}
	}
	return c
}

// WithName returns a clone carrying a new name and display name.
func (p PropertyDescriptor) WithName(name, displayName string) PropertyDescriptor {
	c := p.Clone()
	c.Name = name
	c.DisplayName = displayName
	return c
}

// Walk calls fn for the descriptor and every nested sub-widget, depth first.
func (p *PropertyDescriptor) Walk(fn func(*PropertyDescriptor)) {
	fn(p)
	for i := range p.SubWidgets {
		p.SubWidgets[i].Walk(fn)
	}
}

// ObjectType keys the flattened installation buckets.
type ObjectType string

const (
	// ObjectTypeAny holds properties that apply to any object type.
	ObjectTypeAny ObjectType = "any"

	// ObjectTypePublishForm holds the base property holder properties.
	ObjectTypePublishForm ObjectType = "PublishForm"

	// ObjectTypeImage holds image specific sub-properties.
	ObjectTypeImage ObjectType = "Image"
)

// Buckets groups flattened descriptors by target object type.
type Buckets map[ObjectType][]PropertyDescriptor

// NewBuckets returns buckets with all known object types present.
func NewBuckets() Buckets {
	return Buckets{
		ObjectTypePublishForm: {},
		ObjectTypeImage:       {},
		ObjectTypeAny:         {},
	}
}

// Append adds descriptors to the bucket for the object type.
func (b Buckets) Append(objectType ObjectType, props ...PropertyDescriptor) {
	b[objectType] = append(b[objectType], props...)
}

// Merge appends all buckets of other into b.
func (b Buckets) Merge(other Buckets) {
	for objectType, props := range other {
		b.Append(objectType, props...)
	}
}

// Count returns the number of descriptors across all buckets.
func (b Buckets) Count() int {
	n := 0
	for _, props := range b {
		n += len(props)
	}
	return n
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
