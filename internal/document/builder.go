// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package document builds, reads, writes, compares and merges property
// descriptor documents.
package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/propmap/propmap/internal/config"
	"github.com/propmap/propmap/internal/logger"
	"github.com/propmap/propmap/internal/mapping"
	"github.com/propmap/propmap/internal/profile"
	"github.com/propmap/propmap/pkg/types"
)

// AutoProfile selects the profile from the export layout.
const AutoProfile = "auto"

// Builder converts CMS exports into descriptor documents.
type Builder struct {
	config  *config.Config
	log     logrus.FieldLogger
	options mapping.Options

	// issues keeps the issues of cached conversions, which cache hits
	// do not carry.
	mu     sync.Mutex
	issues map[mapping.CacheKey]keptIssues
}

type keptIssues struct {
	digest string
	issues types.Issues
}

// NewBuilder creates a new document builder with the given configuration.
// A nil logger discards output.
func NewBuilder(cfg *config.Config, log logrus.FieldLogger) (*Builder, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Discard()
	}

	policy, err := mapping.DefaultPolicy().With(cfg.Mapping.Severity)
	if err != nil {
		return nil, fmt.Errorf("failed to apply severity overrides: %w", err)
	}

	opts := mapping.Options{
		Logger:           log,
		Suggestions:      mapping.NewStaticSuggestionProvider(cfg.Mapping.ProviderEntities),
		ChannelProviders: cfg.ChannelProviders(),
		Policy:           policy,
		Category:         cfg.Mapping.Category,
	}
	if cfg.Mapping.Cache {
		opts.Cache = mapping.NewCache()
	}

	return &Builder{
		config:  cfg,
		log:     log,
		options: opts,
		issues:  make(map[mapping.CacheKey]keptIssues),
	}, nil
}

// Cache returns the conversion cache shared by all builds, or nil.
func (b *Builder) Cache() *mapping.Cache {
	return b.options.Cache
}

// Build converts the exports into one document. Decoding problems of single
// fields are recorded as issues; an unusable export is an error.
func (b *Builder) Build(exports []*types.Export, shape types.Shape) (*types.Document, error) {
	if shape == "" {
		shape = types.Shape(b.config.Shape)
	}
	if !shape.Valid() {
		return nil, fmt.Errorf("unknown output shape %q", shape)
	}

	doc := &types.Document{
		Shape:        shape,
		ContentTypes: []types.ContentTypeResult{},
	}

	for _, export := range exports {
		p, err := b.resolveProfile(export)
		if err != nil {
			return nil, err
		}
		if doc.Profile == "" {
			doc.Profile = p.Name()
		} else if doc.Profile != p.Name() {
			doc.Profile = MixedProfile
		}

		engine := mapping.New(profile.EngineOptions(p, b.options))
		for _, ct := range export.ContentTypes {
			result, err := b.buildContentType(engine, p, export.ChannelID, ct, shape)
			if err != nil {
				return nil, err
			}
			doc.ContentTypes = append(doc.ContentTypes, *result)
		}
	}

	doc.Collisions = Collisions(doc)
	for _, c := range doc.Collisions {
		b.log.WithField("name", c.Name).Warnf("property name generated %d times", len(c.Sources))
	}

	return doc, nil
}

// MixedProfile is the document profile when exports of different CMS
// versions were converted together.
const MixedProfile = "mixed"

func (b *Builder) resolveProfile(export *types.Export) (profile.Profile, error) {
	if export == nil {
		return nil, fmt.Errorf("failed to resolve profile: nil export")
	}

	name := b.config.Profile
	if name == "" || name == AutoProfile {
		p, err := profile.Detect(export)
		if err != nil {
			return nil, fmt.Errorf("failed to detect profile: %w", err)
		}
		return p, nil
	}

	p := profile.Get(name)
	if p == nil {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return p, nil
}

func (b *Builder) buildContentType(engine *mapping.Engine, p profile.Profile, channelID int, ct types.ContentTypeExport, shape types.Shape) (*types.ContentTypeResult, error) {
	ctx := types.MappingContext{
		TemplateID:  ct.TemplateID,
		ChannelID:   channelID,
		ContentType: ct.Name,
	}
	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build content type %q: %w", ct.Name, err)
	}

	log := b.log.WithFields(logrus.Fields{
		"profile":     p.Name(),
		"contentType": ct.Name,
		"template":    ct.TemplateID,
	})

	out := &types.ContentTypeResult{
		Context: ctx,
		Issues:  types.Issues{},
	}
	if shape == types.ShapeTree {
		out.Properties = []types.PropertyDescriptor{}
	} else {
		out.Buckets = types.NewBuckets()
	}

	flags, err := p.DecodeFlags(ct.BasicFields)
	if err != nil {
		out.Issues = append(out.Issues, decodeIssue(basicFieldsName, err, ctx))
	} else {
		special, err := engine.BuildSpecial(flags, ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build content type %q: %w", ct.Name, err)
		}
		if shape == types.ShapeTree {
			out.Properties = append(out.Properties, special.Properties...)
		} else {
			out.Buckets.Append(types.ObjectTypePublishForm, special.Properties...)
		}
		out.Issues = append(out.Issues, special.Issues...)
	}

	for _, raw := range ct.Fields {
		f, err := p.DecodeField(raw)
		if err != nil {
			log.WithError(err).Debug("field decode failed")
			out.Issues = append(out.Issues, decodeIssue(rawFieldName(raw), err, ctx))
			continue
		}

		res, err := engine.Build(f, ctx, shape)
		if err != nil {
			return nil, fmt.Errorf("failed to build field %s: %w", f.MachineName, err)
		}
		if engine.Cache() != nil {
			res.Issues = b.rememberIssues(engine.CacheKey(f, ctx, shape), res.Issues)
		}

		if shape == types.ShapeTree {
			out.Properties = append(out.Properties, res.Properties...)
		} else {
			for _, objectType := range objectTypes {
				out.Buckets.Append(objectType, res.Buckets[objectType]...)
			}
		}
		out.Issues = append(out.Issues, res.Issues...)
	}

	errs, warns := out.Issues.Count()
	log.Infof("converted %d fields (%d errors, %d warnings)", len(ct.Fields), errs, warns)

	return out, nil
}

// rememberIssues records the issues of a fresh conversion and restores them
// for a cache hit, which comes back without any. One set is kept per field,
// context and shape.
func (b *Builder) rememberIssues(key mapping.CacheKey, issues types.Issues) types.Issues {
	b.mu.Lock()
	defer b.mu.Unlock()

	slot := key
	slot.Digest = ""
	if len(issues) > 0 {
		b.issues[slot] = keptIssues{digest: key.Digest, issues: issues}
		return issues
	}
	if kept, ok := b.issues[slot]; ok && kept.digest == key.Digest {
		return append(types.Issues{}, kept.issues...)
	}
	return issues
}

var objectTypes = []types.ObjectType{
	types.ObjectTypePublishForm,
	types.ObjectTypeImage,
	types.ObjectTypeAny,
}

const basicFieldsName = "basic_fields"

// rawFieldNameKeys are the keys profiles use for the machine name.
var rawFieldNameKeys = []string{"field_name", "machine_name", "name"}

func rawFieldName(raw map[string]any) string {
	for _, key := range rawFieldNameKeys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}

func decodeIssue(name string, err error, ctx types.MappingContext) types.ValidationIssue {
	return types.ValidationIssue{
		FieldName: name,
		Message:   fmt.Sprintf("The field definition could not be read: %v.", err),
		Severity:  types.SeverityError,
		Context:   ctx,
	}
}

// Collisions returns the generated names claimed more than once across the
// document, sorted by name. Standard sub-widget properties carry no template
// id and are skipped.
func Collisions(doc *types.Document) []types.Collision {
	if doc == nil {
		return nil
	}

	sources := make(map[string][]string)
	for _, ct := range doc.ContentTypes {
		props := ct.AllProperties()
		for i := range props {
			props[i].Walk(func(p *types.PropertyDescriptor) {
				if p.TemplateID == 0 || p.Name == "" {
					return
				}
				sources[p.Name] = append(sources[p.Name], ct.Key())
			})
		}
	}

	var out []types.Collision
	for name, src := range sources {
		if len(src) > 1 {
			out = append(out, types.Collision{Name: name, Sources: src})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
