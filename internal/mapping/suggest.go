// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package mapping

import (
	"strings"
)

// SuggestionProvider reports whether a suggestion provider can resolve a
// term entity.
type SuggestionProvider interface {
	CanHandleEntity(provider, entity string) bool
}

// StaticSuggestionProvider answers from a fixed provider to entities table,
// usually loaded from configuration. Matching ignores case.
type StaticSuggestionProvider struct {
	entities map[string]map[string]struct{}
}

// NewStaticSuggestionProvider builds a provider from a provider -> entities map.
func NewStaticSuggestionProvider(providerEntities map[string][]string) *StaticSuggestionProvider {
	s := &StaticSuggestionProvider{entities: make(map[string]map[string]struct{}, len(providerEntities))}
	for provider, entities := range providerEntities {
		set := make(map[string]struct{}, len(entities))
		for _, e := range entities {
			set[strings.ToLower(e)] = struct{}{}
		}
		s.entities[strings.ToLower(provider)] = set
	}
	return s
}

// CanHandleEntity implements SuggestionProvider. Unknown providers handle
// nothing.
func (s *StaticSuggestionProvider) CanHandleEntity(provider, entity string) bool {
	set, ok := s.entities[strings.ToLower(provider)]
	if !ok {
		return false
	}
	_, ok = set[strings.ToLower(entity)]
	return ok
}
