package bundle

import "github.com/avalon-project/avalon/internal/component/generic"

// GenericSpec is a registered Generic extension.
type GenericSpec struct {
	Meta
	Constructor generic.Constructor
}

// GenericSet contains every Generic extension known to an Environment, kept
// in registration order: hook ordering between generics is registration
// order, stable by title (SPEC_FULL.md §4.3).
type GenericSet struct {
	order []GenericSpec
	seen  map[string]struct{}
}

// AllGenerics is the global set populated by internal/impl/generic's init()
// functions.
var AllGenerics = &GenericSet{}

// Add registers a generic hook, failing with DuplicateExtension on a title
// collision.
func (s *GenericSet) Add(spec GenericSpec) error {
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	if _, exists := s.seen[spec.Title]; exists {
		return &DuplicateExtension{Family: "generic", Title: spec.Title}
	}
	s.seen[spec.Title] = struct{}{}
	s.order = append(s.order, spec)
	return nil
}

// Titles returns every registered title in registration order, used by
// --list-mappings-style introspection and tests.
func (s *GenericSet) Titles() []string {
	out := make([]string, 0, len(s.order))
	for _, spec := range s.order {
		out = append(out, spec.Title)
	}
	return out
}

// All returns every registered spec in registration order.
func (s *GenericSet) All() []GenericSpec {
	out := make([]GenericSpec, len(s.order))
	copy(out, s.order)
	return out
}
