package bundle

import "github.com/avalon-project/avalon/internal/component/mapping"

// MappingSpec is a registered Mapping extension.
type MappingSpec struct {
	Meta
	Constructor mapping.Constructor
}

// MappingSet contains every Mapping extension known to an Environment.
type MappingSet struct {
	specs map[string]MappingSpec
}

// AllMappings is the global set populated by internal/impl/mapping's init()
// functions.
var AllMappings = &MappingSet{}

// Add registers a mapping, failing with DuplicateExtension on a title
// collision.
func (s *MappingSet) Add(spec MappingSpec) error {
	if s.specs == nil {
		s.specs = map[string]MappingSpec{}
	}
	if _, exists := s.specs[spec.Title]; exists {
		return &DuplicateExtension{Family: "mapping", Title: spec.Title}
	}
	s.specs[spec.Title] = spec
	return nil
}

// Get looks up a mapping extension by title.
func (s *MappingSet) Get(title string) (MappingSpec, bool) {
	spec, ok := s.specs[title]
	return spec, ok
}

// Titles returns every registered title, used by --list-mappings.
func (s *MappingSet) Titles() []string {
	out := make([]string, 0, len(s.specs))
	for t := range s.specs {
		out = append(out, t)
	}
	return out
}

// All returns every registered spec.
func (s *MappingSet) All() []MappingSpec {
	out := make([]MappingSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	return out
}
