package bundle

import "github.com/avalon-project/avalon/internal/component/medium"

// MediumSpec is a registered Medium extension.
type MediumSpec struct {
	Meta
	Constructor medium.Constructor
	// AutoSelectFlag is the destination name whose presence on the command
	// line qualifies this medium for auto-selection (SPEC_FULL.md §4.6).
	AutoSelectFlag string
}

// MediumSet contains every Medium extension known to an Environment.
type MediumSet struct {
	specs map[string]MediumSpec
}

// AllMediums is the global set populated by internal/impl/medium's init()
// functions.
var AllMediums = &MediumSet{}

// Add registers a medium, failing with DuplicateExtension on a title
// collision.
func (s *MediumSet) Add(spec MediumSpec) error {
	if s.specs == nil {
		s.specs = map[string]MediumSpec{}
	}
	if _, exists := s.specs[spec.Title]; exists {
		return &DuplicateExtension{Family: "medium", Title: spec.Title}
	}
	s.specs[spec.Title] = spec
	return nil
}

// Get looks up a medium extension by title.
func (s *MediumSet) Get(title string) (MediumSpec, bool) {
	spec, ok := s.specs[title]
	return spec, ok
}

// Titles returns every registered title, used by --list-mediums.
func (s *MediumSet) Titles() []string {
	out := make([]string, 0, len(s.specs))
	for t := range s.specs {
		out = append(out, t)
	}
	return out
}

// All returns every registered spec.
func (s *MediumSet) All() []MediumSpec {
	out := make([]MediumSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	return out
}
