package bundle

import "github.com/avalon-project/avalon/internal/component/model"

// ModelSpec is a registered Model extension: its descriptor plus the
// constructor that hydrates instances.
type ModelSpec struct {
	Meta
	Constructor model.Constructor
}

// ModelSet contains every Model extension known to an Environment.
type ModelSet struct {
	specs map[string]ModelSpec
}

// AllModels is the global set populated by internal/impl/model's init()
// functions (SPEC_FULL.md §4.1).
var AllModels = &ModelSet{}

// Add registers a model, failing with DuplicateExtension if its title
// collides with one already present.
func (s *ModelSet) Add(spec ModelSpec) error {
	if s.specs == nil {
		s.specs = map[string]ModelSpec{}
	}
	if _, exists := s.specs[spec.Title]; exists {
		return &DuplicateExtension{Family: "model", Title: spec.Title}
	}
	s.specs[spec.Title] = spec
	return nil
}

// Get looks up a model extension by title.
func (s *ModelSet) Get(title string) (ModelSpec, bool) {
	spec, ok := s.specs[title]
	return spec, ok
}

// Titles returns every registered title, used by --list-models.
func (s *ModelSet) Titles() []string {
	out := make([]string, 0, len(s.specs))
	for t := range s.specs {
		out = append(out, t)
	}
	return out
}

// All returns every registered spec, used by the argument binder to gather
// flag contributions.
func (s *ModelSet) All() []ModelSpec {
	out := make([]ModelSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	return out
}
