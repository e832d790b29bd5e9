package bundle

import "github.com/avalon-project/avalon/internal/component/format"

// FormatSpec is a registered Format extension.
type FormatSpec struct {
	Meta
	Constructor format.Constructor
	// Encoding documents whether instances produce Text or Binary payloads
	// (SPEC_FULL.md §4.7); mirrored here so --list-formats can report it
	// without constructing an instance.
	Encoding string
}

// FormatSet contains every Format extension known to an Environment.
type FormatSet struct {
	specs map[string]FormatSpec
}

// AllFormats is the global set populated by internal/impl/format's init()
// functions.
var AllFormats = &FormatSet{}

// Add registers a format, failing with DuplicateExtension on a title
// collision.
func (s *FormatSet) Add(spec FormatSpec) error {
	if s.specs == nil {
		s.specs = map[string]FormatSpec{}
	}
	if _, exists := s.specs[spec.Title]; exists {
		return &DuplicateExtension{Family: "format", Title: spec.Title}
	}
	s.specs[spec.Title] = spec
	return nil
}

// Get looks up a format extension by title.
func (s *FormatSet) Get(title string) (FormatSpec, bool) {
	spec, ok := s.specs[title]
	return spec, ok
}

// Titles returns every registered title, used by --list-formats.
func (s *FormatSet) Titles() []string {
	out := make([]string, 0, len(s.specs))
	for t := range s.specs {
		out = append(out, t)
	}
	return out
}

// All returns every registered spec.
func (s *FormatSet) All() []FormatSpec {
	out := make([]FormatSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	return out
}
