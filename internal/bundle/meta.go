package bundle

import "github.com/avalon-project/avalon/internal/docs"

// Meta is the extension descriptor shared by all five families
// (SPEC_FULL.md §3 "Extension descriptor"). ArgsPrefix defaults to
// Title+"_" when empty; ArgsMapping maps a parsed destination name to the
// instance attribute name it should be exposed under, taking priority over
// the prefix-strip rule.
type Meta struct {
	Title       string
	ArgsPrefix  string
	ArgsMapping map[string]string
	Args        docs.ArgSpecs
}

// Prefix returns the effective args_prefix, applying the default rule.
func (m Meta) Prefix() string {
	if m.ArgsPrefix != "" {
		return m.ArgsPrefix
	}
	return m.Title + "_"
}
