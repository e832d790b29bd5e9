// Package docs declares the argument-contribution surface extensions use to
// describe the CLI flags they need. It is the typed-config-struct
// replacement for attribute monkey-patching referenced in SPEC_FULL.md §9:
// the argument binder consults this schema instead of reflecting over
// dynamic attributes.
package docs

// FieldType is the primitive type of an argument.
type FieldType string

// Recognized field types.
const (
	FieldString   FieldType = "string"
	FieldInt      FieldType = "int"
	FieldFloat    FieldType = "float"
	FieldBool     FieldType = "bool"
	FieldStringSl FieldType = "stringslice"
)

// ArgSpec describes a single CLI argument contributed by an extension.
// Dest is the raw parsed destination name (before args_prefix/args_mapping
// is applied); it is conventionally "<args_prefix><name>" unless the
// extension supplies an explicit mapping for it in ArgsMapping.
type ArgSpec struct {
	Dest        string
	Type        FieldType
	Description string
	Default     any
	Required    bool
}

// ArgSpecs is a declared set of arguments for one extension.
type ArgSpecs []ArgSpec

// Add appends a spec and returns the slice for chained construction,
// mirroring the teacher's FieldSpecs builder idiom.
func (a ArgSpecs) Add(s ArgSpec) ArgSpecs {
	return append(a, s)
}
