package bundle

// Environment is a collection of extension registries used to assemble and
// run a pipeline. Tests build scoped Environments instead of mutating the
// global one, mirroring the teacher's sandboxing pattern.
type Environment struct {
	Models   *ModelSet
	Mappings *MappingSet
	Formats  *FormatSet
	Mediums  *MediumSet
	Generics *GenericSet
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		Models:   &ModelSet{},
		Mappings: &MappingSet{},
		Formats:  &FormatSet{},
		Mediums:  &MediumSet{},
		Generics: &GenericSet{},
	}
}

// GlobalEnvironment wraps the five package-level registries populated by
// internal/impl/*'s init() functions and by public/extension on behalf of
// out-of-tree plugins.
var GlobalEnvironment = &Environment{
	Models:   AllModels,
	Mappings: AllMappings,
	Formats:  AllFormats,
	Mediums:  AllMediums,
	Generics: AllGenerics,
}
