// Package mapping hosts the built-in Mapping extensions: per-record
// transforms plugged into the core through the mapping.Type boundary
// contract.
package mapping

import (
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/mapping"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/message"
)

func init() {
	must(bundle.AllMappings.Add(bundle.MappingSpec{
		Meta: bundle.Meta{
			Title: "field-drop",
			Args: docs.ArgSpecs{
				{Dest: "field-drop_fields", Type: docs.FieldStringSl, Description: "field names to remove from every record (repeat the flag for each field)", Required: true},
			},
		},
		Constructor: newFieldDrop,
	}))
}

type fieldDrop struct {
	fields []string
}

func newFieldDrop(attrs map[string]any) (mapping.Type, error) {
	fields, _ := attrs["fields"].([]string)
	return &fieldDrop{fields: fields}, nil
}

func (m *fieldDrop) Map(rec message.Record) (message.Record, error) {
	out := rec.Clone()
	for _, f := range m.fields {
		delete(out, f)
	}
	return out, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
