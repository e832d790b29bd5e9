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
			Title: "field-rename",
			Args: docs.ArgSpecs{
				{Dest: "field-rename_from", Type: docs.FieldString, Description: "source field name", Required: true},
				{Dest: "field-rename_to", Type: docs.FieldString, Description: "destination field name", Required: true},
			},
		},
		Constructor: newFieldRename,
	}))
}

type fieldRename struct {
	from, to string
}

func newFieldRename(attrs map[string]any) (mapping.Type, error) {
	from, _ := attrs["from"].(string)
	to, _ := attrs["to"].(string)
	return &fieldRename{from: from, to: to}, nil
}

func (m *fieldRename) Map(rec message.Record) (message.Record, error) {
	v, ok := rec.Get(m.from)
	if !ok {
		return rec, nil
	}
	out := rec.Clone()
	delete(out, m.from)
	out.Set(m.to, v)
	return out, nil
}
