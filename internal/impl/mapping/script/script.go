// Package script implements the declarative transform document the
// file:// mapping URI loads. It is a constrained field-operation list, not
// a general scripting interpreter: rename, set, drop, and drop_if_empty
// are the only verbs, each naming one field.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avalon-project/avalon/internal/message"
)

// Op is one transform step in a document.
type Op struct {
	Rename      string `yaml:"rename"`
	To          string `yaml:"to"`
	Set         string `yaml:"set"`
	Value       any    `yaml:"value"`
	Drop        string `yaml:"drop"`
	DropIfEmpty string `yaml:"drop_if_empty"`
}

// Document is the parsed contents of a file:// mapping script.
type Document struct {
	Ops []Op `yaml:"ops"`
}

// Load reads and parses a transform document from path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("script: parse %s: %w", path, err)
	}
	return &doc, nil
}

// Apply runs every op against rec in document order. Returning nil record
// means the record was dropped by a drop/drop_if_empty op.
func (d *Document) Apply(rec message.Record) (message.Record, error) {
	out := rec.Clone()
	for _, op := range d.Ops {
		switch {
		case op.Rename != "":
			v, ok := out.Get(op.Rename)
			if ok {
				delete(out, op.Rename)
				out.Set(op.To, v)
			}
		case op.Set != "":
			out.Set(op.Set, op.Value)
		case op.Drop != "":
			delete(out, op.Drop)
		case op.DropIfEmpty != "":
			v, ok := out.Get(op.DropIfEmpty)
			if !ok || v == nil || v == "" {
				return nil, nil
			}
		default:
			return nil, fmt.Errorf("script: op has no recognized verb: %+v", op)
		}
	}
	return out, nil
}
