package mapping

import (
	"fmt"
	"strings"

	"github.com/avalon-project/avalon/internal/component/mapping"
	"github.com/avalon-project/avalon/internal/impl/mapping/script"
	"github.com/avalon-project/avalon/internal/message"
)

// ResolveURI turns one mapping URI from a model-spec's brace list or a
// --map flag into a mapping.Type. Only file:// is recognized: it loads a
// declarative transform document (internal/impl/mapping/script), the
// constrained alternative to a general scripting interpreter chosen in
// place of loading arbitrary source at runtime.
func ResolveURI(uri string) (mapping.Type, error) {
	path, ok := strings.CutPrefix(uri, "file://")
	if !ok {
		return nil, fmt.Errorf("mapping: unsupported uri scheme: %q", uri)
	}
	doc, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	return mapping.Func(func(rec message.Record) (message.Record, error) {
		out, err := doc.Apply(rec)
		if err != nil {
			return nil, fmt.Errorf("mapping: %s: %w", uri, err)
		}
		return out, nil
	}), nil
}
