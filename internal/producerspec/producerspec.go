// Package producerspec parses the "--models" positional token grammar
// described in SPEC_FULL.md §3: [count]title[weight]{uri[,uri]*}.
package producerspec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Spec is one parsed producer-spec token.
type Spec struct {
	Count    int
	Title    string
	Weight   int
	Mappings []string // file:// URIs attached via {uri,uri} brace syntax
}

var tokenPattern = regexp.MustCompile(`^(\d+)?([A-Za-z][A-Za-z0-9_-]*?)(\d+)?(?:\{([^}]*)\})?$`)

// Parse splits the whitespace-separated "--models" argument into one Spec
// per token. An empty or all-whitespace input yields no specs.
func Parse(raw string) ([]Spec, error) {
	fields := strings.Fields(raw)
	specs := make([]Spec, 0, len(fields))
	for _, f := range fields {
		spec, err := parseToken(f)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseToken(tok string) (Spec, error) {
	m := tokenPattern.FindStringSubmatch(tok)
	if m == nil || m[2] == "" {
		return Spec{}, fmt.Errorf("malformed model spec %q", tok)
	}

	spec := Spec{Count: 1, Title: m[2], Weight: 1}

	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return Spec{}, fmt.Errorf("model spec %q: count must be >= 1", tok)
		}
		spec.Count = n
	}
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil || n < 1 {
			return Spec{}, fmt.Errorf("model spec %q: weight must be >= 1", tok)
		}
		spec.Weight = n
	}
	if m[4] != "" {
		for _, uri := range strings.Split(m[4], ",") {
			uri = strings.TrimSpace(uri)
			if uri == "" {
				continue
			}
			spec.Mappings = append(spec.Mappings, uri)
		}
	}
	return spec, nil
}
