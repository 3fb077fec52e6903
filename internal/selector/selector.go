// Package selector narrows JSON output with a JSONPath expression, as used by
// the --select flag.
package selector

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yalp/jsonpath"
)

// Selector is a compiled JSONPath expression.
type Selector struct {
	expr   string
	filter jsonpath.FilterFunc
}

// Compile prepares expr. A leading "$" is added when missing so that
// "data[0].name" and "$.data[0].name" are equivalent.
func Compile(expr string) (*Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("selector.Compile: empty expression")
	}
	if !strings.HasPrefix(expr, "$") {
		if !strings.HasPrefix(expr, "[") {
			expr = "." + expr
		}
		expr = "$" + expr
	}
	f, err := jsonpath.Prepare(expr)
	if err != nil {
		return nil, fmt.Errorf("selector.Compile %q: %w", expr, err)
	}
	return &Selector{expr: expr, filter: f}, nil
}

// String returns the normalized expression.
func (s *Selector) String() string { return s.expr }

// Apply runs the expression over v. v is first round-tripped through JSON so
// struct values are addressed by their JSON field names.
func (s *Selector) Apply(v any) (any, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return nil, fmt.Errorf("selector.Apply: %w", err)
	}
	out, err := s.filter(generic)
	if err != nil {
		return nil, fmt.Errorf("selector.Apply %s: %w", s.expr, err)
	}
	return out, nil
}

// Apply compiles expr and applies it to v.
func Apply(v any, expr string) (any, error) {
	s, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return s.Apply(v)
}

func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
