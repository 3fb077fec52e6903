// Package checkers holds quicktest checkers shared by bizdesk tests.
package checkers

import (
	"encoding/json"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

type jsonPathEquals struct {
	path string
}

// JSONPathEquals checks that the JSON document got ([]byte or string) holds
// want at path. JSON numbers compare as float64.
//
//	c.Assert(data, checkers.JSONPathEquals("$.mcpServers.bizdesk.command"), "bizdesk")
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathEquals{path: path}
}

func (*jsonPathEquals) ArgNames() []string { return []string{"got", "want"} }

func (c *jsonPathEquals) Check(got any, args []any, note func(key string, value any)) error {
	var raw []byte
	switch v := got.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return qt.BadCheckf("first argument is not []byte or string")
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	note("path", c.path)
	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		return err
	}
	return qt.DeepEquals.Check(value, args, note)
}
