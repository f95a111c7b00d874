// Package endpoints serves the static description of the public API returned
// by GET /api. The catalogue is decoded once from an embedded YAML document
// and never mutated afterwards.
package endpoints

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// selfKey is the catalogue's own entry, which is never served.
const selfKey = "GET /api"

//go:embed endpoints.yaml
var document []byte

// Endpoint describes one route.
type Endpoint struct {
	Description     string   `yaml:"description"     json:"description"`
	Queries         []string `yaml:"queries"         json:"queries,omitempty"`
	ExampleRequest  any      `yaml:"exampleRequest"  json:"exampleRequest,omitempty"`
	ExampleResponse any      `yaml:"exampleResponse" json:"exampleResponse,omitempty"`
}

// Catalog is an immutable set of endpoint descriptions keyed by
// "METHOD /path".
type Catalog struct {
	entries map[string]Endpoint
	encoded []byte
}

// Load parses the embedded catalogue.
func Load() (*Catalog, error) { return Parse(document) }

// Parse decodes a YAML catalogue, drops the self-referential GET /api entry
// and pre-encodes the JSON form.
func Parse(b []byte) (*Catalog, error) {
	entries := map[string]Endpoint{}
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("endpoints: decode: %w", err)
	}
	delete(entries, selfKey)

	encoded, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("endpoints: encode: %w", err)
	}
	return &Catalog{entries: entries, encoded: encoded}, nil
}

// Len returns the number of served endpoints.
func (c *Catalog) Len() int { return len(c.entries) }

// Keys returns the endpoint keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the catalogue that callers may modify freely.
func (c *Catalog) Snapshot() map[string]Endpoint {
	out := make(map[string]Endpoint, len(c.entries))
	for k, v := range c.entries {
		v.Queries = append([]string(nil), v.Queries...)
		out[k] = v
	}
	return out
}

// MarshalJSON returns the JSON encoding computed at parse time.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	out := make([]byte, len(c.encoded))
	copy(out, c.encoded)
	return out, nil
}
