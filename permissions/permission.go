package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var raw []byte

// Endpoint is the access rule for one chi route pattern. An empty Roles list admits any authenticated caller.
type Endpoint struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Roles  []string `json:"roles"`
	Public bool     `json:"public"`
}

func (e Endpoint) Allows(role string) bool {
	return len(e.Roles) == 0 || slices.Contains(e.Roles, role)
}

// Table indexes endpoints by method and pattern. With Enforce off every route is open to any authenticated caller.
type Table struct {
	Enforce   bool       `json:"enforce"`
	Endpoints []Endpoint `json:"endpoints"`

	index map[string]Endpoint
}

func key(method, path string) string {
	return method + " " + path
}

func Parse(data []byte) (*Table, error) {
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.index = make(map[string]Endpoint, len(table.Endpoints))

	for _, endpoint := range table.Endpoints {
		k := key(endpoint.Method, endpoint.Path)
		if _, ok := table.index[k]; ok {
			return nil, fmt.Errorf("duplicate permission for %s", k)
		}

		table.index[k] = endpoint
	}

	return &table, nil
}

// Lookup returns the rule for the route, or false when the route is not listed.
func (t *Table) Lookup(method, path string) (Endpoint, bool) {
	endpoint, ok := t.index[key(method, path)]

	return endpoint, ok
}

func (t *Table) IsPublic(method, path string) bool {
	endpoint, ok := t.Lookup(method, path)

	return ok && endpoint.Public
}

var load = sync.OnceValue(func() *Table {
	table, err := Parse(raw)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("Loaded embedded permissions")

	return table
})

// Get returns the embedded table, parsed once.
func Get() *Table {
	return load()
}
