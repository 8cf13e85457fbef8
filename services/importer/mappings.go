package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Mappings is the persisted memory of past interactive decisions, so a
// rerun of the same document asks nothing twice. The file is rewritten
// in full after every imported recipe.
type Mappings struct {
	path string

	// GroceryMappings aliases an ingredient key to the catalog name it
	// resolved to. Values may chain onto other keys.
	GroceryMappings map[string]string `json:"grocery_mappings"`
	// UnitConversions stores manually entered factors keyed by
	// "<grocery>:<from>-><to>".
	UnitConversions map[string]float64 `json:"unit_conversions"`
	AutoCreate      struct {
		Enabled bool `json:"enabled"`
	} `json:"auto_create"`
}

// LoadMappings reads the mapping file, a missing file yields an empty
// store bound to the same path.
func LoadMappings(path string) (*Mappings, error) {
	m := &Mappings{
		path:            path,
		GroceryMappings: map[string]string{},
		UnitConversions: map[string]float64{},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(data, m)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if m.GroceryMappings == nil {
		m.GroceryMappings = map[string]string{}
	}
	if m.UnitConversions == nil {
		m.UnitConversions = map[string]float64{}
	}
	return m, nil
}

func (m *Mappings) Flush() error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, append(data, '\n'), 0644)
}

func mappingKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveName follows the alias chain from a key to its final catalog
// name. Chains are walked iteratively with a visited set, a cycle in
// the data surfaces as an error rather than a hang.
func (m *Mappings) ResolveName(name string) (string, bool, error) {
	key := mappingKey(name)
	target, ok := m.GroceryMappings[key]
	if !ok {
		return "", false, nil
	}

	visited := map[string]bool{key: true}
	for {
		next, ok := m.GroceryMappings[mappingKey(target)]
		if !ok {
			return target, true, nil
		}
		if visited[mappingKey(target)] {
			return "", false, fmt.Errorf("mapping cycle detected at %q", target)
		}
		visited[mappingKey(target)] = true
		target = next
	}
}

func (m *Mappings) AddName(from, to string) {
	m.GroceryMappings[mappingKey(from)] = to
}

func (m *Mappings) RemoveName(from string) bool {
	key := mappingKey(from)
	_, ok := m.GroceryMappings[key]
	delete(m.GroceryMappings, key)
	return ok
}

func conversionKey(grocery, from, to string) string {
	return fmt.Sprintf("%s:%s->%s", mappingKey(grocery), from, to)
}

func (m *Mappings) Conversion(grocery, from, to string) (float64, bool) {
	factor, ok := m.UnitConversions[conversionKey(grocery, from, to)]
	return factor, ok
}

func (m *Mappings) AddConversion(grocery, from, to string, factor float64) {
	m.UnitConversions[conversionKey(grocery, from, to)] = factor
}
