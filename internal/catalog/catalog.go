package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// Stage is one selectable stage. Immutable after load.
type Stage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// Catalog is the ordered stage list loaded once at startup.
type Catalog struct {
	stages []Stage
	byID   map[string]Stage
}

//go:embed stages.json
var defaultStages []byte

// Default loads the embedded stage list.
func Default() (*Catalog, error) {
	return parse(defaultStages)
}

// LoadFile loads a stage list from a JSON file, replacing the embedded default.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage list: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var stages []Stage
	if err := json.Unmarshal(data, &stages); err != nil {
		return nil, fmt.Errorf("parse stage list: %w", err)
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("stage list is empty")
	}

	byID := make(map[string]Stage, len(stages))
	for _, s := range stages {
		if s.ID == "" {
			return nil, fmt.Errorf("stage %q has no id", s.Name)
		}
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %q", s.ID)
		}
		byID[s.ID] = s
	}
	return &Catalog{stages: stages, byID: byID}, nil
}

// Has reports whether id names a stage in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Stages returns the stages in load order.
func (c *Catalog) Stages() []Stage { return c.stages }

// IDs returns the stage ids in load order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.stages))
	for i, s := range c.stages {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of stages.
func (c *Catalog) Len() int { return len(c.stages) }
