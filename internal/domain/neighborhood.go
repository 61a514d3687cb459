package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NeutralMetric is the value assumed for a factor a neighborhood has no data for
const NeutralMetric = 5

// Metrics maps each factor to a 1-10 neighborhood score
type Metrics map[Factor]int

// Get returns the metric for f, or NeutralMetric when it is missing
func (m Metrics) Get(f Factor) int {
	if v, ok := m[f]; ok {
		return v
	}
	return NeutralMetric
}

// UnmarshalJSON decodes a key/score object, dropping keys that are not factors
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode metrics: %w", err)
	}
	*m = metricsFromRaw(raw)
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON
func (m *Metrics) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]int
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decode metrics: %w", err)
	}
	*m = metricsFromRaw(raw)
	return nil
}

func metricsFromRaw(raw map[string]int) Metrics {
	out := make(Metrics, len(raw))
	for key, v := range raw {
		if f, ok := ParseFactor(key); ok {
			out[f] = v
		}
	}
	return out
}

// NeighborhoodDemographics describe who lives in a neighborhood
type NeighborhoodDemographics struct {
	MedianAge      float64 `json:"medianAge" yaml:"medianAge"`
	MedianIncome   float64 `json:"medianIncome" yaml:"medianIncome"`
	FamilyFriendly int     `json:"familyFriendly" yaml:"familyFriendly"`
	DiversityIndex int     `json:"diversityIndex" yaml:"diversityIndex"`
}

// Neighborhood is one entry of the static catalog
type Neighborhood struct {
	ID               string                   `json:"id" yaml:"id"`
	Name             string                   `json:"name" yaml:"name"`
	City             string                   `json:"city" yaml:"city"`
	State            string                   `json:"state" yaml:"state"`
	Image            string                   `json:"image,omitempty" yaml:"image"`
	Description      string                   `json:"description" yaml:"description"`
	Metrics          Metrics                  `json:"metrics" yaml:"metrics"`
	Demographics     NeighborhoodDemographics `json:"demographics" yaml:"demographics"`
	Highlights       []string                 `json:"highlights" yaml:"highlights"`
	Challenges       []string                 `json:"challenges" yaml:"challenges"`
	Amenities        []string                 `json:"amenities" yaml:"amenities"`
	HousingTypes     []string                 `json:"housingTypes" yaml:"housingTypes"`
	TransportOptions []string                 `json:"transportOptions" yaml:"transportOptions"`
}

// Catalog is an immutable, id-indexed snapshot of the neighborhood catalog.
// It is built once and shared read-only by every ranking request.
type Catalog struct {
	items []Neighborhood
	byID  map[string]int
}

// NewCatalog indexes the neighborhoods, rejecting duplicate or empty ids
func NewCatalog(items []Neighborhood) (*Catalog, error) {
	byID := make(map[string]int, len(items))
	for i, n := range items {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrCatalogInvalid, i)
		}
		if _, dup := byID[n.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNeighborhood, n.ID)
		}
		byID[n.ID] = i
	}
	return &Catalog{items: items, byID: byID}, nil
}

// All returns the neighborhoods in catalog order. Callers must not modify it.
func (c *Catalog) All() []Neighborhood {
	return c.items
}

// Len returns the number of neighborhoods
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the neighborhood with the given id
func (c *Catalog) Get(id string) (*Neighborhood, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNeighborhoodNotFound
	}
	return &c.items[i], nil
}
