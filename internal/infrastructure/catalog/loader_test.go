package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborfit/backend/internal/domain"
)

const sampleJSON = `[
  {
    "id": "mission",
    "name": "Mission District",
    "city": "San Francisco",
    "state": "CA",
    "description": "Vibrant and walkable.",
    "metrics": {"walkability": 9, "nightlife": 9, "safety": 6, "popularity": 10},
    "demographics": {"medianAge": 34, "medianIncome": 95000, "familyFriendly": 5, "diversityIndex": 9},
    "highlights": ["Murals", "Taquerias"],
    "challenges": ["Noise"],
    "transportOptions": ["BART Rail", "Muni Bus"]
  },
  {
    "id": "sunset",
    "name": "Outer Sunset",
    "city": "San Francisco",
    "state": "CA",
    "metrics": {"outdoors": 9},
    "demographics": {"medianAge": 42, "medianIncome": 110000, "familyFriendly": 8}
  }
]`

const sampleYAML = `
- id: mission
  name: Mission District
  city: San Francisco
  state: CA
  metrics:
    walkability: 9
    costOfLiving: 3
  demographics:
    medianAge: 34
    medianIncome: 95000
    familyFriendly: 5
  highlights: [Murals]
  transportOptions: [Car]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileRepository_JSON(t *testing.T) {
	repo := NewFileRepository(writeFile(t, "catalog.json", sampleJSON), true)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	mission := items[0]
	assert.Equal(t, "mission", mission.ID)
	assert.Equal(t, 9, mission.Metrics.Get(domain.FactorWalkability))
	assert.Equal(t, domain.NeutralMetric, mission.Metrics.Get(domain.FactorSchools))
	assert.Len(t, mission.Metrics, 3, "unknown metric keys are dropped")
	assert.Equal(t, []string{"BART Rail", "Muni Bus"}, mission.TransportOptions)
	assert.Equal(t, 5, mission.Demographics.FamilyFriendly)

	assert.Equal(t, "sunset", items[1].ID)
}

func TestFileRepository_YAML(t *testing.T) {
	repo := NewFileRepository(writeFile(t, "catalog.yaml", sampleYAML), true)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Metrics.Get(domain.FactorCostOfLiving))
	assert.Equal(t, float64(95000), items[0].Demographics.MedianIncome)
	assert.Equal(t, []string{"Car"}, items[0].TransportOptions)
}

func TestFileRepository_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"metric out of range", `[{"id":"x","name":"X","city":"c","state":"s","metrics":{"safety":11},"demographics":{"medianAge":30,"medianIncome":1,"familyFriendly":5}}]`},
		{"missing demographics", `[{"id":"x","name":"X","city":"c","state":"s","metrics":{}}]`},
		{"empty id", `[{"id":"","name":"X","city":"c","state":"s","metrics":{},"demographics":{"medianAge":30,"medianIncome":1,"familyFriendly":5}}]`},
		{"not an array", `{"id":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFileRepository(writeFile(t, "catalog.json", tt.doc), true)
			_, err := repo.List(context.Background())
			assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
		})
	}
}

func TestFileRepository_SchemaValidationDisabled(t *testing.T) {
	doc := `[{"id":"x","name":"X","metrics":{"safety":11}}]`
	repo := NewFileRepository(writeFile(t, "catalog.json", doc), false)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, items[0].Metrics.Get(domain.FactorSafety))
}

func TestFileRepository_MissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "nope.json"), true)
	_, err := repo.List(context.Background())
	assert.Error(t, err)
}

func TestShippedCatalog(t *testing.T) {
	repo := NewFileRepository(filepath.Join("..", "..", "..", "data", "neighborhoods.json"), true)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)

	cat, err := domain.NewCatalog(items)
	require.NoError(t, err)
	for _, n := range cat.All() {
		assert.Len(t, n.Metrics, domain.FactorCount, n.ID)
		assert.NotEmpty(t, n.TransportOptions, n.ID)
	}
}
