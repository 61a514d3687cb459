package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/neighborfit/backend/internal/domain"
)

// FileRepository serves the catalog from a JSON or YAML document on disk
type FileRepository struct {
	path           string
	validateSchema bool
}

// NewFileRepository creates a repository for the document at path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
func NewFileRepository(path string, validateSchema bool) *FileRepository {
	return &FileRepository{path: path, validateSchema: validateSchema}
}

// List reads and decodes the whole document
func (r *FileRepository) List(ctx context.Context) ([]domain.Neighborhood, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		return DecodeYAML(b, r.validateSchema)
	default:
		return DecodeJSON(b, r.validateSchema)
	}
}

// DecodeJSON parses a JSON catalog document
func DecodeJSON(b []byte, validateSchema bool) ([]domain.Neighborhood, error) {
	if validateSchema {
		if err := validateDocument(gojsonschema.NewBytesLoader(b)); err != nil {
			return nil, err
		}
	}

	var items []domain.Neighborhood
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return items, nil
}

// DecodeYAML parses a YAML catalog document
func DecodeYAML(b []byte, validateSchema bool) ([]domain.Neighborhood, error) {
	if validateSchema {
		var doc interface{}
		if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&doc); err != nil {
			return nil, fmt.Errorf("unmarshal catalog: %w", err)
		}
		if err := validateDocument(gojsonschema.NewGoLoader(doc)); err != nil {
			return nil, err
		}
	}

	var items []domain.Neighborhood
	if err := yaml.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return items, nil
}

func validateDocument(doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(neighborhoodSchema), doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", domain.ErrCatalogInvalid, strings.Join(msgs, "; "))
}
