package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neighborfit/backend/internal/domain"
)

// SQLiteStore keeps the catalog in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error { return s.db.Close() }

// EnsureSchema creates the neighborhoods table
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS neighborhoods (
  position INTEGER NOT NULL,
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  median_age REAL NOT NULL DEFAULT 0,
  median_income REAL NOT NULL DEFAULT 0,
  family_friendly INTEGER NOT NULL DEFAULT 0,
  diversity_index INTEGER NOT NULL DEFAULT 0,
  metrics_json TEXT NOT NULL DEFAULT '{}',
  highlights_json TEXT NOT NULL DEFAULT '[]',
  challenges_json TEXT NOT NULL DEFAULT '[]',
  amenities_json TEXT NOT NULL DEFAULT '[]',
  housing_types_json TEXT NOT NULL DEFAULT '[]',
  transport_options_json TEXT NOT NULL DEFAULT '[]'
);
`
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create neighborhoods table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_neighborhoods_position ON neighborhoods(position);`); err != nil {
		return fmt.Errorf("create position index: %w", err)
	}
	return nil
}

// Count returns the number of stored neighborhoods
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM neighborhoods`).Scan(&n)
	return n, err
}

// UpsertMany inserts the dataset without duplicating by id, keeping the
// given order as catalog order.
func (s *SQLiteStore) UpsertMany(ctx context.Context, items []domain.Neighborhood) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO neighborhoods
(position, id, name, city, state, image, description, median_age, median_income, family_friendly, diversity_index,
 metrics_json, highlights_json, challenges_json, amenities_json, housing_types_json, transport_options_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, n := range items {
		metrics, err := json.Marshal(n.Metrics)
		if err != nil {
			return fmt.Errorf("encode metrics for %s: %w", n.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			i, n.ID, n.Name, n.City, n.State, n.Image, n.Description,
			n.Demographics.MedianAge, n.Demographics.MedianIncome,
			n.Demographics.FamilyFriendly, n.Demographics.DiversityIndex,
			string(metrics), jsonList(n.Highlights), jsonList(n.Challenges), jsonList(n.Amenities),
			jsonList(n.HousingTypes), jsonList(n.TransportOptions),
		); err != nil {
			return fmt.Errorf("insert %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

// List returns every neighborhood in catalog order
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Neighborhood, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, city, state, image, description, median_age, median_income, family_friendly, diversity_index,
       metrics_json, highlights_json, challenges_json, amenities_json, housing_types_json, transport_options_json
FROM neighborhoods
ORDER BY position, id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Neighborhood
	for rows.Next() {
		var n domain.Neighborhood
		var metricsJSON, highlightsJSON, challengesJSON, amenitiesJSON, housingJSON, transportJSON string

		if err := rows.Scan(
			&n.ID, &n.Name, &n.City, &n.State, &n.Image, &n.Description,
			&n.Demographics.MedianAge, &n.Demographics.MedianIncome,
			&n.Demographics.FamilyFriendly, &n.Demographics.DiversityIndex,
			&metricsJSON, &highlightsJSON, &challengesJSON, &amenitiesJSON, &housingJSON, &transportJSON,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metricsJSON), &n.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics for %s: %w", n.ID, err)
		}
		for _, col := range []struct {
			name string
			raw  string
			dst  *[]string
		}{
			{"highlights", highlightsJSON, &n.Highlights},
			{"challenges", challengesJSON, &n.Challenges},
			{"amenities", amenitiesJSON, &n.Amenities},
			{"housing types", housingJSON, &n.HousingTypes},
			{"transport options", transportJSON, &n.TransportOptions},
		} {
			if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
				return nil, fmt.Errorf("decode %s for %s: %w", col.name, n.ID, err)
			}
		}

		out = append(out, n)
	}
	return out, rows.Err()
}

// Seed fills an empty store from src. It is a no-op when rows already exist.
func (s *SQLiteStore) Seed(ctx context.Context, src domain.NeighborhoodRepository) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	items, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load seed catalog: %w", err)
	}
	if err := s.UpsertMany(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func jsonList(v []string) string {
	if v == nil {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}
