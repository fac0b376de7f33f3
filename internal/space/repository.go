package space

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for space catalogue persistence.
type Repository interface {
	Create(ctx context.Context, s *Space) error
	GetByID(ctx context.Context, id string) (*Space, error)
	List(ctx context.Context) ([]Space, error)
}

// SQLiteRepository implements Repository using SQLite.
// Features and category IDs are stored as JSON text columns.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed space repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new space. The ID is generated if empty and occupancy
// defaults to vacio. Features are stored as given; field completeness is
// the caller's responsibility.
func (r *SQLiteRepository) Create(ctx context.Context, s *Space) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Occupancy == "" {
		s.Occupancy = OccupancyEmpty
	}
	if s.Features == nil {
		s.Features = []Feature{}
	}
	if s.CategoryIDs == nil {
		s.CategoryIDs = []string{}
	}

	featuresJSON, err := json.Marshal(s.Features)
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	categoriesJSON, err := json.Marshal(s.CategoryIDs)
	if err != nil {
		return fmt.Errorf("encoding category ids: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	s.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO espacios (id, name, type, occupancy_level, average_rating, latitude, longitude, floor, building, features, category_ids, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Type, string(s.Occupancy), s.AverageRating,
		s.Location.Latitude, s.Location.Longitude,
		nullString(s.Location.Floor), nullString(s.Location.Building),
		string(featuresJSON), string(categoriesJSON), now,
	)
	if err != nil {
		return fmt.Errorf("creating space: %w", err)
	}

	return nil
}

// GetByID retrieves a space by its unique ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Space, error) {
	row := r.db.QueryRowContext(ctx, spaceSelectColumns+" FROM espacios WHERE id = ?", id)
	return scanSpaceFrom(row)
}

// List returns all spaces ordered alphabetically by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Space, error) {
	rows, err := r.db.QueryContext(ctx, spaceSelectColumns+" FROM espacios ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing spaces: %w", err)
	}
	defer rows.Close()

	var spaces []Space
	for rows.Next() {
		s, err := scanSpaceFrom(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spaces: %w", err)
	}

	if spaces == nil {
		spaces = []Space{}
	}
	return spaces, nil
}

// spaceSelectColumns keeps the scan order in one place.
const spaceSelectColumns = "SELECT id, name, type, occupancy_level, average_rating, latitude, longitude, floor, building, features, category_ids, created_at"

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanSpaceFrom scans a space from any scanner (Row or Rows).
func scanSpaceFrom(sc scanner) (*Space, error) {
	var s Space
	var occupancy string
	var floor, building sql.NullString
	var featuresJSON, categoriesJSON string
	var createdAt string

	err := sc.Scan(&s.ID, &s.Name, &s.Type, &occupancy, &s.AverageRating,
		&s.Location.Latitude, &s.Location.Longitude, &floor, &building,
		&featuresJSON, &categoriesJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("scanning space: %w", err)
	}

	s.Occupancy = OccupancyLevel(occupancy)
	if floor.Valid {
		s.Location.Floor = floor.String
	}
	if building.Valid {
		s.Location.Building = building.String
	}

	if err := json.Unmarshal([]byte(featuresJSON), &s.Features); err != nil {
		return nil, fmt.Errorf("decoding features: %w", err)
	}
	if err := json.Unmarshal([]byte(categoriesJSON), &s.CategoryIDs); err != nil {
		return nil, fmt.Errorf("decoding category ids: %w", err)
	}
	if s.Features == nil {
		s.Features = []Feature{}
	}
	if s.CategoryIDs == nil {
		s.CategoryIDs = []string{}
	}

	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &s, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
