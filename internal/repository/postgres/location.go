package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
)

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, loc *model.TargetLocation) error {
	query := `
		INSERT INTO target_locations (
			id, location_id, phc_name, subcenter_name, district, pincode,
			latitude, longitude, created_at, updated_at
		) VALUES (:id, :location_id, :phc_name, :subcenter_name, :district, :pincode,
			:latitude, :longitude, :created_at, :updated_at)
	`
	loc.CreatedAt = time.Now()
	loc.UpdatedAt = loc.CreatedAt

	if _, err := r.db.NamedExecContext(ctx, query, loc); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *locationRepository) List(ctx context.Context) ([]*model.TargetLocation, error) {
	query := `SELECT * FROM target_locations ORDER BY created_at DESC`
	var locations []*model.TargetLocation
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (r *locationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM target_locations WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *locationRepository) LocationIDTaken(ctx context.Context, locationID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM target_locations WHERE location_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, locationID); err != nil {
		return false, fmt.Errorf("failed to check location id: %w", err)
	}
	return exists, nil
}

func (r *locationRepository) Coordinates(ctx context.Context) ([]*model.Coordinates, error) {
	query := `SELECT location_id, latitude, longitude FROM target_locations ORDER BY location_id`
	var coords []*model.Coordinates
	if err := r.db.SelectContext(ctx, &coords, query); err != nil {
		return nil, fmt.Errorf("failed to list coordinates: %w", err)
	}
	return coords, nil
}
