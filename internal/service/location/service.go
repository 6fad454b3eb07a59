package location

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

const coordinatesCacheKey = "target_coordinates"

type LocationService interface {
	Set(ctx context.Context, req *model.SetLocationRequest) (*model.TargetLocation, error)
	List(ctx context.Context) ([]*model.TargetLocation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Coordinates(ctx context.Context) ([]*model.Coordinates, error)
}

type Service struct {
	repo  repository.LocationRepository
	cache *gocache.Cache
}

// NewService caches the coordinate list briefly; it is read on every
// geofenced attendance login but changes rarely.
func NewService(repo repository.LocationRepository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) Set(ctx context.Context, req *model.SetLocationRequest) (*model.TargetLocation, error) {
	taken, err := s.repo.LocationIDTaken(ctx, req.LocationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if taken {
		return nil, apperrors.Conflict("location ID is already registered")
	}

	loc := &model.TargetLocation{
		Base:          model.Base{ID: uuid.New()},
		LocationID:    req.LocationID,
		PHCName:       req.PHCName,
		SubCenterName: req.SubCenterName,
		District:      req.District,
		Pincode:       req.Pincode,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Delete(coordinatesCacheKey)
	return loc, nil
}

func (s *Service) List(ctx context.Context) ([]*model.TargetLocation, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return locations, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	s.cache.Delete(coordinatesCacheKey)
	return nil
}

func (s *Service) Coordinates(ctx context.Context) ([]*model.Coordinates, error) {
	if cached, ok := s.cache.Get(coordinatesCacheKey); ok {
		return cached.([]*model.Coordinates), nil
	}

	coords, err := s.repo.Coordinates(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.SetDefault(coordinatesCacheKey, coords)
	return coords, nil
}
