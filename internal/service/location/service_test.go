package location

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthya/subcenter-api/internal/model"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

type fakeLocationRepo struct {
	byID       map[uuid.UUID]*model.TargetLocation
	coordCalls int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: make(map[uuid.UUID]*model.TargetLocation)}
}

func (r *fakeLocationRepo) Create(_ context.Context, loc *model.TargetLocation) error {
	clone := *loc
	r.byID[loc.ID] = &clone
	return nil
}

func (r *fakeLocationRepo) List(context.Context) ([]*model.TargetLocation, error) {
	var out []*model.TargetLocation
	for _, loc := range r.byID {
		out = append(out, loc)
	}
	return out, nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeLocationRepo) LocationIDTaken(_ context.Context, locationID string) (bool, error) {
	for _, loc := range r.byID {
		if loc.LocationID == locationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLocationRepo) Coordinates(context.Context) ([]*model.Coordinates, error) {
	r.coordCalls++
	var out []*model.Coordinates
	for _, loc := range r.byID {
		out = append(out, &model.Coordinates{
			LocationID: loc.LocationID,
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
		})
	}
	return out, nil
}

func setRequest(locationID string) *model.SetLocationRequest {
	return &model.SetLocationRequest{
		LocationID:    locationID,
		PHCName:       "Malur PHC",
		SubCenterName: "Hosur SC",
		District:      "Kolar",
		Pincode:       "563130",
		Latitude:      12.9716,
		Longitude:     77.5946,
	}
}

func TestSetRejectsDuplicateLocationID(t *testing.T) {
	repo := newFakeLocationRepo()
	svc := NewService(repo, time.Minute)

	_, err := svc.Set(context.Background(), setRequest("SC-001"))
	require.NoError(t, err)

	_, err = svc.Set(context.Background(), setRequest("SC-001"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestCoordinatesServedFromCache(t *testing.T) {
	repo := newFakeLocationRepo()
	svc := NewService(repo, time.Minute)

	_, err := svc.Set(context.Background(), setRequest("SC-001"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		coords, err := svc.Coordinates(context.Background())
		require.NoError(t, err)
		require.Len(t, coords, 1)
	}

	assert.Equal(t, 1, repo.coordCalls)
}

func TestMutationsInvalidateCache(t *testing.T) {
	repo := newFakeLocationRepo()
	svc := NewService(repo, time.Minute)

	first, err := svc.Set(context.Background(), setRequest("SC-001"))
	require.NoError(t, err)

	_, err = svc.Coordinates(context.Background())
	require.NoError(t, err)

	// A new location must appear on the next read.
	_, err = svc.Set(context.Background(), setRequest("SC-002"))
	require.NoError(t, err)

	coords, err := svc.Coordinates(context.Background())
	require.NoError(t, err)
	assert.Len(t, coords, 2)

	// Deleting drops it again.
	require.NoError(t, svc.Delete(context.Background(), first.ID))

	coords, err = svc.Coordinates(context.Background())
	require.NoError(t, err)
	assert.Len(t, coords, 1)
}
