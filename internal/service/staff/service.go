package staff

import (
	"context"
	"database/sql"
	"errors"

	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

// StaffService covers the admin-side staff management endpoints.
type StaffService interface {
	List(ctx context.Context) ([]*model.Staff, error)
	UpdateByPhone(ctx context.Context, phone string, req *model.UpdateStaffRequest) (*model.Staff, error)
	DeleteByPhone(ctx context.Context, phone string) (*model.Staff, error)
}

type Service struct {
	staffRepo repository.StaffRepository
}

func NewService(staffRepo repository.StaffRepository) *Service {
	return &Service{staffRepo: staffRepo}
}

func (s *Service) List(ctx context.Context) ([]*model.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

func (s *Service) UpdateByPhone(ctx context.Context, phone string, req *model.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Gmail != nil && *req.Gmail != staff.Gmail {
		taken, err := s.staffRepo.Exists(ctx, repository.StaffFieldGmail, *req.Gmail, &staff.ID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if taken {
			return nil, apperrors.Conflict("Gmail is already registered by another user")
		}
		staff.Gmail = *req.Gmail
	}

	if req.FullName != nil {
		staff.FullName = *req.FullName
	}
	if req.Age != nil {
		staff.Age = *req.Age
	}
	if req.Gender != nil {
		staff.Gender = *req.Gender
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}
	if req.PHCName != nil {
		staff.PHCName = *req.PHCName
	}
	if req.PHCID != nil {
		staff.PHCID = *req.PHCID
	}
	if req.SubcenterName != nil {
		staff.SubcenterName = *req.SubcenterName
	}
	if req.SubcenterID != nil {
		staff.SubcenterID = *req.SubcenterID
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

func (s *Service) DeleteByPhone(ctx context.Context, phone string) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.staffRepo.DeleteByPhone(ctx, phone); err != nil {
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}
