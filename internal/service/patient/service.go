package patient

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/timewindow"
)

type PatientService interface {
	Create(ctx context.Context, req *model.PatientEntryRequest, treatedBy model.TreatedBy) (*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	AddRevisit(ctx context.Context, req *model.RevisitRequest, treatedBy model.TreatedBy) (*model.Revisit, error)
	Revisits(ctx context.Context, phone string) ([]*model.Revisit, error)
	AllRevisits(ctx context.Context) ([]*model.Revisit, error)
	UpdateRevisit(ctx context.Context, phone string, revisitID uuid.UUID, req *model.UpdateRevisitRequest) (*model.Revisit, error)
	DeleteRevisit(ctx context.Context, phone string, revisitID uuid.UUID) (*model.Revisit, error)
	YearlyData(ctx context.Context, year int) ([]*model.MonthlyPatientCount, error)
	StaffEntries(ctx context.Context) ([]*model.StaffEntryCount, error)
	StaffEntriesByID(ctx context.Context, staffID uuid.UUID) ([]*model.Patient, error)
}

type Service struct {
	patientRepo repository.PatientRepository
	revisitRepo repository.RevisitRepository
	window      timewindow.Policy
	now         func() time.Time
}

func NewService(patientRepo repository.PatientRepository, revisitRepo repository.RevisitRepository, window timewindow.Policy) *Service {
	return &Service{
		patientRepo: patientRepo,
		revisitRepo: revisitRepo,
		window:      window,
		now:         time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.PatientEntryRequest, treatedBy model.TreatedBy) (*model.Patient, error) {
	inUse, err := s.patientRepo.PhoneInUse(ctx, req.PhoneNumber, nil)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if inUse {
		return nil, apperrors.Conflict("patient with this phone number already exists")
	}

	patient := &model.Patient{
		Base:              model.Base{ID: uuid.New()},
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Age:               req.Age,
		Gender:            req.Gender,
		IsCovid19Positive: req.IsCovid19Positive,
		PhoneNumber:       req.PhoneNumber,
		Diagnosis:         req.Diagnosis,
		Treatment:         req.Treatment,
		OtherInfo:         req.OtherInfo,
		TreatedBy:         treatedBy,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.patientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	revisits, err := s.revisitRepo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	patient.Revisits = revisits
	return patient, nil
}

// List keeps the original contract of treating an empty store as not
// found.
func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.patientRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(patients) == 0 {
		return nil, apperrors.NotFound("patients", nil)
	}
	return patients, nil
}

// Update deliberately applies no time window; only deletion is gated
// for patients.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	inUse, err := s.patientRepo.PhoneInUse(ctx, req.PhoneNumber, &id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if inUse {
		return nil, apperrors.Conflict("phone number already exists, try updating with a different number")
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.IsCovid19Positive = req.IsCovid19Positive
	patient.PhoneNumber = req.PhoneNumber
	patient.Diagnosis = req.Diagnosis
	patient.Treatment = req.Treatment
	patient.OtherInfo = req.OtherInfo

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.patientRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.window.Check(timewindow.PatientDelete, patient.CreatedAt, s.now()); err != nil {
		return nil, err
	}

	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *Service) AddRevisit(ctx context.Context, req *model.RevisitRequest, treatedBy model.TreatedBy) (*model.Revisit, error) {
	patient, err := s.patientRepo.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	revisit := &model.Revisit{
		ID:        uuid.New(),
		PatientID: patient.ID,
		Diagnosis: req.Diagnosis,
		Treatment: req.Treatment,
		OtherInfo: req.OtherInfo,
		TreatedBy: treatedBy,
	}

	if err := s.revisitRepo.Create(ctx, revisit); err != nil {
		return nil, apperrors.Internal(err)
	}
	return revisit, nil
}

func (s *Service) Revisits(ctx context.Context, phone string) ([]*model.Revisit, error) {
	patient, err := s.patientRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	revisits, err := s.revisitRepo.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return revisits, nil
}

func (s *Service) AllRevisits(ctx context.Context) ([]*model.Revisit, error) {
	revisits, err := s.revisitRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return revisits, nil
}

func (s *Service) getRevisit(ctx context.Context, phone string, revisitID uuid.UUID) (*model.Revisit, error) {
	patient, err := s.patientRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(err)
	}

	revisit, err := s.revisitRepo.Get(ctx, patient.ID, revisitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("revisit", err)
		}
		return nil, apperrors.Internal(err)
	}
	return revisit, nil
}

// UpdateRevisit keeps the original merge semantics: absent fields leave
// stored values untouched. The revisit's own creation time drives the
// window check.
func (s *Service) UpdateRevisit(ctx context.Context, phone string, revisitID uuid.UUID, req *model.UpdateRevisitRequest) (*model.Revisit, error) {
	revisit, err := s.getRevisit(ctx, phone, revisitID)
	if err != nil {
		return nil, err
	}

	if err := s.window.Check(timewindow.RevisitEdit, revisit.CreatedAt, s.now()); err != nil {
		return nil, err
	}

	if req.Diagnosis != nil {
		revisit.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		revisit.Treatment = *req.Treatment
	}
	if req.OtherInfo != nil {
		revisit.OtherInfo = *req.OtherInfo
	}

	if err := s.revisitRepo.Update(ctx, revisit); err != nil {
		return nil, apperrors.Internal(err)
	}
	return revisit, nil
}

func (s *Service) DeleteRevisit(ctx context.Context, phone string, revisitID uuid.UUID) (*model.Revisit, error) {
	revisit, err := s.getRevisit(ctx, phone, revisitID)
	if err != nil {
		return nil, err
	}

	if err := s.window.Check(timewindow.RevisitDelete, revisit.CreatedAt, s.now()); err != nil {
		return nil, err
	}

	if err := s.revisitRepo.Delete(ctx, revisit.PatientID, revisitID); err != nil {
		return nil, apperrors.Internal(err)
	}
	return revisit, nil
}

// YearlyData returns one entry per month, filling months with no
// intake with zero so charts stay aligned.
func (s *Service) YearlyData(ctx context.Context, year int) ([]*model.MonthlyPatientCount, error) {
	counts, err := s.patientRepo.MonthlyCounts(ctx, year)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	byMonth := make(map[int]int, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}

	full := make([]*model.MonthlyPatientCount, 0, 12)
	for m := 1; m <= 12; m++ {
		full = append(full, &model.MonthlyPatientCount{Month: m, Count: byMonth[m]})
	}
	return full, nil
}

func (s *Service) StaffEntries(ctx context.Context) ([]*model.StaffEntryCount, error) {
	counts, err := s.patientRepo.CountByStaff(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return counts, nil
}

func (s *Service) StaffEntriesByID(ctx context.Context, staffID uuid.UUID) ([]*model.Patient, error) {
	patients, err := s.patientRepo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}
