package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/email"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	"github.com/swasthya/subcenter-api/pkg/auth"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/logger"
	"github.com/swasthya/subcenter-api/pkg/security"
)

// invalidCredentials is deliberately the same for unknown numbers and
// wrong passwords.
const invalidCredentials = "invalid mobile number or password"

type AuthService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.Staff, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Logout(ctx context.Context, claims *model.TokenClaims) error
	Profile(ctx context.Context, staffID uuid.UUID) (*model.Staff, error)
	UpdateProfile(ctx context.Context, staffID uuid.UUID, req *model.UpdateProfileRequest) (*model.Staff, error)
	CheckExisting(ctx context.Context, field, value string) (bool, error)
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
}

type Service struct {
	staffRepo repository.StaffRepository
	tokenRepo repository.TokenRepository
	hasher    security.PasswordHasher
	tokens    *auth.TokenService
	mailer    email.Service
	log       *logger.Logger
}

func NewService(
	staffRepo repository.StaffRepository,
	tokenRepo repository.TokenRepository,
	hasher security.PasswordHasher,
	tokens *auth.TokenService,
	mailer email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		staffRepo: staffRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		log:       log,
	}
}

func (s *Service) Signup(ctx context.Context, req *model.SignupRequest) (*model.Staff, error) {
	taken, err := s.staffRepo.AnyIdentityTaken(ctx, req.PhoneNumber, req.AadharID, req.Gmail)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if taken {
		return nil, apperrors.Conflict("mobile number, Aadhar number, or Gmail is already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	staff := &model.Staff{
		Base:          model.Base{ID: uuid.New()},
		FullName:      req.FullName,
		Age:           req.Age,
		Gender:        req.Gender,
		PhoneNumber:   req.PhoneNumber,
		AadharID:      req.AadharID,
		Role:          req.Role,
		PHCName:       req.PHCName,
		PHCID:         req.PHCID,
		SubcenterName: req.SubcenterName,
		SubcenterID:   req.SubcenterID,
		Gmail:         req.Gmail,
		PasswordHash:  hash,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.mailer.SendWelcome(ctx, staff.Gmail, staff.FullName); err != nil {
		s.log.Error(err, "failed to send welcome email")
	}

	return staff, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	staff, err := s.staffRepo.GetByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized(invalidCredentials)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(staff.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	token, claims, err := s.tokens.Generate(staff.ID, staff.PhoneNumber, string(staff.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// Logout puts the token on the revocation list until its natural
// expiry.
func (s *Service) Logout(ctx context.Context, claims *model.TokenClaims) error {
	ttl := time.Until(claims.ExpiresAt)
	if err := s.tokenRepo.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, staffID uuid.UUID) (*model.Staff, error) {
	staff, err := s.staffRepo.Get(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

func (s *Service) UpdateProfile(ctx context.Context, staffID uuid.UUID, req *model.UpdateProfileRequest) (*model.Staff, error) {
	staff, err := s.staffRepo.Get(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, apperrors.Internal(err)
	}

	if taken, err := s.staffRepo.Exists(ctx, repository.StaffFieldPhone, req.PhoneNumber, &staffID); err != nil {
		return nil, apperrors.Internal(err)
	} else if taken {
		return nil, apperrors.Conflict("mobile number is already registered by another user")
	}

	if taken, err := s.staffRepo.Exists(ctx, repository.StaffFieldGmail, req.Gmail, &staffID); err != nil {
		return nil, apperrors.Internal(err)
	} else if taken {
		return nil, apperrors.Conflict("Gmail is already registered by another user")
	}

	staff.FullName = req.FullName
	staff.PhoneNumber = req.PhoneNumber
	staff.Gmail = req.Gmail

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

// jsonFieldNames maps the client-facing field names of the existence
// check endpoint to columns.
var jsonFieldNames = map[string]repository.StaffField{
	"phoneNumber": repository.StaffFieldPhone,
	"aadharID":    repository.StaffFieldAadhar,
	"gmail":       repository.StaffFieldGmail,
}

func (s *Service) CheckExisting(ctx context.Context, field, value string) (bool, error) {
	column, ok := jsonFieldNames[field]
	if !ok {
		return false, apperrors.Validation("invalid field", nil)
	}

	exists, err := s.staffRepo.Exists(ctx, column, value, nil)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return exists, nil
}

// ValidateToken verifies the signature and rejects tokens revoked by a
// logout.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token")
	}

	staffID, err := uuid.Parse(claims.StaffID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token")
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("token has been revoked")
	}

	return &model.TokenClaims{
		StaffID:   staffID,
		Phone:     claims.Phone,
		Role:      model.StaffRole(claims.Role),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
