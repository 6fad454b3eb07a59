package auth

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthya/subcenter-api/internal/email"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/repository"
	"github.com/swasthya/subcenter-api/pkg/auth"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/logger"
)

type fakeStaffRepo struct {
	byID map[uuid.UUID]*model.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{byID: make(map[uuid.UUID]*model.Staff)}
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *model.Staff) error {
	clone := *staff
	r.byID[staff.ID] = &clone
	return nil
}

func (r *fakeStaffRepo) Get(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *staff
	return &clone, nil
}

func (r *fakeStaffRepo) GetByPhone(_ context.Context, phone string) (*model.Staff, error) {
	for _, s := range r.byID {
		if s.PhoneNumber == phone {
			clone := *s
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStaffRepo) List(context.Context) ([]*model.Staff, error) { return nil, nil }

func (r *fakeStaffRepo) Update(_ context.Context, staff *model.Staff) error {
	clone := *staff
	r.byID[staff.ID] = &clone
	return nil
}

func (r *fakeStaffRepo) DeleteByPhone(context.Context, string) error { return nil }

func (r *fakeStaffRepo) Exists(_ context.Context, field repository.StaffField, value string, excludeID *uuid.UUID) (bool, error) {
	for _, s := range r.byID {
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		switch field {
		case repository.StaffFieldPhone:
			if s.PhoneNumber == value {
				return true, nil
			}
		case repository.StaffFieldAadhar:
			if s.AadharID == value {
				return true, nil
			}
		case repository.StaffFieldGmail:
			if s.Gmail == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeStaffRepo) AnyIdentityTaken(_ context.Context, phone, aadhar, gmail string) (bool, error) {
	for _, s := range r.byID {
		if s.PhoneNumber == phone || s.AadharID == aadhar || s.Gmail == gmail {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokenRepo struct {
	revoked map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{revoked: make(map[string]bool)}
}

func (r *fakeTokenRepo) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	r.revoked[tokenID] = true
	return nil
}

func (r *fakeTokenRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return r.revoked[tokenID], nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Compare(hashed, password string) error {
	if hashed != "h:"+password {
		return assert.AnError
	}
	return nil
}

func newTestService() (*Service, *fakeStaffRepo, *fakeTokenRepo) {
	staffRepo := newFakeStaffRepo()
	tokenRepo := newFakeTokenRepo()
	tokens := auth.NewTokenService("test-secret", "subcenter-api", time.Hour)
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	svc := NewService(staffRepo, tokenRepo, plainHasher{}, tokens, email.NewNoop(), log)
	return svc, staffRepo, tokenRepo
}

func signupRequest() *model.SignupRequest {
	return &model.SignupRequest{
		FullName:        "Asha Kumari",
		Age:             29,
		Gender:          "F",
		PhoneNumber:     "9876543210",
		AadharID:        "123412341234",
		Role:            model.RoleANM1,
		PHCName:         "Malur PHC",
		Gmail:           "asha.kumari@gmail.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestSignupStoresHashedPassword(t *testing.T) {
	svc, staffRepo, _ := newTestService()

	staff, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	stored := staffRepo.byID[staff.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "h:secret123", stored.PasswordHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestSignupRejectsTakenIdentity(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Same Gmail, everything else fresh.
	req := signupRequest()
	req.PhoneNumber = "9876543211"
	req.AadharID = "123412341235"
	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, _, _ := newTestService()

	staff, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		PhoneNumber: "9876543210",
		Password:    "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, "9876543210", claims.Phone)
	assert.Equal(t, model.RoleANM1, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), &model.LoginRequest{
		PhoneNumber: "9999999999",
		Password:    "secret123",
	})
	_, errWrongPw := svc.Login(context.Background(), &model.LoginRequest{
		PhoneNumber: "9876543210",
		Password:    "not-the-password",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.True(t, apperrors.IsCode(errUnknown, apperrors.ErrUnauthorized))
	assert.True(t, apperrors.IsCode(errWrongPw, apperrors.ErrUnauthorized))
	// Unknown number and wrong password return the same message.
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		PhoneNumber: "9876543210",
		Password:    "secret123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	_, err = svc.ValidateToken(context.Background(), resp.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
}

func TestUpdateProfileChecksUniqueness(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	second := signupRequest()
	second.PhoneNumber = "9876543211"
	second.AadharID = "123412341235"
	second.Gmail = "asha.other@gmail.com"
	other, err := svc.Signup(context.Background(), second)
	require.NoError(t, err)

	// Taking the first account's phone must fail.
	_, err = svc.UpdateProfile(context.Background(), other.ID, &model.UpdateProfileRequest{
		FullName:    other.FullName,
		PhoneNumber: first.PhoneNumber,
		Gmail:       other.Gmail,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	// Keeping one's own values is fine.
	updated, err := svc.UpdateProfile(context.Background(), other.ID, &model.UpdateProfileRequest{
		FullName:    "Asha K",
		PhoneNumber: other.PhoneNumber,
		Gmail:       other.Gmail,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.FullName)
}

func TestCheckExisting(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	exists, err := svc.CheckExisting(context.Background(), "phoneNumber", "9876543210")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.CheckExisting(context.Background(), "gmail", "nobody@gmail.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.CheckExisting(context.Background(), "role", "Admin")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}
