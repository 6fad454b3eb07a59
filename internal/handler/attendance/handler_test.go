package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthya/subcenter-api/internal/middleware"
	"github.com/swasthya/subcenter-api/internal/model"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/logger"
)

type stubService struct {
	loginRec  *model.AttendanceRecord
	loginErr  error
	logoutRec *model.AttendanceRecord
	logoutErr error
}

func (s *stubService) Login(context.Context, uuid.UUID, *model.AttendanceLoginRequest) (*model.AttendanceRecord, error) {
	return s.loginRec, s.loginErr
}

func (s *stubService) Logout(context.Context, uuid.UUID, *model.AttendanceLogoutRequest) (*model.AttendanceRecord, error) {
	return s.logoutRec, s.logoutErr
}

func (s *stubService) RequestLeave(context.Context, uuid.UUID, string) (*model.AttendanceRecord, error) {
	return nil, nil
}

func (s *stubService) History(context.Context, uuid.UUID) ([]*model.AttendanceRecord, error) {
	return nil, nil
}

func (s *stubService) PresentCount(context.Context, uuid.UUID) (*model.AttendanceCountResponse, error) {
	return nil, nil
}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	engine.Use(middleware.ErrorHandler(log))

	h := NewHandler(svc)
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginReturnsCreated(t *testing.T) {
	staffID := uuid.New()
	loginTime := "09:00:00"
	svc := &stubService{loginRec: &model.AttendanceRecord{
		ID:        uuid.New(),
		StaffID:   staffID,
		Date:      "2026-03-02",
		LoginTime: &loginTime,
		Status:    model.AttendancePresent,
	}}
	engine := newTestRouter(svc)

	w := postJSON(t, engine, "/api/v1/staff/"+staffID.String()+"/login", gin.H{"password": "secret123"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string                 `json:"status"`
		Data   model.AttendanceRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, model.AttendancePresent, resp.Data.Status)
}

func TestLoginRejectsMalformedStaffID(t *testing.T) {
	engine := newTestRouter(&stubService{})

	w := postJSON(t, engine, "/api/v1/staff/not-a-uuid/login", gin.H{"password": "secret123"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsMissingPassword(t *testing.T) {
	engine := newTestRouter(&stubService{})

	w := postJSON(t, engine, "/api/v1/staff/"+uuid.NewString()+"/login", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginConflictMapsTo400(t *testing.T) {
	svc := &stubService{loginErr: apperrors.Conflict("attendance already marked for today")}
	engine := newTestRouter(svc)

	w := postJSON(t, engine, "/api/v1/staff/"+uuid.NewString()+"/login", gin.H{"password": "secret123"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already marked")
}

func TestLoginGeofenceMapsTo403(t *testing.T) {
	svc := &stubService{loginErr: apperrors.Forbidden("outside the permitted attendance area")}
	engine := newTestRouter(svc)

	w := postJSON(t, engine, "/api/v1/staff/"+uuid.NewString()+"/login", gin.H{"password": "secret123"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutUnknownStaffMapsTo404(t *testing.T) {
	svc := &stubService{logoutErr: apperrors.NotFound("staff", nil)}
	engine := newTestRouter(svc)

	w := postJSON(t, engine, "/api/v1/staff/"+uuid.NewString()+"/logout", gin.H{"password": "secret123"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
