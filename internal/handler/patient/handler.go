package patient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/handler"
	"github.com/swasthya/subcenter-api/internal/middleware"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/service/patient"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/validator"
)

// ProfileSource resolves the authenticated staff member's profile for
// treated-by attribution. Satisfied by the auth service.
type ProfileSource interface {
	Profile(ctx context.Context, staffID uuid.UUID) (*model.Staff, error)
}

type Handler struct {
	svc      patient.PatientService
	profiles ProfileSource
}

func NewHandler(svc patient.PatientService, profiles ProfileSource) *Handler {
	return &Handler{svc: svc, profiles: profiles}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/patiententry", h.Create)
	r.GET("/patientdetails", h.List)
	r.GET("/patientdetails/:id", h.Get)
	r.PUT("/patientdetails/:id", h.Update)
	r.DELETE("/patientdetails/:id", h.Delete)

	r.POST("/revisits", h.AddRevisit)
	r.GET("/all/revisits", h.AllRevisits)
	r.GET("/revisits/:phoneNumber", h.Revisits)
	r.PUT("/revisits/:phoneNumber/:revisitId", h.UpdateRevisit)
	r.DELETE("/revisits/:phoneNumber/:revisitId", h.DeleteRevisit)

	r.GET("/patients/yearly/data/:year", h.YearlyData)
	r.GET("/staffentries", h.StaffEntries)
	r.GET("/staffEntries/:staffId", h.StaffEntriesByID)
}

// treatedBy builds the attribution block from the caller's own stored
// profile; clients never supply it.
func (h *Handler) treatedBy(c *gin.Context) (model.TreatedBy, error) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return model.TreatedBy{}, apperrors.Unauthorized("missing authentication")
	}

	staff, err := h.profiles.Profile(c.Request.Context(), claims.StaffID)
	if err != nil {
		return model.TreatedBy{}, err
	}

	return model.TreatedBy{
		StaffID:       staff.ID,
		StaffName:     staff.FullName,
		PHCName:       staff.PHCName,
		SubcenterName: staff.SubcenterName,
	}, nil
}

func patientIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid patient ID", err)
	}
	return id, nil
}

func (h *Handler) Create(c *gin.Context) {
	var req model.PatientEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	treatedBy, err := h.treatedBy(c)
	if err != nil {
		c.Error(err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req, treatedBy)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) List(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := patientIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	got, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(got))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := patientIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := patientIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(deleted))
}

func (h *Handler) AddRevisit(c *gin.Context) {
	var req model.RevisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	treatedBy, err := h.treatedBy(c)
	if err != nil {
		c.Error(err)
		return
	}

	created, err := h.svc.AddRevisit(c.Request.Context(), &req, treatedBy)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) AllRevisits(c *gin.Context) {
	revisits, err := h.svc.AllRevisits(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(revisits))
}

func revisitParams(c *gin.Context) (string, uuid.UUID, error) {
	phone := c.Param("phoneNumber")
	if !validator.ValidPhone(phone) {
		return "", uuid.Nil, apperrors.Validation("invalid phone number", nil)
	}

	revisitID, err := uuid.Parse(c.Param("revisitId"))
	if err != nil {
		return "", uuid.Nil, apperrors.Validation("invalid revisit ID", err)
	}
	return phone, revisitID, nil
}

func (h *Handler) Revisits(c *gin.Context) {
	phone := c.Param("phoneNumber")
	if !validator.ValidPhone(phone) {
		c.Error(apperrors.Validation("invalid phone number", nil))
		return
	}

	revisits, err := h.svc.Revisits(c.Request.Context(), phone)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(revisits))
}

func (h *Handler) UpdateRevisit(c *gin.Context) {
	phone, revisitID, err := revisitParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req model.UpdateRevisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.svc.UpdateRevisit(c.Request.Context(), phone, revisitID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteRevisit(c *gin.Context) {
	phone, revisitID, err := revisitParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	deleted, err := h.svc.DeleteRevisit(c.Request.Context(), phone, revisitID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(deleted))
}

func (h *Handler) YearlyData(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.Error(apperrors.Validation("invalid year", err))
		return
	}

	data, err := h.svc.YearlyData(c.Request.Context(), year)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(data))
}

func (h *Handler) StaffEntries(c *gin.Context) {
	counts, err := h.svc.StaffEntries(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(counts))
}

func (h *Handler) StaffEntriesByID(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		c.Error(apperrors.Validation("invalid staff ID", err))
		return
	}

	patients, err := h.svc.StaffEntriesByID(c.Request.Context(), staffID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
