package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/handler"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/service/attendance"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

type Handler struct {
	svc attendance.AttendanceService
}

func NewHandler(svc attendance.AttendanceService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/staff/:staffId/login", h.Login)
	r.POST("/staff/:staffId/logout", h.Logout)
	r.POST("/staff/:staffId/leaverequest", h.RequestLeave)
	r.GET("/staff/attendance/:staffId", h.History)
	r.GET("/staff/attendance/count/:staffId", h.PresentCount)
}

func staffIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid staff ID", err)
	}
	return id, nil
}

func (h *Handler) Login(c *gin.Context) {
	staffID, err := staffIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req model.AttendanceLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	rec, err := h.svc.Login(c.Request.Context(), staffID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) Logout(c *gin.Context) {
	staffID, err := staffIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req model.AttendanceLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	rec, err := h.svc.Logout(c.Request.Context(), staffID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}

func (h *Handler) RequestLeave(c *gin.Context) {
	staffID, err := staffIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req model.LeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	rec, err := h.svc.RequestLeave(c.Request.Context(), staffID, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) History(c *gin.Context) {
	staffID, err := staffIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	records, err := h.svc.History(c.Request.Context(), staffID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) PresentCount(c *gin.Context) {
	staffID, err := staffIDParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	count, err := h.svc.PresentCount(c.Request.Context(), staffID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(count))
}
