package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasthya/subcenter-api/internal/handler"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/service/staff"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
	"github.com/swasthya/subcenter-api/pkg/validator"
)

// Handler serves the admin-only staff management endpoints.
type Handler struct {
	svc staff.StaffService
}

func NewHandler(svc staff.StaffService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/staff/sc/profiles", h.List)
	r.PUT("/edit/staff/:phoneNumber", h.Update)
	r.DELETE("/remove/staff/:phoneNumber", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	staffList, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(staffList))
}

func (h *Handler) Update(c *gin.Context) {
	phone := c.Param("phoneNumber")
	if !validator.ValidPhone(phone) {
		c.Error(apperrors.Validation("invalid phone number", nil))
		return
	}

	var req model.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.svc.UpdateByPhone(c.Request.Context(), phone, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	phone := c.Param("phoneNumber")
	if !validator.ValidPhone(phone) {
		c.Error(apperrors.Validation("invalid phone number", nil))
		return
	}

	deleted, err := h.svc.DeleteByPhone(c.Request.Context(), phone)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(deleted))
}
