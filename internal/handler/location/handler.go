package location

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swasthya/subcenter-api/internal/handler"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/service/location"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

// Handler serves the geofence target location endpoints.
type Handler struct {
	svc location.LocationService
}

func NewHandler(svc location.LocationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/set/location", h.Set)
	r.GET("/get/location", h.List)
	r.DELETE("/delete/location/:id", h.Delete)
	r.GET("/target/coordinates", h.Coordinates)
}

func (h *Handler) Set(c *gin.Context) {
	var req model.SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	loc, err := h.svc.Set(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(loc))
}

func (h *Handler) List(c *gin.Context) {
	locations, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(locations))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.Validation("invalid location ID", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("location deleted"))
}

func (h *Handler) Coordinates(c *gin.Context) {
	coords, err := h.svc.Coordinates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(coords))
}
