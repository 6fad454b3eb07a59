package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swasthya/subcenter-api/internal/handler"
	"github.com/swasthya/subcenter-api/internal/middleware"
	"github.com/swasthya/subcenter-api/internal/model"
	"github.com/swasthya/subcenter-api/internal/service/auth"
	apperrors "github.com/swasthya/subcenter-api/pkg/errors"
)

type Handler struct {
	svc auth.AuthService
}

func NewHandler(svc auth.AuthService) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/checkexistingrecord/:field/:value", h.CheckExisting)
}

// RegisterRoutes mounts the endpoints behind authentication.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.DELETE("/logout", h.Logout)
	r.GET("/profile", h.Profile)
	r.PUT("/staff/edit", h.UpdateProfile)
}

func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	staff, err := h.svc.Signup(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(staff))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Logout(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.Error(apperrors.Unauthorized("missing authentication"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("logged out successfully"))
}

func (h *Handler) Profile(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.Error(apperrors.Unauthorized("missing authentication"))
		return
	}

	staff, err := h.svc.Profile(c.Request.Context(), claims.StaffID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(staff))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.Error(apperrors.Unauthorized("missing authentication"))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Validation(err.Error(), err))
		return
	}

	staff, err := h.svc.UpdateProfile(c.Request.Context(), claims.StaffID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(staff))
}

func (h *Handler) CheckExisting(c *gin.Context) {
	exists, err := h.svc.CheckExisting(c.Request.Context(), c.Param("field"), c.Param("value"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.ExistsResponse{Exists: exists}))
}
