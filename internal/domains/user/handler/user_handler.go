package handler

import (
	"errors"
	"net/http"

	"bookshare-backend/internal/domains/user/model"
	"bookshare-backend/internal/domains/user/service"
	"bookshare-backend/internal/shared/middleware"
	"bookshare-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register - POST /v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if model.HandleUserError(c, err) {
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me - GET /v1/users/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", errors.New("no principal in context"))
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if model.HandleUserError(c, err) {
		return
	}

	c.JSON(http.StatusOK, profile)
}
