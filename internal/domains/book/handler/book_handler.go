package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookshare-backend/internal/domains/book/model"
	"bookshare-backend/internal/domains/book/service"
	"bookshare-backend/internal/shared/middleware"
	"bookshare-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler - HTTP layer for the book lifecycle
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", errors.New("no principal in context"))
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), userID, req)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book added successfully",
		"book":    book,
	})
}

// ListBooks - GET /v1/books?page=&limit=
func (h *Handler) ListBooks(c *gin.Context) {
	page := model.DefaultPage
	limit := model.DefaultLimit

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	resp, err := h.service.ListBooks(c.Request.Context(), page, limit)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMyBooks - GET /v1/books/user
func (h *Handler) ListMyBooks(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", errors.New("no principal in context"))
		return
	}

	books, err := h.service.ListMyBooks(c.Request.Context(), userID)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, books)
}

// UpdateBook - PUT /v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", errors.New("no principal in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Book not found", err)
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), userID, id, req)
	if model.HandleBookError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Book updated successfully",
		"book":    book,
	})
}

// DeleteBook - DELETE /v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", errors.New("no principal in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Book not found", err)
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), userID, id); model.HandleBookError(c, err) {
		return
	}

	response.Message(c, http.StatusOK, "Book deleted successfully")
}
