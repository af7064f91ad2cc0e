package model

import (
	"errors"
	"net/http"

	"bookshare-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrBookNotFound   = errors.New("book not found")
	ErrNotOwner       = errors.New("not the owner of this book")
	ErrImageUpload    = errors.New("image upload failed")
	ErrImageDelete    = errors.New("image delete failed")
)

var bookErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrMissingFields:  {http.StatusBadRequest, "Please fill all fields"},
	ErrDuplicateTitle: {http.StatusBadRequest, "Book already exists"},
	ErrBookNotFound:   {http.StatusNotFound, "Book not found"},
	ErrNotOwner:       {http.StatusForbidden, "You are not the owner of this book"},
	ErrImageUpload:    {http.StatusBadRequest, "Image upload failed"},
	ErrImageDelete:    {http.StatusInternalServerError, "Failed to delete image"},
}

// HandleBookError translates a service error into the wire contract and
// reports whether the request is finished. The underlying cause is logged
// by the response helper, never echoed to the caller.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.Error(c, cfg.Status, cfg.Message, err)
			return true
		}
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.Error(c, http.StatusBadRequest, err.Error(), err)
		return true
	}

	response.Error(c, http.StatusInternalServerError, "Server error", err)
	return true
}
