package model

import (
	"errors"
	"net/http"

	"bookshare-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

var userErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrEmailTaken:         {http.StatusBadRequest, "Email already exists"},
	ErrUsernameTaken:      {http.StatusBadRequest, "Username already exists"},
	ErrInvalidCredentials: {http.StatusBadRequest, "Invalid credentials"},
	ErrUserNotFound:       {http.StatusNotFound, "User not found"},
}

// HandleUserError translates a service error into a response and reports
// whether the request is finished.
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range userErrorMap {
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
