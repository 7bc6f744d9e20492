package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftcart-backend/internal/repository"
)

// apiError is an error with the HTTP status it should be reported as.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func errBadRequest(message string) error {
	return &apiError{status: http.StatusBadRequest, message: message}
}

func errNotFound(message string) error {
	return &apiError{status: http.StatusNotFound, message: message}
}

func errUnauthorized(message string) error {
	return &apiError{status: http.StatusUnauthorized, message: message}
}

func errForbidden(message string) error {
	return &apiError{status: http.StatusForbidden, message: message}
}

// respondError is the single funnel for every failed request. Repository
// sentinels become 404s, tagged errors keep their status, anything else is a
// 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var ae *apiError
	switch {
	case errors.As(err, &ae):
		status = ae.status
		message = ae.message
	case errors.Is(err, repository.ErrProductNotFound):
		status = http.StatusNotFound
		message = "Product Not Found"
	case errors.Is(err, repository.ErrOrderNotFound):
		status = http.StatusNotFound
		message = "Order Not Found"
	case errors.Is(err, repository.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User Not Found"
	}

	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
