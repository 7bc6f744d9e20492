package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"swiftcart-backend/internal/domain"
	"swiftcart-backend/internal/repository"
)

// AdminOnly gates a route on the caller's role. The caller identifies itself
// with an ?id= query parameter resolved against the users collection; there
// is deliberately no token scheme here.
func AdminOnly(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			respondError(c, errUnauthorized("Please Login First as Admin"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				respondError(c, errUnauthorized("Please give a real id"))
				return
			}
			respondError(c, err)
			return
		}

		if user.Role != domain.RoleAdmin {
			respondError(c, errForbidden("You are not an admin"))
			return
		}

		c.Next()
	}
}
