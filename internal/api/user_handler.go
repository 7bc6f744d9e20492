package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"swiftcart-backend/internal/domain"
	"swiftcart-backend/internal/repository"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a user under a caller-supplied id. Posting an existing id
// is not an error; the caller gets the same welcome back.
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.NewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errBadRequest("Please add all fields"))
		return
	}

	existing, err := h.users.FindByID(c.Request.Context(), req.ID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Welcome, " + existing.Name})
		return
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		respondError(c, err)
		return
	}

	if req.ID == "" || req.Name == "" || req.Email == "" || req.Photo == "" || req.Gender == "" || req.DOB == "" {
		respondError(c, errBadRequest("Please add all fields"))
		return
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		respondError(c, errBadRequest("Please add all fields"))
		return
	}

	user := domain.User{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Photo:  req.Photo,
		Gender: req.Gender,
		Role:   domain.RoleUser,
		DOB:    dob,
	}
	if err := h.users.Insert(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Welcome, " + user.Name})
}

func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(c, errBadRequest("Invalid Id"))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.users.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(c, errBadRequest("Invalid Id"))
			return
		}
		respondError(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User Deleted Successfully"})
}

// parseDOB accepts the full timestamp the storefront sends as well as a bare
// date.
func parseDOB(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
