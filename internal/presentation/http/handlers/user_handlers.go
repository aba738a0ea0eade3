package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brightloom/storefront-go/internal/application/services"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
)

// UserHandlers serves the user profile and sign-in endpoints.
type UserHandlers struct {
	users  *services.UserService
	logger *logging.ChanneledLogger
}

func NewUserHandlers(users *services.UserService, logger *logging.ChanneledLogger) *UserHandlers {
	return &UserHandlers{
		users:  users,
		logger: logger,
	}
}

// SignInRequest is the profile reported by the auth provider on sign-in.
type SignInRequest struct {
	ID     string    `json:"id" binding:"required"`
	Name   string    `json:"name" binding:"required"`
	Email  string    `json:"email" binding:"required,email"`
	Photo  string    `json:"photo"`
	Gender string    `json:"gender" binding:"required"`
	DOB    time.Time `json:"dob" binding:"required"`
}

// SignIn upserts the user profile and issues a session token.
func (h *UserHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, token, err := h.users.SignIn(services.SignInInput{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Photo:  req.Photo,
		Gender: req.Gender,
		DOB:    req.DOB,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// AdminLoginRequest is the credential pair for the admin panel.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks admin credentials and issues an admin session token.
func (h *UserHandlers) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	token, err := h.users.AdminSignIn(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetAllUsers returns every user for the admin panel.
func (h *UserHandlers) GetAllUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one user by ID.
func (h *UserHandlers) GetUser(c *gin.Context) {
	user, err := h.users.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user.
func (h *UserHandlers) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
