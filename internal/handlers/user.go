package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/promanage/promanage-api/internal/dto"
	apierrors "github.com/promanage/promanage-api/internal/errors"
	"github.com/promanage/promanage-api/internal/middleware"
	"github.com/promanage/promanage-api/internal/services"
)

// UserHandler coordinates identity-related HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register creates a new account or claims a provisioned one.
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, claimed, err := h.userService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	status := http.StatusCreated
	message := "User created successfully."
	if claimed {
		status = http.StatusOK
		message = "User updated successfully."
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates a user and issues a session token.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, token, err := h.userService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dto.ToUserDTO(*user),
	})
}

// Update mutates the authenticated user's own profile.
func (h *UserHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateRequest struct {
		Name        *string `json:"name"`
		Email       *string `json:"email"`
		OldPassword *string `json:"oldPassword"`
		NewPassword *string `json:"newPassword"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User details updated successfully.",
		"user":    dto.ToUserDTO(*user),
	})
}

// Add provisions a credential-less sub-user owned by the caller.
func (h *UserHandler) Add(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.ProvisionUser(req.Email, userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully.",
		"user":    dto.ToUserDTO(*user),
	})
}

// List returns the sub-users provisioned by the caller.
func (h *UserHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.userService.ListProvisioned(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Users fetched successfully.",
		"users":   dto.ToUserDTOs(users),
	})
}

// Details fetches a user by id; without an id it returns the caller.
func (h *UserHandler) Details(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID := actorID
	if idStr := c.Query("userId"); idStr != "" {
		parsed, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user ID.")
			return
		}
		targetID = parsed
	}

	user, err := h.userService.GetUser(targetID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User fetched successfully.",
		"user":    dto.ToUserDTO(*user),
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSameEmail),
		errors.Is(err, services.ErrSamePassword):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
