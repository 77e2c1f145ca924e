package cart

import (
	"fmt"
	"time"

	"github.com/shopkart-next/internal/constants"
	"github.com/shopkart-next/internal/http/response"
	"github.com/shopkart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"firstname"`
	LastName        string `json:"lastname"`
	DOB             string `json:"dob"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Category        string `json:"category"`
}

// Register 注册新用户
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username, password and confirm_password are required")
		return
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse(constants.DateLayout, req.DOB)
		if err != nil {
			response.BadRequest(c, fmt.Sprintf("dob must use the format %s", constants.DateLayout))
			return
		}
		dob = &parsed
	}

	user, err := h.UserService.Register(service.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		DOB:             dob,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Category:        req.Category,
	})
	if err != nil {
		h.Notifier.NotifyFailure("User Registration Failed",
			fmt.Sprintf("Registration of username %q failed: %v", req.Username, err))
		respondWithMappedError(c, err, userErrorRules, "Failed to register user")
		return
	}

	h.Notifier.NotifySuccess("User Registered",
		fmt.Sprintf("User %s registered successfully.", user.Username))
	response.Created(c, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// GetProfile 查询用户档案
func (h *Handler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	user, err := h.UserService.GetProfile(username)
	if err != nil {
		h.Notifier.NotifyFailure("User Profile Fetch Failed",
			fmt.Sprintf("Fetching profile for %q failed: %v", username, err))
		respondWithMappedError(c, err, userErrorRules, "Failed to fetch user")
		return
	}
	h.Notifier.NotifySuccess("User Profile Fetched",
		fmt.Sprintf("Fetched profile for user %s.", user.Username))
	response.Success(c, user)
}
