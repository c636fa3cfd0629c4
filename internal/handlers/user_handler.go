package handlers

import (
	"net/http"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users     repository.UserRepository
	uploadDir string
}

func NewUserHandler(users repository.UserRepository, uploadDir string) *UserHandler {
	return &UserHandler{users, uploadDir}
}

// GetProfile returns the logged-in citizen's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint64("userID")

	user, err := h.users.FindByID(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profile", user)
}

// UpdateProfile edits name/phone/address, multipart so the photo can come along.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetUint64("userID")

	user, err := h.users.FindByID(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	var input models.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Address != "" {
		user.Address = input.Address
	}

	if file, err := c.FormFile("photo"); err == nil {
		name, err := savePhoto(c, file, h.uploadDir)
		if err != nil {
			utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		user.PhotoFile = name
	}

	if err := h.users.Update(user); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update profile", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profile Updated", user)
}

// ChangePassword needs the current password before accepting a new one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := c.GetUint64("userID")

	var input models.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "User not found", nil)
		return
	}

	if !utils.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Current password is incorrect", nil)
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to process password", nil)
		return
	}

	user.PasswordHash = hashed
	if err := h.users.Update(user); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to change password", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Password Changed", nil)
}
