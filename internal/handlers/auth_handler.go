package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	users     repository.UserRepository
	uploadDir string
}

func NewAuthHandler(users repository.UserRepository, uploadDir string) *AuthHandler {
	return &AuthHandler{users, uploadDir}
}

var photoExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// savePhoto stores an uploaded profile photo under a uuid filename.
func savePhoto(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !photoExtensions[ext] {
		return "", fmt.Errorf("photo must be jpg or png")
	}
	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// Register creates a citizen account. Multipart so the form can carry an
// optional "photo" file next to the text fields.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to process password", nil)
		return
	}

	verifyExpiry := time.Now().Add(24 * time.Hour)
	user := models.User{
		FullName:          input.FullName,
		Email:             input.Email,
		NIC:               input.NIC,
		PasswordHash:      hashedPassword,
		Phone:             input.Phone,
		Address:           input.Address,
		DOB:               input.DOB,
		Gender:            input.Gender,
		Role:              models.RoleCitizen,
		IsActive:          true,
		VerifyToken:       utils.RandomToken(),
		VerifyTokenExpiry: &verifyExpiry,
	}

	if file, err := c.FormFile("photo"); err == nil {
		name, err := savePhoto(c, file, h.uploadDir)
		if err != nil {
			utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
			return
		}
		user.PhotoFile = name
	}

	if err := h.users.Create(&user); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Email or NIC is already registered", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Registration successful", gin.H{
		"token": token,
		"user":  userSummary(&user),
		// no SMTP configured, the verification link token rides in the response
		"verify_token": user.VerifyToken,
	})
}

// Login checks credentials, gates on is_active, stamps last_login and
// captures the device's FCM token when sent.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", nil)
		return
	}

	user, err := h.users.FindByEmail(input.Email)
	if err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid email or password", nil)
		return
	}

	if !user.IsActive {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Account is deactivated", nil)
		return
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid email or password", nil)
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if input.FCMToken != "" {
		user.FCMToken = input.FCMToken
	}
	if err := h.users.Update(user); err != nil {
		log.Printf("Error stamping last login: %v", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Login successful", gin.H{
		"token": token,
		"user":  userSummary(user),
	})
}

// ForgotPassword issues a reset token valid for one hour.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input models.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", nil)
		return
	}

	user, err := h.users.FindByEmail(input.Email)
	if err != nil {
		// don't reveal whether the email exists
		utils.APIResponse(c, http.StatusOK, true, "If the email exists, a reset token has been issued", nil)
		return
	}

	expiry := time.Now().Add(time.Hour)
	user.ResetToken = utils.RandomToken()
	user.ResetTokenExpiry = &expiry
	if err := h.users.Update(user); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to issue reset token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "If the email exists, a reset token has been issued", gin.H{
		"reset_token": user.ResetToken, // would go out by email/SMS in production
	})
}

// ResetPassword consumes the token from ForgotPassword.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var input models.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	user, err := h.users.FindByResetToken(token)
	if err != nil || user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid or expired reset token", nil)
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to process password", nil)
		return
	}

	user.PasswordHash = hashed
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	if err := h.users.Update(user); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to reset password", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Password has been reset, please login", nil)
}

// VerifyEmail consumes the 24h verification token from registration.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	user, err := h.users.FindByVerifyToken(token)
	if err != nil || user.VerifyTokenExpiry == nil || user.VerifyTokenExpiry.Before(time.Now()) {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid or expired verification token", nil)
		return
	}

	user.EmailVerified = true
	user.VerifyToken = ""
	user.VerifyTokenExpiry = nil
	if err := h.users.Update(user); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to verify email", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Email verified", nil)
}

func userSummary(user *models.User) gin.H {
	return gin.H{
		"id":             user.ID,
		"full_name":      user.FullName,
		"email":          user.Email,
		"nic":            user.NIC,
		"role":           user.Role,
		"email_verified": user.EmailVerified,
	}
}
