package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values stored in users.role
const (
	RoleCitizen = "citizen"
	RoleOfficer = "officer"
	RoleAdmin   = "admin"
)

// User represents the 'users' table
type User struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	NIC          string `gorm:"column:nic;uniqueIndex;size:20;not null" json:"nic"` // national identity card number
	PasswordHash string `gorm:"not null" json:"-"`                                  // never sent back to the frontend
	Phone        string `gorm:"column:phone_number;size:20" json:"phone"`
	Address      string `gorm:"type:text" json:"address"`
	DOB          string `gorm:"type:date" json:"dob"` // Format YYYY-MM-DD
	Gender       string `gorm:"size:10" json:"gender"`
	Role         string `gorm:"size:20;default:citizen" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	PhotoFile    string `gorm:"size:255" json:"photo_file"`
	FCMToken     string `gorm:"size:255" json:"-"`

	EmailVerified     bool       `gorm:"default:false" json:"email_verified"`
	VerifyToken       string     `gorm:"size:64;index" json:"-"`
	VerifyTokenExpiry *time.Time `json:"-"`
	ResetToken        string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`

	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RegisterInput captures the register form (multipart, photo handled separately)
type RegisterInput struct {
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	NIC      string `form:"nic" binding:"required"`
	Password string `form:"password" binding:"required,min=6"`
	Phone    string `form:"phone" binding:"required"`
	Address  string `form:"address"`
	DOB      string `form:"dob" binding:"omitempty,datetime=2006-01-02"`
	Gender   string `form:"gender" binding:"omitempty,oneof=male female other"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FCMToken string `json:"fcm_token"` // optional, saved for push notifications
}

type UpdateProfileInput struct {
	FullName string `form:"full_name"`
	Phone    string `form:"phone"`
	Address  string `form:"address"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=6"`
}
