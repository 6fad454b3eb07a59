package model

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone10"`
	Password    string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// TokenClaims is the verified identity attached to a request.
type TokenClaims struct {
	StaffID   uuid.UUID
	Phone     string
	Role      StaffRole
	TokenID   string
	ExpiresAt time.Time
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
