package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the payload of access tokens issued by the backend.
type JWTClaims struct {
	UserID   string   `json:"id"`
	FullName string   `json:"fullname"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// CurrentUser describes the signed-in user as shown on the dashboard.
type CurrentUser struct {
	ID              string   `json:"id"`
	FullName        string   `json:"fullName"`
	Role            UserRole `json:"role"`
	Username        string   `json:"username"`
	RoleDisplayName string   `json:"roleDisplayName"`
	RoleBadgeClass  string   `json:"roleBadgeClass"`
}
