package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for a signed-in form creator
type UserClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SessionRequest is the request body for opening a session
type SessionRequest struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email"`
}

// SessionResponse is returned after a session is opened
type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
