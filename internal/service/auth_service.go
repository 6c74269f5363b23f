package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"formforge/internal/model"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// AuthService issues and validates user session tokens. Identity here is an
// opaque userId/email pair: the upstream identity provider has already
// resolved who the user is before a session is opened.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
	}
}

// OpenSession mints a token for the given identity, generating a user id if
// the caller is new
func (s *AuthService) OpenSession(userID, email string) (*model.SessionResponse, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if userID == "" {
		userID = "user_" + uuid.New().String()[:8]
	}

	claims := &model.UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.SessionResponse{
		Token:  tokenString,
		UserID: userID,
	}, nil
}

// ValidateToken validates a session JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
