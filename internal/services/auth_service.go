package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"proposal-backend/internal/models"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

// AuthService issues and validates the admin session token. The secret
// and admin credentials are injected at construction; nothing here
// reads ambient state.
type AuthService struct {
	secret            []byte
	adminEmail        string
	adminPasswordHash string
}

func NewAuthService(secret, adminEmail, adminPasswordHash string) *AuthService {
	return &AuthService{
		secret:            []byte(secret),
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
	}
}

// Login checks the admin credentials and returns a bearer token.
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	if s.adminEmail == "" || req.Email != s.adminEmail {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(req.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *AuthService) GenerateJWT(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
