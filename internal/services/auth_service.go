package services

import (
	"crypto/subtle"
	"errors"

	"github.com/ativ97/battery-management/internal/auth"
	"github.com/ativ97/battery-management/internal/config"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService checks the single shared operator credential and issues the
// session token. There are no per-user accounts.
type AuthService struct {
	cfg        *config.Config
	jwtManager *auth.JWTManager
}

func NewAuthService(cfg *config.Config, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{cfg: cfg, jwtManager: jwtManager}
}

func (s *AuthService) Login(username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.User)) != 1 {
		return "", ErrInvalidCredentials
	}

	// Prefer the bcrypt hash when configured; the plain password is the
	// development fallback.
	if s.cfg.Admin.PasswordHash != "" {
		if !auth.VerifyPassword(s.cfg.Admin.PasswordHash, password) {
			return "", ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Admin.Password)) != 1 {
		return "", ErrInvalidCredentials
	}

	return s.jwtManager.GenerateToken(username)
}
