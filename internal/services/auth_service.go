package services

import (
	"fmt"
	"time"

	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential verification and the token lifecycle
type AuthService struct {
	userRepo   *database.UserRepository
	tokenRepo  *database.RefreshTokenRepository
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *database.UserRepository,
	tokenRepo *database.RefreshTokenRepository,
	jwtService *jwt.Service,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// HashPassword hashes a plaintext password with bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted so it can be rotated and revoked.
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.WithField("email", req.Email).Warn("Login failed: password mismatch")
		return nil, models.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh rotates the token pair. The presented refresh token must validate
// and still exist in storage; it is replaced by the new one.
func (s *AuthService) Refresh(refreshToken string) (*models.LoginResponse, error) {
	if _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return nil, models.ErrRefreshTokenNotFound
	}
	email, err := s.tokenRepo.GetEmailByToken(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}

	return s.issueTokens(user)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	return s.tokenRepo.RevokeToken(refreshToken)
}

func (s *AuthService) issueTokens(user *models.User) (*models.LoginResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(s.jwtService.RefreshTokenExpiry())
	if err := s.tokenRepo.StoreToken(refreshToken, user.Email, expiry); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("Tokens issued")

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwtService.AccessTokenExpiry().Seconds()),
		User:         user,
	}, nil
}
