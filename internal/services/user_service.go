package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// UserService handles user registration and profile management
type UserService struct {
	userRepo    *database.UserRepository
	authService *AuthService
	logger      *logrus.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *database.UserRepository, authService *AuthService, logger *logrus.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		authService: authService,
		logger:      logger,
	}
}

// CreateUser registers a new account. The role defaults to passenger.
func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RolePassenger
	}
	if !models.ValidRole(role) {
		return nil, models.ErrInvalidRole
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         role,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")
	return user, nil
}

// UpdateUser applies profile changes, re-hashing the password when present
func (s *UserService) UpdateUser(userID string, req *models.UpdateUserRequest) (*models.User, error) {
	var passwordHash *string
	if req.Password != nil {
		hash, err := s.authService.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}
	return s.userRepo.UpdateUser(userID, req, passwordHash)
}

// DeactivateUser soft-deletes an account
func (s *UserService) DeactivateUser(userID string) (*models.User, error) {
	user, err := s.userRepo.SetUserActive(userID, false)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", userID).Info("User deactivated")
	return user, nil
}

// ReactivateUser restores a soft-deleted account
func (s *UserService) ReactivateUser(userID string) (*models.User, error) {
	user, err := s.userRepo.SetUserActive(userID, true)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", userID).Info("User reactivated")
	return user, nil
}

// GetUserByID returns a user by ID
func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

// GetUserByEmail returns a user by email
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.GetUserByEmail(email)
}

// GetAllUsers lists every user
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAllUsers()
}

// IsEmailUnique reports whether an email is free to register
func (s *UserService) IsEmailUnique(email string) (bool, error) {
	return s.userRepo.IsEmailUnique(email)
}
