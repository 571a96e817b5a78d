package service

import (
	"errors"
	"strings"

	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/pkg/jwt"
	"go-sales-inventory/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionRevoked     = errors.New("session expired, please log in again")
	ErrEmailExists        = errors.New("email already exists")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Signup(req *SignupRequest) (*LoginResponse, error)
	Me(userID string) (*model.UserResponse, error)
	Logout(userID string) error
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*model.User, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"notblank"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With(zap.String("component", "auth_service")),
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Users created before versioning get one now
	if user.TokenVersion == "" {
		user.TokenVersion = uuid.New().String()
		if err := s.userRepo.UpdateTokenVersion(user.ID, user.TokenVersion); err != nil {
			return nil, err
		}
	}

	return s.issue(user)
}

// Signup creates a regular user and logs them in.
func (s *authService) Signup(req *SignupRequest) (*LoginResponse, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         model.RoleUser,
		TokenVersion: uuid.New().String(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	s.log.Info("user signed up", zap.String("user_id", user.ID), zap.String("email", user.Email))

	return s.issue(user)
}

func (s *authService) Me(userID string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

// Logout rotates the token version, which revokes every token issued so far.
func (s *authService) Logout(userID string) error {
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	// 2. Verify old password
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	// 3. Set new password and drop existing sessions
	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	user.TokenVersion = uuid.New().String()

	return s.userRepo.Update(user)
}

// ValidateToken verifies the signature and checks the token version against
// the stored user.
func (s *authService) ValidateToken(tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionRevoked
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*LoginResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name, string(user.Role), user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}
	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}
