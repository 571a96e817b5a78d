package service

import (
	"errors"
	"strings"

	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrForbidden        = errors.New("you are not allowed to do this")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	UpdateUser(userID string, req *UpdateUserRequest, updater *model.User) (*model.User, error)
	DeleteUser(userID string, deleterID string) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id string) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"notblank"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	Name     string  `json:"name" validate:"notblank"`
	Role     string  `json:"role" validate:"omitempty,oneof=admin user"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	// 1. Validate request
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	// 2. Check if email already exists
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.emailFree(email, ""); err != nil {
		return nil, err
	}

	// 3. Create user
	role := model.RoleUser
	if req.Role != "" {
		role = model.Role(req.Role)
	}
	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		TokenVersion: uuid.New().String(),
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	// 4. Set password
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	// 5. Save to database
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser lets admins edit anyone and users edit themselves. Only an admin
// may change a role.
func (s *userService) UpdateUser(userID string, req *UpdateUserRequest, updater *model.User) (*model.User, error) {
	// 1. Validate request
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}
	if !updater.IsAdmin() && updater.ID != userID {
		return nil, ErrForbidden
	}

	// 2. Find existing user
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 3. Check if email is being changed and already exists
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != user.Email {
		if err := s.emailFree(email, user.ID); err != nil {
			return nil, err
		}
	}

	// 4. Role
	if req.Role != "" && model.Role(req.Role) != user.Role {
		if !updater.IsAdmin() {
			return nil, ErrForbidden
		}
		user.Role = model.Role(req.Role)
	}

	// 5. Update user fields
	user.Email = email
	user.Name = strings.TrimSpace(req.Name)
	user.UpdatedBy = updater.ID

	// 6. Update password if provided
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(userID string, deleterID string) error {
	if userID == deleterID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) emailFree(email, excludeID string) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return ErrEmailExists
	}
	return nil
}
