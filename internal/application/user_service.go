package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/domain"
	"github.com/shareloop/service-sharing/internal/domain/user"
)

// UserCreateRequest holds the data needed to register a user.
type UserCreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UserUpdateRequest holds a partial user update.
type UserUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserService handles user account use cases.
type UserService struct {
	users  user.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users user.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create registers a new user. Email must be unique.
func (s *UserService) Create(ctx context.Context, req UserCreateRequest) (*UserDTO, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, domain.NewValidationError("name and email are required")
	}
	u := &user.User{Name: req.Name, Email: req.Email}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// Get retrieves one user.
func (s *UserService) Get(ctx context.Context, userID int64) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}
	return dtos, nil
}

// Update applies a partial update to a user. Changing the email to one
// already taken by another user fails.
func (s *UserService) Update(ctx context.Context, userID int64, req UserUpdateRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domain.NewValidationError("name must not be blank")
		}
		u.Name = *req.Name
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, domain.NewValidationError("email must not be blank")
		}
		u.Email = *req.Email
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}
