package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"millgate/internal/domain"
	"millgate/internal/port"
)

// CreateUserInput is the DTO for creating a back-office user.
type CreateUserInput struct {
	Email    string          `json:"email" binding:"required,email"`
	FullName string          `json:"full_name" binding:"required,min=2,max=120"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=admin operator"`
}

// UpdateUserInput is the DTO for updating a user.
type UpdateUserInput struct {
	FullName *string          `json:"full_name" binding:"omitempty,min=2,max=120"`
	Role     *domain.UserRole `json:"role" binding:"omitempty,oneof=admin operator"`
	IsActive *bool            `json:"is_active"`
	Password *string          `json:"password" binding:"omitempty,min=8"`
}

// UserService defines the user management contract. All operations are scoped
// to the caller's organization.
type UserService interface {
	Create(ctx context.Context, orgID uuid.UUID, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, orgID, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, orgID uuid.UUID, input CreateUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash: %w", err)
	}

	user := &domain.User{
		OrganizationID: orgID,
		Email:          input.Email,
		PasswordHash:   string(hash),
		FullName:       input.FullName,
		Role:           input.Role,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, orgID, id)
}

func (s *userService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, orgID, offset, limit)
}

func (s *userService) Update(ctx context.Context, orgID, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("user.Update hash: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, orgID, id)
}
