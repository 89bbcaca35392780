package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"millgate/internal/domain"
	"millgate/internal/port"
)

// CreateOrganizationInput is the DTO for creating an organization with its
// first admin user.
type CreateOrganizationInput struct {
	Name          string `json:"name" binding:"required,min=2,max=120"`
	Slug          string `json:"slug" binding:"required,min=2,max=60,lowercase,alphanum"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminName     string `json:"admin_name" binding:"required,min=2,max=120"`
	AdminPassword string `json:"admin_password" binding:"required,min=8"`
}

// UpdateOrganizationInput is the DTO for updating an organization.
type UpdateOrganizationInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=120"`
	IsActive *bool   `json:"is_active"`
}

// OrganizationService defines the organization management contract.
type OrganizationService interface {
	Create(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	List(ctx context.Context, offset, limit int) ([]domain.Organization, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*domain.Organization, error)
}

type organizationService struct {
	orgRepo  port.OrganizationRepository
	userRepo port.UserRepository
}

// NewOrganizationService creates a new OrganizationService implementation.
func NewOrganizationService(orgRepo port.OrganizationRepository, userRepo port.UserRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo, userRepo: userRepo}
}

func (s *organizationService) Create(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	org := &domain.Organization{
		Name:       input.Name,
		Slug:       input.Slug,
		AdminEmail: input.AdminEmail,
		IsActive:   true,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("organization.Create hash: %w", err)
	}

	admin := &domain.User{
		OrganizationID: org.ID,
		Email:          input.AdminEmail,
		PasswordHash:   string(hash),
		FullName:       input.AdminName,
		Role:           domain.RoleAdmin,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("organization.Create admin user: %w", err)
	}

	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) List(ctx context.Context, offset, limit int) ([]domain.Organization, int, error) {
	return s.orgRepo.List(ctx, offset, limit)
}

func (s *organizationService) Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.IsActive != nil {
		org.IsActive = *input.IsActive
	}
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}
