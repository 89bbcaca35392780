package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"millgate/internal/config"
	"millgate/internal/domain"
	"millgate/internal/service"
	"millgate/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "millgate-test",
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	orgID := uuid.New()
	org := &domain.Organization{ID: orgID, Slug: "lakshmi-mill", IsActive: true}
	user := &domain.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Email:          "op@mill.example",
		PasswordHash:   hashPassword(t, "secret-password"),
		Role:           domain.RoleOperator,
		IsActive:       true,
	}

	orgRepo := new(mocks.MockOrganizationRepo)
	userRepo := new(mocks.MockUserRepo)
	orgRepo.On("GetBySlug", mock.Anything, "lakshmi-mill").Return(org, nil)
	userRepo.On("GetByEmail", mock.Anything, orgID, "op@mill.example").Return(user, nil)

	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())
	tokens, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "lakshmi-mill",
		Email:            "op@mill.example",
		Password:         "secret-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, orgID, claims.OrganizationID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleOperator, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	orgID := uuid.New()
	orgRepo := new(mocks.MockOrganizationRepo)
	userRepo := new(mocks.MockUserRepo)
	orgRepo.On("GetBySlug", mock.Anything, "lakshmi-mill").Return(&domain.Organization{ID: orgID, IsActive: true}, nil)
	userRepo.On("GetByEmail", mock.Anything, orgID, "op@mill.example").Return(&domain.User{
		PasswordHash: hashPassword(t, "right"),
		IsActive:     true,
	}, nil)

	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "lakshmi-mill",
		Email:            "op@mill.example",
		Password:         "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownOrgLooksLikeBadCredentials(t *testing.T) {
	orgRepo := new(mocks.MockOrganizationRepo)
	userRepo := new(mocks.MockUserRepo)
	orgRepo.On("GetBySlug", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "ghost",
		Email:            "op@mill.example",
		Password:         "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveOrg(t *testing.T) {
	orgRepo := new(mocks.MockOrganizationRepo)
	userRepo := new(mocks.MockUserRepo)
	orgRepo.On("GetBySlug", mock.Anything, "dormant").Return(&domain.Organization{ID: uuid.New(), IsActive: false}, nil)

	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "dormant",
		Email:            "op@mill.example",
		Password:         "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrOrgInactive)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	orgID := uuid.New()
	user := &domain.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		PasswordHash:   hashPassword(t, "secret-password"),
		Email:          "op@mill.example",
		IsActive:       true,
	}

	orgRepo := new(mocks.MockOrganizationRepo)
	userRepo := new(mocks.MockUserRepo)
	orgRepo.On("GetBySlug", mock.Anything, "lakshmi-mill").Return(&domain.Organization{ID: orgID, IsActive: true}, nil)
	userRepo.On("GetByEmail", mock.Anything, orgID, "op@mill.example").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, orgID, user.ID).Return(user, nil)

	svc := service.NewAuthService(userRepo, orgRepo, testJWTConfig())
	tokens, err := svc.Login(context.Background(), service.LoginInput{
		OrganizationSlug: "lakshmi-mill",
		Email:            "op@mill.example",
		Password:         "secret-password",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	assert.NoError(t, err)
}
