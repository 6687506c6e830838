package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/config"
	"github.com/allisson/panchayath-admin/internal/identity/domain"
	identityService "github.com/allisson/panchayath-admin/internal/identity/service"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	config          *config.Config
	adminRepo       AdminRepository
	tokenRepo       TokenRepository
	passwordService identityService.PasswordService
	tokenService    identityService.TokenService
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	cfg *config.Config,
	adminRepo AdminRepository,
	tokenRepo TokenRepository,
	passwordService identityService.PasswordService,
	tokenService identityService.TokenService,
) AuthUseCase {
	return &authUseCase{
		config:          cfg,
		adminRepo:       adminRepo,
		tokenRepo:       tokenRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Login authenticates an administrator and issues a new API token.
//
// An unknown username, a wrong password, and an inactive account all return
// ErrInvalidCredentials so the response never reveals which check failed.
// On success LastLoginAt is updated and the plain token is returned once.
func (a *authUseCase) Login(
	ctx context.Context,
	username, password string,
) (*domain.LoginOutput, error) {
	admin, err := a.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if !a.passwordService.ComparePassword(password, admin.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := a.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &domain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		AdminID:   admin.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(a.config.AuthTokenExpiration),
		CreatedAt: now,
	}

	if err := a.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	if err := a.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, err
	}
	admin.LastLoginAt = &now

	return &domain.LoginOutput{
		Token:     plainToken,
		ExpiresAt: token.ExpiresAt,
		Admin:     admin,
	}, nil
}

// Authenticate resolves a plain bearer token to its administrator.
//
// Unknown and expired tokens return ErrInvalidCredentials, as does a token
// whose administrator no longer exists or is no longer active. All time
// comparisons use UTC.
func (a *authUseCase) Authenticate(ctx context.Context, plainToken string) (*domain.Admin, error) {
	tokenHash := a.tokenService.HashToken(plainToken)

	token, err := a.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if token.IsExpired(time.Now().UTC()) {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := a.adminRepo.Get(ctx, token.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return admin, nil
}

// PurgeExpiredTokens removes expired tokens and returns the number removed.
func (a *authUseCase) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return a.tokenRepo.DeleteExpired(ctx, time.Now().UTC())
}
