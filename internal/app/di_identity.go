package app

import (
	"fmt"

	identityHTTP "github.com/allisson/panchayath-admin/internal/identity/http"
	identityRepository "github.com/allisson/panchayath-admin/internal/identity/repository"
	identityService "github.com/allisson/panchayath-admin/internal/identity/service"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
)

// PasswordService returns the Argon2id password hashing service.
func (c *Container) PasswordService() identityService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = identityService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the API token generation service.
func (c *Container) TokenService() identityService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = identityService.NewTokenService()
	})
	return c.tokenService
}

// AdminRepository returns the admin repository based on database driver.
func (c *Container) AdminRepository() (identityUseCase.AdminRepository, error) {
	c.adminRepoInit.Do(func() {
		repo, err := c.initAdminRepository()
		if err != nil {
			c.initErrors["adminRepo"] = err
			return
		}
		c.adminRepo = repo
	})
	if storedErr, exists := c.initErrors["adminRepo"]; exists {
		return nil, storedErr
	}
	return c.adminRepo, nil
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (identityUseCase.TokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		repo, err := c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
			return
		}
		c.tokenRepo = repo
	})
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// AdminUseCase returns the admin use case.
func (c *Container) AdminUseCase() (identityUseCase.AdminUseCase, error) {
	c.adminUCInit.Do(func() {
		useCase, err := c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
			return
		}
		c.adminUC = useCase
	})
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUC, nil
}

// AuthUseCase returns the authentication use case.
func (c *Container) AuthUseCase() (identityUseCase.AuthUseCase, error) {
	c.authUCInit.Do(func() {
		useCase, err := c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.authUC = useCase
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUC, nil
}

// AuthHandler returns the login HTTP handler.
func (c *Container) AuthHandler() (*identityHTTP.AuthHandler, error) {
	c.authHandlerInit.Do(func() {
		authUC, err := c.AuthUseCase()
		if err != nil {
			c.initErrors["authHandler"] = fmt.Errorf("failed to get auth use case for auth handler: %w", err)
			return
		}
		c.authHandler = identityHTTP.NewAuthHandler(authUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// AdminHandler returns the admin management HTTP handler.
func (c *Container) AdminHandler() (*identityHTTP.AdminHandler, error) {
	c.adminHandlerInit.Do(func() {
		adminUC, err := c.AdminUseCase()
		if err != nil {
			c.initErrors["adminHandler"] = fmt.Errorf("failed to get admin use case for admin handler: %w", err)
			return
		}
		c.adminHandler = identityHTTP.NewAdminHandler(adminUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["adminHandler"]; exists {
		return nil, storedErr
	}
	return c.adminHandler, nil
}

// initAdminRepository creates the admin repository instance.
func (c *Container) initAdminRepository() (identityUseCase.AdminRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for admin repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLAdminRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLAdminRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenRepository creates the token repository instance.
func (c *Container) initTokenRepository() (identityUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLTokenRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAdminUseCase creates the admin use case with all its dependencies.
func (c *Container) initAdminUseCase() (identityUseCase.AdminUseCase, error) {
	adminRepo, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for admin use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for admin use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for admin use case: %w", err)
	}

	auditLogUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for admin use case: %w", err)
	}

	baseUseCase := identityUseCase.NewAdminUseCase(
		adminRepo,
		grantRepo,
		c.Evaluator(),
		txManager,
		auditLogUC,
		c.PasswordService(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for admin use case: %w", err)
		}
		return identityUseCase.NewAdminUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthUseCase() (identityUseCase.AuthUseCase, error) {
	adminRepo, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for auth use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for auth use case: %w", err)
	}

	baseUseCase := identityUseCase.NewAuthUseCase(
		c.config,
		adminRepo,
		tokenRepo,
		c.PasswordService(),
		c.TokenService(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return identityUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
