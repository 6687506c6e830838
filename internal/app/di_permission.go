package app

import (
	"fmt"

	permissionHTTP "github.com/allisson/panchayath-admin/internal/permission/http"
	permissionRepository "github.com/allisson/panchayath-admin/internal/permission/repository"
	permissionUseCase "github.com/allisson/panchayath-admin/internal/permission/usecase"
)

// PermissionRepository returns the permission catalog repository based on
// database driver.
func (c *Container) PermissionRepository() (permissionUseCase.PermissionRepository, error) {
	c.permissionRepoInit.Do(func() {
		repo, err := c.initPermissionRepository()
		if err != nil {
			c.initErrors["permissionRepo"] = err
			return
		}
		c.permissionRepo = repo
	})
	if storedErr, exists := c.initErrors["permissionRepo"]; exists {
		return nil, storedErr
	}
	return c.permissionRepo, nil
}

// GrantRepository returns the grant repository based on database driver.
func (c *Container) GrantRepository() (permissionUseCase.GrantRepository, error) {
	c.grantRepoInit.Do(func() {
		repo, err := c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
			return
		}
		c.grantRepo = repo
	})
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// PermissionUseCase returns the permission use case.
func (c *Container) PermissionUseCase() (permissionUseCase.PermissionUseCase, error) {
	c.permissionUCInit.Do(func() {
		useCase, err := c.initPermissionUseCase()
		if err != nil {
			c.initErrors["permissionUseCase"] = err
			return
		}
		c.permissionUC = useCase
	})
	if storedErr, exists := c.initErrors["permissionUseCase"]; exists {
		return nil, storedErr
	}
	return c.permissionUC, nil
}

// PermissionHandler returns the permission HTTP handler.
func (c *Container) PermissionHandler() (*permissionHTTP.PermissionHandler, error) {
	c.permHandlerInit.Do(func() {
		permissionUC, err := c.PermissionUseCase()
		if err != nil {
			c.initErrors["permissionHandler"] = fmt.Errorf("failed to get permission use case for permission handler: %w", err)
			return
		}
		c.permissionHandler = permissionHTTP.NewPermissionHandler(permissionUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["permissionHandler"]; exists {
		return nil, storedErr
	}
	return c.permissionHandler, nil
}

// initPermissionRepository creates the permission repository instance.
func (c *Container) initPermissionRepository() (permissionUseCase.PermissionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for permission repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return permissionRepository.NewMySQLPermissionRepository(db), nil
	case "postgres":
		return permissionRepository.NewPostgreSQLPermissionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGrantRepository creates the grant repository instance.
func (c *Container) initGrantRepository() (permissionUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return permissionRepository.NewMySQLGrantRepository(db), nil
	case "postgres":
		return permissionRepository.NewPostgreSQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPermissionUseCase creates the permission use case with all its dependencies.
func (c *Container) initPermissionUseCase() (permissionUseCase.PermissionUseCase, error) {
	permissionRepo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for permission use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for permission use case: %w", err)
	}

	adminRepo, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for permission use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for permission use case: %w", err)
	}

	return permissionUseCase.NewPermissionUseCase(
		permissionRepo,
		grantRepo,
		adminRepo,
		c.Evaluator(),
		txManager,
	), nil
}
