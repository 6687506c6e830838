package app

import (
	"fmt"

	directoryHTTP "github.com/allisson/panchayath-admin/internal/directory/http"
	directoryRepository "github.com/allisson/panchayath-admin/internal/directory/repository"
	directoryUseCase "github.com/allisson/panchayath-admin/internal/directory/usecase"
)

// DirectoryRepository returns the directory repository based on database driver.
func (c *Container) DirectoryRepository() (directoryUseCase.DirectoryRepository, error) {
	c.directoryRepoInit.Do(func() {
		repo, err := c.initDirectoryRepository()
		if err != nil {
			c.initErrors["directoryRepo"] = err
			return
		}
		c.directoryRepo = repo
	})
	if storedErr, exists := c.initErrors["directoryRepo"]; exists {
		return nil, storedErr
	}
	return c.directoryRepo, nil
}

// DirectoryUseCase returns the directory use case.
func (c *Container) DirectoryUseCase() (directoryUseCase.DirectoryUseCase, error) {
	c.directoryUCInit.Do(func() {
		useCase, err := c.initDirectoryUseCase()
		if err != nil {
			c.initErrors["directoryUseCase"] = err
			return
		}
		c.directoryUC = useCase
	})
	if storedErr, exists := c.initErrors["directoryUseCase"]; exists {
		return nil, storedErr
	}
	return c.directoryUC, nil
}

// DirectoryHandler returns the directory HTTP handler.
func (c *Container) DirectoryHandler() (*directoryHTTP.DirectoryHandler, error) {
	c.dirHandlerInit.Do(func() {
		directoryUC, err := c.DirectoryUseCase()
		if err != nil {
			c.initErrors["directoryHandler"] = fmt.Errorf("failed to get directory use case for directory handler: %w", err)
			return
		}
		c.directoryHandler = directoryHTTP.NewDirectoryHandler(directoryUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["directoryHandler"]; exists {
		return nil, storedErr
	}
	return c.directoryHandler, nil
}

// initDirectoryRepository creates the directory repository instance.
func (c *Container) initDirectoryRepository() (directoryUseCase.DirectoryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for directory repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return directoryRepository.NewMySQLDirectoryRepository(db), nil
	case "postgres":
		return directoryRepository.NewPostgreSQLDirectoryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDirectoryUseCase creates the directory use case with all its dependencies.
func (c *Container) initDirectoryUseCase() (directoryUseCase.DirectoryUseCase, error) {
	directoryRepo, err := c.DirectoryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get directory repository for directory use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for directory use case: %w", err)
	}

	auditLogUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for directory use case: %w", err)
	}

	return directoryUseCase.NewDirectoryUseCase(
		directoryRepo,
		c.Evaluator(),
		txManager,
		auditLogUC,
	), nil
}
