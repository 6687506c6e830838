package app

import (
	"fmt"

	settingsHTTP "github.com/allisson/panchayath-admin/internal/settings/http"
	settingsRepository "github.com/allisson/panchayath-admin/internal/settings/repository"
	settingsUseCase "github.com/allisson/panchayath-admin/internal/settings/usecase"
)

// SettingRepository returns the setting repository based on database driver.
func (c *Container) SettingRepository() (settingsUseCase.SettingRepository, error) {
	c.settingRepoInit.Do(func() {
		repo, err := c.initSettingRepository()
		if err != nil {
			c.initErrors["settingRepo"] = err
			return
		}
		c.settingRepo = repo
	})
	if storedErr, exists := c.initErrors["settingRepo"]; exists {
		return nil, storedErr
	}
	return c.settingRepo, nil
}

// SettingUseCase returns the setting use case, wrapped with the LRU read
// cache when SettingsCacheSize is positive.
func (c *Container) SettingUseCase() (settingsUseCase.SettingUseCase, error) {
	c.settingUCInit.Do(func() {
		useCase, err := c.initSettingUseCase()
		if err != nil {
			c.initErrors["settingUseCase"] = err
			return
		}
		c.settingUC = useCase
	})
	if storedErr, exists := c.initErrors["settingUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingUC, nil
}

// SettingHandler returns the settings HTTP handler.
func (c *Container) SettingHandler() (*settingsHTTP.SettingHandler, error) {
	c.settingHandlerInit.Do(func() {
		settingUC, err := c.SettingUseCase()
		if err != nil {
			c.initErrors["settingHandler"] = fmt.Errorf("failed to get setting use case for setting handler: %w", err)
			return
		}
		c.settingHandler = settingsHTTP.NewSettingHandler(settingUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["settingHandler"]; exists {
		return nil, storedErr
	}
	return c.settingHandler, nil
}

// initSettingRepository creates the setting repository instance.
func (c *Container) initSettingRepository() (settingsUseCase.SettingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for setting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return settingsRepository.NewMySQLSettingRepository(db), nil
	case "postgres":
		return settingsRepository.NewPostgreSQLSettingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSettingUseCase creates the setting use case with all its dependencies.
func (c *Container) initSettingUseCase() (settingsUseCase.SettingUseCase, error) {
	settingRepo, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for setting use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for setting use case: %w", err)
	}

	auditLogUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for setting use case: %w", err)
	}

	baseUseCase := settingsUseCase.NewSettingUseCase(
		settingRepo,
		c.Evaluator(),
		txManager,
		auditLogUC,
	)

	cachedUseCase, err := settingsUseCase.NewCachedSettingUseCase(
		baseUseCase,
		c.Evaluator(),
		c.config.SettingsCacheSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cached setting use case: %w", err)
	}

	return cachedUseCase, nil
}
