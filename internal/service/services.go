package service

import (
	"github.com/xolan/wfdash/internal/api"
	"github.com/xolan/wfdash/internal/config"
	"github.com/xolan/wfdash/internal/logger"
)

// Services holds all service instances used by the application
type Services struct {
	Employee    *EmployeeService
	Work        *WorkService
	Activity    *ActivityService
	Screenshots *ScreenshotService
	Config      *ConfigService
}

// NewServices creates a new Services instance from the user's config file,
// the optional .env file and WFDASH_* environment overrides.
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	if err := config.LoadDotEnv(config.EnvFile); err != nil {
		logger.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithAPI(api.NewClient(cfg.APIBaseURL), configPath, cfg), nil
}

// NewServicesWithAPI creates a new Services instance around a custom backend (useful for testing)
func NewServicesWithAPI(backend API, configPath string, cfg config.Config) *Services {
	return &Services{
		Employee:    NewEmployeeService(backend),
		Work:        NewWorkService(backend),
		Activity:    NewActivityService(backend),
		Screenshots: NewScreenshotService(backend, cfg),
		Config:      NewConfigService(configPath, cfg),
	}
}
