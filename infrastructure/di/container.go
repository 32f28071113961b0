package di

import (
	"fmt"
	"os"
	"time"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/infrastructure/config"
	"github.com/ca-srg/tzbuddy/infrastructure/logging"
	infraRepo "github.com/ca-srg/tzbuddy/infrastructure/repository"
	"github.com/ca-srg/tzbuddy/infrastructure/service"
	"github.com/ca-srg/tzbuddy/interface/cli"
	"github.com/ca-srg/tzbuddy/interface/presenter"
	"github.com/ca-srg/tzbuddy/usecase/impl"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// Container is the dependency injection container
type Container struct {
	// Configuration
	config        *config.AppConfig
	configRepo    repository.ConfigRepository
	configService usecase.ConfigService

	// Repositories
	geocodingRepo  repository.GeocodingRepository
	timezoneFinder repository.TimezoneFinderRepository
	cacheRepo      repository.LocationCacheRepository
	cacheDB        *infraRepo.SQLiteLocationCacheRepository

	// Services
	timezoneService repository.TimezoneService

	// Use Cases
	converterService usecase.ConverterService
	locationService  usecase.LocationService
	scheduleService  usecase.ScheduleService
	exportService    usecase.ExportService

	// Presenters
	consolePresenter presenter.ConsolePresenter
	jsonPresenter    presenter.JSONPresenter

	// Controllers
	cliController *cli.CLIController

	// Logging
	loggerFactory domain.LoggerFactory
	logger        domain.Logger

	// Options
	debugMode bool
}

// ContainerOption is a function that configures the container
type ContainerOption func(*Container)

// WithDebugMode sets the debug mode
func WithDebugMode(debug bool) ContainerOption {
	return func(c *Container) {
		c.debugMode = debug
	}
}

// NewContainer creates a new DI container
func NewContainer(opts ...ContainerOption) (*Container, error) {
	container := &Container{}

	for _, opt := range opts {
		opt(container)
	}

	if err := container.initConfig(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := container.initLogging(); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := container.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	if err := container.initDomainServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize domain services: %w", err)
	}
	if err := container.initUseCases(); err != nil {
		return nil, fmt.Errorf("failed to initialize use cases: %w", err)
	}
	if err := container.initPresenters(); err != nil {
		return nil, fmt.Errorf("failed to initialize presenters: %w", err)
	}
	if err := container.initControllers(); err != nil {
		return nil, fmt.Errorf("failed to initialize controllers: %w", err)
	}

	return container, nil
}

// initConfig initializes configuration
func (c *Container) initConfig() error {
	c.configRepo = infraRepo.NewJSONConfigRepository()

	// The real logger needs config, so config loading runs silent
	configService, err := impl.NewConfigService(c.configRepo, &logging.NoOpLogger{})
	if err != nil {
		return fmt.Errorf("failed to create config service: %w", err)
	}
	c.configService = configService

	cfg := configService.GetConfig()

	// Command-line debug flag wins over the configured level
	if c.debugMode {
		if cfg.Logging == nil {
			cfg.Logging = &config.LoggingConfig{Level: "debug"}
		}
		cfg.Logging.Debug = true
	}

	c.config = cfg
	return nil
}

// initLogging initializes logging components
func (c *Container) initLogging() error {
	if c.config.Logging == nil {
		c.config.Logging = &config.LoggingConfig{Level: "info"}
	}

	c.loggerFactory = logging.NewLoggerFactory(c.config.Logging)
	c.logger = c.loggerFactory.CreateLogger("tzbuddy")
	return nil
}

// initRepositories initializes repository implementations
func (c *Container) initRepositories() error {
	if c.config.Geocoding != nil && c.config.Geocoding.Enabled {
		c.geocodingRepo = infraRepo.NewNominatimGeocodingRepository(
			c.config.Geocoding.BaseURL,
			c.config.Geocoding.UserAgent,
			c.config.Geocoding.Timeout(),
		)
		c.timezoneFinder = infraRepo.NewBoundaryTimezoneRepository()
	}

	if c.config.Cache != nil && c.config.Cache.Enabled {
		path, err := c.config.CachePath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: location cache disabled: %v\n", err)
			return nil
		}
		cacheDB, err := infraRepo.NewSQLiteLocationCacheRepository(
			path,
			time.Duration(c.config.Cache.TTLDays)*24*time.Hour,
			c.config.Cache.MaxLocations,
			c.config.Cache.HistoryLimit,
		)
		if err != nil {
			// A broken cache must not take the whole tool down
			fmt.Fprintf(os.Stderr, "Warning: location cache disabled: %v\n", err)
			return nil
		}
		c.cacheDB = cacheDB
		c.cacheRepo = cacheDB
	}

	return nil
}

// initDomainServices initializes domain services
func (c *Container) initDomainServices() error {
	c.timezoneService = service.NewTimezoneServiceImpl(c.logger)
	return nil
}

// initUseCases initializes use case implementations
func (c *Container) initUseCases() error {
	c.converterService = impl.NewConverterService(c.timezoneService, c.configService, c.logger)
	c.locationService = impl.NewLocationService(
		c.timezoneService,
		c.geocodingRepo,
		c.timezoneFinder,
		c.cacheRepo,
		c.logger,
	)
	c.scheduleService = impl.NewScheduleService(c.locationService, c.configService, c.logger)
	c.exportService = impl.NewExportService(
		c.configService,
		c.logger,
		infraRepo.NewCSVReportRepository(c.logger),
		infraRepo.NewJSONReportRepository(c.logger),
	)
	return nil
}

// initPresenters initializes presenters
func (c *Container) initPresenters() error {
	c.consolePresenter = presenter.NewConsolePresenter()
	c.jsonPresenter = presenter.NewJSONPresenter()
	return nil
}

// initControllers initializes controllers
func (c *Container) initControllers() error {
	c.cliController = cli.NewCLIController(
		c.converterService,
		c.scheduleService,
		c.locationService,
		c.exportService,
		c.configService,
		c.consolePresenter,
		c.jsonPresenter,
	)
	return nil
}

// Close releases container resources
func (c *Container) Close() error {
	if c.cacheDB != nil {
		return c.cacheDB.Close()
	}
	return nil
}

// GetCLIController returns the CLI controller
func (c *Container) GetCLIController() *cli.CLIController {
	return c.cliController
}

// GetConfigService returns the config service
func (c *Container) GetConfigService() usecase.ConfigService {
	return c.configService
}

// GetConfig returns the loaded configuration
func (c *Container) GetConfig() *config.AppConfig {
	return c.config
}

// GetTimezoneService returns the timezone service
func (c *Container) GetTimezoneService() repository.TimezoneService {
	return c.timezoneService
}

// GetConsolePresenter returns the console presenter
func (c *Container) GetConsolePresenter() presenter.ConsolePresenter {
	return c.consolePresenter
}

// GetLogger returns the container logger
func (c *Container) GetLogger() domain.Logger {
	return c.logger
}
