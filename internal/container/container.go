// Package container provides dependency injection for the expense-view application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"expense-view/internal/api"
	"expense-view/internal/config"
	"expense-view/internal/controller"
	"expense-view/internal/logging"
	"expense-view/internal/models"
	"expense-view/internal/render"
	"expense-view/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	logFile    io.Closer
	config     *config.Config
	client     *api.Client
	controller *controller.Controller
	renderer   *render.Renderer

	presetsOnce sync.Once
	presets     *store.PresetStore
	presetsErr  error

	loginOnce sync.Once
	loginErr  error
}

// NewContainer creates and wires all application dependencies.
// When cfg.Log.File is set, logs are appended to that file instead of stderr.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	var (
		out     io.Writer
		logFile *os.File
	)
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, models.PermissionConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Log.File, err)
		}
		out, logFile = f, f
	}
	logger := logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, out)

	client, err := api.New(api.Options{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Timeout(),
		Logger:  logger,
	})
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldEndpoint, Value: client.BaseURL()},
		logging.Field{Key: "log_file", Value: cfg.Log.File})

	c := &Container{
		logger:     logger,
		config:     cfg,
		client:     client,
		controller: controller.New(client, logger),
		renderer:   render.New(cfg.Display.CurrencySymbol),
	}
	if logFile != nil {
		c.logFile = logFile
	}
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClient returns the backend client shared by every command.
func (c *Container) GetClient() *api.Client {
	return c.client
}

// GetController returns the controller that owns the in-memory snapshot.
func (c *Container) GetController() *controller.Controller {
	return c.controller
}

// GetRenderer returns the renderer configured with the display currency.
func (c *Container) GetRenderer() *render.Renderer {
	return c.renderer
}

// GetPresets returns the saved filter presets, loading the file on first use.
func (c *Container) GetPresets() (*store.PresetStore, error) {
	c.presetsOnce.Do(func() {
		p := store.NewPresetStore(c.config.Presets.File, c.logger)
		if err := p.Load(); err != nil {
			c.presetsErr = err
			return
		}
		c.presets = p
	})
	return c.presets, c.presetsErr
}

// Authenticate logs in once per process when a password is configured.
// Without a password it does nothing, for backends that run without login.
func (c *Container) Authenticate(ctx context.Context) error {
	if c.config.Server.Password == "" {
		return nil
	}
	c.loginOnce.Do(func() {
		c.loginErr = c.client.Login(ctx, c.config.Server.Password)
	})
	return c.loginErr
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	if c.logFile != nil {
		return c.logFile.Close()
	}
	return nil
}
