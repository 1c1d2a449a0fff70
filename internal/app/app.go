package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/maxsalles/mx/internal/config"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/resource"
	"github.com/maxsalles/mx/internal/value"
	"github.com/maxsalles/mx/modules/print"
	"github.com/maxsalles/mx/modules/report"
)

// MarkupExtensions lists the file extensions searched in markup directories.
var MarkupExtensions = []string{".html", ".htm"}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	appConfig *Config
	model     *config.Model
	resources value.Value
	encoder   report.Encoder
}

// NewApp is the constructor for the main application. It loads the
// configuration files and the resource tree; report lines go to outW and
// logs to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded and translated into unified model.", "aspects", len(model.Aspects))

	if appConfig.Prefix != "" {
		model.Prefix = appConfig.Prefix
	}
	for _, name := range appConfig.Aspects {
		if _, ok := model.Aspect(name); !ok {
			model.Aspects = append(model.Aspects, &config.Aspect{Name: name, Resources: value.EmptyMap()})
		}
	}

	resourcePaths := slices.Concat(model.ResourceFiles, appConfig.ResourcePaths)
	loaded, err := resource.Load(ctx, resourcePaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	resources := value.Merge(model.Resources, loaded)
	logger.Debug("Resources loaded.", "files", len(resourcePaths), "keys", resources.Len())

	var encoder report.Encoder = report.NewJSONEncoder(outW)
	if appConfig.Output == OutputText {
		encoder = print.NewEncoder(outW)
	}

	return &App{
		outW:      outW,
		logger:    logger,
		appConfig: appConfig,
		model:     model,
		resources: resources,
		encoder:   encoder,
	}, nil
}

// Model returns the merged configuration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Resources returns the loaded resource tree.
func (a *App) Resources() value.Value {
	return a.resources
}
