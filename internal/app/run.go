package app

import (
	"context"
	"fmt"
	"os"

	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/fsutil"
	"github.com/maxsalles/mx/internal/host"
	"github.com/maxsalles/mx/internal/markup"
	"github.com/maxsalles/mx/internal/registry"
	"github.com/maxsalles/mx/modules/report"
)

// Run mounts the configured aspects on every markup file, reporting the
// options of each (element, aspect) pair, and unmounts them again.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.CollectFiles(a.appConfig.MarkupPaths, MarkupExtensions...)
	if err != nil {
		return fmt.Errorf("failed to collect markup files: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No markup files found, nothing to do.", "paths", a.appConfig.MarkupPaths)
		return nil
	}
	if len(a.model.Aspects) == 0 {
		a.logger.Warn("No aspects configured, nothing will be reported.")
	}

	total := 0
	for _, file := range files {
		reported, err := a.runFile(ctx, file)
		if err != nil {
			return err
		}
		total += reported
	}

	a.logger.Info("Run finished.", "files", len(files), "reported", total)
	return nil
}

// runFile mounts and unmounts one markup file and returns the number of
// lines reported.
func (a *App) runFile(ctx context.Context, file string) (int, error) {
	ctx, logger := ctxlog.With(ctx, "file", file)

	doc, err := parseFile(file)
	if err != nil {
		return 0, err
	}

	mod := &report.Module{
		File:          file,
		Encoder:       a.encoder,
		Aspects:       a.model.Aspects,
		DefaultOption: a.model.DefaultOption,
	}
	h, err := host.New(host.Config{
		Prefix:    a.model.Prefix,
		Root:      doc.Root(),
		Resources: a.resources,
		Modules:   []registry.Module{mod},
	})
	if err != nil {
		return 0, err
	}

	roots := []*markup.Node{doc.Root()}
	if a.appConfig.Selector != "" {
		roots, err = doc.Select(a.appConfig.Selector)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", file, err)
		}
		logger.Debug("Selector applied.", "selector", a.appConfig.Selector, "roots", len(roots))
	}

	for _, root := range roots {
		if err := h.Mount(ctx, root); err != nil {
			return mod.Reported(), fmt.Errorf("%s: %w", file, err)
		}
	}
	for i := len(roots) - 1; i >= 0; i-- {
		if err := h.Unmount(ctx, roots[i]); err != nil {
			return mod.Reported(), fmt.Errorf("%s: %w", file, err)
		}
	}

	logger.Debug("Markup file processed.", "reported", mod.Reported())
	return mod.Reported(), nil
}

func parseFile(file string) (*markup.Document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open markup file %s: %w", file, err)
	}
	defer f.Close()

	doc, err := markup.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return doc, nil
}
