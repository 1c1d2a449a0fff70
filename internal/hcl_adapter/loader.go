package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/maxsalles/mx/internal/config"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths, in order, and merges them
// into one model. Missing paths are ignored.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := config.New()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel, err := l.translateFile(ctx, file, &root)
		if err != nil {
			return nil, err
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "aspects", len(model.Aspects), "resource_files", len(model.ResourceFiles))
	return model, nil
}
