// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/maxsalles/mx/internal/config"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/resource"
	"github.com/maxsalles/mx/internal/value"
)

// translateFile converts the decoded schema of one file into a model.
func (l *Loader) translateFile(ctx context.Context, file string, root *fileRoot) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("file", file)

	m := &config.Model{}
	if root.Prefix != nil {
		m.Prefix = *root.Prefix
	}
	if root.DefaultOption != nil {
		m.DefaultOption = *root.DefaultOption
	}

	dir := filepath.Dir(file)
	for _, p := range root.ResourceFiles {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		m.ResourceFiles = append(m.ResourceFiles, p)
	}

	resources, err := translateResources(root.Resources)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	m.Resources = resources

	seen := make(map[string]struct{})
	for _, block := range root.Aspects {
		if _, dup := seen[block.Name]; dup {
			return nil, fmt.Errorf("%s: aspect '%s' declared more than once", file, block.Name)
		}
		seen[block.Name] = struct{}{}

		a, err := translateAspect(block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		logger.Debug("Translated aspect block.", "aspect", a.Name)
		m.Aspects = append(m.Aspects, a)
	}

	return m, nil
}

// translateAspect converts an aspect block into the agnostic model.
func translateAspect(b *aspectBlock) (*config.Aspect, error) {
	resources, err := translateResources(b.Resources)
	if err != nil {
		return nil, fmt.Errorf("aspect '%s': %w", b.Name, err)
	}
	return &config.Aspect{
		Name:          b.Name,
		DefaultOption: b.DefaultOption,
		BasePath:      b.BasePath,
		Resources:     resources,
	}, nil
}

// translateResources evaluates a resources block. A missing block gives an
// empty tree.
func translateResources(b *resourcesBlock) (value.Value, error) {
	if b == nil || b.Body == nil {
		return value.EmptyMap(), nil
	}
	return resource.FromBody(b.Body, nil)
}
