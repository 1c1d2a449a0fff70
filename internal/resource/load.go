package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/maxsalles/mx/internal/ctxlog"
	"github.com/maxsalles/mx/internal/fsutil"
	"github.com/maxsalles/mx/internal/value"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".hcl", ".json", ".yaml", ".yml"}

// Load reads every resource file found under paths and deep-merges them, in
// order, into one tree. Directories are searched recursively for files with
// one of the Extensions; missing paths are ignored.
//
// The top level of every file must be an object: in HCL and JSON each
// top-level attribute becomes a key of the tree.
func Load(ctx context.Context, paths ...string) (value.Value, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, Extensions...)
	if err != nil {
		return value.Value{}, err
	}
	logger.Debug("Discovered resource files.", "count", len(files))

	parser := hclparse.NewParser()
	tree := value.EmptyMap()

	for _, file := range files {
		var loaded value.Value
		switch filepath.Ext(file) {
		case ".hcl":
			loaded, err = loadHCL(parser, file, false)
		case ".json":
			loaded, err = loadHCL(parser, file, true)
		case ".yaml", ".yml":
			loaded, err = loadYAML(file)
		default:
			err = fmt.Errorf("unsupported resource file %s", file)
		}
		if err != nil {
			return value.Value{}, err
		}

		logger.Debug("Resource file loaded.", "file", file, "keys", loaded.Len())
		tree = value.Merge(tree, loaded)
	}

	return tree, nil
}

func loadHCL(parser *hclparse.Parser, file string, isJSON bool) (value.Value, error) {
	var (
		hclFile *hcl.File
		diags   hcl.Diagnostics
	)
	if isJSON {
		hclFile, diags = parser.ParseJSONFile(file)
	} else {
		hclFile, diags = parser.ParseHCLFile(file)
	}
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("failed to parse resource file %s: %w", file, diags)
	}

	return FromBody(hclFile.Body, nil)
}

// FromBody evaluates every attribute of body with evalCtx and returns them
// as a map. Nested blocks are not allowed.
func FromBody(body hcl.Body, evalCtx *hcl.EvalContext) (value.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("failed to read resource attributes: %w", diags)
	}

	entries := make(map[string]value.Value, len(attrs))
	for name, attr := range attrs {
		ctyVal, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return value.Value{}, fmt.Errorf("failed to evaluate resource %q: %w", name, diags)
		}
		v, err := value.FromCty(ctyVal)
		if err != nil {
			return value.Value{}, fmt.Errorf("resource %q: %w", name, err)
		}
		entries[name] = v
	}

	return value.Map(entries), nil
}

func loadYAML(file string) (value.Value, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to read resource file %s: %w", file, err)
	}

	var decoded any
	if err := yaml.Unmarshal(content, &decoded); err != nil {
		return value.Value{}, fmt.Errorf("failed to parse resource file %s: %w", file, err)
	}

	v, err := value.FromNative(decoded)
	if err != nil {
		return value.Value{}, fmt.Errorf("resource file %s: %w", file, err)
	}
	if v.IsUnresolved() {
		return value.EmptyMap(), nil
	}
	if !v.IsMap() {
		return value.Value{}, fmt.Errorf("resource file %s: top level must be a mapping, got %s", file, v.Kind())
	}
	return v, nil
}
