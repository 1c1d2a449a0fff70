package testutil

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/maxsalles/mx/internal/app"
	"github.com/maxsalles/mx/internal/hcl_adapter"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// ReportLine is a decoded JSON report line. Options are kept as plain JSON
// data so tests can compare them against literals.
type ReportLine struct {
	File    string         `json:"file"`
	Element string         `json:"element"`
	Aspect  string         `json:"aspect"`
	Options map[string]any `json:"options"`
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Lines     []ReportLine
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, appConfig app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, appConfig)
}

// RunIntegrationTestWithContext writes files into a temporary directory and
// runs the app over it. Relative paths in appConfig are taken relative to
// that directory; when appConfig names no markup path the whole directory is
// used. Setup errors are returned in the result, like run errors.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, appConfig app.Config) *HarnessResult {
	t.Helper()

	// 1. Create a temporary root directory for the test.
	tmpDir := t.TempDir()

	// 2. Write all files. The test provides relative paths (e.g.,
	//    "config/mx.hcl"), which creates the subdirectory structure.
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	// 3. Anchor the configured paths to the temporary directory.
	if len(appConfig.MarkupPaths) == 0 {
		appConfig.MarkupPaths = []string{"."}
	}
	appConfig.MarkupPaths = inDir(tmpDir, appConfig.MarkupPaths)
	appConfig.ConfigPaths = inDir(tmpDir, appConfig.ConfigPaths)
	appConfig.ResourcePaths = inDir(tmpDir, appConfig.ResourcePaths)
	appConfig.LogLevel = "debug"
	appConfig.LogFormat = "text"

	result := &HarnessResult{Dir: tmpDir}
	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}

	cfg, err := app.NewConfig(appConfig)
	if err == nil {
		result.App, err = app.NewApp(outBuffer, logBuffer, cfg, hcl_adapter.NewLoader())
	}
	if err == nil {
		err = result.App.Run(ctx)
	}
	result.Err = err
	result.Output = outBuffer.String()
	result.LogOutput = logBuffer.String()

	if os.Getenv("MX_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}

	if cfg != nil && cfg.Output == app.OutputJSON {
		result.Lines = decodeLines(t, result.Output, tmpDir)
	}
	return result
}

// decodeLines decodes the JSON report, making file names relative to dir.
func decodeLines(t *testing.T, output, dir string) []ReportLine {
	t.Helper()

	var lines []ReportLine
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		var line ReportLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), "invalid report line: %s", scanner.Text())
		if rel, err := filepath.Rel(dir, line.File); err == nil {
			line.File = filepath.ToSlash(rel)
		}
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func inDir(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(dir, p)
	}
	return out
}
