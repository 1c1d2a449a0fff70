package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/maxsalles/mx/internal/hcl_adapter"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing, loading
// configuration with the HCL loader. It returns the app, the buffer report
// lines are written to and the log buffer.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"

	testApp, err := NewApp(outBuffer, logBuffer, appConfig, hcl_adapter.NewLoader())
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("MX_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
