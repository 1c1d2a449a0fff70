package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertReported finds the report line of aspect on element and returns its
// options. It fails the test when the pair was not reported exactly once.
func AssertReported(t *testing.T, result *HarnessResult, element, aspect string) map[string]any {
	t.Helper()

	var found []ReportLine
	for _, line := range result.Lines {
		if line.Element == element && line.Aspect == aspect {
			found = append(found, line)
		}
	}

	require.Len(t, found, 1, "expected one report of aspect '%s' on '%s', got:\n%s", aspect, element, result.Output)
	return found[0].Options
}

// ReportedPairs lists the reported (element, aspect) pairs in output order.
func ReportedPairs(result *HarnessResult) []string {
	pairs := make([]string, len(result.Lines))
	for i, line := range result.Lines {
		pairs[i] = line.Element + " " + line.Aspect
	}
	return pairs
}
