// Package testutil provides the harness the integration tests run the
// application through.
package testutil
