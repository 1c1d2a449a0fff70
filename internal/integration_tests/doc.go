// Package integration_tests runs the application end to end, from files on
// disk to the option report, through the testutil harness.
package integration_tests
