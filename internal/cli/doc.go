// Package cli turns the mx command line into an app.Config. Usage errors
// come back as *ExitError carrying the process exit code; a request for
// help, or a command line without markup paths, prints the usage text and
// asks the caller to exit cleanly.
package cli
