// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: loading
// configuration and resources, mounting the configured aspects on markup
// files and reporting the options every element carries. It is decoupled
// from any specific entrypoint like a CLI.
package app
