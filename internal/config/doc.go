// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from files.
//
// The `config.Model` is what the app turns into a host: the attribute
// prefix, the resource tree and the aspects to register. Concrete loaders,
// such as the HCL one, are provided in separate packages.
package config
