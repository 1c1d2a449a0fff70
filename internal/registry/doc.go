// Package registry provides the central "glue" for the aspect system.
//
// The Registry holds the aspect descriptors a host mounts, in registration
// order, which is also the order their Setup hooks run in and the reverse of
// the order their Terminate hooks run in. Modules bundle descriptors and add
// them through their Register method.
package registry
