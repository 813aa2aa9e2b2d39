// Package sender implements the low-level HTTP pipeline shared by every
// resource client: request construction, transport execution, status
// classification, and response decoding.
//
// The package is internal. Callers outside the SDK interact with the
// public loops package, which converts the error types defined here into
// their public equivalents.
package sender
