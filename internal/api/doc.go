// Package api renders errors and panics as JSON error payloads and hosts the
// example user handlers. Transport concerns shared by every route live in
// the middleware and shared subpackages.
package api
