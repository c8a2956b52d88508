// Package e2e drives the public Sauce Demo store. Run with:
//
//	go test -tags e2e ./e2e/...
//
// SAUCE_CONFIG points at an optional YAML config; SAUCE_* variables override it.
package e2e
