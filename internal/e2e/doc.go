// Package e2e runs the suite against a real browser and a real TodoMVC
// deployment, configured the same way as the CLI: todomvc-e2e.yaml, .env and
// the environment, looked up from the project root.
//
//	go test -tags e2e ./internal/e2e/...
//
// Tests skip in -short mode and when the configured browser cannot start.
package e2e
