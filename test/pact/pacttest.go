//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "erpflow-api"
	ConsumerName = "erp-dashboard"

	StateEmptyDatabase = "an empty database"
	StateSeeded        = "the demo data set is loaded"
	StateUserExists    = "user pact.user@example.com exists"
)

const (
	UserEmail     = "pact.user@example.com"
	UserPassword  = "pact-password"
	UserFirstName = "Pact"
	UserLastName  = "User"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleLoginPayload provides stable credentials for login interactions.
func ExampleLoginPayload() map[string]any {
	return map[string]any{
		"email":    UserEmail,
		"password": UserPassword,
	}
}

// ExampleRegisterPayload provides a stable sign-up form.
func ExampleRegisterPayload() map[string]any {
	return map[string]any{
		"email":     UserEmail,
		"password":  UserPassword,
		"firstName": UserFirstName,
		"lastName":  UserLastName,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
