// ABOUTME: Tests for the session credential stores
// ABOUTME: Covers file round-trips, corrupt data, and provider preference order

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if _, ok := fs.Load(); ok {
		t.Fatal("expected no credential before save")
	}

	cred := Credential{Token: "abc123", Role: "ADMIN"}
	if err := fs.Save(cred); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	got, ok := fs.Load()
	if !ok {
		t.Fatal("expected credential after save")
	}
	if got.Token != "abc123" {
		t.Errorf("expected token abc123, got %s", got.Token)
	}
	if got.Role != "ADMIN" {
		t.Errorf("expected role ADMIN, got %s", got.Role)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if err := fs.Save(Credential{Token: "old", Role: "TECHNICIEN"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fs.Save(Credential{Token: "new", Role: "ADMIN"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := fs.Load()
	if !ok || got.Token != "new" || got.Role != "ADMIN" {
		t.Errorf("expected overwritten credential, got %+v (ok=%t)", got, ok)
	}
}

func TestFileStore_CorruptJSON(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, ok := fs.Load(); ok {
		t.Error("expected corrupt session file to read as absent")
	}
}

func TestFileStore_EmptyToken(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte(`{"token":"","role":"ADMIN"}`), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, ok := fs.Load(); ok {
		t.Error("expected empty token to read as absent")
	}
}

func TestFileStore_Clear(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	// Clearing a store that was never written is fine
	if err := fs.Clear(); err != nil {
		t.Fatalf("unexpected error clearing empty store: %v", err)
	}

	if err := fs.Save(Credential{Token: "abc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fs.Load(); ok {
		t.Error("expected no credential after clear")
	}
}

func TestFileStore_UnwritableDir(t *testing.T) {
	// A store pointed at nowhere loads as absent rather than failing
	fs := NewFileStore("")
	if _, ok := fs.Load(); ok {
		t.Error("expected absent credential for empty config dir")
	}
}

func TestEnvStore(t *testing.T) {
	t.Setenv("EAM_TOKEN", "envtok")
	t.Setenv("EAM_ROLE", "CHEFOP")

	var es EnvStore
	got, ok := es.Load()
	if !ok || got.Token != "envtok" || got.Role != "CHEFOP" {
		t.Errorf("expected env credential, got %+v (ok=%t)", got, ok)
	}

	if err := es.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := es.Load(); ok {
		t.Error("expected no credential after clear")
	}
}

func TestProvider_PrefersDurableStore(t *testing.T) {
	t.Setenv("EAM_TOKEN", "envtok")
	t.Setenv("EAM_ROLE", "TECHNICIEN")

	fs := NewFileStore(t.TempDir())
	if err := fs.Save(Credential{Token: "filetok", Role: "ADMIN"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := NewProvider(fs, EnvStore{})
	cred, ok := p.Current()
	if !ok || cred.Token != "filetok" {
		t.Errorf("expected durable store to win, got %+v (ok=%t)", cred, ok)
	}
}

func TestProvider_FallsBackToEnv(t *testing.T) {
	t.Setenv("EAM_TOKEN", "envtok")
	t.Setenv("EAM_ROLE", "")

	p := NewProvider(NewFileStore(t.TempDir()), EnvStore{})
	cred, ok := p.Current()
	if !ok || cred.Token != "envtok" {
		t.Errorf("expected env fallback, got %+v (ok=%t)", cred, ok)
	}
}

func TestProvider_AuthHeaders(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	p := NewProvider(fs)

	headers := p.AuthHeaders()
	if len(headers) != 0 {
		t.Errorf("expected empty headers without token, got %v", headers)
	}

	if err := fs.Save(Credential{Token: "tok-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	headers = p.AuthHeaders()
	if len(headers) != 1 {
		t.Fatalf("expected exactly one header, got %v", headers)
	}
	if headers["Authorization"] != "Bearer tok-1" {
		t.Errorf("expected Bearer tok-1, got %s", headers["Authorization"])
	}
}

func TestProvider_ClearRemovesAllStores(t *testing.T) {
	t.Setenv("EAM_TOKEN", "envtok")

	fs := NewFileStore(t.TempDir())
	if err := fs.Save(Credential{Token: "filetok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := NewProvider(fs, EnvStore{})
	if err := p.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.Current(); ok {
		t.Error("expected no credential after clear")
	}
}
