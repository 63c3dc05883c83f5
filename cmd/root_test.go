// ABOUTME: Tests for root command helpers
// ABOUTME: URL precedence, error classification, and guard wiring

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sagmcom/eamctl/internal/client"
	"github.com/sagmcom/eamctl/internal/config"
	"github.com/sagmcom/eamctl/internal/session"
)

// useSession points the durable store at a temp dir, optionally seeding a
// credential, and disables retries so failure tests stay fast.
func useSession(t *testing.T, cred *session.Credential) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("EAM_TOKEN", "")
	t.Setenv("EAM_ROLE", "")
	t.Setenv("EAM_RETRIES", "0")
	if cred != nil {
		store := session.NewFileStore(session.DefaultConfigDir())
		if err := store.Save(*cred); err != nil {
			t.Fatalf("seeding session: %v", err)
		}
	}
}

func TestGetAPIURL_FlagTakesPrecedence(t *testing.T) {
	apiURL = "http://flag:1234"
	defer func() { apiURL = "" }()
	t.Setenv("EAM_API_URL", "http://env:5678")

	if got := GetAPIURL(); got != "http://flag:1234" {
		t.Errorf("GetAPIURL() = %q, want flag value", got)
	}
}

func TestGetAPIURL_EnvFallback(t *testing.T) {
	apiURL = ""
	t.Setenv("EAM_API_URL", "http://env:5678")

	if got := GetAPIURL(); got != "http://env:5678" {
		t.Errorf("GetAPIURL() = %q, want env value", got)
	}
}

func TestGetAPIURL_Default(t *testing.T) {
	apiURL = ""
	t.Setenv("EAM_API_URL", "")

	if got := GetAPIURL(); got != config.DefaultBaseURL {
		t.Errorf("GetAPIURL() = %q, want default", got)
	}
}

func TestReportError_HTTPShowsServerMessage(t *testing.T) {
	var buf bytes.Buffer
	err := &client.APIError{Kind: client.KindHTTP, Status: 401, Body: `{"error":"Invalid credentials"}`}
	code := reportError(&buf, err)

	if code != exitDomain {
		t.Errorf("exit code = %d, want %d", code, exitDomain)
	}
	if !strings.Contains(buf.String(), "Invalid credentials (HTTP 401)") {
		t.Errorf("expected server message with status, got %q", buf.String())
	}
}

func TestReportError_TransportIsExit2(t *testing.T) {
	var buf bytes.Buffer
	err := &client.APIError{Kind: client.KindNetwork}
	if code := reportError(&buf, err); code != exitTransport {
		t.Errorf("exit code = %d, want %d", code, exitTransport)
	}
}

func TestCheckAccess_NotSignedIn(t *testing.T) {
	useSession(t, nil)
	var buf bytes.Buffer
	c := client.New("http://localhost:8080", client.WithSession(session.Default()))

	if code := checkAccess(&buf, c, "users list", "ADMIN"); code != exitDomain {
		t.Errorf("exit code = %d, want %d", code, exitDomain)
	}
	if !strings.Contains(buf.String(), "eamctl login") {
		t.Errorf("expected sign-in hint, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "users list") {
		t.Errorf("expected attempted command named, got %q", buf.String())
	}
}

func TestCheckAccess_WrongRole(t *testing.T) {
	useSession(t, &session.Credential{Token: "tok", Role: "TECHNICIEN"})
	var buf bytes.Buffer
	c := client.New("http://localhost:8080", client.WithSession(session.Default()))

	if code := checkAccess(&buf, c, "users list", "ADMIN"); code != exitDomain {
		t.Errorf("exit code = %d, want %d", code, exitDomain)
	}
	if !strings.Contains(buf.String(), "role") {
		t.Errorf("expected role denial message, got %q", buf.String())
	}
}

func TestCheckAccess_Authorized(t *testing.T) {
	useSession(t, &session.Credential{Token: "tok", Role: "ADMIN"})
	var buf bytes.Buffer
	c := client.New("http://localhost:8080", client.WithSession(session.Default()))

	if code := checkAccess(&buf, c, "users list", "ADMIN"); code != exitOK {
		t.Errorf("exit code = %d, want %d", code, exitOK)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on success, got %q", buf.String())
	}
}
