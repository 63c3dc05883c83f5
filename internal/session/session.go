// ABOUTME: Persisted session credential for the EAM gateway
// ABOUTME: Stores bearer token and role in XDG config dir with env fallback

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Credential is the persisted session state: an opaque bearer token and the
// role string the gateway reported for it. A credential with an empty token
// is treated as absent everywhere.
type Credential struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Store reads and writes a session credential. Load reports absence instead
// of failing: a broken store is indistinguishable from "not signed in".
type Store interface {
	Load() (Credential, bool)
	Save(Credential) error
	Clear() error
}

// FileStore persists the credential as JSON in the user config directory.
// This is the durable store; it survives across processes.
type FileStore struct {
	configDir string
}

// NewFileStore creates a file store rooted at the given config directory.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "eamctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "eamctl")
}

// sessionFile returns the path to the session JSON
func (fs *FileStore) sessionFile() string {
	return filepath.Join(fs.configDir, "session.json")
}

// Load reads the credential from disk. Any failure (missing file, unreadable
// directory, invalid JSON) reports absence.
func (fs *FileStore) Load() (Credential, bool) {
	if fs.configDir == "" {
		return Credential{}, false
	}
	data, err := os.ReadFile(fs.sessionFile())
	if err != nil {
		return Credential{}, false
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, false
	}
	if cred.Token == "" {
		return Credential{}, false
	}
	return cred, true
}

// Save writes the credential to disk, replacing any previous one.
// The file holds a bearer token, so it is not group or world readable.
func (fs *FileStore) Save(cred Credential) error {
	if err := os.MkdirAll(fs.configDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.sessionFile(), data, 0600)
}

// Clear removes the persisted credential. A missing file is not an error.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.sessionFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// EnvStore reads the credential from EAM_TOKEN and EAM_ROLE. It is the
// process-scoped store: CI pipelines inject a token without touching the
// config dir. Save and Clear affect only the current process environment.
type EnvStore struct{}

// Load reads EAM_TOKEN / EAM_ROLE from the environment.
func (EnvStore) Load() (Credential, bool) {
	token := os.Getenv("EAM_TOKEN")
	if token == "" {
		return Credential{}, false
	}
	return Credential{Token: token, Role: os.Getenv("EAM_ROLE")}, true
}

// Save sets EAM_TOKEN / EAM_ROLE for the current process.
func (EnvStore) Save(cred Credential) error {
	if err := os.Setenv("EAM_TOKEN", cred.Token); err != nil {
		return err
	}
	return os.Setenv("EAM_ROLE", cred.Role)
}

// Clear unsets EAM_TOKEN / EAM_ROLE for the current process.
func (EnvStore) Clear() error {
	if err := os.Unsetenv("EAM_TOKEN"); err != nil {
		return err
	}
	return os.Unsetenv("EAM_ROLE")
}

// MemStore holds the credential in process memory only. Nothing touches
// disk or the environment; the credential dies with the process.
type MemStore struct {
	cred Credential
	ok   bool
}

// Load returns the in-memory credential, if one was saved.
func (m *MemStore) Load() (Credential, bool) {
	return m.cred, m.ok
}

// Save replaces the in-memory credential.
func (m *MemStore) Save(cred Credential) error {
	m.cred, m.ok = cred, true
	return nil
}

// Clear drops the in-memory credential.
func (m *MemStore) Clear() error {
	m.cred, m.ok = Credential{}, false
	return nil
}

// Provider resolves the current credential across stores, preferring the
// first store that holds a token. The durable file store comes first,
// matching the original console's localStorage-then-sessionStorage order.
type Provider struct {
	stores []Store
}

// NewProvider creates a provider over the given stores, in preference order.
func NewProvider(stores ...Store) *Provider {
	return &Provider{stores: stores}
}

// Default returns the standard provider: durable file store first, process
// environment second.
func Default() *Provider {
	return NewProvider(NewFileStore(DefaultConfigDir()), EnvStore{})
}

// Current returns the first credential found, if any.
func (p *Provider) Current() (Credential, bool) {
	for _, s := range p.stores {
		if cred, ok := s.Load(); ok {
			return cred, true
		}
	}
	return Credential{}, false
}

// AuthHeaders returns the Authorization header for the current credential,
// or an empty map when no token is persisted. It never fails: store access
// problems are treated as "no token".
func (p *Provider) AuthHeaders() map[string]string {
	cred, ok := p.Current()
	if !ok {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + cred.Token}
}

// Save writes the credential to the preferred (durable) store.
func (p *Provider) Save(cred Credential) error {
	if len(p.stores) == 0 {
		return nil
	}
	return p.stores[0].Save(cred)
}

// Clear removes the credential from every store. Used at logout and when the
// gateway reports the token expired.
func (p *Provider) Clear() error {
	var firstErr error
	for _, s := range p.stores {
		if err := s.Clear(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
