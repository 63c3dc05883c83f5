// ABOUTME: Role-based command guard for the console
// ABOUTME: Decides signed-out, allowed, or denied before a command runs

package guard

import (
	"log/slog"

	"github.com/sagmcom/eamctl/internal/session"
)

// Recognized gateway roles.
const (
	RoleAdmin      = "ADMIN"
	RoleChefOp     = "CHEFOP"
	RoleChefTech   = "CHEFTECH"
	RoleTechnicien = "TECHNICIEN"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// Unauthenticated: no credential, or a credential with no usable role.
	// The caller should route to sign-in, keeping the attempted command.
	Unauthenticated Decision = iota
	// Authorized: the credential's role is on the allow list (or the list
	// is empty, meaning any signed-in user).
	Authorized
	// Unauthorized: signed in, but the role is not on the allow list.
	Unauthorized
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unauthenticated"
	}
}

// Check evaluates the credential against an allow list of roles for the
// named command. A credential missing its role cannot be matched against a
// non-empty allow list, so it counts as signed-out rather than denied; a
// fresh sign-in repopulates the role.
func Check(cred session.Credential, ok bool, allowed []string, command string) Decision {
	if !ok || cred.Token == "" {
		return Unauthenticated
	}
	if len(allowed) == 0 {
		return Authorized
	}
	if cred.Role == "" {
		return Unauthenticated
	}
	for _, role := range allowed {
		if cred.Role == role {
			return Authorized
		}
	}
	slog.Warn("command denied",
		"command", command,
		"required_roles", allowed,
		"user_role", cred.Role,
	)
	return Unauthorized
}

// CheckProvider is Check against the provider's current credential.
func CheckProvider(p *session.Provider, allowed []string, command string) Decision {
	cred, ok := p.Current()
	return Check(cred, ok, allowed, command)
}

// LandingRoute maps a role to the console view a fresh sign-in opens.
// Unknown roles land on the technician view, the least privileged one.
func LandingRoute(role string) string {
	switch role {
	case RoleAdmin:
		return "admin"
	case RoleChefOp:
		return "operator"
	case RoleChefTech:
		return "technician-lead"
	default:
		return "technician"
	}
}
