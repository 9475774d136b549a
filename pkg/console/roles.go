package console

import "github.com/surtekbb/pileta-system/internal/core/domain"

// ViewVariant identifies the console surface presented after login.
type ViewVariant int

const (
	// ViewAdministrative is the shared coordinador/secretaria surface.
	ViewAdministrative ViewVariant = iota
	// ViewInstructor is the profesor surface.
	ViewInstructor
	// ViewClient is the cliente self-service surface.
	ViewClient
	// ViewUnrecognized is the terminal surface for a role this build does
	// not know. It is a deliberate dead end, never a fallback to a working
	// view.
	ViewUnrecognized
)

func (v ViewVariant) String() string {
	switch v {
	case ViewAdministrative:
		return "administrative"
	case ViewInstructor:
		return "instructor"
	case ViewClient:
		return "client"
	default:
		return "unrecognized"
	}
}

// DispatchView maps a role to the surface it lands on. The function is total:
// every input yields a variant, and anything outside the closed enumeration
// lands on ViewUnrecognized.
func DispatchView(role domain.Role) ViewVariant {
	switch role {
	case domain.RoleCoordinator, domain.RoleSecretary:
		return ViewAdministrative
	case domain.RoleInstructor:
		return ViewInstructor
	case domain.RoleClient:
		return ViewClient
	default:
		return ViewUnrecognized
	}
}
