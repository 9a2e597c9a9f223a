package event

import (
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

// IdentityResolved is sent when a provider yields the session identity.
type IdentityResolved struct {
	Source   string
	Identity *types.Identity
}

// ProviderFailed is sent when an identity provider errors out. The
// bootstrap moves on to the next provider.
type ProviderFailed struct {
	Provider string
	Err      error
}

// RegistrationFailed carries a nil Err when the service answered without
// a record.
type RegistrationFailed struct {
	TelegramID string
	Err        error
}

type LookupFailed struct {
	TelegramID string
	Err        error
}

// Recovered is sent when an unexpected failure during login was replaced
// by the raw identity.
type Recovered struct {
	Err error
}

type Routed struct {
	Route    string
	User     *types.User
	Degraded bool
}
