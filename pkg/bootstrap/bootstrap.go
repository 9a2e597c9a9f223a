// Package bootstrap runs the Mini App login: it picks the Telegram
// identity from the first provider that has one, exchanges it for a
// fitsiz user and routes to the welcome page or the onboarding quiz.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fitsiz/miniapp/pkg/bootstrap/event"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
)

var (
	ErrNoIdentity = errors.New("no identity provider yielded an identity")
	ErrAlreadyRan = errors.New("bootstrap already ran")
)

// UserService is the part of the fitsiz API the login needs.
// *fitsizgo.Client implements it.
type UserService interface {
	RegisterUser(ctx context.Context, telegramID string, firstName string) (*types.User, error)
	GetUser(ctx context.Context, telegramID string) (*types.User, error)
}

type EventHandler func(evt any)

type Result struct {
	Identity *types.Identity
	User     *types.User
	Route    Route
	Source   string

	Registered bool
	LookedUp   bool
	// Degraded is set when the raw identity is used as the user.
	Degraded bool
}

type Bootstrapper struct {
	Providers    []IdentityProvider
	Users        UserService
	Navigator    Navigator
	Session      *Session
	EventHandler EventHandler

	log   zerolog.Logger
	lock  sync.Mutex
	state State
	ran   bool
}

func New(users UserService, navigator Navigator, log zerolog.Logger, providers ...IdentityProvider) *Bootstrapper {
	return &Bootstrapper{
		Providers: providers,
		Users:     users,
		Navigator: navigator,
		Session:   &Session{},
		log:       log.With().Str("component", "bootstrap").Logger(),
	}
}

func (b *Bootstrapper) State() State {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.state
}

func (b *Bootstrapper) setState(state State) {
	b.lock.Lock()
	prev := b.state
	b.state = state
	b.lock.Unlock()
	b.log.Debug().Stringer("from", prev).Stringer("to", state).Msg("Bootstrap state changed")
}

func (b *Bootstrapper) emit(evt any) {
	if b.EventHandler != nil {
		b.EventHandler(evt)
	}
}

// Run performs the login once. It only fails when no identity is found;
// every later failure degrades to the raw identity and the quiz route.
func (b *Bootstrapper) Run(ctx context.Context) (*Result, error) {
	b.lock.Lock()
	if b.ran {
		b.lock.Unlock()
		return nil, ErrAlreadyRan
	}
	b.ran = true
	b.lock.Unlock()

	ctx = b.log.WithContext(ctx)

	identity, source := b.acquireIdentity(ctx)
	if identity == nil {
		b.log.Warn().Int("providers", len(b.Providers)).Msg("No identity found, staying on login page")
		return nil, ErrNoIdentity
	}
	b.setState(StateIdentityFound)
	b.log.Info().
		Str("source", source).
		Str("telegram_id", identity.ID.String()).
		Msg("Identity found")
	b.emit(event.IdentityResolved{Source: source, Identity: identity})

	result := b.login(ctx, identity)
	result.Source = source
	b.route(result)
	return result, nil
}

func (b *Bootstrapper) acquireIdentity(ctx context.Context) (*types.Identity, string) {
	for _, provider := range b.Providers {
		identity, err := callProvider(ctx, provider)
		if err != nil {
			b.log.Warn().Err(err).Str("provider", provider.Name()).Msg("Identity provider failed")
			b.emit(event.ProviderFailed{Provider: provider.Name(), Err: err})
			continue
		}
		if identity != nil {
			return identity, provider.Name()
		}
		b.log.Debug().Str("provider", provider.Name()).Msg("Identity provider had no identity")
	}
	return nil, ""
}

func (b *Bootstrapper) login(ctx context.Context, identity *types.Identity) (result *Result) {
	defer func() {
		if p := recover(); p != nil {
			result = b.degrade(identity, fmt.Errorf("panic during login: %v", p))
		}
	}()
	result, err := b.exchange(ctx, identity)
	if err != nil {
		return b.degrade(identity, err)
	}
	return result
}

// exchange registers the identity, falling back to looking the user up
// and then to the raw identity when the service has no record for it.
func (b *Bootstrapper) exchange(ctx context.Context, identity *types.Identity) (*Result, error) {
	telegramID := identity.ID.String()
	log := b.log.With().Str("telegram_id", telegramID).Logger()

	registered, err := b.Users.RegisterUser(ctx, telegramID, identity.DisplayName())
	if err == nil && registered != nil {
		b.setState(StateRegistered)
		merged, err := types.MergeUser(identity, registered)
		if err != nil {
			return nil, fmt.Errorf("failed to merge registered user: %w", err)
		}
		return &Result{Identity: identity, User: merged, Route: RouteFor(registered), Registered: true}, nil
	}
	log.Debug().Err(err).Msg("Registration returned no user, looking up existing user")
	b.emit(event.RegistrationFailed{TelegramID: telegramID, Err: err})

	existing, err := b.Users.GetUser(ctx, telegramID)
	if err == nil && existing != nil {
		b.setState(StateRegistered)
		merged, err := types.MergeUser(identity, existing)
		if err != nil {
			return nil, fmt.Errorf("failed to merge existing user: %w", err)
		}
		return &Result{Identity: identity, User: merged, Route: RouteFor(existing), LookedUp: true}, nil
	}
	log.Warn().Err(err).Msg("Couldn't register or find user, continuing with Telegram identity")
	b.emit(event.LookupFailed{TelegramID: telegramID, Err: err})

	return &Result{Identity: identity, User: identityUser(identity), Route: RouteQuiz, Degraded: true}, nil
}

func (b *Bootstrapper) degrade(identity *types.Identity, err error) *Result {
	b.log.Error().Err(err).Msg("Login failed unexpectedly, continuing with Telegram identity")
	b.emit(event.Recovered{Err: err})
	return &Result{Identity: identity, User: identityUser(identity), Route: RouteQuiz, Degraded: true}
}

func (b *Bootstrapper) route(result *Result) {
	if b.Session != nil {
		if err := b.Session.SetUser(result.User); err != nil {
			b.log.Warn().Err(err).Msg("Didn't overwrite session user")
		}
	}
	b.setState(StateRouted)
	if b.Navigator != nil {
		b.Navigator.Navigate(result.Route)
	}
	b.log.Info().
		Str("route", string(result.Route)).
		Bool("degraded", result.Degraded).
		Msg("Routed after login")
	b.emit(event.Routed{Route: string(result.Route), User: result.User, Degraded: result.Degraded})
}

// identityUser converts the identity into a user without any server data.
func identityUser(identity *types.Identity) *types.User {
	user, err := types.MergeUser(identity, nil)
	if err == nil {
		return user
	}
	return &types.User{
		ID:        identity.ID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Username:  identity.Username,
		PhotoURL:  identity.PhotoURL,
	}
}
