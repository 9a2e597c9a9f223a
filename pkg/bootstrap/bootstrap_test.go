package bootstrap_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsiz/miniapp/pkg/bootstrap"
	"github.com/fitsiz/miniapp/pkg/bootstrap/event"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
	"github.com/fitsiz/miniapp/pkg/webapp"
)

type fakeUsers struct {
	lock          sync.Mutex
	register      func(telegramID, firstName string) (*types.User, error)
	get           func(telegramID string) (*types.User, error)
	registerCalls [][2]string
	getCalls      []string
}

func (f *fakeUsers) RegisterUser(_ context.Context, telegramID string, firstName string) (*types.User, error) {
	f.lock.Lock()
	f.registerCalls = append(f.registerCalls, [2]string{telegramID, firstName})
	f.lock.Unlock()
	if f.register == nil {
		return nil, nil
	}
	return f.register(telegramID, firstName)
}

func (f *fakeUsers) GetUser(_ context.Context, telegramID string) (*types.User, error) {
	f.lock.Lock()
	f.getCalls = append(f.getCalls, telegramID)
	f.lock.Unlock()
	if f.get == nil {
		return nil, nil
	}
	return f.get(telegramID)
}

type recordingNavigator struct {
	routes []bootstrap.Route
}

func (n *recordingNavigator) Navigate(route bootstrap.Route) {
	n.routes = append(n.routes, route)
}

func identityFrom(t *testing.T, data string) *types.Identity {
	t.Helper()
	identity := &types.Identity{}
	require.NoError(t, json.Unmarshal([]byte(data), identity))
	return identity
}

func userFrom(t *testing.T, data string) *types.User {
	t.Helper()
	user := &types.User{}
	require.NoError(t, json.Unmarshal([]byte(data), user))
	return user
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func fragmentWithUser(user string) string {
	inner := url.Values{}
	inner.Set("user", user)
	inner.Set("auth_date", "1717000000")
	outer := url.Values{}
	outer.Set(webapp.FragmentParam, inner.Encode())
	return "#" + outer.Encode()
}

func newBootstrapper(users bootstrap.UserService, providers ...bootstrap.IdentityProvider) (*bootstrap.Bootstrapper, *recordingNavigator, *[]any) {
	nav := &recordingNavigator{}
	b := bootstrap.New(users, nav, zerolog.Nop(), providers...)
	var events []any
	b.EventHandler = func(evt any) {
		events = append(events, evt)
	}
	return b, nav, &events
}

func TestRegisteredUserWithoutQuizGoesToQuiz(t *testing.T) {
	users := &fakeUsers{
		register: func(string, string) (*types.User, error) {
			return userFrom(t, `{"id": "123", "quiz": false}`), nil
		},
	}
	identity := identityFrom(t, `{"id": "123", "first_name": "Ann"}`)
	b, nav, _ := newBootstrapper(users, &bootstrap.FallbackProvider{Fallback: identity})

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id": "123", "first_name": "Ann", "quiz": false}`, marshal(t, result.User))
	assert.Equal(t, bootstrap.RouteQuiz, result.Route)
	assert.True(t, result.Registered)
	assert.False(t, result.Degraded)
	assert.Equal(t, [][2]string{{"123", "Ann"}}, users.registerCalls)
	assert.Empty(t, users.getCalls)
	assert.Equal(t, []bootstrap.Route{bootstrap.RouteQuiz}, nav.routes)
	assert.Equal(t, bootstrap.StateRouted, b.State())
	assert.Same(t, result.User, b.Session.User())
}

func TestRegistrationFailureFallsBackToLookup(t *testing.T) {
	users := &fakeUsers{
		register: func(string, string) (*types.User, error) {
			return nil, nil
		},
		get: func(telegramID string) (*types.User, error) {
			return userFrom(t, `{"id": "123", "quiz": true}`), nil
		},
	}
	identity := identityFrom(t, `{"id": "123", "first_name": "Ann"}`)
	b, nav, events := newBootstrapper(users, &bootstrap.FallbackProvider{Fallback: identity})

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.User.OnboardingComplete())
	assert.Equal(t, "Ann", result.User.FirstName)
	assert.Equal(t, bootstrap.RouteWelcome, result.Route)
	assert.True(t, result.LookedUp)
	assert.Equal(t, []string{"123"}, users.getCalls)
	assert.Equal(t, []bootstrap.Route{bootstrap.RouteWelcome}, nav.routes)

	require.Len(t, *events, 3)
	assert.IsType(t, event.IdentityResolved{}, (*events)[0])
	assert.Equal(t, event.RegistrationFailed{TelegramID: "123"}, (*events)[1])
	assert.Equal(t, "/welcome", (*events)[2].(event.Routed).Route)
}

func TestRegistrationAndLookupFailureUsesIdentity(t *testing.T) {
	registerErr := errors.New("register: status 500")
	users := &fakeUsers{
		register: func(string, string) (*types.User, error) {
			return nil, registerErr
		},
		get: func(string) (*types.User, error) {
			return nil, nil
		},
	}
	identity := identityFrom(t, `{"id": 123, "first_name": "Ann", "username": "ann", "photo_url": "https://t.me/i/userpic/1.svg"}`)
	b, nav, events := newBootstrapper(users, &bootstrap.FallbackProvider{Fallback: identity})

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, marshal(t, identity), marshal(t, result.User))
	assert.Equal(t, bootstrap.RouteQuiz, result.Route)
	assert.True(t, result.Degraded)
	assert.Equal(t, []bootstrap.Route{bootstrap.RouteQuiz}, nav.routes)
	assert.Contains(t, *events, event.RegistrationFailed{TelegramID: "123", Err: registerErr})
	assert.Contains(t, *events, event.LookupFailed{TelegramID: "123"})
}

func TestUnexpectedFailureDegradesToIdentity(t *testing.T) {
	users := &fakeUsers{
		register: func(string, string) (*types.User, error) {
			panic("nil map write")
		},
	}
	identity := identityFrom(t, `{"id": "9", "first_name": "Ann"}`)
	b, nav, events := newBootstrapper(users, &bootstrap.FallbackProvider{Fallback: identity})

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id": "9", "first_name": "Ann"}`, marshal(t, result.User))
	assert.Equal(t, bootstrap.RouteQuiz, result.Route)
	assert.True(t, result.Degraded)
	assert.Equal(t, []bootstrap.Route{bootstrap.RouteQuiz}, nav.routes)

	var recovered []event.Recovered
	for _, evt := range *events {
		if r, ok := evt.(event.Recovered); ok {
			recovered = append(recovered, r)
		}
	}
	require.Len(t, recovered, 1)
	assert.ErrorContains(t, recovered[0].Err, "nil map write")
}

func TestMismatchedServerFieldsKeepRouting(t *testing.T) {
	const record = `{"id": 17, "telegramId": "123", "quiz": true, "phone": 79990000000}`
	for _, users := range []*fakeUsers{
		{register: func(string, string) (*types.User, error) { return userFrom(t, record), nil }},
		{get: func(string) (*types.User, error) { return userFrom(t, record), nil }},
	} {
		identity := identityFrom(t, `{"id": "123", "first_name": "Ann", "phone": "+7000"}`)
		b, nav, _ := newBootstrapper(users, &bootstrap.FallbackProvider{Fallback: identity})

		result, err := b.Run(context.Background())
		require.NoError(t, err)

		assert.False(t, result.Degraded)
		assert.Equal(t, bootstrap.RouteWelcome, result.Route)
		assert.Equal(t, []bootstrap.Route{bootstrap.RouteWelcome}, nav.routes)
		assert.Equal(t, "Ann", result.User.FirstName)
		assert.Nil(t, result.User.Phone)

		var phone int64
		ok, err := result.User.Field("phone", &phone)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(79990000000), phone)
	}
}

func TestHostIdentityWinsOverFragment(t *testing.T) {
	host := &webapp.Static{
		HostVersion: "8.0",
		InitData:    &webapp.InitData{User: &types.Identity{ID: "1", FirstName: "Host"}},
	}
	users := &fakeUsers{
		register: func(telegramID, _ string) (*types.User, error) {
			return &types.User{ID: types.ID(telegramID)}, nil
		},
	}
	b, _, _ := newBootstrapper(users,
		&bootstrap.HostProvider{App: host},
		&bootstrap.FragmentProvider{Fragment: fragmentWithUser(`{"id": 2, "first_name": "Fragment"}`)},
		&bootstrap.FallbackProvider{Fallback: bootstrap.DefaultFallbackIdentity()},
	)

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "host", result.Source)
	assert.Equal(t, "Host", result.User.FirstName)
	assert.Equal(t, [][2]string{{"1", "Host"}}, users.registerCalls)
	assert.Equal(t, []string{"ready", "requestFullscreen", "setHeaderColor:#000000"}, host.Calls())
}

func TestOldHostExpandsAndFallsThroughToFragment(t *testing.T) {
	host := &webapp.Static{HostVersion: "7.10", InitData: &webapp.InitData{}}
	users := &fakeUsers{}
	b, _, _ := newBootstrapper(users,
		&bootstrap.HostProvider{App: host, HeaderColor: "#101010"},
		&bootstrap.FragmentProvider{Fragment: fragmentWithUser(`{"id": 2, "username": "frag"}`)},
	)

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ready", "expand"}, host.Calls())
	assert.Equal(t, "fragment", result.Source)
	assert.Equal(t, [][2]string{{"2", "frag"}}, users.registerCalls)
}

func TestMalformedFragmentFallsThroughToFallback(t *testing.T) {
	users := &fakeUsers{}
	b, _, events := newBootstrapper(users,
		&bootstrap.HostProvider{},
		&bootstrap.FragmentProvider{Fragment: fragmentWithUser(`{"id": 2, "first_name": `)},
		&bootstrap.FallbackProvider{Fallback: bootstrap.DefaultFallbackIdentity()},
	)

	result, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "fallback", result.Source)
	assert.Equal(t, types.ID("5969166369"), result.Identity.ID)
	assert.Equal(t, [][2]string{{"5969166369", "Денис"}}, users.registerCalls)

	failed, ok := (*events)[0].(event.ProviderFailed)
	require.True(t, ok)
	assert.Equal(t, "fragment", failed.Provider)
	assert.Error(t, failed.Err)
}

type panickingProvider struct{}

func (panickingProvider) Name() string {
	return "broken"
}

func (panickingProvider) Identity(context.Context) (*types.Identity, error) {
	panic("host object went away")
}

type emptyIDProvider struct{}

func (emptyIDProvider) Name() string {
	return "empty"
}

func (emptyIDProvider) Identity(context.Context) (*types.Identity, error) {
	return &types.Identity{FirstName: "Nobody"}, nil
}

func TestBrokenProvidersAreSkipped(t *testing.T) {
	users := &fakeUsers{
		register: func(telegramID, _ string) (*types.User, error) {
			return &types.User{ID: types.ID(telegramID)}, nil
		},
	}
	b, _, events := newBootstrapper(users,
		panickingProvider{},
		emptyIDProvider{},
		&bootstrap.FallbackProvider{Fallback: &types.Identity{ID: "3"}},
	)

	result, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fallback", result.Source)
	require.Len(t, *events, 4)
	assert.Equal(t, "broken", (*events)[0].(event.ProviderFailed).Provider)
	assert.Equal(t, "empty", (*events)[1].(event.ProviderFailed).Provider)
}

func TestNoIdentity(t *testing.T) {
	users := &fakeUsers{}
	b, nav, _ := newBootstrapper(users,
		&bootstrap.HostProvider{App: &webapp.Static{HostVersion: "8.0"}},
		&bootstrap.FragmentProvider{Fragment: "#tgWebAppVersion=8.0"},
		&bootstrap.FallbackProvider{},
	)

	result, err := b.Run(context.Background())
	assert.ErrorIs(t, err, bootstrap.ErrNoIdentity)
	assert.Nil(t, result)
	assert.Equal(t, bootstrap.StateNoIdentity, b.State())
	assert.Empty(t, nav.routes)
	assert.Empty(t, users.registerCalls)
	assert.Nil(t, b.Session.User())
}

func TestRunsOnlyOnce(t *testing.T) {
	b, nav, _ := newBootstrapper(&fakeUsers{}, &bootstrap.FallbackProvider{Fallback: &types.Identity{ID: "3"}})

	_, err := b.Run(context.Background())
	require.NoError(t, err)
	_, err = b.Run(context.Background())
	assert.ErrorIs(t, err, bootstrap.ErrAlreadyRan)
	assert.Len(t, nav.routes, 1)
}

func TestDisplayNameSentOnRegistration(t *testing.T) {
	for _, tc := range []struct {
		identity *types.Identity
		expected string
	}{
		{&types.Identity{ID: "1", FirstName: "Ann", Username: "ann"}, "Ann"},
		{&types.Identity{ID: "1", Username: "ann"}, "ann"},
		{&types.Identity{ID: "1"}, "User"},
	} {
		users := &fakeUsers{}
		b, _, _ := newBootstrapper(users, &bootstrap.FallbackProvider{Fallback: tc.identity})
		_, err := b.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tc.expected, users.registerCalls[0][1])
	}
}

func TestSessionIsWrittenOnce(t *testing.T) {
	session := &bootstrap.Session{}
	first := &types.User{ID: "1"}
	require.NoError(t, session.SetUser(first))
	assert.ErrorIs(t, session.SetUser(&types.User{ID: "2"}), bootstrap.ErrSessionSet)
	assert.Same(t, first, session.User())
}

func TestRouteFor(t *testing.T) {
	yes, no := true, false
	assert.Equal(t, bootstrap.RouteWelcome, bootstrap.RouteFor(&types.User{Quiz: &yes}))
	assert.Equal(t, bootstrap.RouteQuiz, bootstrap.RouteFor(&types.User{Quiz: &no}))
	assert.Equal(t, bootstrap.RouteQuiz, bootstrap.RouteFor(&types.User{}))
	assert.Equal(t, bootstrap.RouteQuiz, bootstrap.RouteFor(nil))
}

func TestNavigatorFunc(t *testing.T) {
	var got bootstrap.Route
	bootstrap.NavigatorFunc(func(route bootstrap.Route) { got = route }).Navigate(bootstrap.RouteWelcome)
	assert.Equal(t, bootstrap.RouteWelcome, got)
	assert.Equal(t, "REGISTERED", bootstrap.StateRegistered.String())
}
