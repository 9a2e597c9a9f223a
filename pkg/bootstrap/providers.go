package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/types"
	"github.com/fitsiz/miniapp/pkg/webapp"
)

const (
	DefaultHeaderColor       = "#000000"
	DefaultFullscreenVersion = "8.0"
)

// IdentityProvider is one source of the Telegram identity. A provider
// that has nothing to offer returns a nil identity and a nil error.
type IdentityProvider interface {
	Name() string
	Identity(ctx context.Context) (*types.Identity, error)
}

// HostProvider reads the identity from the host runtime after the
// readiness handshake and switches the app to fullscreen, or to the
// expanded view on hosts that are too old for fullscreen.
type HostProvider struct {
	App               webapp.WebApp
	HeaderColor       string
	FullscreenVersion string
}

var _ IdentityProvider = (*HostProvider)(nil)

func (p *HostProvider) Name() string {
	return "host"
}

func (p *HostProvider) Identity(ctx context.Context) (*types.Identity, error) {
	if p.App == nil {
		return nil, nil
	}
	log := zerolog.Ctx(ctx)

	fullscreenVersion := p.FullscreenVersion
	if fullscreenVersion == "" {
		fullscreenVersion = DefaultFullscreenVersion
	}
	headerColor := p.HeaderColor
	if headerColor == "" {
		headerColor = DefaultHeaderColor
	}

	p.App.Ready()
	if p.App.IsVersionAtLeast(fullscreenVersion) {
		p.App.RequestFullscreen()
		p.App.SetHeaderColor(headerColor)
	} else {
		p.App.Expand()
		log.Debug().
			Str("host_version", p.App.Version()).
			Str("fullscreen_version", fullscreenVersion).
			Msg("Host doesn't support fullscreen, expanded instead")
	}

	initData := p.App.InitDataUnsafe()
	log.Debug().Any("init_data", initData).Msg("Read host init data")
	if initData == nil || initData.User == nil {
		return nil, nil
	}
	return initData.User, nil
}

// FragmentProvider reads the identity from the tgWebAppData parameter of
// the page URL fragment, used when the page is opened outside the host.
type FragmentProvider struct {
	Fragment string
}

var _ IdentityProvider = (*FragmentProvider)(nil)

func (p *FragmentProvider) Name() string {
	return "fragment"
}

func (p *FragmentProvider) Identity(ctx context.Context) (*types.Identity, error) {
	initData, err := webapp.ParseFragment(p.Fragment)
	if errors.Is(err, webapp.ErrNoInitData) {
		zerolog.Ctx(ctx).Debug().Msg("No init data in URL fragment")
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if initData.User != nil {
		zerolog.Ctx(ctx).Debug().Any("user", initData.User).Msg("Extracted user from URL fragment")
	}
	return initData.User, nil
}

// FallbackProvider always yields a fixed identity. It exists so the app
// can be opened in a plain browser during development.
type FallbackProvider struct {
	Fallback *types.Identity
}

var _ IdentityProvider = (*FallbackProvider)(nil)

func (p *FallbackProvider) Name() string {
	return "fallback"
}

func (p *FallbackProvider) Identity(ctx context.Context) (*types.Identity, error) {
	if p.Fallback == nil {
		return nil, nil
	}
	zerolog.Ctx(ctx).Debug().Msg("Using built-in fallback identity")
	identity := *p.Fallback
	return &identity, nil
}

func DefaultFallbackIdentity() *types.Identity {
	return &types.Identity{
		ID:        "5969166369",
		FirstName: "Денис",
		Username:  "denis_nickname",
		PhotoURL:  "https://t.me/i/userpic/320/ArOpXH92rj_EpmqJ6uB_-vEugbCinOd3VU8tLlkf5DSxI8r40DuBCgyZH4VxImpQ.svg",
	}
}

func callProvider(ctx context.Context, provider IdentityProvider) (identity *types.Identity, err error) {
	defer func() {
		if p := recover(); p != nil {
			identity, err = nil, fmt.Errorf("identity provider %s panicked: %v", provider.Name(), p)
		}
	}()
	identity, err = provider.Identity(ctx)
	if err == nil && identity != nil && identity.ID == "" {
		return nil, fmt.Errorf("identity from %s has no id", provider.Name())
	}
	return identity, err
}
