package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fitsiz/miniapp/pkg/bootstrap"
	"github.com/fitsiz/miniapp/pkg/boundary"
	"github.com/fitsiz/miniapp/pkg/config"
	"github.com/fitsiz/miniapp/pkg/fitsizgo"
	"github.com/fitsiz/miniapp/pkg/webapp"
)

const usage = `Usage: fitsiz-miniapp [flags] [command] [args]

Commands:
  login                  log in and print the session user (default)
  masks                  list all masks
  mask <id>              show mask details
  instructions <id>      show mask instructions
  catalog <name>         list masks of a catalog section
  videos                 list videos
  my-masks               list the masks of the logged in user
  add-mask <id>          add a mask to the logged in user
  profile [profile flags] update the profile of the logged in user

Flags:
`

type options struct {
	ConfigPath   string
	Fragment     string
	HostFragment string
	HostVersion  string
	TelegramID   string
	ShowVersion  bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.ConfigPath, "config", "", "path to config file, the built-in defaults are used when empty")
	flag.StringVar(&opts.ConfigPath, "c", "", "path to config file (shorthand)")
	flag.StringVar(&opts.Fragment, "fragment", "", "page URL fragment carrying tgWebAppData")
	flag.StringVar(&opts.HostFragment, "host-fragment", "", "simulate a Telegram host whose init data comes from this fragment")
	flag.StringVar(&opts.HostVersion, "host-version", "8.0", "version of the simulated Telegram host")
	flag.StringVar(&opts.TelegramID, "id", "", "Telegram ID for user commands, skips the login")
	flag.BoolVar(&opts.ShowVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	if opts.ShowVersion {
		fmt.Printf("fitsiz-miniapp %s\n", fitsizgo.Version)
		return
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := cfg.Logger()

	client := fitsizgo.NewClient(cfg.ClientOpts(), log.With().Str("component", "fitsiz").Logger())
	if cfg.API.Proxy != "" {
		if err = client.SetProxy(cfg.API.Proxy); err != nil {
			log.Fatal().Err(err).Msg("Failed to set proxy")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = log.WithContext(ctx)

	cli := &app{
		opts:   opts,
		cfg:    cfg,
		log:    log,
		client: client,
		soft:   client.Soft(cfg.IsDevelopment()),
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	command, args := "login", flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	code := cli.run(ctx, boundary.New(log, !cfg.IsDevelopment()), command, args)
	if code == exitUsage {
		flag.Usage()
	}
	if code != exitOK {
		cancel()
		os.Exit(code)
	}
}

// providers builds the identity sources in priority order.
func (a *app) providers() ([]bootstrap.IdentityProvider, error) {
	var providers []bootstrap.IdentityProvider
	if a.opts.HostFragment != "" {
		host, err := webapp.NewStaticFromFragment(a.opts.HostVersion, a.opts.HostFragment)
		if err != nil {
			return nil, fmt.Errorf("failed to parse host init data: %w", err)
		}
		providers = append(providers, &bootstrap.HostProvider{
			App:               host,
			HeaderColor:       a.cfg.WebApp.HeaderColor,
			FullscreenVersion: a.cfg.WebApp.FullscreenVersion,
		})
	}
	providers = append(providers, &bootstrap.FragmentProvider{Fragment: a.opts.Fragment})
	if a.cfg.Bootstrap.AllowFallback {
		providers = append(providers, &bootstrap.FallbackProvider{Fallback: bootstrap.DefaultFallbackIdentity()})
	}
	return providers, nil
}

func (a *app) login(ctx context.Context) (*bootstrap.Result, error) {
	providers, err := a.providers()
	if err != nil {
		return nil, err
	}
	navigator := bootstrap.NavigatorFunc(func(route bootstrap.Route) {
		a.log.Info().Str("route", string(route)).Msg("Navigating")
	})
	b := bootstrap.New(a.client, navigator, a.log, providers...)
	if a.cfg.IsDevelopment() {
		b.EventHandler = func(evt any) {
			a.log.Debug().Type("event_type", evt).Any("event", evt).Msg("Bootstrap event")
		}
	}
	return b.Run(ctx)
}

// telegramID returns the -id flag or logs in to find the session user.
func (a *app) telegramID(ctx context.Context) (string, error) {
	if a.opts.TelegramID != "" {
		return a.opts.TelegramID, nil
	}
	result, err := a.login(ctx)
	if err != nil {
		return "", err
	}
	return result.Identity.ID.String(), nil
}
