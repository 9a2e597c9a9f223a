package fitsizgo

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/proxy"

	"github.com/fitsiz/miniapp/pkg/fitsizgo/routing"
)

const DefaultTimeout = 60 * time.Second

type ClientOpts struct {
	// BaseURL of the fitsiz service, routing.DefaultBaseURL when empty.
	BaseURL string
	// Timeout for a whole request. Zero disables it, the context still applies.
	Timeout   time.Duration
	UserAgent string
	// HTTPClient replaces the default client, mostly for tests.
	HTTPClient *http.Client
}

type Client struct {
	Logger     zerolog.Logger
	baseURL    string
	userAgent  string
	http       *http.Client
	httpProxy  func(*http.Request) (*url.URL, error)
	socksProxy proxy.Dialer
}

func NewClient(opts *ClientOpts, logger zerolog.Logger) *Client {
	if opts == nil {
		opts = &ClientOpts{}
	}
	cli := Client{
		Logger:    logger,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
	}
	if cli.baseURL == "" {
		cli.baseURL = routing.DefaultBaseURL
	}
	if cli.http == nil {
		cli.http = &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 40 * time.Second,
				ForceAttemptHTTP2:     true,
			},
			Timeout: opts.Timeout,
		}
	}
	return &cli
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SetProxy(proxyAddr string) error {
	proxyParsed, err := url.Parse(proxyAddr)
	if err != nil {
		return err
	}
	transport, ok := c.http.Transport.(*http.Transport)
	if !ok {
		return fmt.Errorf("can't set proxy on custom transport %T", c.http.Transport)
	}

	switch proxyParsed.Scheme {
	case "http", "https":
		c.httpProxy = http.ProxyURL(proxyParsed)
		transport.Proxy = c.httpProxy
	case "socks5":
		c.socksProxy, err = proxy.FromURL(proxyParsed, &net.Dialer{Timeout: 20 * time.Second})
		if err != nil {
			return err
		}
		transport.DialContext = func(ctx context.Context, network string, addr string) (net.Conn, error) {
			return c.socksProxy.Dial(network, addr)
		}
		contextDialer, ok := c.socksProxy.(proxy.ContextDialer)
		if ok {
			transport.DialContext = contextDialer.DialContext
		}
	default:
		return fmt.Errorf("unsupported proxy scheme %q", proxyParsed.Scheme)
	}

	c.Logger.Debug().
		Str("scheme", proxyParsed.Scheme).
		Str("host", proxyParsed.Host).
		Msg("Using proxy")
	return nil
}
