package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

// AnonymousToken is sent when no token is configured. The REST client
// always authenticates, and the search service ignores unknown tokens.
const AnonymousToken = "anonymous"

type Options struct {
	BaseURL        string
	Token          string
	UserAgent      string
	Timeout        time.Duration // 0 means no timeout
	LabelsCacheTTL time.Duration // 0 disables the labels cache
	CacheDir       string
	TraceHTTP      bool // dump request/response exchanges to the logger at debug level
	Logger         *zap.Logger

	// Transport overrides the base round tripper; used by tests.
	Transport http.RoundTripper
}

type Client struct {
	rest   *ghAPI.RESTClient
	labels *ghAPI.RESTClient // cached client, only for the static labels endpoint
	base   *url.URL
	logger *zap.Logger
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", opts.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", opts.BaseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	token := opts.Token
	if token == "" {
		token = AnonymousToken
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "casesearch"
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	transport = newRequestIDTransport(transport, logger)

	clientOpts := ghAPI.ClientOptions{
		Host:         base.Hostname(),
		AuthToken:    token,
		Transport:    transport,
		Timeout:      opts.Timeout,
		LogIgnoreEnv: true,
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": ua,
		},
	}
	if opts.TraceHTTP {
		clientOpts.Log = &zapio.Writer{Log: logger.Named("http"), Level: zapcore.DebugLevel}
		clientOpts.LogVerboseHTTP = true
	}

	rest, err := ghAPI.NewRESTClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create search API client: %w", err)
	}

	labels := rest
	if opts.LabelsCacheTTL > 0 {
		cachedOpts := clientOpts
		cachedOpts.EnableCache = true
		cachedOpts.CacheTTL = opts.LabelsCacheTTL
		cachedOpts.CacheDir = opts.CacheDir
		labels, err = ghAPI.NewRESTClient(cachedOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to create cached labels client: %w", err)
		}
	}

	return &Client{rest: rest, labels: labels, base: base, logger: logger}, nil
}

// Host returns the host of the search service, for display.
func (c *Client) Host() string {
	if c.base == nil {
		return ""
	}
	return c.base.Host
}

func (c *Client) apiURL(path string) string {
	return c.base.String() + "/api/" + strings.TrimLeft(path, "/")
}

func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.rest.DoWithContext(ctx, http.MethodGet, c.apiURL(path), nil, result)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.rest.DoWithContext(ctx, http.MethodPost, c.apiURL(path), reader, result)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}) error {
	reader, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.rest.DoWithContext(ctx, http.MethodPut, c.apiURL(path), reader, result)
}

func jsonBody(body interface{}) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(data), nil
}
