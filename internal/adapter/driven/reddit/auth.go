package reddit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	rd "github.com/vartanbeno/go-reddit/v2/reddit"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ForumAuthenticator = (*Authenticator)(nil)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "socialpanel/1.0"

// Authenticator builds password-grant Clients. The grant itself is performed
// lazily by the first API call, so bad credentials surface there.
type Authenticator struct {
	baseURL  string
	tokenURL string
	newHTTP  func() *http.Client
	logger   *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithEndpoints overrides the API and token URLs. Intended for tests.
func WithEndpoints(baseURL, tokenURL string) Option {
	return func(a *Authenticator) {
		a.baseURL = baseURL
		a.tokenURL = tokenURL
	}
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(logger *slog.Logger, opts ...Option) *Authenticator {
	a := &Authenticator{
		// go-reddit wraps the client's transport, so every Client gets its own.
		newHTTP: func() *http.Client {
			return &http.Client{
				Timeout:   30 * time.Second,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			}
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate returns a Client bound to creds.
func (a *Authenticator) Authenticate(_ context.Context, creds model.ForumCredentials) (driven.ForumPlatform, error) {
	if err := validate(creds); err != nil {
		return nil, err
	}

	userAgent := creds.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	opts := []rd.Opt{
		rd.WithHTTPClient(a.newHTTP()),
		rd.WithUserAgent(userAgent),
	}
	if a.baseURL != "" {
		opts = append(opts, rd.WithBaseURL(a.baseURL))
	}
	if a.tokenURL != "" {
		opts = append(opts, rd.WithTokenURL(a.tokenURL))
	}

	client, err := rd.NewClient(rd.Credentials{
		ID:       creds.ClientID,
		Secret:   creds.ClientSecret,
		Username: creds.Username,
		Password: creds.Password,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating reddit client: %w", err)
	}

	a.logger.Info("reddit client created", "username", creds.Username)
	return &Client{rd: client}, nil
}

func validate(creds model.ForumCredentials) error {
	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if creds.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if creds.Username == "" {
		missing = append(missing, "REDDIT_USERNAME")
	}
	if creds.Password == "" {
		missing = append(missing, "REDDIT_PASSWORD")
	}
	if len(missing) > 0 {
		return errors.New("missing reddit credentials: " + strings.Join(missing, ", "))
	}
	return nil
}
