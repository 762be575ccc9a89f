package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	yt "google.golang.org/api/youtube/v3"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.VideoAuthenticator = (*Authenticator)(nil)

// Scopes requested from the video platform.
var Scopes = []string{yt.YoutubeForceSslScope}

const serviceName = string(model.PlatformYouTube)

// Authenticator builds authenticated Clients from client-secret documents.
type Authenticator struct {
	flow     AuthorizationFlow
	tokens   driven.CredentialStore // Token cache; nil disables caching.
	base     *http.Client
	endpoint string
	logger   *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithTokenCache saves tokens obtained by the flow in store and reuses them on
// later connects. A cached token the platform rejects is evicted.
func WithTokenCache(store driven.CredentialStore) Option {
	return func(a *Authenticator) { a.tokens = store }
}

// WithAPIEndpoint overrides the API base URL. Intended for tests.
func WithAPIEndpoint(baseURL string) Option {
	return func(a *Authenticator) { a.endpoint = baseURL }
}

// WithBaseHTTPClient replaces the client used beneath the OAuth transport.
func WithBaseHTTPClient(c *http.Client) Option {
	return func(a *Authenticator) { a.base = c }
}

// NewAuthenticator creates an Authenticator that obtains tokens through flow.
func NewAuthenticator(flow AuthorizationFlow, logger *slog.Logger, opts ...Option) *Authenticator {
	a := &Authenticator{
		flow:   flow,
		base:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate parses the client-secret document, obtains a token and
// returns a Client bound to it.
func (a *Authenticator) Authenticate(ctx context.Context, creds model.VideoCredentials) (driven.VideoPlatform, error) {
	doc, err := clientSecretDocument(creds)
	if err != nil {
		return nil, err
	}

	oauthCfg, err := google.ConfigFromJSON(doc, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secret: %w", err)
	}

	tok, err := a.token(ctx, oauthCfg, creds)
	if err != nil {
		return nil, err
	}

	// Token refreshes happen long after the connect request has finished.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, a.base)
	httpClient := oauthCfg.Client(tokenCtx, tok)

	var client *Client
	if a.endpoint != "" {
		client, err = NewClientWithHTTPClient(ctx, httpClient, a.endpoint)
	} else {
		client, err = NewClient(ctx, httpClient)
	}
	if err != nil {
		return nil, err
	}
	if a.tokens != nil {
		client.onUnauthorized = func() { a.evictToken(context.Background()) }
	}
	return client, nil
}

func (a *Authenticator) token(ctx context.Context, cfg *oauth2.Config, creds model.VideoCredentials) (*oauth2.Token, error) {
	if cached := a.cachedToken(ctx); cached != nil {
		tok, err := a.refresh(ctx, cfg, cached)
		if err == nil {
			a.logger.Info("reusing cached youtube token")
			return tok, nil
		}
		var retrieveErr *oauth2.RetrieveError
		if cached.RefreshToken != "" && !errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("refreshing cached token: %w", err)
		}
		a.logger.Warn("cached youtube token rejected, running authorization flow", "error", err)
		a.evictToken(ctx)
	}

	tok, err := a.flow.Token(ctx, cfg, creds)
	if err != nil {
		return nil, err
	}

	a.saveToken(ctx, tok)
	return tok, nil
}

// refresh returns cached if it is still valid, otherwise exchanges its
// refresh token and caches the result.
func (a *Authenticator) refresh(ctx context.Context, cfg *oauth2.Config, cached *oauth2.Token) (*oauth2.Token, error) {
	refreshCtx := context.WithValue(ctx, oauth2.HTTPClient, a.base)
	tok, err := cfg.TokenSource(refreshCtx, cached).Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != cached.AccessToken {
		a.saveToken(ctx, tok)
	}
	return tok, nil
}

func (a *Authenticator) cachedToken(ctx context.Context) *oauth2.Token {
	if a.tokens == nil {
		return nil
	}

	raw, err := a.tokens.Get(ctx, serviceName, model.CredentialKeyOAuthToken)
	if err != nil {
		if !errors.Is(err, driven.ErrEncryptionKeyNotSet) {
			a.logger.Warn("failed to read cached youtube token", "error", err)
		}
		return nil
	}
	if raw == "" {
		return nil
	}

	tok, err := ParseToken(raw)
	if err != nil {
		a.logger.Warn("discarding unreadable cached youtube token", "error", err)
		return nil
	}
	return tok
}

func (a *Authenticator) saveToken(ctx context.Context, tok *oauth2.Token) {
	if a.tokens == nil {
		return
	}

	data, err := json.Marshal(tok)
	if err != nil {
		a.logger.Warn("failed to encode youtube token", "error", err)
		return
	}
	if err := a.tokens.Set(ctx, serviceName, model.CredentialKeyOAuthToken, string(data)); err != nil {
		if !errors.Is(err, driven.ErrEncryptionKeyNotSet) {
			a.logger.Warn("failed to cache youtube token", "error", err)
		}
	}
}

func (a *Authenticator) evictToken(ctx context.Context) {
	if a.tokens == nil {
		return
	}
	if err := a.tokens.Delete(ctx, serviceName, model.CredentialKeyOAuthToken); err != nil {
		if !errors.Is(err, driven.ErrEncryptionKeyNotSet) {
			a.logger.Warn("failed to evict cached youtube token", "error", err)
		}
	}
}

// clientSecretDocument returns the inline document if present, otherwise the
// contents of the configured file.
func clientSecretDocument(creds model.VideoCredentials) ([]byte, error) {
	if creds.ClientSecretJSON != "" {
		return []byte(creds.ClientSecretJSON), nil
	}
	if creds.ClientSecretPath == "" {
		return nil, errors.New("no client secret configured: set YOUTUBE_CLIENT_SECRET or YOUTUBE_CLIENT_SECRET_PATH")
	}

	data, err := os.ReadFile(creds.ClientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("reading client secret: %w", err)
	}
	return data, nil
}
