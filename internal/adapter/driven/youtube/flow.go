package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cli/browser"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

// AuthorizationFlow obtains an OAuth token for a client configuration.
type AuthorizationFlow interface {
	Token(ctx context.Context, cfg *oauth2.Config, creds model.VideoCredentials) (*oauth2.Token, error)
}

// NewAuthorizationFlow returns the flow selected by kind.
func NewAuthorizationFlow(kind model.AuthFlowKind, callbackAddr string, logger *slog.Logger) (AuthorizationFlow, error) {
	switch kind {
	case model.AuthFlowInteractive:
		return NewLocalServerFlow(callbackAddr, logger), nil
	case model.AuthFlowToken:
		return TokenFlow{}, nil
	default:
		return nil, fmt.Errorf("unknown authorization flow %q", kind)
	}
}

// LocalServerFlow runs the authorization-code flow against a redirect
// listener on the loopback interface. The user approves access in a browser;
// the listener receives the code and exchanges it using PKCE.
type LocalServerFlow struct {
	addr        string
	openBrowser func(url string) error
	logger      *slog.Logger
}

// NewLocalServerFlow creates a LocalServerFlow listening on addr
// ("127.0.0.1:0" picks a free port).
func NewLocalServerFlow(addr string, logger *slog.Logger) *LocalServerFlow {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	return &LocalServerFlow{
		addr:        addr,
		openBrowser: browser.OpenURL,
		logger:      logger,
	}
}

// WithBrowser replaces the function used to open the authorization URL.
func (f *LocalServerFlow) WithBrowser(open func(url string) error) *LocalServerFlow {
	f.openBrowser = open
	return f
}

type callbackResult struct {
	code string
	err  error
}

// Token blocks until the redirect arrives or ctx is done.
func (f *LocalServerFlow) Token(ctx context.Context, cfg *oauth2.Config, _ model.VideoCredentials) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return nil, fmt.Errorf("starting redirect listener on %s: %w", f.addr, err)
	}

	flowCfg := *cfg
	flowCfg.RedirectURL = "http://" + ln.Addr().String() + "/"

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", callbackHandler(state, results))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("redirect listener failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	f.logger.Info("youtube authorization required", "url", authURL, "redirect", flowCfg.RedirectURL)
	if err := f.openBrowser(authURL); err != nil {
		f.logger.Warn("could not open browser; visit the url manually", "error", err)
	}

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for authorization callback: %w", ctx.Err())
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := flowCfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return tok, nil
}

// callbackHandler reports the first redirect it receives on results.
func callbackHandler(state string, results chan<- callbackResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
		case q.Get("state") != state:
			res.err = errors.New("authorization callback state mismatch")
		case q.Get("code") == "":
			res.err = errors.New("authorization callback missing code")
		default:
			res.code = q.Get("code")
		}

		select {
		case results <- res:
		default:
		}

		if res.err != nil {
			http.Error(w, "Authorization failed. You may close this window.", http.StatusBadRequest)
			return
		}
		_, _ = fmt.Fprintln(w, "Authorization complete. You may close this window.")
	}
}

// TokenFlow uses a token provisioned out of band, for headless and test
// environments. The token is either a JSON-encoded oauth2.Token or a bare
// refresh token.
type TokenFlow struct{}

// Token parses creds.Token.
func (TokenFlow) Token(_ context.Context, _ *oauth2.Config, creds model.VideoCredentials) (*oauth2.Token, error) {
	return ParseToken(creds.Token)
}

// ParseToken decodes a pre-provisioned token value.
func ParseToken(raw string) (*oauth2.Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("no pre-provisioned token configured: set YOUTUBE_TOKEN")
	}

	if !strings.HasPrefix(raw, "{") {
		return &oauth2.Token{RefreshToken: raw}, nil
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("token has neither access_token nor refresh_token")
	}
	return &tok, nil
}
