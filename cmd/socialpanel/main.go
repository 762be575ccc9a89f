package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	redditadapter "github.com/ericfisherdev/socialpanel/internal/adapter/driven/reddit"
	sqliteadapter "github.com/ericfisherdev/socialpanel/internal/adapter/driven/sqlite"
	youtubeadapter "github.com/ericfisherdev/socialpanel/internal/adapter/driven/youtube"
	httphandler "github.com/ericfisherdev/socialpanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/socialpanel/internal/adapter/driving/session"
	webhandler "github.com/ericfisherdev/socialpanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/socialpanel/internal/application"
	"github.com/ericfisherdev/socialpanel/internal/config"
	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (.env first, real environment wins).
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"youtube_auth_flow", cfg.YouTube.AuthFlow,
		"reddit_submit_mode", cfg.Reddit.SubmitMode,
		"credential_store", cfg.HasSecretKey(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	if !cfg.HasSecretKey() {
		slog.Info("SOCIALPANEL_SECRET_KEY not set, credential store disabled; using environment credentials only")
	}

	flow, err := youtubeadapter.NewAuthorizationFlow(cfg.YouTube.AuthFlow, cfg.YouTube.CallbackAddr, slog.Default())
	if err != nil {
		return err
	}
	var ytOpts []youtubeadapter.Option
	if cfg.HasSecretKey() && cfg.YouTube.AuthFlow == model.AuthFlowInteractive {
		ytOpts = append(ytOpts, youtubeadapter.WithTokenCache(credentialStore))
	}
	videoAuth := youtubeadapter.NewAuthenticator(flow, slog.Default(), ytOpts...)
	forumAuth := redditadapter.NewAuthenticator(slog.Default())

	// 6. Create application services.
	registry := application.NewSessionRegistry()
	creds := application.NewCredentialSource(cfg.VideoCredentials(), cfg.ForumCredentials(), credentialStore)
	authSvc := application.NewAuthService(videoAuth, forumAuth, creds, registry, cfg.AuthTimeout, slog.Default())
	dispatcher := application.NewDispatcher(
		registry,
		application.NewVideoService(),
		application.NewForumService(cfg.Reddit.SubmitMode, slog.Default()),
		slog.Default(),
	)

	// Sessions idle past the cookie lifetime can never return, so their clients are dropped.
	go registry.RunSweeper(ctx, time.Hour, session.MaxAge, slog.Default())

	// 7. Register API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(authSvc, dispatcher, registry, credentialStore, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(authSvc, dispatcher, slog.Default()))

	// Apply middleware.
	sessions := session.NewManager(cfg.SessionSecret)
	handler := httphandler.ApplyMiddleware(mux, slog.Default(), sessions.Middleware)

	// Connect requests may wait on the browser round-trip, so writes must
	// outlive the auth timeout.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.AuthTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("socialpanel started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
