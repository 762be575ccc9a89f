package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// AuthService connects sessions to platforms and tracks the resulting clients.
type AuthService struct {
	videoAuth driven.VideoAuthenticator
	forumAuth driven.ForumAuthenticator
	creds     *CredentialSource
	registry  *SessionRegistry
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAuthService creates an AuthService. A zero timeout leaves connect
// attempts bounded only by the caller's context.
func NewAuthService(
	videoAuth driven.VideoAuthenticator,
	forumAuth driven.ForumAuthenticator,
	creds *CredentialSource,
	registry *SessionRegistry,
	timeout time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		videoAuth: videoAuth,
		forumAuth: forumAuth,
		creds:     creds,
		registry:  registry,
		timeout:   timeout,
		logger:    logger,
	}
}

// Connect authenticates the session against platform and stores the client.
// Any failure is reported as an authentication error and leaves the session
// without a client for that platform.
func (s *AuthService) Connect(ctx context.Context, sessionID string, platform model.Platform) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	op := fmt.Sprintf("connect %s", platform)

	switch platform {
	case model.PlatformYouTube:
		s.registry.SetVideo(sessionID, nil)
		creds, err := s.creds.VideoCredentials(ctx)
		if err != nil {
			return model.NewAuthenticationError(op, err)
		}
		client, err := s.videoAuth.Authenticate(ctx, creds)
		if err != nil {
			s.logger.Warn("video platform authentication failed", "error", err)
			return model.NewAuthenticationError(op, err)
		}
		s.registry.SetVideo(sessionID, client)

	case model.PlatformReddit:
		s.registry.SetForum(sessionID, nil)
		creds, err := s.creds.ForumCredentials(ctx)
		if err != nil {
			return model.NewAuthenticationError(op, err)
		}
		client, err := s.forumAuth.Authenticate(ctx, creds)
		if err != nil {
			s.logger.Warn("forum platform authentication failed", "error", err)
			return model.NewAuthenticationError(op, err)
		}
		s.registry.SetForum(sessionID, client)

	default:
		return model.NewValidationError(op, "unknown platform %q", platform)
	}

	s.logger.Info("platform connected", "platform", platform)
	return nil
}

// Disconnect drops the session's client for platform. Disconnecting a
// platform that is not connected is a no-op.
func (s *AuthService) Disconnect(sessionID string, platform model.Platform) {
	switch platform {
	case model.PlatformYouTube:
		s.registry.SetVideo(sessionID, nil)
	case model.PlatformReddit:
		s.registry.SetForum(sessionID, nil)
	}
}

// Connected reports whether the session holds a client for platform.
func (s *AuthService) Connected(sessionID string, platform model.Platform) bool {
	switch platform {
	case model.PlatformYouTube:
		return s.registry.Video(sessionID) != nil
	case model.PlatformReddit:
		return s.registry.Forum(sessionID) != nil
	default:
		return false
	}
}
