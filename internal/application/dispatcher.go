package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

type videoHandler func(context.Context, driven.VideoPlatform, map[string]string) (model.OperationResult, error)

type forumHandler func(context.Context, driven.ForumPlatform, map[string]string) (model.OperationResult, error)

// Dispatcher routes operation requests to the CRUD handler for their
// platform and action, using the session's authenticated client.
type Dispatcher struct {
	registry *SessionRegistry
	video    map[model.Action]videoHandler
	forum    map[model.Action]forumHandler
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given services.
func NewDispatcher(registry *SessionRegistry, videos *VideoService, posts *ForumService, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		video: map[model.Action]videoHandler{
			model.ActionCreate: videos.Create,
			model.ActionRead:   videos.Read,
			model.ActionUpdate: videos.Update,
			model.ActionDelete: videos.Delete,
		},
		forum: map[model.Action]forumHandler{
			model.ActionCreate: posts.Create,
			model.ActionRead:   posts.Read,
			model.ActionUpdate: posts.Update,
			model.ActionDelete: posts.Delete,
		},
		logger: logger,
	}
}

// Dispatch runs req for the session. It never returns an error: every
// failure is reported in the result with Success=false and its ErrorKind.
// Requests for a platform the session has not connected make no vendor call.
// A client whose credentials the vendor rejects is dropped, so the session
// must connect again.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, req model.OperationRequest) model.OperationResult {
	start := time.Now()

	result, err := d.dispatch(ctx, sessionID, req)
	if err != nil {
		result = model.FailedResult(req, err)
		d.logger.Warn("operation failed",
			"platform", req.Platform,
			"action", req.Action,
			"kind", result.ErrorKind,
			"error", err,
			"duration", time.Since(start),
		)
		return result
	}

	result.Platform = req.Platform
	result.Action = req.Action
	d.logger.Info("operation succeeded",
		"platform", req.Platform,
		"action", req.Action,
		"resource", result.ResourceID,
		"duration", time.Since(start),
	)
	return result
}

func (d *Dispatcher) dispatch(ctx context.Context, sessionID string, req model.OperationRequest) (model.OperationResult, error) {
	op := string(req.Action) + " " + string(req.Platform)

	switch req.Platform {
	case model.PlatformYouTube:
		handler, ok := d.video[req.Action]
		if !ok {
			return model.OperationResult{}, model.NewValidationError(op, "unknown action %q", req.Action)
		}
		client := d.registry.Video(sessionID)
		if client == nil {
			return model.OperationResult{}, model.NewAuthenticationError(op, model.ErrNotConnected)
		}
		result, err := handler(ctx, client, req.Fields)
		if model.IsKind(err, model.ErrorKindAuthentication) {
			d.registry.SetVideo(sessionID, nil)
		}
		return result, err

	case model.PlatformReddit:
		handler, ok := d.forum[req.Action]
		if !ok {
			return model.OperationResult{}, model.NewValidationError(op, "unknown action %q", req.Action)
		}
		client := d.registry.Forum(sessionID)
		if client == nil {
			return model.OperationResult{}, model.NewAuthenticationError(op, model.ErrNotConnected)
		}
		result, err := handler(ctx, client, req.Fields)
		if model.IsKind(err, model.ErrorKindAuthentication) {
			d.registry.SetForum(sessionID, nil)
		}
		return result, err

	default:
		return model.OperationResult{}, model.NewValidationError(op, "unknown platform %q", req.Platform)
	}
}
