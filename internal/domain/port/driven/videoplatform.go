package driven

import (
	"context"
	"io"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

// VideoPlatform defines the driven port for the video-hosting platform.
// Every method performs exactly one vendor API call.
type VideoPlatform interface {
	// InsertVideo uploads media with the given metadata and returns the new video id.
	InsertVideo(ctx context.Context, meta model.VideoMetadata, media io.Reader) (string, error)

	// GetVideo fetches a video's metadata and statistics.
	// Returns an error wrapping model.ErrNotFound if no video has that id.
	GetVideo(ctx context.Context, videoID string) (*model.Video, error)

	// UpdateVideo replaces the snippet (title, description, category) of meta.ID.
	UpdateVideo(ctx context.Context, meta model.VideoMetadata) error

	// DeleteVideo removes the video.
	DeleteVideo(ctx context.Context, videoID string) error
}

// VideoAuthenticator produces an authenticated VideoPlatform.
type VideoAuthenticator interface {
	Authenticate(ctx context.Context, creds model.VideoCredentials) (VideoPlatform, error)
}
