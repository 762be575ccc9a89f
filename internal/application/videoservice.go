package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// VideoService implements the four video platform actions. Each action
// validates its fields and then makes exactly one vendor call.
type VideoService struct{}

// NewVideoService creates a VideoService.
func NewVideoService() *VideoService {
	return &VideoService{}
}

// Create uploads the file at media_path with the submitted metadata.
func (s *VideoService) Create(ctx context.Context, client driven.VideoPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "create video"

	mediaPath := strings.TrimSpace(fields[model.FieldMediaPath])
	title := strings.TrimSpace(fields[model.FieldTitle])
	if mediaPath == "" {
		return model.OperationResult{}, model.NewValidationError(op, "media path is required")
	}
	if title == "" {
		return model.OperationResult{}, model.NewValidationError(op, "title is required")
	}

	media, err := openMedia(mediaPath)
	if err != nil {
		return model.OperationResult{}, model.NewLocalIOError(op, err)
	}
	defer media.Close()

	meta := model.VideoMetadata{
		Title:         title,
		Description:   fields[model.FieldDescription],
		Tags:          ParseTags(fields[model.FieldTags]),
		CategoryID:    model.DefaultVideoCategoryID,
		PrivacyStatus: model.DefaultPrivacyStatus,
	}

	id, err := client.InsertVideo(ctx, meta, media)
	if err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Uploaded video %s", id),
		ResourceID: id,
	}, nil
}

// Read fetches a video's metadata and statistics.
func (s *VideoService) Read(ctx context.Context, client driven.VideoPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "read video"

	id, err := requireVideoID(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}

	video, err := client.GetVideo(ctx, id)
	if err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Fetched video %s", video.ID),
		ResourceID: video.ID,
		Video:      video,
	}, nil
}

// Update replaces a video's title and description.
func (s *VideoService) Update(ctx context.Context, client driven.VideoPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "update video"

	id, err := requireVideoID(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}

	meta := model.VideoMetadata{
		ID:          id,
		Title:       strings.TrimSpace(fields[model.FieldTitle]),
		Description: fields[model.FieldDescription],
		CategoryID:  model.DefaultVideoCategoryID,
	}
	if err := client.UpdateVideo(ctx, meta); err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Updated video %s", id),
		ResourceID: id,
	}, nil
}

// Delete removes a video.
func (s *VideoService) Delete(ctx context.Context, client driven.VideoPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "delete video"

	id, err := requireVideoID(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}

	if err := client.DeleteVideo(ctx, id); err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Deleted video %s", id),
		ResourceID: id,
	}, nil
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries.
func ParseTags(raw string) []string {
	var tags []string
	for tag := range strings.SplitSeq(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// vendorError classifies a failed vendor call. Credential rejections are
// authentication errors; everything else is a vendor API error.
func vendorError(op string, err error) error {
	if errors.Is(err, driven.ErrUnauthorized) {
		return model.NewAuthenticationError(op, err)
	}
	return model.NewVendorError(op, err)
}

func requireVideoID(op string, fields map[string]string) (string, error) {
	id := strings.TrimSpace(fields[model.FieldVideoID])
	if id == "" {
		return "", model.NewValidationError(op, "video id is required")
	}
	return id, nil
}

// openMedia opens path for reading and rejects directories.
func openMedia(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open media file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat media file: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.New("media path " + path + " is a directory")
	}
	return f, nil
}
