// Package youtube implements the VideoPlatform port using the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.VideoPlatform = (*Client)(nil)

var (
	insertParts = []string{"snippet", "status"}
	readParts   = []string{"snippet", "statistics", "status"}
	updateParts = []string{"snippet"}
)

// Client implements driven.VideoPlatform over a *youtube.Service.
type Client struct {
	svc *yt.Service

	onUnauthorized func() // Called when the platform rejects the credentials.
}

// NewClient creates a Client whose requests are sent through httpClient,
// which is expected to carry OAuth credentials.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := yt.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client, baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	svc, err := yt.NewService(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(baseURL))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// InsertVideo uploads media as a single multipart request and returns the new video id.
func (c *Client) InsertVideo(ctx context.Context, meta model.VideoMetadata, media io.Reader) (string, error) {
	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &yt.VideoStatus{PrivacyStatus: meta.PrivacyStatus},
	}

	// ChunkSize(0) disables resumable uploads so the insert is one multipart call.
	created, err := c.svc.Videos.Insert(insertParts, video).
		Media(media, googleapi.ChunkSize(0)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("inserting video %q: %w", meta.Title, c.classify(err))
	}
	return created.Id, nil
}

// GetVideo fetches snippet, statistics and status for a single video.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*model.Video, error) {
	resp, err := c.svc.Videos.List(readParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing video %s: %w", videoID, c.classify(err))
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s: %w", videoID, model.ErrNotFound)
	}

	video, err := mapVideo(resp.Items[0])
	if err != nil {
		return nil, fmt.Errorf("mapping video %s: %w", videoID, err)
	}
	return video, nil
}

// UpdateVideo replaces the snippet of meta.ID. Fields absent from the
// snippet (tags included) are cleared by the platform.
func (c *Client) UpdateVideo(ctx context.Context, meta model.VideoMetadata) error {
	video := &yt.Video{
		Id: meta.ID,
		Snippet: &yt.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			CategoryId:  meta.CategoryID,
		},
	}

	if _, err := c.svc.Videos.Update(updateParts, video).Context(ctx).Do(); err != nil {
		return fmt.Errorf("updating video %s: %w", meta.ID, c.classify(err))
	}
	return nil
}

// DeleteVideo removes a video.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	if err := c.svc.Videos.Delete(videoID).Context(ctx).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return fmt.Errorf("deleting video %s: %w: %w", videoID, model.ErrNotFound, err)
		}
		return fmt.Errorf("deleting video %s: %w", videoID, c.classify(err))
	}
	return nil
}

// classify marks a failed token refresh or a 401 response with
// driven.ErrUnauthorized.
func (c *Client) classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	var apiErr *googleapi.Error
	if !errors.As(err, &retrieveErr) && !(errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized) {
		return err
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return fmt.Errorf("%w: %w", driven.ErrUnauthorized, err)
}

func mapVideo(v *yt.Video) (*model.Video, error) {
	doc, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}

	video := &model.Video{
		ID:       v.Id,
		Document: doc,
	}

	if s := v.Snippet; s != nil {
		video.Title = s.Title
		video.Description = s.Description
		video.Tags = s.Tags
		video.CategoryID = s.CategoryId
		video.ChannelTitle = s.ChannelTitle
		if s.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
				video.PublishedAt = t.UTC()
			}
		}
	}

	if st := v.Statistics; st != nil {
		video.ViewCount = st.ViewCount
		video.LikeCount = st.LikeCount
		video.CommentCount = st.CommentCount
	}

	if v.Status != nil {
		video.PrivacyStatus = v.Status.PrivacyStatus
	}

	if video.Tags == nil {
		video.Tags = []string{}
	}

	return video, nil
}
