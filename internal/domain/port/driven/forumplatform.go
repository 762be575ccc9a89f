package driven

import (
	"context"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

// ForumPlatform defines the driven port for the discussion-forum platform.
type ForumPlatform interface {
	// SubmitPost creates a self post and returns it with ID and FullID set.
	SubmitPost(ctx context.Context, sub model.PostSubmission) (model.Post, error)

	// ListNewPosts returns up to limit of the community's newest posts.
	ListNewPosts(ctx context.Context, community string, limit int) ([]model.Post, error)

	// EditPost replaces the body text of a self post.
	EditPost(ctx context.Context, postID, body string) error

	// DeletePost removes a post.
	DeletePost(ctx context.Context, postID string) error

	// LinkFlairTemplates lists the link flair templates offered by a community.
	LinkFlairTemplates(ctx context.Context, community string) ([]model.FlairTemplate, error)
}

// ForumAuthenticator produces an authenticated ForumPlatform.
type ForumAuthenticator interface {
	Authenticate(ctx context.Context, creds model.ForumCredentials) (ForumPlatform, error)
}
