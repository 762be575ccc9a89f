package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// ForumService implements the four forum platform actions.
type ForumService struct {
	mode   model.SubmitMode
	logger *slog.Logger
}

// NewForumService creates a ForumService. An empty mode means flair mode.
func NewForumService(mode model.SubmitMode, logger *slog.Logger) *ForumService {
	if mode == "" {
		mode = model.SubmitModeFlair
	}
	return &ForumService{mode: mode, logger: logger}
}

// Create submits a self post to community. In flair mode the title must be
// at least MinFlairTitleLength characters and the community's first link
// flair template is attached.
func (s *ForumService) Create(ctx context.Context, client driven.ForumPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "create post"

	community, err := requireCommunity(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}
	title := strings.TrimSpace(fields[model.FieldTitle])
	if title == "" {
		return model.OperationResult{}, model.NewValidationError(op, "title is required")
	}

	sub := model.PostSubmission{
		Community: community,
		Title:     title,
		Body:      fields[model.FieldBody],
	}

	if s.mode == model.SubmitModeFlair {
		if n := utf8.RuneCountInString(title); n < model.MinFlairTitleLength {
			return model.OperationResult{}, model.NewValidationError(op,
				"title must be at least %d characters (got %d)", model.MinFlairTitleLength, n)
		}
		sub.FlairID, sub.FlairText = s.pickFlair(ctx, client, community)
	}

	post, err := client.SubmitPost(ctx, sub)
	if err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Submitted post %s to r/%s", post.FullID, community),
		ResourceID: post.ID,
		Posts:      []model.Post{post},
	}, nil
}

// pickFlair returns the first flair template of community, falling back to
// DefaultFlairText when none is offered or the listing fails.
func (s *ForumService) pickFlair(ctx context.Context, client driven.ForumPlatform, community string) (id, text string) {
	templates, err := client.LinkFlairTemplates(ctx, community)
	if err != nil {
		s.logger.Warn("listing flair templates failed, using default flair",
			"community", community, "error", err)
		return "", model.DefaultFlairText
	}
	if len(templates) == 0 {
		return "", model.DefaultFlairText
	}
	return templates[0].ID, templates[0].Text
}

// Read lists the newest posts of community.
func (s *ForumService) Read(ctx context.Context, client driven.ForumPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "read posts"

	community, err := requireCommunity(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}
	limit, err := ParseLimit(fields[model.FieldLimit])
	if err != nil {
		return model.OperationResult{}, model.NewValidationError(op, "%v", err)
	}

	posts, err := client.ListNewPosts(ctx, community, limit)
	if err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success: true,
		Message: fmt.Sprintf("Fetched %d posts from r/%s", len(posts), community),
		Posts:   posts,
	}, nil
}

// Update replaces the body of a self post.
func (s *ForumService) Update(ctx context.Context, client driven.ForumPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "update post"

	id, err := requirePostID(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}

	if err := client.EditPost(ctx, id, fields[model.FieldBody]); err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Updated post %s", id),
		ResourceID: id,
	}, nil
}

// Delete removes a post.
func (s *ForumService) Delete(ctx context.Context, client driven.ForumPlatform, fields map[string]string) (model.OperationResult, error) {
	const op = "delete post"

	id, err := requirePostID(op, fields)
	if err != nil {
		return model.OperationResult{}, err
	}

	if err := client.DeletePost(ctx, id); err != nil {
		return model.OperationResult{}, vendorError(op, err)
	}

	return model.OperationResult{
		Success:    true,
		Message:    fmt.Sprintf("Deleted post %s", id),
		ResourceID: id,
	}, nil
}

// ParseLimit parses the post listing limit. An empty value yields
// DefaultPostLimit; numeric values are clamped to [MinPostLimit, MaxPostLimit].
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DefaultPostLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be a number, got %q", raw)
	}
	return model.ClampPostLimit(n), nil
}

func requireCommunity(op string, fields map[string]string) (string, error) {
	community := strings.TrimPrefix(strings.TrimSpace(fields[model.FieldCommunity]), "r/")
	if community == "" {
		return "", model.NewValidationError(op, "community is required")
	}
	return community, nil
}

func requirePostID(op string, fields map[string]string) (string, error) {
	id := strings.TrimSpace(fields[model.FieldPostID])
	if id == "" {
		return "", model.NewValidationError(op, "post id is required")
	}
	return id, nil
}
