// Package reddit implements the ForumPlatform port using the go-reddit library.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	rd "github.com/vartanbeno/go-reddit/v2/reddit"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ForumPlatform = (*Client)(nil)

const postKindPrefix = "t3_"

// Client implements driven.ForumPlatform over a password-grant go-reddit client.
type Client struct {
	rd *rd.Client
}

// SubmitPost submits a self post and returns its ids.
func (c *Client) SubmitPost(ctx context.Context, sub model.PostSubmission) (model.Post, error) {
	submitted, _, err := c.rd.Post.SubmitText(ctx, rd.SubmitTextRequest{
		Subreddit: sub.Community,
		Title:     sub.Title,
		Text:      sub.Body,
		FlairID:   sub.FlairID,
		FlairText: sub.FlairText,
	})
	if err != nil {
		return model.Post{}, fmt.Errorf("submitting post to r/%s: %w", sub.Community, classify(err))
	}

	post := model.Post{
		ID:        submitted.ID,
		FullID:    submitted.FullID,
		Community: sub.Community,
		Title:     sub.Title,
		Body:      sub.Body,
		URL:       submitted.URL,
	}
	if post.FullID == "" && post.ID != "" {
		post.FullID = postKindPrefix + post.ID
	}
	return post, nil
}

// ListNewPosts returns up to limit of the community's newest posts.
func (c *Client) ListNewPosts(ctx context.Context, community string, limit int) ([]model.Post, error) {
	posts, _, err := c.rd.Subreddit.NewPosts(ctx, community, &rd.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("listing new posts in r/%s: %w", community, classify(err))
	}

	result := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		result = append(result, mapPost(p))
	}
	return result, nil
}

// EditPost replaces the body of a self post.
func (c *Client) EditPost(ctx context.Context, postID, body string) error {
	if _, _, err := c.rd.Post.Edit(ctx, fullPostID(postID), body); err != nil {
		return fmt.Errorf("editing post %s: %w", postID, classify(err))
	}
	return nil
}

// DeletePost deletes a post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if _, err := c.rd.Post.Delete(ctx, fullPostID(postID)); err != nil {
		return fmt.Errorf("deleting post %s: %w", postID, classify(err))
	}
	return nil
}

// LinkFlairTemplates lists the community's link flair templates.
func (c *Client) LinkFlairTemplates(ctx context.Context, community string) ([]model.FlairTemplate, error) {
	flairs, _, err := c.rd.Flair.GetPostFlairs(ctx, community)
	if err != nil {
		return nil, fmt.Errorf("listing link flairs for r/%s: %w", community, classify(err))
	}

	templates := make([]model.FlairTemplate, 0, len(flairs))
	for _, f := range flairs {
		templates = append(templates, model.FlairTemplate{ID: f.ID, Text: f.Text})
	}
	return templates, nil
}

func mapPost(p *rd.Post) model.Post {
	post := model.Post{
		ID:        p.ID,
		FullID:    p.FullID,
		Community: p.SubredditName,
		Title:     p.Title,
		Body:      p.Body,
		Author:    p.Author,
		Score:     p.Score,
		URL:       p.URL,
	}
	if p.Created != nil {
		post.CreatedAt = p.Created.Time.UTC()
	}
	return post
}

// classify marks a failed password grant or a rejected bearer token with
// driven.ErrUnauthorized. The grant runs inside the first API call.
func classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %w", driven.ErrUnauthorized, err)
	}
	var respErr *rd.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", driven.ErrUnauthorized, err)
	}
	return err
}

// fullPostID adds the link kind prefix the write endpoints require.
func fullPostID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, postKindPrefix) {
		return id
	}
	return postKindPrefix + id
}
