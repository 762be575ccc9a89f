package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

// CredentialSource resolves platform credentials. Values saved in the
// credential store take priority over the configured defaults, so
// credentials can be rotated without a restart.
type CredentialSource struct {
	video model.VideoCredentials
	forum model.ForumCredentials
	store driven.CredentialStore // May be nil.
}

// NewCredentialSource creates a CredentialSource over configured defaults.
func NewCredentialSource(video model.VideoCredentials, forum model.ForumCredentials, store driven.CredentialStore) *CredentialSource {
	return &CredentialSource{video: video, forum: forum, store: store}
}

// VideoCredentials returns the video platform credentials.
func (s *CredentialSource) VideoCredentials(ctx context.Context) (model.VideoCredentials, error) {
	creds := s.video

	stored, err := s.stored(ctx, model.PlatformYouTube)
	if err != nil {
		return creds, err
	}
	override(&creds.ClientSecretJSON, stored[model.CredentialKeyClientSecret])
	override(&creds.Token, stored[model.CredentialKeyToken])

	return creds, nil
}

// ForumCredentials returns the forum platform credentials.
func (s *CredentialSource) ForumCredentials(ctx context.Context) (model.ForumCredentials, error) {
	creds := s.forum

	stored, err := s.stored(ctx, model.PlatformReddit)
	if err != nil {
		return creds, err
	}
	override(&creds.ClientID, stored[model.CredentialKeyClientID])
	override(&creds.ClientSecret, stored[model.CredentialKeyClientSecret])
	override(&creds.UserAgent, stored[model.CredentialKeyUserAgent])
	override(&creds.Username, stored[model.CredentialKeyUsername])
	override(&creds.Password, stored[model.CredentialKeyPassword])

	return creds, nil
}

func (s *CredentialSource) stored(ctx context.Context, platform model.Platform) (map[string]string, error) {
	if s.store == nil {
		return nil, nil
	}
	values, err := s.store.GetAll(ctx, string(platform))
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stored %s credentials: %w", platform, err)
	}
	return values, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
