package application_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- Video platform fake ---

type fakeVideoPlatform struct {
	mu sync.Mutex

	inserted  []model.VideoMetadata
	media     []string
	updated   []model.VideoMetadata
	deleted   []string
	fetched   []string
	videos    map[string]*model.Video
	nextID    string
	insertErr error
	getErr    error
	updateErr error
	deleteErr error
}

func newFakeVideoPlatform() *fakeVideoPlatform {
	return &fakeVideoPlatform{videos: make(map[string]*model.Video), nextID: "vid123"}
}

func (f *fakeVideoPlatform) InsertVideo(_ context.Context, meta model.VideoMetadata, media io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, meta)
	if f.insertErr != nil {
		return "", f.insertErr
	}
	data, err := io.ReadAll(media)
	if err != nil {
		return "", err
	}
	f.media = append(f.media, string(data))
	f.videos[f.nextID] = &model.Video{ID: f.nextID, Title: meta.Title, Description: meta.Description, Tags: meta.Tags}
	return f.nextID, nil
}

func (f *fakeVideoPlatform) GetVideo(_ context.Context, videoID string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, videoID)
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", videoID, model.ErrNotFound)
	}
	return v, nil
}

func (f *fakeVideoPlatform) UpdateVideo(_ context.Context, meta model.VideoMetadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, meta)
	return f.updateErr
}

func (f *fakeVideoPlatform) DeleteVideo(_ context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, videoID)
	return f.deleteErr
}

func (f *fakeVideoPlatform) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted) + len(f.fetched) + len(f.updated) + len(f.deleted)
}

// --- Forum platform fake ---

type fakeForumPlatform struct {
	mu sync.Mutex

	submitted   []model.PostSubmission
	listed      []int
	edited      map[string]string
	deleted     []string
	flairCalls  int
	templates   []model.FlairTemplate
	posts       map[string][]model.Post
	nextID      int
	submitErr   error
	listErr     error
	editErr     error
	deleteErr   error
	templateErr error
}

func newFakeForumPlatform() *fakeForumPlatform {
	return &fakeForumPlatform{
		edited: make(map[string]string),
		posts:  make(map[string][]model.Post),
		nextID: 1000,
	}
}

func (f *fakeForumPlatform) SubmitPost(_ context.Context, sub model.PostSubmission) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, sub)
	if f.submitErr != nil {
		return model.Post{}, f.submitErr
	}
	f.nextID++
	id := fmt.Sprintf("p%d", f.nextID)
	post := model.Post{ID: id, FullID: "t3_" + id, Community: sub.Community, Title: sub.Title, Body: sub.Body}
	// Newest first, like the listing endpoint.
	f.posts[sub.Community] = append([]model.Post{post}, f.posts[sub.Community]...)
	return post, nil
}

func (f *fakeForumPlatform) ListNewPosts(_ context.Context, community string, limit int) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = append(f.listed, limit)
	if f.listErr != nil {
		return nil, f.listErr
	}
	posts := f.posts[community]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakeForumPlatform) EditPost(_ context.Context, postID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited[postID] = body
	return f.editErr
}

func (f *fakeForumPlatform) DeletePost(_ context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, postID)
	return f.deleteErr
}

func (f *fakeForumPlatform) LinkFlairTemplates(_ context.Context, _ string) ([]model.FlairTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flairCalls++
	if f.templateErr != nil {
		return nil, f.templateErr
	}
	return f.templates, nil
}

func (f *fakeForumPlatform) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted) + len(f.listed) + len(f.edited) + len(f.deleted) + f.flairCalls
}

// --- Authenticator fakes ---

type fakeVideoAuth struct {
	client driven.VideoPlatform
	err    error
	got    []model.VideoCredentials
	block  bool
}

func (a *fakeVideoAuth) Authenticate(ctx context.Context, creds model.VideoCredentials) (driven.VideoPlatform, error) {
	a.got = append(a.got, creds)
	if a.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.client, nil
}

type fakeForumAuth struct {
	client driven.ForumPlatform
	err    error
	got    []model.ForumCredentials
}

func (a *fakeForumAuth) Authenticate(_ context.Context, creds model.ForumCredentials) (driven.ForumPlatform, error) {
	a.got = append(a.got, creds)
	if a.err != nil {
		return nil, a.err
	}
	return a.client, nil
}

// --- Credential store fake ---

type memoryCredentialStore struct {
	values map[string]map[string]string
	err    error
}

func newMemoryCredentialStore() *memoryCredentialStore {
	return &memoryCredentialStore{values: make(map[string]map[string]string)}
}

func (s *memoryCredentialStore) Set(_ context.Context, service, key, value string) error {
	if s.err != nil {
		return s.err
	}
	if s.values[service] == nil {
		s.values[service] = make(map[string]string)
	}
	s.values[service][key] = value
	return nil
}

func (s *memoryCredentialStore) Get(_ context.Context, service, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.values[service][key], nil
}

func (s *memoryCredentialStore) GetAll(_ context.Context, service string) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string)
	for k, v := range s.values[service] {
		out[k] = v
	}
	return out, nil
}

func (s *memoryCredentialStore) List(_ context.Context) ([]model.Credential, error) {
	if s.err != nil {
		return nil, s.err
	}
	var creds []model.Credential
	for service, kv := range s.values {
		for k, v := range kv {
			creds = append(creds, model.Credential{Service: service, Key: k, Value: v})
		}
	}
	return creds, nil
}

func (s *memoryCredentialStore) Delete(_ context.Context, service, key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.values[service], key)
	return nil
}
