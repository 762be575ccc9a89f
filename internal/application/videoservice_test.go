package application_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/socialpanel/internal/application"
	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

func writeMedia(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVideoService_CreateUploadsMetadataAndMedia(t *testing.T) {
	svc := application.NewVideoService()
	client := newFakeVideoPlatform()

	result, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldMediaPath:   writeMedia(t, "frames"),
		model.FieldTitle:       "Launch day",
		model.FieldDescription: "First upload",
		model.FieldTags:        "go, video,,  demo ",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "vid123", result.ResourceID)
	require.Len(t, client.inserted, 1)
	meta := client.inserted[0]
	assert.Equal(t, "Launch day", meta.Title)
	assert.Equal(t, "First upload", meta.Description)
	assert.Equal(t, []string{"go", "video", "demo"}, meta.Tags)
	assert.Equal(t, "22", meta.CategoryID)
	assert.Equal(t, "public", meta.PrivacyStatus)
	assert.Equal(t, []string{"frames"}, client.media)
}

func TestVideoService_CreateMissingFileIsLocalIOError(t *testing.T) {
	svc := application.NewVideoService()
	client := newFakeVideoPlatform()

	_, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldMediaPath: filepath.Join(t.TempDir(), "missing.mp4"),
		model.FieldTitle:     "Launch day",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindLocalIO, model.KindOf(err))
	assert.Zero(t, client.calls())
}

func TestVideoService_CreateDirectoryIsLocalIOError(t *testing.T) {
	svc := application.NewVideoService()
	client := newFakeVideoPlatform()

	_, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldMediaPath: t.TempDir(),
		model.FieldTitle:     "Launch day",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindLocalIO, model.KindOf(err))
	assert.Zero(t, client.calls())
}

func TestVideoService_CreateValidatesRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"no media path", map[string]string{model.FieldTitle: "t"}},
		{"no title", map[string]string{model.FieldMediaPath: "clip.mp4"}},
		{"blank title", map[string]string{model.FieldMediaPath: "clip.mp4", model.FieldTitle: "   "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newFakeVideoPlatform()
			_, err := application.NewVideoService().Create(context.Background(), client, tc.fields)
			require.Error(t, err)
			assert.Equal(t, model.ErrorKindValidation, model.KindOf(err))
			assert.Zero(t, client.calls())
		})
	}
}

func TestVideoService_CreateVendorFailurePreservesMessage(t *testing.T) {
	client := newFakeVideoPlatform()
	client.insertErr = errors.New("googleapi: Error 403: quotaExceeded")

	_, err := application.NewVideoService().Create(context.Background(), client, map[string]string{
		model.FieldMediaPath: writeMedia(t, "x"),
		model.FieldTitle:     "Launch day",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindVendorAPI, model.KindOf(err))
	assert.Contains(t, err.Error(), "quotaExceeded")
	assert.Len(t, client.inserted, 1)
}

func TestVideoService_ReadReturnsVideo(t *testing.T) {
	client := newFakeVideoPlatform()
	client.videos["abc"] = &model.Video{ID: "abc", Title: "Hello", ViewCount: 42}

	result, err := application.NewVideoService().Read(context.Background(), client, map[string]string{
		model.FieldVideoID: " abc ",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Video)
	assert.Equal(t, "Hello", result.Video.Title)
	assert.Equal(t, uint64(42), result.Video.ViewCount)
	assert.Equal(t, []string{"abc"}, client.fetched)
}

func TestVideoService_ReadNotFoundIsVendorError(t *testing.T) {
	client := newFakeVideoPlatform()

	_, err := application.NewVideoService().Read(context.Background(), client, map[string]string{
		model.FieldVideoID: "nope",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindVendorAPI, model.KindOf(err))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestVideoService_RejectedCredentialsAreAuthenticationErrors(t *testing.T) {
	client := newFakeVideoPlatform()
	client.deleteErr = fmt.Errorf("deleting video v1: %w: oauth2: \"invalid_grant\"", driven.ErrUnauthorized)

	_, err := application.NewVideoService().Delete(context.Background(), client, map[string]string{
		model.FieldVideoID: "v1",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindAuthentication, model.KindOf(err))
	assert.ErrorIs(t, err, driven.ErrUnauthorized)
}

func TestVideoService_UpdateSendsSnippetOnly(t *testing.T) {
	client := newFakeVideoPlatform()

	result, err := application.NewVideoService().Update(context.Background(), client, map[string]string{
		model.FieldVideoID:     "abc",
		model.FieldTitle:       "New title",
		model.FieldDescription: "New description",
		model.FieldTags:        "ignored",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, client.updated, 1)
	assert.Equal(t, model.VideoMetadata{
		ID:          "abc",
		Title:       "New title",
		Description: "New description",
		CategoryID:  "22",
	}, client.updated[0])
}

func TestVideoService_DeleteRequiresID(t *testing.T) {
	client := newFakeVideoPlatform()

	_, err := application.NewVideoService().Delete(context.Background(), client, map[string]string{})
	require.Error(t, err)
	assert.Equal(t, model.ErrorKindValidation, model.KindOf(err))
	assert.Zero(t, client.calls())

	result, err := application.NewVideoService().Delete(context.Background(), client, map[string]string{
		model.FieldVideoID: "abc",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"abc"}, client.deleted)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ,", []string{"a", "b"}},
		{",,,", nil},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, application.ParseTags(tc.raw))
		})
	}
}
