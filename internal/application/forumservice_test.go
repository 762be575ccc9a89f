package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/socialpanel/internal/application"
	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

const longTitle = "A title long enough for flair"

func TestForumService_CreateFlairShortTitleRejected(t *testing.T) {
	client := newFakeForumPlatform()
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	_, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     "too short",
		model.FieldBody:      "body",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindValidation, model.KindOf(err))
	assert.Zero(t, client.calls())
}

func TestForumService_CreateFlairCountsCharactersNotBytes(t *testing.T) {
	client := newFakeForumPlatform()
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	// 14 runes, more than 15 bytes.
	_, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     "éééééééééééééé",
	})
	require.Error(t, err)
	assert.Equal(t, model.ErrorKindValidation, model.KindOf(err))

	// Exactly 15 runes passes.
	_, err = svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     "ééééééééééééééé",
	})
	require.NoError(t, err)
}

func TestForumService_CreateAttachesFirstFlairTemplate(t *testing.T) {
	client := newFakeForumPlatform()
	client.templates = []model.FlairTemplate{{ID: "f1", Text: "Question"}, {ID: "f2", Text: "News"}}
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	result, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     longTitle,
		model.FieldBody:      "hello",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, client.submitted, 1)
	assert.Equal(t, "f1", client.submitted[0].FlairID)
	assert.Equal(t, "Question", client.submitted[0].FlairText)
	assert.Equal(t, 1, client.flairCalls)
}

func TestForumService_CreateWithoutTemplatesUsesDefaultFlair(t *testing.T) {
	client := newFakeForumPlatform()
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	_, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     longTitle,
	})
	require.NoError(t, err)

	require.Len(t, client.submitted, 1)
	assert.Empty(t, client.submitted[0].FlairID)
	assert.Equal(t, "Discussion", client.submitted[0].FlairText)
}

func TestForumService_CreateFlairListingFailureFallsBack(t *testing.T) {
	client := newFakeForumPlatform()
	client.templateErr = errors.New("403 Forbidden")
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	result, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     longTitle,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Discussion", client.submitted[0].FlairText)
}

func TestForumService_CreatePlainSkipsFlairAndLengthCheck(t *testing.T) {
	client := newFakeForumPlatform()
	client.templates = []model.FlairTemplate{{ID: "f1", Text: "Question"}}
	svc := application.NewForumService(model.SubmitModePlain, discardLogger())

	_, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     "short",
	})
	require.NoError(t, err)

	assert.Zero(t, client.flairCalls)
	require.Len(t, client.submitted, 1)
	assert.Empty(t, client.submitted[0].FlairID)
	assert.Empty(t, client.submitted[0].FlairText)
}

func TestForumService_CreateThenReadReturnsPost(t *testing.T) {
	client := newFakeForumPlatform()
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	created, err := svc.Create(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldTitle:     longTitle,
		model.FieldBody:      "hello",
	})
	require.NoError(t, err)

	read, err := svc.Read(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldLimit:     "1",
	})
	require.NoError(t, err)

	require.Len(t, read.Posts, 1)
	assert.Equal(t, created.ResourceID, read.Posts[0].ID)
	assert.Equal(t, longTitle, read.Posts[0].Title)
}

func TestForumService_ReadLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit string
		want  int
	}{
		{"empty defaults to five", "", 5},
		{"in range", "7", 7},
		{"zero clamps up", "0", 1},
		{"negative clamps up", "-3", 1},
		{"large clamps down", "50", 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newFakeForumPlatform()
			svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

			_, err := svc.Read(context.Background(), client, map[string]string{
				model.FieldCommunity: "golang",
				model.FieldLimit:     tc.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, []int{tc.want}, client.listed)
		})
	}
}

func TestForumService_ReadNonNumericLimitRejected(t *testing.T) {
	client := newFakeForumPlatform()
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	_, err := svc.Read(context.Background(), client, map[string]string{
		model.FieldCommunity: "golang",
		model.FieldLimit:     "ten",
	})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindValidation, model.KindOf(err))
	assert.Zero(t, client.calls())
}

func TestForumService_UpdateAndDelete(t *testing.T) {
	client := newFakeForumPlatform()
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	_, err := svc.Update(context.Background(), client, map[string]string{
		model.FieldPostID: "abc",
		model.FieldBody:   "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"abc": "edited"}, client.edited)

	_, err = svc.Delete(context.Background(), client, map[string]string{model.FieldPostID: "t3_abc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t3_abc"}, client.deleted)
}

func TestForumService_VendorFailureIsVendorError(t *testing.T) {
	client := newFakeForumPlatform()
	client.deleteErr = errors.New("403 Forbidden: not your post")
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	_, err := svc.Delete(context.Background(), client, map[string]string{model.FieldPostID: "abc"})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindVendorAPI, model.KindOf(err))
	assert.Contains(t, err.Error(), "not your post")
}

func TestForumService_RejectedCredentialsAreAuthenticationErrors(t *testing.T) {
	client := newFakeForumPlatform()
	client.listErr = fmt.Errorf("listing new posts in r/golang: %w: oauth2: \"invalid_grant\"", driven.ErrUnauthorized)
	svc := application.NewForumService(model.SubmitModeFlair, discardLogger())

	_, err := svc.Read(context.Background(), client, map[string]string{model.FieldCommunity: "golang"})
	require.Error(t, err)

	assert.Equal(t, model.ErrorKindAuthentication, model.KindOf(err))
	assert.ErrorIs(t, err, driven.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestParseLimit(t *testing.T) {
	n, err := application.ParseLimit(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = application.ParseLimit("3.5")
	assert.Error(t, err)
}
