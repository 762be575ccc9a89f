package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want model.ErrorKind
	}{
		{"authentication", model.NewAuthenticationError("connect", cause), model.ErrorKindAuthentication},
		{"validation", model.NewValidationError("create", "title is required"), model.ErrorKindValidation},
		{"vendor", model.NewVendorError("delete", cause), model.ErrorKindVendorAPI},
		{"local io", model.NewLocalIOError("create", cause), model.ErrorKindLocalIO},
		{"wrapped", fmt.Errorf("outer: %w", model.NewLocalIOError("create", cause)), model.ErrorKindLocalIO},
		{"unclassified", cause, model.ErrorKindVendorAPI},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, model.KindOf(tc.err))
			assert.True(t, model.IsKind(tc.err, tc.want) || tc.name == "unclassified")
		})
	}
}

func TestOperationError_PreservesCauseMessage(t *testing.T) {
	cause := errors.New("googleapi: Error 403: quotaExceeded")
	err := model.NewVendorError("create video", cause)

	assert.Equal(t, "create video: googleapi: Error 403: quotaExceeded", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestOperationError_WithoutOp(t *testing.T) {
	err := &model.OperationError{Kind: model.ErrorKindVendorAPI, Err: model.ErrNotFound}

	assert.Equal(t, "resource not found", err.Error())
}

func TestNotConnectedIsAuthentication(t *testing.T) {
	err := model.NewAuthenticationError("read reddit", model.ErrNotConnected)

	assert.True(t, model.IsKind(err, model.ErrorKindAuthentication))
	assert.False(t, model.IsKind(err, model.ErrorKindValidation))
	assert.ErrorIs(t, err, model.ErrNotConnected)
}

func TestFailedResult(t *testing.T) {
	req := model.OperationRequest{Platform: model.PlatformReddit, Action: model.ActionRead}

	res := model.FailedResult(req, model.NewValidationError("read posts", "limit must be a number"))

	assert.False(t, res.Success)
	assert.Equal(t, model.PlatformReddit, res.Platform)
	assert.Equal(t, model.ActionRead, res.Action)
	assert.Equal(t, model.ErrorKindValidation, res.ErrorKind)
	assert.Equal(t, "read posts: limit must be a number", res.Message)
}
