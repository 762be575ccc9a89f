package model

// Field names accepted in OperationRequest.Fields.
const (
	FieldMediaPath   = "media_path"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldVideoID     = "video_id"
	FieldCommunity   = "community"
	FieldBody        = "body"
	FieldLimit       = "limit"
	FieldPostID      = "post_id"
)

// OperationRequest is one user submission: a platform, an action, and the
// raw string values of the action's form fields.
type OperationRequest struct {
	Platform Platform
	Action   Action
	Fields   map[string]string
}

// OperationResult is the outcome of a dispatched request. On failure only
// Message and ErrorKind are meaningful.
type OperationResult struct {
	Platform   Platform
	Action     Action
	Success    bool
	Message    string
	ResourceID string
	Video      *Video
	Posts      []Post
	ErrorKind  ErrorKind
}

// FailedResult converts err into a failed result for req.
func FailedResult(req OperationRequest, err error) OperationResult {
	return OperationResult{
		Platform:  req.Platform,
		Action:    req.Action,
		Success:   false,
		Message:   err.Error(),
		ErrorKind: KindOf(err),
	}
}
