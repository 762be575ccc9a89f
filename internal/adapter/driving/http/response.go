package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeOperationError writes err with the status code of its kind.
func writeOperationError(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)
	writeJSON(w, statusForKind(kind), errorResponse{Error: err.Error(), Kind: string(kind)})
}

// statusForKind maps an error kind to its HTTP status code.
func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.ErrorKindValidation:
		return http.StatusBadRequest
	case model.ErrorKindAuthentication:
		return http.StatusUnauthorized
	case model.ErrorKindLocalIO:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// OperationRequestBody is the JSON body of an operation request.
type OperationRequestBody struct {
	Fields map[string]string `json:"fields"`
}

// CredentialRequestBody is the JSON body of a credential update.
type CredentialRequestBody struct {
	Value string `json:"value"`
}

// ConnectionResponse reports a platform's connection state for the session.
type ConnectionResponse struct {
	Platform  string `json:"platform"`
	Connected bool   `json:"connected"`
}

// OperationResultResponse is the JSON representation of an operation result.
type OperationResultResponse struct {
	Platform   string         `json:"platform"`
	Action     string         `json:"action"`
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	ErrorKind  string         `json:"error_kind,omitempty"`
	ResourceID string         `json:"resource_id,omitempty"`
	Video      *VideoResponse `json:"video,omitempty"`
	Posts      []PostResponse `json:"posts,omitempty"`
}

// VideoResponse is the JSON representation of a fetched video.
type VideoResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Tags          []string        `json:"tags"`
	CategoryID    string          `json:"category_id"`
	ChannelTitle  string          `json:"channel_title"`
	PublishedAt   string          `json:"published_at,omitempty"`
	ViewCount     uint64          `json:"view_count"`
	LikeCount     uint64          `json:"like_count"`
	CommentCount  uint64          `json:"comment_count"`
	PrivacyStatus string          `json:"privacy_status,omitempty"`
	Document      json.RawMessage `json:"document,omitempty"`
}

// PostResponse is the JSON representation of a forum post.
type PostResponse struct {
	ID        string `json:"id"`
	FullID    string `json:"full_id"`
	Community string `json:"community"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Author    string `json:"author"`
	Score     int    `json:"score"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Sessions int    `json:"sessions"`
}

func toOperationResultResponse(res model.OperationResult) OperationResultResponse {
	resp := OperationResultResponse{
		Platform:   string(res.Platform),
		Action:     string(res.Action),
		Success:    res.Success,
		Message:    res.Message,
		ErrorKind:  string(res.ErrorKind),
		ResourceID: res.ResourceID,
	}

	if res.Video != nil {
		v := toVideoResponse(*res.Video)
		resp.Video = &v
	}

	if len(res.Posts) > 0 {
		resp.Posts = make([]PostResponse, 0, len(res.Posts))
		for _, p := range res.Posts {
			resp.Posts = append(resp.Posts, toPostResponse(p))
		}
	}

	return resp
}

func toVideoResponse(v model.Video) VideoResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	resp := VideoResponse{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		Tags:          tags,
		CategoryID:    v.CategoryID,
		ChannelTitle:  v.ChannelTitle,
		ViewCount:     v.ViewCount,
		LikeCount:     v.LikeCount,
		CommentCount:  v.CommentCount,
		PrivacyStatus: v.PrivacyStatus,
		PublishedAt:   formatTime(v.PublishedAt),
	}
	if json.Valid(v.Document) {
		resp.Document = v.Document
	}
	return resp
}

func toPostResponse(p model.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		FullID:    p.FullID,
		Community: p.Community,
		Title:     p.Title,
		Body:      p.Body,
		Author:    p.Author,
		Score:     p.Score,
		URL:       p.URL,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// CredentialResponse describes a stored credential. Values are never returned.
type CredentialResponse struct {
	Service   string `json:"service"`
	Key       string `json:"key"`
	UpdatedAt string `json:"updated_at"`
}
