// Package httphandler is the JSON API driving adapter.
package httphandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/ericfisherdev/socialpanel/internal/adapter/driving/session"
	"github.com/ericfisherdev/socialpanel/internal/application"
	"github.com/ericfisherdev/socialpanel/internal/domain/model"
	"github.com/ericfisherdev/socialpanel/internal/domain/port/driven"
)

const (
	maxBodyBytes = 1 << 20
	csrfHeader   = "X-CSRF-Token"
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	auth       *application.AuthService
	dispatcher *application.Dispatcher
	registry   *application.SessionRegistry
	creds      driven.CredentialStore
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	auth *application.AuthService,
	dispatcher *application.Dispatcher,
	registry *application.SessionRegistry,
	creds driven.CredentialStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:       auth,
		dispatcher: dispatcher,
		registry:   registry,
		creds:      creds,
		logger:     logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/v1/platforms/{platform}/connect", requireJSON(h.Connect))
	mux.HandleFunc("DELETE /api/v1/platforms/{platform}/connect", requireJSON(h.Disconnect))
	mux.HandleFunc("GET /api/v1/platforms/{platform}/connect", h.ConnectionStatus)
	mux.HandleFunc("POST /api/v1/platforms/{platform}/{action}", requireJSON(h.Operate))
	mux.HandleFunc("GET /api/v1/credentials", h.ListCredentials)
	mux.HandleFunc("PUT /api/v1/credentials/{service}/{key}", requireJSON(h.PutCredential))
	mux.HandleFunc("DELETE /api/v1/credentials/{service}/{key}", requireJSON(h.DeleteCredential))
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// requireJSON rejects state-changing requests that a cross-site HTML form
// could send. Browsers preflight both a JSON content type and a custom
// X-CSRF-Token header, so either one is accepted.
func requireJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(csrfHeader) != "" {
			next(w, r)
			return
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "request must have Content-Type application/json or an "+csrfHeader+" header")
			return
		}
		next(w, r)
	}
}

// Connect authenticates the session against the platform.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	if err := h.auth.Connect(r.Context(), sessionID, platform); err != nil {
		writeOperationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ConnectionResponse{Platform: string(platform), Connected: true})
}

// Disconnect drops the session's client for the platform.
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	h.auth.Disconnect(sessionID, platform)
	writeJSON(w, http.StatusOK, ConnectionResponse{Platform: string(platform), Connected: false})
}

// ConnectionStatus reports whether the session is connected to the platform.
func (h *Handler) ConnectionStatus(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ConnectionResponse{
		Platform:  string(platform),
		Connected: h.auth.Connected(sessionID, platform),
	})
}

// Operate dispatches one CRUD action. The response body is always an
// OperationResultResponse; the status code reflects its error kind.
func (h *Handler) Operate(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	action, err := model.ParseAction(r.PathValue("action"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var body OperationRequestBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Fields == nil {
		body.Fields = map[string]string{}
	}

	result := h.dispatcher.Dispatch(r.Context(), sessionID, model.OperationRequest{
		Platform: platform,
		Action:   action,
		Fields:   body.Fields,
	})

	status := http.StatusOK
	if !result.Success {
		status = statusForKind(result.ErrorKind)
	}
	writeJSON(w, status, toOperationResultResponse(result))
}

// ListCredentials lists the stored credential keys without their values.
func (h *Handler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.creds.List(r.Context())
	if err != nil {
		h.writeStoreError(w, "list credentials", err)
		return
	}

	resp := make([]CredentialResponse, 0, len(creds))
	for _, c := range creds {
		resp = append(resp, CredentialResponse{
			Service:   c.Service,
			Key:       c.Key,
			UpdatedAt: formatTime(c.UpdatedAt),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// PutCredential stores a credential value. It takes effect on the next connect.
func (h *Handler) PutCredential(w http.ResponseWriter, r *http.Request) {
	service, key, ok := credentialPath(w, r)
	if !ok {
		return
	}

	var body CredentialRequestBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Value == "" {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	if err := h.creds.Set(r.Context(), string(service), key, body.Value); err != nil {
		h.writeStoreError(w, "set credential", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCredential removes a stored credential.
func (h *Handler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	service, key, ok := credentialPath(w, r)
	if !ok {
		return
	}

	if err := h.creds.Delete(r.Context(), string(service), key); err != nil {
		h.writeStoreError(w, "delete credential", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Sessions: h.registry.Len(),
	})
}

// platformRequest extracts the platform path value and the session id,
// writing an error response when either is unavailable.
func (h *Handler) platformRequest(w http.ResponseWriter, r *http.Request) (model.Platform, string, bool) {
	platform, err := model.ParsePlatform(r.PathValue("platform"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", "", false
	}

	sessionID, ok := session.FromContext(r.Context())
	if !ok {
		h.logger.Error("request reached API handler without a session", "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return "", "", false
	}

	return platform, sessionID, true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.logger.Error("credential store failure", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func credentialPath(w http.ResponseWriter, r *http.Request) (model.Platform, string, bool) {
	service, err := model.ParsePlatform(r.PathValue("service"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", "", false
	}

	key := r.PathValue("key")
	if !model.IsCredentialKey(service, key) {
		writeError(w, http.StatusNotFound, "unknown credential key "+key+" for "+string(service))
		return "", "", false
	}

	return service, key, true
}
