// Package web implements the HTML GUI driving adapter using embedded
// html/template pages.
package web

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/socialpanel/internal/adapter/driving/session"
	"github.com/ericfisherdev/socialpanel/internal/application"
	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

var pages = template.Must(template.ParseFS(TemplateFS, "templates/*.html"))

// Handler is the web GUI driving adapter.
type Handler struct {
	auth       *application.AuthService
	dispatcher *application.Dispatcher
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(auth *application.AuthService, dispatcher *application.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, dispatcher: dispatcher, logger: logger}
}

// Dashboard renders the dashboard for the platform and action selected in
// the query string, defaulting to the first of each.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	platform, err := model.ParsePlatform(r.URL.Query().Get("platform"))
	if err != nil {
		platform = model.Platforms[0]
	}
	action, err := model.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		action = model.Actions[0]
	}

	h.render(w, r, http.StatusOK, h.state(sessionID, platform, action))
}

// Connect authenticates the session against the platform and re-renders
// the dashboard with the outcome.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	result := model.OperationResult{
		Platform: platform,
		Success:  true,
		Message:  "Connected to " + platformLabels[platform],
	}
	if err := h.auth.Connect(r.Context(), sessionID, platform); err != nil {
		result = model.FailedResult(model.OperationRequest{Platform: platform}, err)
	}

	state := h.state(sessionID, platform, formAction(r))
	state.result = &result
	h.render(w, r, http.StatusOK, state)
}

// Disconnect drops the session's client for the platform.
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	h.auth.Disconnect(sessionID, platform)

	state := h.state(sessionID, platform, formAction(r))
	state.result = &model.OperationResult{
		Platform: platform,
		Success:  true,
		Message:  "Disconnected from " + platformLabels[platform],
	}
	h.render(w, r, http.StatusOK, state)
}

// Submit dispatches the submitted action form and renders its result. The
// submitted values are kept in the form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	platform, sessionID, ok := h.platformRequest(w, r)
	if !ok {
		return
	}

	action, err := model.ParseAction(r.PathValue("action"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	fields := make(map[string]string)
	for _, name := range fieldNames(platform, action) {
		fields[name] = r.PostFormValue(name)
	}

	result := h.dispatcher.Dispatch(r.Context(), sessionID, model.OperationRequest{
		Platform: platform,
		Action:   action,
		Fields:   fields,
	})

	state := h.state(sessionID, platform, action)
	state.values = fields
	state.result = &result
	h.render(w, r, http.StatusOK, state)
}

func (h *Handler) state(sessionID string, platform model.Platform, action model.Action) dashboardState {
	connected := make(map[model.Platform]bool, len(model.Platforms))
	for _, p := range model.Platforms {
		connected[p] = h.auth.Connected(sessionID, p)
	}
	return dashboardState{platform: platform, action: action, connected: connected}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, state dashboardState) {
	state.csrfToken = csrfToken(w, r)

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "dashboard.html", toDashboardViewModel(state)); err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) platformRequest(w http.ResponseWriter, r *http.Request) (model.Platform, string, bool) {
	platform, err := model.ParsePlatform(r.PathValue("platform"))
	if err != nil {
		http.NotFound(w, r)
		return "", "", false
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return "", "", false
	}
	return platform, sessionID, true
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		h.logger.Error("request reached web handler without a session", "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return "", false
	}
	return id, true
}

// formAction returns the action selected when a connect form was submitted.
func formAction(r *http.Request) model.Action {
	action, err := model.ParseAction(r.PostFormValue("action"))
	if err != nil {
		return model.Actions[0]
	}
	return action
}
