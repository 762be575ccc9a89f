package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Web routes serve HTML at / and /app/* paths; every POST is CSRF-checked.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("POST /app/{platform}/connect", requireCSRF(h.Connect))
	mux.HandleFunc("POST /app/{platform}/disconnect", requireCSRF(h.Disconnect))
	mux.HandleFunc("POST /app/{platform}/{action}", requireCSRF(h.Submit))
}
