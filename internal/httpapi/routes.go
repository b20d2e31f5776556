package httpapi

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/strikerapp/striker-backend/internal/catalog"
	"github.com/strikerapp/striker-backend/internal/hub"
	"github.com/strikerapp/striker-backend/internal/ws"
)

// SetupRoutes builds the router with the hub and catalog injected. The
// controller/overlay bundle is served from webDir when the directory exists.
func SetupRoutes(h *hub.Hub, cat *catalog.Catalog, webDir string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/api/stages", Stages(cat))
	r.Get("/api/state", State(h))
	r.Get("/ws", ws.Handler(h, log))

	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(webDir)))
	}
	return r
}
