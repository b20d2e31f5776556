package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/strikerapp/striker-backend/internal/catalog"
	"github.com/strikerapp/striker-backend/internal/engine"
	"github.com/strikerapp/striker-backend/internal/hub"
)

// Stages returns the full ordered catalog as loaded at startup.
func Stages(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cat.Stages())
	}
}

// State returns the derived view for ?match=, defaulting to "default".
func State(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan engine.View, 1)
		h.Inbox() <- hub.GetView{MatchID: r.URL.Query().Get("match"), Reply: reply}
		view := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
