package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/strikerapp/striker-backend/internal/catalog"
	"github.com/strikerapp/striker-backend/internal/engine"
	"github.com/strikerapp/striker-backend/internal/hub"
	"github.com/strikerapp/striker-backend/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.New(ctx, store.New(cat), zap.NewNop())

	srv := httptest.NewServer(SetupRoutes(h, cat, t.TempDir(), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, cat
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStagesReturnsOrderedCatalog(t *testing.T) {
	srv, cat := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/stages")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stages []catalog.Stage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stages))
	require.Equal(t, cat.Stages(), stages)
}

func TestStateDefaultsToDefaultMatch(t *testing.T) {
	srv, cat := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var view engine.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Equal(t, "default", view.MatchID)
	require.Equal(t, engine.ModeFirstGame, view.Mode)
	require.Equal(t, engine.PhaseWinnerBan, view.Phase)
	require.Len(t, view.Available, cat.Len())
	require.Nil(t, view.Pick)
}

func TestStateForNamedMatch(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/state?match=gf")
	require.NoError(t, err)
	defer resp.Body.Close()

	var view engine.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Equal(t, "gf", view.MatchID)
}
