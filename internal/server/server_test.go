package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortesys/cutplan/internal/catalog"
	"github.com/cortesys/cutplan/internal/config"
	"github.com/cortesys/cutplan/internal/engine"
	"github.com/cortesys/cutplan/internal/model"
)

func testRouter(t *testing.T) (*gin.Engine, *catalog.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := catalog.NewStore(t.TempDir())
	cfg := config.Default()
	cfg.DataDir = store.Dir()
	return New(store, cfg).Router(), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := catalog.NewStore(t.TempDir())
	cfg := config.Default()
	cfg.DataDir = store.Dir()
	cfg.Server.Addr = "127.0.0.1:0"
	srv := New(store, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean shutdown, not a failure")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop on context cancellation")
	}
}

func TestHealthz(t *testing.T) {
	r, _ := testRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSheetTypesEndpoint(t *testing.T) {
	r, _ := testRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/sheet-types", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var types []model.SheetType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Len(t, types, 4, "seeded defaults are served")
}

func TestBandingTypesEndpoint(t *testing.T) {
	r, _ := testRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/banding-types", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var types []model.BandingType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Len(t, types, 3)
}

func TestOptimizeEndpoint(t *testing.T) {
	r, store := testRouter(t)

	types, err := store.SheetTypes()
	require.NoError(t, err)

	req := OptimizeRequest{
		Parts: []model.Part{
			{Name: "Shelf", Length: 800, Width: 300, Quantity: 4, SheetTypeID: types[0].ID},
		},
	}
	w := doJSON(t, r, http.MethodPost, "/api/optimize", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res engine.ProjectResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.TotalSheets)
	assert.Equal(t, 4, res.PlacedCount())
	assert.InDelta(t, types[0].Price, res.SheetCost, 1e-9)
}

func TestOptimizeEndpoint_BadInput(t *testing.T) {
	r, store := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/optimize", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/optimize", OptimizeRequest{
		Parts: []model.Part{{Name: "Ghost", Length: 800, Width: 300, Quantity: 1, SheetTypeID: "nope"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sheet type")

	types, err := store.SheetTypes()
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodPost, "/api/optimize", OptimizeRequest{
		Parts: []model.Part{{Name: "Flat", Length: 0, Width: 300, Quantity: 1, SheetTypeID: types[0].ID}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptimizeEndpoint_KerfOverride(t *testing.T) {
	r, store := testRouter(t)

	types, err := store.SheetTypes()
	require.NoError(t, err)

	kerf := 5.0
	req := OptimizeRequest{
		Parts: []model.Part{{Name: "Shelf", Length: 800, Width: 300, Quantity: 2, SheetTypeID: types[0].ID}},
		Kerf:  &kerf,
	}
	w := doJSON(t, r, http.MethodPost, "/api/optimize", req)
	require.Equal(t, http.StatusOK, w.Code)

	var res engine.ProjectResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Partitions, 1)
	assert.Equal(t, 5.0, res.Partitions[0].Result.Spec.Kerf)
}

func TestOptimizeEndpoint_MalformedJSON(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := testRouter(t)
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/%s", "nope"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
