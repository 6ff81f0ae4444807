package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/blakespencer/debute-backend/internal/application/sync"
	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/interfaces/http/dto"
)

type stubSyncService struct {
	opts   appsync.SyncOptions
	result *commerce.SyncResult
	err    error
}

func (s *stubSyncService) Sync(ctx context.Context, opts appsync.SyncOptions) (*commerce.SyncResult, error) {
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupSyncRouter(orders, catalog, returns SyncService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSyncHandler(orders, catalog, returns).RegisterRoutes(api)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSyncOrders_Success(t *testing.T) {
	result := commerce.NewSyncResult()
	result.Processed = 60
	result.Created = 60
	result.Pages = 2
	orders := &stubSyncService{result: result.Finish()}
	engine := setupSyncRouter(orders, &stubSyncService{}, &stubSyncService{})

	w := postJSON(t, engine, "/api/v1/sync/orders", `{"fromDate":"2026-08-01","limit":100,"store":"example.myshopify.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	assert.Equal(t, "example.myshopify.com", orders.opts.StoreDomain)
	assert.Equal(t, 100, orders.opts.Limit)
	require.NotNil(t, orders.opts.FromDate)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), orders.opts.FromDate.UTC())
}

func TestSyncOrders_EmptyBody(t *testing.T) {
	orders := &stubSyncService{result: commerce.NewSyncResult().Finish()}
	engine := setupSyncRouter(orders, &stubSyncService{}, &stubSyncService{})

	w := postJSON(t, engine, "/api/v1/sync/orders", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, orders.opts.Limit)
	assert.Nil(t, orders.opts.FromDate)
}

func TestSyncOrders_PartialFailureStill200(t *testing.T) {
	result := commerce.NewSyncResult()
	result.Processed = 2
	result.AddError("1001", "#1001", commerce.ErrValidation)
	orders := &stubSyncService{result: result.Finish()}
	engine := setupSyncRouter(orders, &stubSyncService{}, &stubSyncService{})

	w := postJSON(t, engine, "/api/v1/sync/orders", "{}")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestSyncOrders_InvalidFromDate(t *testing.T) {
	engine := setupSyncRouter(&stubSyncService{}, &stubSyncService{}, &stubSyncService{})

	w := postJSON(t, engine, "/api/v1/sync/orders", `{"fromDate":"yesterday"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestSyncReturns_StoreNotConfigured(t *testing.T) {
	returns := &stubSyncService{err: commerce.ErrStoreNotConfigured}
	engine := setupSyncRouter(&stubSyncService{}, &stubSyncService{}, returns)

	w := postJSON(t, engine, "/api/v1/sync/returns", "{}")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeStoreNotConfigured, resp.Error.Code)
}

func TestSyncCatalog_RoutesToCatalogService(t *testing.T) {
	catalog := &stubSyncService{result: commerce.NewSyncResult().Finish()}
	engine := setupSyncRouter(&stubSyncService{}, catalog, &stubSyncService{})

	w := postJSON(t, engine, "/api/v1/sync/catalog", `{"limit":10}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, catalog.opts.Limit)
}
