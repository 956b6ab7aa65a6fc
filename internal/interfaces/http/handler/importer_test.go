package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/erp/financial-accounting/internal/application/importer"
	"github.com/erp/financial-accounting/internal/domain/voucher"
	"github.com/erp/financial-accounting/internal/interfaces/http/dto"
	"github.com/erp/financial-accounting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingImportRepository holds every batch until release is closed
type blockingImportRepository struct {
	mu      sync.Mutex
	release chan struct{}
	sizes   []int
	totals  voucher.Totals
}

func (r *blockingImportRepository) ImportBatch(ctx context.Context, batchID string, size int) (voucher.BatchResult, error) {
	r.mu.Lock()
	r.sizes = append(r.sizes, size)
	r.mu.Unlock()

	select {
	case <-r.release:
		return voucher.BatchResult{BatchID: batchID}, nil
	case <-ctx.Done():
		return voucher.BatchResult{BatchID: batchID}, ctx.Err()
	}
}

func (r *blockingImportRepository) Totals(context.Context) (voucher.Totals, error) {
	return r.totals, nil
}

func (r *blockingImportRepository) batchSizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}

func newImporterRouter(t *testing.T) (*gin.Engine, *importer.Importer, *blockingImportRepository) {
	t.Helper()
	middleware.SetupValidator()

	repo := &blockingImportRepository{
		release: make(chan struct{}),
		totals:  voucher.Totals{Pending: 3, Imported: 10, Failed: 1},
	}
	imp := importer.New(repo, nil, importer.Config{BatchSize: 25}, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = imp.Shutdown(ctx)
	})

	router := gin.New()
	router.Use(middleware.RequestID())
	NewVoucherImporterHandler(imp).RegisterRoutes(router.Group("/api/v1"))
	return router, imp, repo
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const importerPath = "/api/v1/balance-engine/vouchers-importer"

func TestVoucherImporterHandler_Lifecycle(t *testing.T) {
	router, imp, repo := newImporterRouter(t)

	w := doRequest(router, http.MethodGet, importerPath+"/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, string(importer.StateIdle), status["state"])
	assert.Equal(t, float64(3), status["totals"].(map[string]any)["pending"])

	w = doRequest(router, http.MethodPost, importerPath+"/start", "")
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	status = decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, string(importer.StateRunning), status["state"])
	assert.NotEmpty(t, status["runId"])
	require.Eventually(t, func() bool { return len(repo.batchSizes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{25}, repo.batchSizes())

	w = doRequest(router, http.MethodPost, importerPath+"/start", `{"batchSize": 5}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeImporterRunning, resp.Error.Code)

	w = doRequest(router, http.MethodPost, importerPath+"/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	status = decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, string(importer.StateStopping), status["state"])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, imp.Wait(ctx))

	w = doRequest(router, http.MethodPost, importerPath+"/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(importer.StateIdle), decodeResponse(t, w).Data.(map[string]any)["state"])
}

func TestVoucherImporterHandler_StartWithOptions(t *testing.T) {
	router, _, repo := newImporterRouter(t)

	w := doRequest(router, http.MethodPost, importerPath+"/start", `{"batchSize": 7, "maxBatches": 1}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	require.Eventually(t, func() bool { return len(repo.batchSizes()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{7}, repo.batchSizes())
	close(repo.release)
}

func TestVoucherImporterHandler_StartValidation(t *testing.T) {
	router, imp, _ := newImporterRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"batch size above limit", `{"batchSize": 5000}`},
		{"negative max batches", `{"maxBatches": -1}`},
		{"wrong type", `{"continuous": "yes"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, importerPath+"/start", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, importer.StateIdle, imp.State())
		})
	}
}
