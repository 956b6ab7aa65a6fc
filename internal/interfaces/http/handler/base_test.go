package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/interfaces/http/dto"
	"github.com/erp/financial-accounting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(requestID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if requestID != "" {
		c.Set(middleware.RequestIDKey, requestID)
	}
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext("")

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerAccepted(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext("")

	h.Accepted(c, "queued")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	h := &BaseHandler{}
	tests := []struct {
		name       string
		call       func(*gin.Context)
		wantStatus int
		wantCode   string
	}{
		{"BadRequest", func(c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"InternalError", func(c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"ErrorWithCode domain code", func(c *gin.Context) { h.ErrorWithCode(c, "IMPORTER_RUNNING", "busy") }, http.StatusConflict, dto.ErrCodeImporterRunning},
		{"ErrorWithCode api code", func(c *gin.Context) { h.ErrorWithCode(c, dto.ErrCodeNotFound, "gone") }, http.StatusNotFound, dto.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("req-1")
			tt.call(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "missing exchange rate",
			err:         shared.MissingExchangeRate("02"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeMissingExchangeRate,
			wantMessage: shared.MissingExchangeRate("02").Message,
		},
		{
			name:        "invalid command",
			err:         shared.InvalidCommand("level %d is out of range", -1),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeInvalidCommand,
			wantMessage: "level -1 is out of range",
		},
		{
			name:        "unreachable code path",
			err:         shared.UnreachableCodePath("no handler for %s", "X"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeUnreachableCodePath,
			wantMessage: "no handler for X",
		},
		{
			name:        "wrapped domain error",
			err:         fmt.Errorf("building: %w", shared.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: shared.ErrNotFound.Message,
		},
		{
			name:        "infrastructure error is hidden",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeInternal,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("req-9")
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
			assert.Equal(t, "req-9", resp.Error.RequestID)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext("")
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})
}
