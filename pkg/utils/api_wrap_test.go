package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, err)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandleServiceErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid input", ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
		{"database", ErrDatabaseError, http.StatusInternalServerError, "Internal server error"},
		{"quote api", ErrQuoteAPIError, http.StatusBadGateway, "Quotation service unavailable"},
		{"payload encoding", ErrPayloadEncoding, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := handleError(t, tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, tc.message, resp.Message)
			assert.Equal(t, "trace-1", resp.TraceID)
		})
	}
}

func TestHandleServiceErrorUnwrapsSentinels(t *testing.T) {
	rec, resp := handleError(t, fmt.Errorf("binding request: %w", ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input", resp.Message)
}
