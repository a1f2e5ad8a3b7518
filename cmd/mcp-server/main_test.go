package main

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsinterp"
)

func postTool(t *testing.T, mux http.Handler, body string) (*httptest.ResponseRecorder, mathsinterp.ToolResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp mathsinterp.ToolResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestToolEndpoint_SharedSession(t *testing.T) {
	mux := newMux(mathsinterp.New(nil))

	rec, resp := postTool(t, mux, `{"tool":"evaluate","params":{"expr":"r = 3"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Error)
	assert.Equal(t, 3.0, resp.Result)

	rec, resp = postTool(t, mux, `{"tool":"evaluate","params":{"expr":"r * 2"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6.0, resp.Result)
	assert.Equal(t, "6", resp.String)

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, rec.Header().Get("X-Request-Id"))
}

func TestToolEndpoint_ToolErrorIsOK(t *testing.T) {
	mux := newMux(mathsinterp.New(nil))

	rec, resp := postTool(t, mux, `{"tool":"solve","params":{"equation":"0*x = 1"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.Error, "no solution")
}

func TestToolEndpoint_BadRequests(t *testing.T) {
	mux := newMux(mathsinterp.New(nil))

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"tool":`},
		{name: "unknown field", body: `{"tool":"symbols","extra":1}`},
		{name: "trailing data", body: `{"tool":"symbols"} {"tool":"symbols"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := postTool(t, mux, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestToolEndpoint_MethodNotAllowed(t *testing.T) {
	mux := newMux(mathsinterp.New(nil))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tool", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSchemaAndHealth(t *testing.T) {
	ip := mathsinterp.New(nil)
	_, err := ip.Evaluate("a = 1")
	require.NoError(t, err)
	mux := newMux(ip)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, mathsinterp.MCPToolSpec(), rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health struct {
		Status  string `json:"status"`
		Symbols int    `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Symbols)
}

func TestToolEndpoint_OverflowingTangentReportsError(t *testing.T) {
	mux := newMux(mathsinterp.New(nil))

	rec, resp := postTool(t, mux, `{"tool":"tangent","params":{"expr":"exp(x)","x0":709}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.Error, "not finite")
	assert.NotEmpty(t, resp.RequestID)
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("X-Request-Id", "req-1")

	writeJSON(rec, http.StatusOK, map[string]float64{"slope": math.Inf(1)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}
