package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YabaiTech/YAPM/models"
)

const objectPrefix = "/storage/v1/object"

func serve(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func upload(t *testing.T, router http.Handler, key, path, body string, upsert bool) *httptest.ResponseRecorder {
	t.Helper()
	req := withKey(httptest.NewRequest(http.MethodPost, objectPrefix+path, strings.NewReader(body)), key)
	req.Header.Set("Content-Type", "application/octet-stream")
	if upsert {
		req.Header.Set(upsertHeader, "true")
	}
	return serve(t, router, req)
}

func download(t *testing.T, router http.Handler, key, path string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, router, withKey(httptest.NewRequest(http.MethodGet, objectPrefix+path, nil), key))
}

func storageError(t *testing.T, rr *httptest.ResponseRecorder) models.StorageError {
	t.Helper()
	var body models.StorageError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

func TestInit_UploadThenDownload(t *testing.T) {
	h, _ := newDirectoryHandler(t)
	router := h.Init()
	service := issueKey(t, models.RoleService)
	anon := issueKey(t, models.RoleAnon)

	rr := upload(t, router, service, "/vaults/41237.db", "vault-v1", true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"Key":"vaults/41237.db"}`, rr.Body.String())

	for _, path := range []string{"/public/vaults/41237.db", "/authenticated/vaults/41237.db", "/vaults/41237.db"} {
		t.Run(path, func(t *testing.T) {
			rr := download(t, router, anon, path)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "vault-v1", rr.Body.String())
			assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))
			assert.Equal(t, "8", rr.Header().Get("Content-Length"))
		})
	}
}

func TestInit_UpsertSemantics(t *testing.T) {
	h, _ := newDirectoryHandler(t)
	router := h.Init()
	service := issueKey(t, models.RoleService)

	require.Equal(t, http.StatusOK, upload(t, router, service, "/vaults/1.db", "first", false).Code)

	rr := upload(t, router, service, "/vaults/1.db", "second", false)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Duplicate", storageError(t, rr).Code)
	assert.Equal(t, "first", download(t, router, service, "/public/vaults/1.db").Body.String())

	require.Equal(t, http.StatusOK, upload(t, router, service, "/vaults/1.db", "second", true).Code)
	assert.Equal(t, "second", download(t, router, service, "/public/vaults/1.db").Body.String())

	put := withKey(httptest.NewRequest(http.MethodPut, objectPrefix+"/vaults/1.db", strings.NewReader("third")), service)
	require.Equal(t, http.StatusOK, serve(t, router, put).Code)
	assert.Equal(t, "third", download(t, router, service, "/public/vaults/1.db").Body.String())
}

func TestInit_EscapedObjectName(t *testing.T) {
	h, blobs := newDirectoryHandler(t)
	router := h.Init()
	service := issueKey(t, models.RoleService)

	require.Equal(t, http.StatusOK, upload(t, router, service, "/vaults/with%20space.db", "x", true).Code)

	rc, _, err := blobs.Get(t.Context(), "vaults", "with space.db")
	require.NoError(t, err)
	_ = rc.Close()

	assert.Equal(t, http.StatusOK, download(t, router, service, "/public/vaults/with%20space.db").Code)
}

func TestInit_Rejections(t *testing.T) {
	h, _ := newDirectoryHandler(t)
	router := h.Init()
	service := issueKey(t, models.RoleService)
	anon := issueKey(t, models.RoleAnon)

	tests := []struct {
		name       string
		req        func() *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name: "anon upload",
			req: func() *http.Request {
				return withKey(httptest.NewRequest(http.MethodPost, objectPrefix+"/vaults/1.db", strings.NewReader("x")), anon)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "access_denied",
		},
		{
			name: "upload without key",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, objectPrefix+"/vaults/1.db", strings.NewReader("x"))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name: "download without key",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, objectPrefix+"/public/vaults/1.db", nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name: "missing object",
			req: func() *http.Request {
				return withKey(httptest.NewRequest(http.MethodGet, objectPrefix+"/public/vaults/404.db", nil), anon)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name: "traversal in escaped name",
			req: func() *http.Request {
				return withKey(httptest.NewRequest(http.MethodPost, objectPrefix+"/vaults/..%2Fescape.db", strings.NewReader("x")), service)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_key",
		},
		{
			name: "delete is not routed",
			req: func() *http.Request {
				return withKey(httptest.NewRequest(http.MethodDelete, objectPrefix+"/vaults/1.db", nil), service)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name: "unknown path",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, router, tt.req())

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, storageError(t, rr).Code)
		})
	}
}

func TestInit_UploadTooLarge(t *testing.T) {
	h, _ := newDirectoryHandler(t)
	h.maxUploadSize = 4
	router := h.Init()
	service := issueKey(t, models.RoleService)

	rr := upload(t, router, service, "/vaults/1.db", "more than four bytes", true)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, http.StatusNotFound, download(t, router, service, "/public/vaults/1.db").Code)
}

func TestInit_GzipRoundTrip(t *testing.T) {
	h, _ := newDirectoryHandler(t)
	router := h.Init()
	service := issueKey(t, models.RoleService)
	payload := bytes.Repeat([]byte("page"), 512)

	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := withKey(httptest.NewRequest(http.MethodPost, objectPrefix+"/vaults/1.db", &compressed), service)
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set(upsertHeader, "true")
	require.Equal(t, http.StatusOK, serve(t, router, req).Code)

	get := withKey(httptest.NewRequest(http.MethodGet, objectPrefix+"/public/vaults/1.db", nil), service)
	get.Header.Set("Accept-Encoding", "gzip")
	rr := serve(t, router, get)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestInit_TraceIDHeader(t *testing.T) {
	router := newTestHandler().Init()

	rr := serve(t, router, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(traceIDHeader, "trace-abc")
	rr = serve(t, router, req)
	assert.Equal(t, "trace-abc", rr.Header().Get(traceIDHeader))
}
