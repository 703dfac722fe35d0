package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/YabaiTech/YAPM/internal/mock"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/models"
)

func TestUploadObject_StorageFailureHidesDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStorage(ctrl)
	blobs.EXPECT().
		Put(gomock.Any(), "vaults", "1.db", gomock.Any(), true).
		Return(errors.Join(store.ErrWritingBlob, errors.New("disk /srv/relay is full")))

	router := newRelayHandler(t, blobs).Init()
	rr := upload(t, router, issueKey(t, models.RoleService), "/vaults/1.db", "x", true)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := storageError(t, rr)
	assert.Equal(t, "internal", body.Code)
	assert.NotContains(t, body.Message, "/srv/relay")
}

func TestUploadObject_PassesUpsertFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStorage(ctrl)

	gomock.InOrder(
		blobs.EXPECT().Put(gomock.Any(), "vaults", "1.db", gomock.Any(), false).Return(nil),
		blobs.EXPECT().Put(gomock.Any(), "vaults", "1.db", gomock.Any(), true).Return(nil),
	)

	router := newRelayHandler(t, blobs).Init()
	key := issueKey(t, models.RoleService)

	assert.Equal(t, http.StatusOK, upload(t, router, key, "/vaults/1.db", "x", false).Code)
	assert.Equal(t, http.StatusOK, upload(t, router, key, "/vaults/1.db", "x", true).Code)
}

func TestDownloadObject_ReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStorage(ctrl)
	blobs.EXPECT().
		Get(gomock.Any(), "vaults", "1.db").
		Return(nil, int64(0), store.ErrReadingBlob)

	router := newRelayHandler(t, blobs).Init()
	rr := download(t, router, issueKey(t, models.RoleAnon), "/public/vaults/1.db")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestDownloadObject_StreamsContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStorage(ctrl)
	blobs.EXPECT().
		Get(gomock.Any(), "vaults", "1.db").
		Return(io.NopCloser(strings.NewReader("abc")), int64(3), nil)

	router := newRelayHandler(t, blobs).Init()
	rr := download(t, router, issueKey(t, models.RoleAnon), "/public/vaults/1.db")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc", rr.Body.String())
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: store.ErrBlobNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "duplicate", err: store.ErrBlobAlreadyExists, wantStatus: http.StatusConflict, wantCode: "Duplicate"},
		{name: "bad name", err: store.ErrInvalidBlobName, wantStatus: http.StatusBadRequest, wantCode: "invalid_key"},
		{name: "too large wins over broken stream", err: errors.Join(ErrPayloadTooLarge, store.ErrReadingBlobContent), wantStatus: http.StatusRequestEntityTooLarge, wantCode: "payload_too_large"},
		{name: "broken stream", err: store.ErrReadingBlobContent, wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{name: "forbidden", err: ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "access_denied"},
		{name: "expired", err: ErrAPIKeyExpired, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWriteError_Body(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), store.ErrBlobNotFound)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"statusCode":"404","error":"not_found","message":"object not found"}`, rr.Body.String())
}
