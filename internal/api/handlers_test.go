package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotdog-classifier/backend/internal/config"
	"github.com/hotdog-classifier/backend/internal/models"
	"github.com/hotdog-classifier/backend/internal/store"
	"github.com/hotdog-classifier/backend/internal/testutil"
)

func newTestServer(t *testing.T) (*echo.Echo, *testutil.MockBlobStore) {
	t.Helper()

	cfg := config.Defaults()
	blobs := testutil.NewMockBlobStore()
	handlers := NewHandlers(&Dependencies{
		Classifier: testutil.NewMockClassifier(models.LabelHotDog, "Hot Dog"),
		Records:    store.NewMemoryStore(),
		Blobs:      blobs,
		Config:     cfg,
		Version:    "test",
	})

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	RegisterRoutes(e, handlers)
	return e, blobs
}

func TestClassifyFlow(t *testing.T) {
	e, blobs := newTestServer(t)

	// 1. Initially empty history
	req := httptest.NewRequest(http.MethodGet, "/api/classifications", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	// 2. Classify an upload
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("image", "lunch.png")
	part.Write(pngBytes)
	writer.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/classify", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"Hot Dog"`)
	assert.Contains(t, rec.Body.String(), `"persisted":true`)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 1, blobs.ObjectCount())

	// 3. History now contains the record
	req = httptest.NewRequest(http.MethodGet, "/api/classifications", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.ID)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	// 4. Fetch the stored image back
	req = httptest.NewRequest(http.MethodGet, "/api/classifications/"+created.ID+"/image", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))

	// 5. Delete the record
	req = httptest.NewRequest(http.MethodDelete, "/api/classifications/"+created.ID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, blobs.ObjectCount())
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`, path)
		assert.Contains(t, rec.Body.String(), `"database":"disabled"`, path)
	}
}

func TestErrorHandlerRendersAPIErrors(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/classifications/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}
