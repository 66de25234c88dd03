// handlers_classify.go - Image classification handlers
package api

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hotdog-classifier/backend/internal/blob"
	"github.com/hotdog-classifier/backend/internal/classifier"
	"github.com/hotdog-classifier/backend/internal/models"
	"github.com/hotdog-classifier/backend/internal/store"
)

// ClassifyHandlerImpl implements the ClassifyHandler interface
type ClassifyHandlerImpl struct {
	classifier  classifier.Classifier
	records     store.RecordStore
	blobs       blob.Store // nil when object storage is disabled
	maxBytes    int64
	typeAllowed func(string) bool
	timeout     time.Duration
	log         *zap.SugaredLogger
}

// NewClassifyHandler creates a new classify handler instance
func NewClassifyHandler(
	cls classifier.Classifier,
	records store.RecordStore,
	blobs blob.Store,
	maxBytes int64,
	typeAllowed func(string) bool,
	timeout time.Duration,
	log *zap.SugaredLogger,
) ClassifyHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ClassifyHandlerImpl{
		classifier:  cls,
		records:     records,
		blobs:       blobs,
		maxBytes:    maxBytes,
		typeAllowed: typeAllowed,
		timeout:     timeout,
		log:         log,
	}
}

// HandleClassifyImage accepts a multipart image upload and classifies it
func (h *ClassifyHandlerImpl) HandleClassifyImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return NewBadRequestError("no image provided", err)
	}

	if fileHeader.Size > h.maxBytes {
		return NewTooLargeError(h.maxBytes)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded image", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		return NewInternalError("failed to read uploaded image", err)
	}

	return h.classify(c, fileHeader.Filename, data)
}

// HandleClassifyBase64 accepts an image as base64 JSON and classifies it
func (h *ClassifyHandlerImpl) HandleClassifyBase64(c echo.Context) error {
	var req classifyBase64Request
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := req.validate(); err != nil {
		return err
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	return h.classify(c, req.Name, decoded)
}

// classify runs the shared flow: validate, call the model, persist
// best-effort, respond.
func (h *ClassifyHandlerImpl) classify(c echo.Context, fileName string, data []byte) error {
	if len(data) == 0 {
		return NewBadRequestError("image is empty", nil)
	}
	if int64(len(data)) > h.maxBytes {
		return NewTooLargeError(h.maxBytes)
	}

	// Sniff the real content type instead of trusting the client header.
	contentType := http.DetectContentType(data)
	if !h.typeAllowed(contentType) {
		return NewUnsupportedMediaTypeError(contentType)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.classifier.Classify(ctx, data, contentType)
	if err != nil {
		h.log.Warnw("classification failed", "fileName", fileName, "error", err)
		return NewClassifierError(err)
	}

	rec := models.ClassificationRecord{
		ID:          uuid.New().String(),
		Label:       result.Label,
		ModelReply:  result.ModelReply,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}

	persisted := h.persist(c.Request().Context(), &rec, data)

	return c.JSON(http.StatusCreated, classifyResponse{
		ClassificationRecord: rec,
		Persisted:            persisted,
	})
}

// persist writes the image and the record. Failures are logged and
// swallowed; classification still succeeds.
func (h *ClassifyHandlerImpl) persist(ctx context.Context, rec *models.ClassificationRecord, data []byte) bool {
	if h.blobs != nil {
		key := blob.Key(rec.ID, rec.ContentType)
		if err := h.blobs.Put(ctx, key, rec.ContentType, data); err != nil {
			h.log.Warnw("failed to store image bytes", "id", rec.ID, "error", err)
		} else {
			rec.StorageKey = key
		}
	}

	if h.records == nil {
		return false
	}
	if err := h.records.Insert(ctx, rec); err != nil {
		h.log.Warnw("failed to save classification record", "id", rec.ID, "error", err)
		return false
	}
	return true
}

// Request/Response types

type classifyBase64Request struct {
	Name string `json:"name"`
	Data string `json:"data"` // Base64-encoded image content
}

func (r *classifyBase64Request) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	if r.Data == "" {
		return NewValidationError("data")
	}
	return nil
}

type classifyResponse struct {
	models.ClassificationRecord
	Persisted bool `json:"persisted"`
}
