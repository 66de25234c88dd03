// handlers_history.go - Classification history handlers
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/hotdog-classifier/backend/internal/blob"
	"github.com/hotdog-classifier/backend/internal/models"
	"github.com/hotdog-classifier/backend/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// HistoryHandlerImpl implements the HistoryHandler interface
type HistoryHandlerImpl struct {
	records store.RecordStore
	blobs   blob.Store // nil when object storage is disabled
	log     *zap.SugaredLogger
}

// NewHistoryHandler creates a new history handler instance
func NewHistoryHandler(records store.RecordStore, blobs blob.Store, log *zap.SugaredLogger) HistoryHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &HistoryHandlerImpl{
		records: records,
		blobs:   blobs,
		log:     log,
	}
}

// HandleListClassifications returns a page of classification history
func (h *HistoryHandlerImpl) HandleListClassifications(c echo.Context) error {
	page, err := h.loadPage(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// HandleExportClassificationsMsgpack returns a history page as msgpack,
// for clients fetching large histories
func (h *HistoryHandlerImpl) HandleExportClassificationsMsgpack(c echo.Context) error {
	page, err := h.loadPage(c)
	if err != nil {
		return err
	}

	packed, err := msgpack.Marshal(page)
	if err != nil {
		return NewInternalError("failed to encode history", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", packed)
}

// HandleGetClassification returns a single classification record
func (h *HistoryHandlerImpl) HandleGetClassification(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	rec, err := h.records.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("classification", id)
		}
		return NewInternalError("failed to load classification", err)
	}

	return c.JSON(http.StatusOK, rec)
}

// HandleGetClassificationImage returns the original image bytes
func (h *HistoryHandlerImpl) HandleGetClassificationImage(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	rec, err := h.records.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("classification", id)
		}
		return NewInternalError("failed to load classification", err)
	}

	if h.blobs == nil || rec.StorageKey == "" {
		return NewNotFoundError("image for classification", id)
	}

	obj, err := h.blobs.Get(c.Request().Context(), rec.StorageKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return NewNotFoundError("image for classification", id)
		}
		return NewInternalError("failed to load image", err)
	}

	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}

// HandleDeleteClassification deletes a record and its stored image
func (h *HistoryHandlerImpl) HandleDeleteClassification(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	rec, err := h.records.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("classification", id)
		}
		return NewInternalError("failed to load classification", err)
	}

	if err := h.records.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("classification", id)
		}
		return NewInternalError("failed to delete classification", err)
	}

	// Blob cleanup is best-effort; an orphaned object is not worth a 500.
	if h.blobs != nil && rec.StorageKey != "" {
		if err := h.blobs.Delete(c.Request().Context(), rec.StorageKey); err != nil {
			h.log.Warnw("failed to delete stored image", "id", id, "key", rec.StorageKey, "error", err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// loadPage reads paging parameters and fetches the matching records
func (h *HistoryHandlerImpl) loadPage(c echo.Context) (*models.HistoryPage, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil || page < 1 {
		return nil, NewValidationError("page")
	}

	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil || pageSize < 1 {
		return nil, NewValidationError("pageSize")
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	ctx := c.Request().Context()

	items, err := h.records.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewInternalError("failed to list classifications", err)
	}

	total, err := h.records.Count(ctx)
	if err != nil {
		return nil, NewInternalError("failed to count classifications", err)
	}

	if items == nil {
		items = []models.ClassificationRecord{}
	}

	return &models.HistoryPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
