package orderetl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zpiroux/orderetl/entity"
	"github.com/zpiroux/orderetl/internal/service"
)

// Error values returned by the orderetl API.
// Most of these errors will also contain additional details about the error.
// Error matching can still be done with 'if errors.Is(err, ErrDecode)' etc.
// due to error wrapping.
var (
	ErrConfigNotInitialized  = errors.New("orderetl.Config need to be created with NewConfig()")
	ErrHandlerNotInitialized = errors.New("handler not initialized")
	ErrInvalidConfig         = errors.New("config is not valid")

	ErrInvalidTrigger = entity.ErrInvalidTrigger
	ErrDecode         = entity.ErrDecode
	ErrEncode         = entity.ErrEncode
	ErrStorage        = entity.ErrStorage
	ErrCatalog        = entity.ErrCatalog
	ErrObjectNotFound = entity.ErrObjectNotFound
)

// Handler converts JSON order documents landing in object storage into parquet files,
// one invocation per trigger event.
type Handler struct {
	service    *service.Service
	notifyChan entity.NotifyChan
}

// New creates a Handler based on the provided config, which should initially be created
// with NewConfig(). The store is used both for reading source objects and writing output.
// If refresher is nil, no catalog refresh is done after written output.
func New(config *Config, store entity.ObjectStore, refresher entity.CatalogRefresher) (h *Handler, err error) {
	if config == nil {
		return nil, ErrConfigNotInitialized
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}

	h = &Handler{notifyChan: make(entity.NotifyChan, config.Ops.NotifyChanSize)}
	h.service, err = service.New(preProcessConfig(config, h.notifyChan), store, refresher)
	if err != nil {
		return nil, errWithDetails(ErrInvalidConfig, err)
	}
	return h, nil
}

// Handle runs a single invocation for the provided S3 notification event, and is
// intended to be registered directly as the function handler, e.g. lambda.Start(h.Handle).
// On success the fixed response {"statusCode": 200, "body": "\"Hello from Lambda!\""}
// is returned. On failure the error wraps one of ErrInvalidTrigger, ErrStorage, ErrDecode,
// ErrEncode or ErrCatalog, and no output is written unless the error is ErrCatalog.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (entity.Response, error) {
	if h == nil || h.service == nil {
		return entity.Response{}, ErrHandlerNotInitialized
	}
	return h.service.Process(ctx, event)
}

// NotifyChannel returns the notification channel, providing log and operational events
// for each invocation. Events are dropped if the channel buffer is full.
func (h *Handler) NotifyChannel() <-chan entity.NotificationEvent {
	return h.notifyChan
}

// Metrics returns cumulative invocation metrics since the Handler was created.
func (h *Handler) Metrics() entity.Metrics {
	return h.service.Metrics()
}

func errWithDetails(err error, errDetails error) error {
	return fmt.Errorf("%w, details: %v", err, errDetails)
}
