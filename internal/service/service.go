package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/teltech/logger"
	"github.com/zpiroux/orderetl/entity"
	"github.com/zpiroux/orderetl/entity/transform"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xparquet"
	"github.com/zpiroux/orderetl/pkg/notify"
)

const sender = "service"

// Service executes invocations, from trigger event to catalog refresh. It holds no
// state between invocations other than metrics, so concurrent invocations do not
// interfere with each other.
type Service struct {
	config    Config
	store     entity.ObjectStore
	refresher entity.CatalogRefresher
	log       *logger.Log
	metrics   entity.Metrics
}

func New(cfg Config, store entity.ObjectStore, refresher entity.CatalogRefresher) (*Service, error) {

	if store == nil {
		return nil, errors.New("invalid arguments, ObjectStore cannot be nil")
	}
	if refresher == nil {
		refresher = entity.NoopRefresher{}
	}
	if !xparquet.ValidCompression(cfg.Output.Compression) {
		return nil, errors.New("invalid output compression: " + cfg.Output.Compression)
	}

	cfg.ensureValidDefaults()
	s := &Service{
		config:    cfg,
		store:     store,
		refresher: refresher,
	}
	if cfg.Log {
		s.log = logger.New()
	}
	return s, nil
}

// Process runs a single invocation for the provided trigger event. Any failure up to
// and including writing the output aborts the invocation, with nothing written.
func (s *Service) Process(ctx context.Context, event []byte) (entity.Response, error) {

	atomic.AddInt64(&s.metrics.Invocations, 1)
	n := notify.New(s.config.NotifyChan, s.log, 2, sender, uuid.New().String(), "")

	if s.config.LogEventData {
		n.Notify(entity.NotifyLevelDebug, "trigger event: %s", string(event))
	}

	source, err := ObjectLocatorFromEvent(event)
	if err == nil {
		n = n.WithSource(source.String())
		var output entity.ObjectLocator
		if output, err = s.process(ctx, n, source); err == nil {
			n.Notify(entity.NotifyLevelDebug, "output written to %s", output)
		}
	}
	if err != nil {
		atomic.AddInt64(&s.metrics.FailedInvocations, 1)
		n.Notify(entity.NotifyLevelError, "invocation failed, err: %v", err)
		return entity.Response{}, err
	}

	if err = s.refreshCatalog(ctx, n); err != nil {
		atomic.AddInt64(&s.metrics.FailedInvocations, 1)
		return entity.Response{}, err
	}

	n.Notify(entity.NotifyLevelInfo, "invocation completed")
	return entity.NewSuccessResponse(), nil
}

func (s *Service) process(ctx context.Context, n *notify.Notifier, source entity.ObjectLocator) (output entity.ObjectLocator, err error) {

	data, err := s.store.Get(ctx, source.Bucket, source.Key)
	if err != nil {
		return output, errWithDetails(entity.ErrStorage, err)
	}
	atomic.AddInt64(&s.metrics.BytesRead, int64(len(data)))

	transformer := transform.NewTransformer(func(order entity.Order) {
		n.Notify(entity.NotifyLevelWarn, "order %s has no products and will not be part of output", order.OrderId)
	})
	start := time.Now()
	orders, rows, err := transformer.TransformOrders(ctx, data)
	if err != nil {
		return output, err
	}

	if s.config.LogEventData {
		for _, row := range rows {
			n.Notify(entity.NotifyLevelDebug, "row: %s", row.String())
		}
	}

	outData, err := xparquet.Encode(rows, s.config.Output.Compression)
	if err != nil {
		return output, errWithDetails(entity.ErrEncode, err)
	}
	n.Notify(entity.NotifyLevelDebug, "flattened %d bytes into %d rows and %d bytes of parquet in %v",
		len(data), len(rows), len(outData), time.Since(start))

	output = s.outputLocator(source)
	if err = s.store.Put(ctx, output.Bucket, output.Key, outData); err != nil {
		return output, errWithDetails(entity.ErrStorage, err)
	}

	atomic.AddInt64(&s.metrics.OrdersProcessed, int64(len(orders)))
	atomic.AddInt64(&s.metrics.RowsWritten, int64(len(rows)))
	atomic.AddInt64(&s.metrics.BytesWritten, int64(len(outData)))
	n.Notify(entity.NotifyLevelInfo, "wrote %d rows (%d bytes) to %s", len(rows), len(outData), output)
	return output, nil
}

func (s *Service) refreshCatalog(ctx context.Context, n *notify.Notifier) error {

	err := s.refresher.StartRefresh(ctx, s.config.Catalog.JobName)
	if err == nil {
		n.Notify(entity.NotifyLevelDebug, "catalog refresh %s started", s.config.Catalog.JobName)
		return nil
	}

	atomic.AddInt64(&s.metrics.CatalogRefreshFailures, 1)
	if s.config.Catalog.FailOnError {
		err = errWithDetails(entity.ErrCatalog, err)
		n.Notify(entity.NotifyLevelError, "invocation failed, err: %v", err)
		return err
	}
	n.Notify(entity.NotifyLevelWarn, "catalog refresh %s could not be started, err: %v", s.config.Catalog.JobName, err)
	return nil
}

// OutputKey returns the key of the output object for the provided wall clock time.
func (s *Service) OutputKey(t time.Time) string {
	return s.config.Output.Prefix + t.Format(s.config.Output.TimestampLayout) + s.config.Output.Suffix
}

func (s *Service) outputLocator(source entity.ObjectLocator) entity.ObjectLocator {
	bucket := s.config.Output.Bucket
	if bucket == "" {
		bucket = source.Bucket
	}
	return entity.ObjectLocator{Bucket: bucket, Key: s.OutputKey(s.config.Now())}
}

func (s *Service) Metrics() entity.Metrics {
	return entity.Metrics{
		Invocations:            atomic.LoadInt64(&s.metrics.Invocations),
		FailedInvocations:      atomic.LoadInt64(&s.metrics.FailedInvocations),
		OrdersProcessed:        atomic.LoadInt64(&s.metrics.OrdersProcessed),
		RowsWritten:            atomic.LoadInt64(&s.metrics.RowsWritten),
		BytesRead:              atomic.LoadInt64(&s.metrics.BytesRead),
		BytesWritten:           atomic.LoadInt64(&s.metrics.BytesWritten),
		CatalogRefreshFailures: atomic.LoadInt64(&s.metrics.CatalogRefreshFailures),
	}
}

func (s *Service) String() string {
	b, _ := json.Marshal(struct {
		Output  OutputConfig
		Catalog CatalogConfig
	}{s.config.Output, s.config.Catalog})
	return string(b)
}
