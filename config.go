package orderetl

import (
	"github.com/go-playground/validator/v10"
	"github.com/zpiroux/orderetl/entity"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xparquet"
	"github.com/zpiroux/orderetl/internal/service"
)

const defaultNotifyChanSize = 64

// Config should be created with NewConfig() and adjusted as applicable for the intended
// setup, and provided in the call to orderetl.New().
// See individual struct types for documentation.
type Config struct {
	Output  OutputConfig
	Catalog CatalogConfig
	Ops     OpsConfig
}

// OutputConfig specifies where and how the flattened rows are written.
// The key of the output object is Prefix + <invocation time in TimestampLayout> + Suffix,
// which with default values gives "parquet_files/orders_Etl_20240501_130405.parquet".
type OutputConfig struct {

	// Bucket to write output to. If empty (default) the output is written to the same
	// bucket as the triggering object.
	Bucket string

	Prefix          string `validate:"required"`
	Suffix          string
	TimestampLayout string `validate:"required"`

	// Parquet compression codec, one of "snappy", "gzip", "zstd" or "none" (case insensitive).
	// If empty, "snappy" is used.
	Compression string `validate:"compression"`
}

// CatalogConfig specifies the catalog refresh started after each written output.
type CatalogConfig struct {

	// Type is used by the runtime setup (cmd/lambda) to choose the refresher
	// implementation, one of "glue" (default), "pubsub", "kafka" or "none".
	Type entity.CatalogType `validate:"oneof=glue pubsub kafka none"`

	// JobName is the name of the crawler (or job) to start. Required unless Type is "none".
	JobName string

	// If set to true a failure to start the refresh fails the invocation with ErrCatalog.
	// If false (default) the failure is only notified, since the output is already written.
	FailOnError bool
}

// OpsConfig provide options for observability.
type OpsConfig struct {

	// Size of the notification channel buffer
	NotifyChanSize int `validate:"gte=0"`

	// If set to true native logging will be used (debug, info, warn, and error logs).
	// If set to false no standard logging will be done, but the same type of
	// information will be provided on the notification channel, accessible with
	// Handler.NotifyChannel().
	Log bool

	// If set to true, trigger events and output rows are notified on DEBUG level.
	LogEventData bool
}

// NewConfig returns a Config with default values, matching the original deployment
// of the function.
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Prefix:          service.DefaultOutputPrefix,
			Suffix:          service.DefaultOutputSuffix,
			TimestampLayout: service.DefaultTimestampLayout,
			Compression:     xparquet.DefaultCompression,
		},
		Catalog: CatalogConfig{
			Type:    entity.CatalogGlue,
			JobName: service.DefaultCatalogJobName,
		},
		Ops: OpsConfig{
			NotifyChanSize: defaultNotifyChanSize,
			Log:            true,
		},
	}
}

// Validate returns an error (wrapping ErrInvalidConfig) if any config field is invalid.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return errWithDetails(ErrInvalidConfig, err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("compression", validateCompression)
	v.RegisterStructValidation(validateCatalogConfig, CatalogConfig{})
	return v
}

func validateCompression(fl validator.FieldLevel) bool {
	return xparquet.ValidCompression(fl.Field().String())
}

func validateCatalogConfig(sl validator.StructLevel) {
	c := sl.Current().Interface().(CatalogConfig)
	if c.Type != entity.CatalogNone && c.JobName == "" {
		sl.ReportError(c.JobName, "jobName", "JobName", "required", "")
	}
}

func preProcessConfig(config *Config, notifyChan entity.NotifyChan) service.Config {

	// Convert external config to internal
	var c service.Config
	c.Output.Bucket = config.Output.Bucket
	c.Output.Prefix = config.Output.Prefix
	c.Output.Suffix = config.Output.Suffix
	c.Output.TimestampLayout = config.Output.TimestampLayout
	c.Output.Compression = config.Output.Compression
	c.Catalog.JobName = config.Catalog.JobName
	c.Catalog.FailOnError = config.Catalog.FailOnError
	c.Log = config.Ops.Log
	c.LogEventData = config.Ops.LogEventData
	c.NotifyChan = notifyChan

	return c
}
