package service

import (
	"time"

	"github.com/zpiroux/orderetl/entity"
)

type Config struct {
	Output  OutputConfig
	Catalog CatalogConfig

	// Log enables native logging of notifications, in addition to the notify channel.
	Log bool

	// LogEventData enables debug logging of trigger events and output rows.
	LogEventData bool

	NotifyChan entity.NotifyChan

	// Now provides the wall clock used for output key timestamps. Defaults to time.Now.
	Now func() time.Time
}

type OutputConfig struct {
	// Bucket to write output to. If empty, the bucket of the triggering object is used.
	Bucket string

	// Output key is Prefix + timestamp (formatted with TimestampLayout) + Suffix
	Prefix          string
	Suffix          string
	TimestampLayout string

	Compression string
}

type CatalogConfig struct {
	JobName string

	// FailOnError specifies if a failed catalog refresh start should fail the invocation.
	// If false, the failure is only notified (WARN), since the output is already written.
	FailOnError bool
}

const (
	DefaultOutputPrefix    = "parquet_files/orders_Etl_"
	DefaultOutputSuffix    = ".parquet"
	DefaultTimestampLayout = "20060102_150405"
	DefaultCatalogJobName  = "etl_serverless_parquet"
)

func (c *Config) ensureValidDefaults() {
	if c.Output.Prefix == "" {
		c.Output.Prefix = DefaultOutputPrefix
	}
	if c.Output.Suffix == "" {
		c.Output.Suffix = DefaultOutputSuffix
	}
	if c.Output.TimestampLayout == "" {
		c.Output.TimestampLayout = DefaultTimestampLayout
	}
	if c.Catalog.JobName == "" {
		c.Catalog.JobName = DefaultCatalogJobName
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}
