package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"cloud.google.com/go/pubsub"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/zpiroux/orderetl"
	"github.com/zpiroux/orderetl/entity"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xglue"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xkafka"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xpubsub"
)

// envConfig holds the function's environment variable settings.
type envConfig struct {
	OutputBucket       string
	OutputPrefix       string
	Compression        string
	CatalogType        entity.CatalogType
	CrawlerName        string
	CatalogFailOnError bool
	PubsubProject      string
	PubsubTopic        string
	KafkaBootstrap     string
	KafkaTopic         string
	LogEventData       bool
}

func envConfigFromEnv() envConfig {
	defaults := orderetl.NewConfig()
	return envConfig{
		OutputBucket:       getEnv("OUTPUT_BUCKET", ""),
		OutputPrefix:       getEnv("OUTPUT_PREFIX", defaults.Output.Prefix),
		Compression:        getEnv("PARQUET_COMPRESSION", defaults.Output.Compression),
		CatalogType:        entity.CatalogType(getEnv("CATALOG_TYPE", string(defaults.Catalog.Type))),
		CrawlerName:        getEnv("CRAWLER_NAME", defaults.Catalog.JobName),
		CatalogFailOnError: getEnvBool("CATALOG_FAIL_ON_ERROR", false),
		PubsubProject:      getEnv("PUBSUB_PROJECT", ""),
		PubsubTopic:        getEnv("PUBSUB_TOPIC", ""),
		KafkaBootstrap:     getEnv("KAFKA_BOOTSTRAP", ""),
		KafkaTopic:         getEnv("KAFKA_TOPIC", ""),
		LogEventData:       getEnvBool("LOG_EVENT_DATA", false),
	}
}

func (e envConfig) orderEtlConfig() *orderetl.Config {
	config := orderetl.NewConfig()
	config.Output.Bucket = e.OutputBucket
	config.Output.Prefix = e.OutputPrefix
	config.Output.Compression = e.Compression
	config.Catalog.Type = e.CatalogType
	config.Catalog.JobName = e.CrawlerName
	config.Catalog.FailOnError = e.CatalogFailOnError
	config.Ops.LogEventData = e.LogEventData
	return config
}

// newRefresher creates the catalog refresher of the configured type, together with
// a func to release its resources.
func newRefresher(ctx context.Context, e envConfig, awsCfg aws.Config) (entity.CatalogRefresher, func(), error) {

	noop := func() {}

	switch e.CatalogType {
	case entity.CatalogGlue:
		r, err := xglue.NewRefresher(glue.NewFromConfig(awsCfg))
		if err != nil {
			return nil, noop, err
		}
		return r, noop, nil

	case entity.CatalogPubsub:
		if e.PubsubProject == "" || e.PubsubTopic == "" {
			return nil, noop, fmt.Errorf("PUBSUB_PROJECT and PUBSUB_TOPIC required for catalog type %s", e.CatalogType)
		}
		client, err := pubsub.NewClient(ctx, e.PubsubProject)
		if err != nil {
			return nil, noop, err
		}
		r, err := xpubsub.NewRefresher(xpubsub.NewTopic(client, e.PubsubTopic))
		if err != nil {
			client.Close()
			return nil, noop, err
		}
		return r, func() { r.Close(); client.Close() }, nil

	case entity.CatalogKafka:
		if e.KafkaBootstrap == "" || e.KafkaTopic == "" {
			return nil, noop, fmt.Errorf("KAFKA_BOOTSTRAP and KAFKA_TOPIC required for catalog type %s", e.CatalogType)
		}
		r, err := xkafka.NewRefresher(xkafka.NewConfig(e.KafkaBootstrap, e.KafkaTopic), nil)
		if err != nil {
			return nil, noop, err
		}
		return r, r.Close, nil

	case entity.CatalogNone:
		return entity.NoopRefresher{}, noop, nil
	}

	return nil, noop, fmt.Errorf("invalid catalog type: %s", e.CatalogType)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
