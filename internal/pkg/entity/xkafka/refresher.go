package xkafka

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/teltech/logger"
	"github.com/zpiroux/orderetl/entity"
)

var log *logger.Log

func init() {
	log = logger.New()
}

// Refresher implements entity.CatalogRefresher by producing a refresh request
// event to a Kafka topic, keyed by job name. Delivery is synchronous.
type Refresher struct {
	config   *Config
	producer Producer
	now      func() time.Time
}

func NewRefresher(config *Config, pf ProducerFactory) (*Refresher, error) {

	if config == nil || config.topic == "" {
		return nil, errors.New("no topic provided when creating kafka refresher")
	}
	if isNil(pf) {
		pf = DefaultProducerFactory{}
	}

	kconfig := make(kafka.ConfigMap)
	for k, v := range config.configMap {
		kconfig[k] = v
	}

	producer, err := pf.NewProducer(&kconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %v", err)
	}

	r := &Refresher{
		config:   config,
		producer: producer,
		now:      time.Now,
	}
	log.Infof(r.lgprfx()+"created producer with config: %s", config)
	return r, nil
}

func (r *Refresher) StartRefresh(ctx context.Context, jobName string) error {

	value, err := entity.NewRefreshRequest(jobName, r.now())
	if err != nil {
		return fmt.Errorf(r.lgprfx()+"could not create refresh request: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &r.config.topic, Partition: kafka.PartitionAny},
		Key:            []byte(jobName),
		Value:          value,
	}

	deliveryChan := make(chan kafka.Event, 1)
	if err = r.producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf(r.lgprfx()+"kafka.producer.Produce() failed with err: %w", err)
	}

	timeout := time.Duration(r.config.flushTimeoutMs) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return fmt.Errorf(r.lgprfx()+"no delivery report for refresh request within %v", timeout)
	case event := <-deliveryChan:
		switch m := event.(type) {
		case *kafka.Message:
			if m.TopicPartition.Error != nil {
				return fmt.Errorf(r.lgprfx()+"publish failed with err: %w", m.TopicPartition.Error)
			}
			log.Infof(r.lgprfx()+"refresh request for %s published to %s [%d] at offset: %v",
				jobName, *m.TopicPartition.Topic, m.TopicPartition.Partition, m.TopicPartition.Offset)
			return nil
		case kafka.Error:
			return fmt.Errorf(r.lgprfx()+"Kafka error in producer, code: %v, event: %v", m.Code(), m)
		default:
			return fmt.Errorf(r.lgprfx()+"unexpected Kafka info event from Kafka Producer report: %v", m)
		}
	}
}

// Close flushes and closes the producer.
func (r *Refresher) Close() {
	if r.producer == nil {
		return
	}
	if unflushed := r.producer.Flush(r.config.flushTimeoutMs); unflushed > 0 {
		log.Errorf(r.lgprfx()+"%d messages did not get flushed during close", unflushed)
	}
	r.producer.Close()
	r.producer = nil
}

func (r *Refresher) lgprfx() string {
	return "[xkafka.refresher] "
}

func isNil(v any) bool {
	return v == nil || (reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
