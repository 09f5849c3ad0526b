package xkafka

import "github.com/confluentinc/confluent-kafka-go/kafka"

type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

type ProducerFactory interface {
	NewProducer(conf *kafka.ConfigMap) (Producer, error)
}

type DefaultProducerFactory struct{}

func (d DefaultProducerFactory) NewProducer(conf *kafka.ConfigMap) (Producer, error) {
	return kafka.NewProducer(conf)
}
