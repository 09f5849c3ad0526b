package xkafka

import (
	"fmt"
)

type ConfigMap map[string]any

type Config struct {
	topic          string    // topic to publish refresh requests to
	flushTimeoutMs int       // max wait for delivery report and flush on close
	configMap      ConfigMap // supports all possible Kafka producer properties
}

const DefaultFlushTimeoutMs = 10000

func NewConfig(bootstrapServers string, topic string) *Config {
	c := &Config{
		topic:          topic,
		flushTimeoutMs: DefaultFlushTimeoutMs,
		configMap:      make(ConfigMap),
	}
	if bootstrapServers != "" {
		c.configMap["bootstrap.servers"] = bootstrapServers
	}
	return c
}

func (c *Config) String() string {
	return fmt.Sprintf("topic: %s, flushTimeoutMs: %d, props: %+v",
		c.topic, c.flushTimeoutMs, displayConfig(c.configMap))
}

func (c *Config) SetFlushTimeout(timeoutMs int) {
	c.flushTimeoutMs = timeoutMs
}

func (c *Config) SetKafkaProperty(prop string, value any) {
	c.configMap[prop] = value
}

func (c *Config) SetProps(props ConfigMap) {
	for k, v := range props {
		c.configMap[k] = v
	}
}

func displayConfig(in ConfigMap) ConfigMap {
	out := make(ConfigMap)
	for k, v := range in {
		if k != "sasl.password" {
			out[k] = v
		}
	}
	return out
}
