package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Backend interface {
	APIURL() string
	ImageURL() string
	APIKey() string
	Timeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Session interface {
	Key() []byte
	MaxAge() time.Duration
	Secure() bool
	SweepInterval() time.Duration
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	ActivityTopic() string
	ActivityProducerConfig() *sarama.Config
}
