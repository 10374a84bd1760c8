package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type GRPC interface {
	Enabled() bool
	Address() string
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Source interface {
	Kind() string
	Path() string
	Sheet() string
	StableIDs() bool
	Watch() bool
	WatchDebounce() time.Duration
}

type Sync interface {
	URL() string
	Interval() time.Duration
	Timeout() time.Duration
	Retries() int
	RetryDelay() time.Duration
	RatePerMinute() int
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	SnapshotTopic() string
	SourceTopic() string
	ConsumerGroupID() string
	ConsumerConfig() *sarama.Config
	ProducerConfig() *sarama.Config
}

type Database interface {
	DatabaseName() string
	DSN() string
}
