package envconfig

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Enabled         bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers         []string `env:"KAFKA_BROKERS"`
	SnapshotTopic   string   `env:"KAFKA_SNAPSHOT_TOPIC" envDefault:"spares.snapshot.loaded"`
	SourceTopic     string   `env:"KAFKA_SOURCE_TOPIC" envDefault:"spares.source.updated"`
	ConsumerGroupID string   `env:"KAFKA_CONSUMER_GROUP_ID" envDefault:"spares"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if raw.Enabled && len(raw.Brokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Enabled() bool           { return cfg.raw.Enabled }
func (cfg *kafka) Brokers() []string       { return cfg.raw.Brokers }
func (cfg *kafka) SnapshotTopic() string   { return cfg.raw.SnapshotTopic }
func (cfg *kafka) SourceTopic() string     { return cfg.raw.SourceTopic }
func (cfg *kafka) ConsumerGroupID() string { return cfg.raw.ConsumerGroupID }

func (cfg *kafka) ConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	// only updates published after startup matter
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	return config
}

func (cfg *kafka) ProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
