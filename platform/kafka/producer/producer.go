package producer

import (
	"context"
	"encoding/hex"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/you-humble/spare-parts/platform/kafka"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

// producer publishes every record to one topic through a synchronous sarama producer.
type producer struct {
	sp     sarama.SyncProducer
	topic  string
	logger Logger
}

func NewProducer(syncProducer sarama.SyncProducer, topic string, logger Logger) *producer {
	return &producer{
		sp:     syncProducer,
		topic:  topic,
		logger: logger,
	}
}

// Send blocks until the broker acknowledges the record.
func (p *producer) Send(ctx context.Context, key, value []byte, headers ...kafka.Header) error {
	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.ByteEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: recordHeaders(headers),
	}

	partition, offset, err := p.sp.SendMessage(msg)
	if err != nil {
		p.logger.Error(ctx, "Failed to publish record",
			zap.String("topic", p.topic),
			zap.String("key", hex.EncodeToString(key)),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info(ctx, "Record published",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("key", hex.EncodeToString(key)),
		zap.Int("bytes", len(value)),
	)

	return nil
}

func recordHeaders(headers []kafka.Header) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}

	out := make([]sarama.RecordHeader, 0, len(headers))
	for _, h := range headers {
		out = append(out, sarama.RecordHeader{Key: []byte(h.Key), Value: []byte(h.Value)})
	}
	return out
}
