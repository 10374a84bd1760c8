package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/spare-parts/platform/kafka"
	"github.com/you-humble/spare-parts/platform/logger"
)

const topic = "spares.snapshot.loaded"

func TestProducerSend(t *testing.T) {
	t.Parallel()

	t.Run("delivers key, value and headers to the configured topic", func(t *testing.T) {
		t.Parallel()

		sp := mocks.NewSyncProducer(t, nil)
		sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			if msg.Topic != topic {
				return errors.New("unexpected topic " + msg.Topic)
			}
			key, _ := msg.Key.Encode()
			if string(key) != "evt-1" {
				return errors.New("unexpected key " + string(key))
			}
			if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != kafka.HeaderEventType ||
				string(msg.Headers[0].Value) != "snapshot_loaded" {
				return errors.New("unexpected headers")
			}
			return nil
		})

		p := NewProducer(sp, topic, logger.NoopLogger{})
		require.NoError(t, p.Send(context.Background(), []byte("evt-1"), []byte("payload"),
			kafka.Header{Key: kafka.HeaderEventType, Value: "snapshot_loaded"},
		))
		require.NoError(t, sp.Close())
	})

	t.Run("no headers", func(t *testing.T) {
		t.Parallel()

		sp := mocks.NewSyncProducer(t, nil)
		sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			if len(msg.Headers) != 0 {
				return errors.New("expected no headers")
			}
			return nil
		})

		p := NewProducer(sp, topic, logger.NoopLogger{})
		require.NoError(t, p.Send(context.Background(), nil, []byte("payload")))
		require.NoError(t, sp.Close())
	})

	t.Run("surfaces broker errors", func(t *testing.T) {
		t.Parallel()

		sp := mocks.NewSyncProducer(t, nil)
		sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		p := NewProducer(sp, topic, logger.NoopLogger{})
		err := p.Send(context.Background(), []byte("evt-2"), []byte("payload"))
		assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		require.NoError(t, sp.Close())
	})
}
