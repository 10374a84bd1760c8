package srcconsumer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/service/mocks"
	"github.com/you-humble/spare-parts/platform/kafka"
)

type fakeConsumer struct {
	msgs []kafka.Message
	errs []error
}

func (c *fakeConsumer) Consume(ctx context.Context, handler kafka.MessageHandler) error {
	for _, m := range c.msgs {
		c.errs = append(c.errs, handler(ctx, m))
	}
	return nil
}

func TestSourceUpdatedConsume(t *testing.T) {
	t.Parallel()

	syncer := mocks.NewMockSyncer(t)
	syncer.On("Sync", mock.Anything).Return(model.SyncResult{Snapshot: &model.Snapshot{}}, nil).Once()
	syncer.On("Sync", mock.Anything).Return(model.SyncResult{}, model.ErrSyncInProgress).Once()
	syncer.On("Sync", mock.Anything).Return(model.SyncResult{}, errors.New("download failed")).Once()

	c := &fakeConsumer{msgs: []kafka.Message{
		{Topic: "inventory.source.updated", Offset: 1},
		{Topic: "inventory.source.updated", Offset: 2},
		{Topic: "inventory.source.updated", Offset: 3},
	}}

	err := NewSourceConsumer(c, syncer).RunSourceUpdatedConsume(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, c.errs[0])
	assert.NoError(t, c.errs[1])
	assert.ErrorContains(t, c.errs[2], "download failed")
}
