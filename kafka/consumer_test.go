package kafka

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingInvalidator struct {
	calls atomic.Int32
}

func (c *countingInvalidator) InvalidateProducts(context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestConsumer_ProductUpdatedInvalidatesCache(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("github.com/rcrowley/go-metrics.(*meterArbiter).tick"))

	mc := mocks.NewConsumer(t, nil)
	mc.ExpectConsumePartition(TopicProductUpdated, 0, sarama.OffsetNewest).
		YieldMessage(&sarama.ConsumerMessage{Value: []byte(`{"event_type":"product.updated","data":{"id":4}}`)}).
		YieldMessage(&sarama.ConsumerMessage{Value: []byte(`not json`)}).
		YieldMessage(&sarama.ConsumerMessage{Value: []byte(`{"event_type":"product.updated","data":{"id":5}}`)})

	inv := &countingInvalidator{}
	c := NewConsumerFromSarama(mc)
	require.NoError(t, c.Consume(TopicProductUpdated, HandleProductUpdated(inv)))

	require.Eventually(t, func() bool {
		return inv.calls.Load() == 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())
}

func TestConsumer_CloseWithoutMessages(t *testing.T) {
	mc := mocks.NewConsumer(t, nil)
	mc.ExpectConsumePartition(TopicProductUpdated, 0, sarama.OffsetNewest)

	c := NewConsumerFromSarama(mc)
	require.NoError(t, c.Consume(TopicProductUpdated, func([]byte) {}))
	require.NoError(t, c.Close())
}
