// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package bus

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/playbackctl/internal/metrics"
)

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, counter.Write(metric))
	return metric.GetCounter().GetValue()
}

func TestMemoryBusDelivers(t *testing.T) {
	b := NewMemoryBus()
	sub, err := b.Subscribe(context.Background(), TopicState)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	require.NoError(t, b.Publish(context.Background(), TopicState, "hello"))
	select {
	case msg := <-sub.C():
		require.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestMemoryBusPublishContextTimeoutIncrementsDropMetrics(t *testing.T) {
	b := NewMemoryBusWithBuffer(2)
	sub, err := b.Subscribe(context.Background(), "topic")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	for i := 0; i < cap(sub.C()); i++ {
		require.NoError(t, b.Publish(context.Background(), "topic", "msg"))
	}

	initial := getCounterValue(t, metrics.BusDroppedTotal.WithLabelValues("topic", "timeout"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = b.Publish(ctx, "topic", "blocked")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.Greater(t, getCounterValue(t, metrics.BusDroppedTotal.WithLabelValues("topic", "timeout")), initial)
}

func TestMemoryBusTryPublishDropsWhenFull(t *testing.T) {
	b := NewMemoryBusWithBuffer(1)
	sub, err := b.Subscribe(context.Background(), "full-topic")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })

	initial := getCounterValue(t, metrics.BusDroppedTotal.WithLabelValues("full-topic", "full"))
	b.TryPublish("full-topic", 1)
	b.TryPublish("full-topic", 2)
	require.Equal(t, initial+1, getCounterValue(t, metrics.BusDroppedTotal.WithLabelValues("full-topic", "full")))
	require.Equal(t, 1, <-sub.C())
}

func TestMemoryBusPublishRejectsNilContext(t *testing.T) {
	b := NewMemoryBus()
	//nolint:staticcheck // exercising the nil guard
	err := b.Publish(nil, "topic", "msg")
	require.ErrorContains(t, err, "context is nil")
}

func TestMemoryBusCloseIsIdempotent(t *testing.T) {
	b := NewMemoryBus()
	sub, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, ok := <-sub.C()
	require.False(t, ok)
	require.NoError(t, b.Publish(context.Background(), "t", "after-close"))
}
