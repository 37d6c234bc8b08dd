package service

import (
	"testing"
	"time"

	"currency-exchange-gateway/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHub_PublishSubscribe(t *testing.T) {
	hub := NewEventHub()
	defer hub.Close()

	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(domain.Event{Type: domain.EventRatesUpdated})

	select {
	case ev := <-ch:
		assert.Equal(t, domain.EventRatesUpdated, ev.Type)
		assert.False(t, ev.At.IsZero(), "publish stamps the event time")
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestEventHub_MultipleSubscribers(t *testing.T) {
	hub := NewEventHub()
	defer hub.Close()

	ch1, cancel1 := hub.Subscribe()
	defer cancel1()
	ch2, cancel2 := hub.Subscribe()
	defer cancel2()

	hub.Publish(domain.Event{Type: domain.EventLoadingChanged})

	for _, ch := range []<-chan domain.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, domain.EventLoadingChanged, ev.Type)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed event")
		}
	}
}

func TestEventHub_CancelStopsDelivery(t *testing.T) {
	hub := NewEventHub()
	defer hub.Close()

	ch, cancel := hub.Subscribe()
	cancel()

	// Channel is closed after cancel.
	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	hub.Publish(domain.Event{Type: domain.EventRatesUpdated})
}

func TestEventHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewEventHub()
	defer hub.Close()

	_, cancel := hub.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Publish(domain.Event{Type: domain.EventRatesUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a full subscriber")
	}
}

func TestEventHub_CancelTwiceIsSafe(t *testing.T) {
	hub := NewEventHub()
	_, cancel := hub.Subscribe()
	cancel()
	require.NotPanics(t, cancel)
}
