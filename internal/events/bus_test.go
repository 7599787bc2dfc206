package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var mu sync.Mutex
	var gotA, gotB []Event

	bus.Subscribe(func(e Event) {
		mu.Lock()
		gotA = append(gotA, e)
		mu.Unlock()
	})
	bus.Subscribe(func(e Event) {
		mu.Lock()
		gotB = append(gotB, e)
		mu.Unlock()
	})

	bus.Publish(Event{Type: EventBidSubmitted, PostingID: "p1"})
	bus.Publish(Event{Type: EventBidAccepted, PostingID: "p1"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(gotA) == 2 && len(gotB) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventBidSubmitted, gotA[0].Type)
	assert.Equal(t, EventBidAccepted, gotA[1].Type)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var mu sync.Mutex
	var got []Event

	unsub := bus.Subscribe(func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})

	bus.Publish(Event{Type: EventJobClosed, PostingID: "p1"})
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	unsub()
	bus.Publish(Event{Type: EventJobClosed, PostingID: "p2"})

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
}

func TestBus_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	done := make(chan struct{})
	go func() {
		bus.Publish(Event{Type: EventReviewSubmitted})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked with no subscribers")
	}
}

func TestBus_CloseWaitsForHandlers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var handled int

	bus.Subscribe(func(e Event) {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		handled++
		mu.Unlock()
	})

	bus.Publish(Event{Type: EventBidSubmitted})
	bus.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, handled)
}
