package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubLateSubscriberReceivesLastValue(t *testing.T) {
	h := NewHub[int]()
	h.Publish(1)
	h.Publish(2)

	ch, cancel := h.Subscribe()
	defer cancel()

	assert.Equal(t, 2, <-ch)
}

func TestHubSubscriberBeforeFirstPublishGetsNothingBuffered(t *testing.T) {
	h := NewHub[int]()

	ch, cancel := h.Subscribe()
	defer cancel()

	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v before any publish", v)
	default:
	}
}

func TestHubSlowSubscriberGetsLatestOnly(t *testing.T) {
	h := NewHub[int]()
	ch, cancel := h.Subscribe()
	defer cancel()

	// Subscriber never reads between publishes; the pending value is
	// replaced rather than blocking the publisher.
	h.Publish(1)
	h.Publish(2)
	h.Publish(3)

	assert.Equal(t, 3, <-ch)
}

func TestHubFansOutToAllSubscribers(t *testing.T) {
	h := NewHub[string]()
	chA, cancelA := h.Subscribe()
	defer cancelA()
	chB, cancelB := h.Subscribe()
	defer cancelB()

	h.Publish("snapshot")

	assert.Equal(t, "snapshot", <-chA)
	assert.Equal(t, "snapshot", <-chB)
}

func TestHubCancelClosesChannelAndStopsDelivery(t *testing.T) {
	h := NewHub[int]()
	ch, cancel := h.Subscribe()

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	require.Equal(t, 0, h.SubscriberCount())

	// Publishing after cancel must not panic.
	h.Publish(42)
}

func TestHubCancelOneLeavesOthersSubscribed(t *testing.T) {
	h := NewHub[int]()
	_, cancelA := h.Subscribe()
	chB, cancelB := h.Subscribe()
	defer cancelB()

	cancelA()
	h.Publish(7)

	assert.Equal(t, 7, <-chB)
	assert.Equal(t, 1, h.SubscriberCount())
}
