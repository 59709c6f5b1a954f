package playback

import (
	"testing"
	"time"
)

func TestSubscriptionDeliversInOrder(t *testing.T) {
	sub := NewSubscription()
	defer sub.Close()

	sub.Publish(StateChange{Previous: StateStopped, Current: StatePlaying})
	sub.Publish(PositionChange{Position: time.Second})
	sub.Publish(EndOfQueue{})

	if _, ok := (<-sub.C).(StateChange); !ok {
		t.Fatal("expected StateChange first")
	}
	if _, ok := (<-sub.C).(PositionChange); !ok {
		t.Fatal("expected PositionChange second")
	}
	if _, ok := (<-sub.C).(EndOfQueue); !ok {
		t.Fatal("expected EndOfQueue last")
	}
}

func TestSubscriptionDropsOldestWhenFull(t *testing.T) {
	sub := NewSubscription()
	defer sub.Close()

	total := eventBufferSize + 10
	for i := 0; i < total; i++ {
		sub.Publish(PositionChange{Position: time.Duration(i)})
	}

	// The ten oldest events were evicted; the survivors arrive in order.
	var got []time.Duration
	for len(sub.ch) > 0 {
		got = append(got, (<-sub.C).(PositionChange).Position)
	}
	if len(got) != eventBufferSize {
		t.Fatalf("got %d events, want %d", len(got), eventBufferSize)
	}
	if got[0] != 10 {
		t.Fatalf("first surviving event = %d, want 10", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i] != got[i-1]+1 {
			t.Fatalf("gap in surviving events at %d: %v", i, got)
		}
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	sub := NewSubscription()
	sub.Close()
	sub.Close()

	select {
	case <-sub.Done:
	default:
		t.Fatal("Done should be closed")
	}
}
