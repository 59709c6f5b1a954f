package playback

const eventBufferSize = 64

// Subscription delivers playback events to one subscriber over a single
// ordered channel. Delivery never blocks the producer: when the buffer is
// full the oldest pending event is dropped to make room, so a slow
// subscriber sees a gap in history rather than stalling playback.
type Subscription struct {
	C    <-chan Event
	Done <-chan struct{}

	ch     chan Event
	doneCh chan struct{}
}

// NewSubscription creates a subscription with a bounded event buffer.
func NewSubscription() *Subscription {
	s := &Subscription{
		ch:     make(chan Event, eventBufferSize),
		doneCh: make(chan struct{}),
	}
	s.C = s.ch
	s.Done = s.doneCh
	return s
}

// Publish enqueues an event, evicting the oldest pending one if the
// buffer is full. It must only be called from a single goroutine.
func (s *Subscription) Publish(ev Event) {
	for {
		select {
		case s.ch <- ev:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Close signals the subscriber to stop reading.
func (s *Subscription) Close() {
	select {
	case <-s.doneCh:
	default:
		close(s.doneCh)
	}
}
