package log

import "sync"

// DefaultBacklog is the number of undelivered records a [Subscription]
// holds before the oldest is discarded.
const DefaultBacklog = 64

// Publisher is an [io.Writer] that hands every written record to each of
// its subscribers.
//
// A slog handler performs one Write per record, so each subscriber receives
// whole records. Write never blocks on a slow subscriber: once a
// subscription's backlog is full its oldest record is discarded. Safe for
// concurrent use.
type Publisher struct {
	subs    map[*Subscription]struct{}
	backlog int
	mu      sync.Mutex
	closed  bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the backlog of subscriptions created afterwards.
// Values below 1 become 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.backlog = max(n, 1)
	}
}

// NewPublisher returns an open [Publisher] with a backlog of
// [DefaultBacklog] unless overridden.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		subs:    map[*Subscription]struct{}{},
		backlog: DefaultBacklog,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write delivers a copy of b to every subscriber. It always reports
// len(b), nil, including after [Publisher.Close].
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.subs) == 0 {
		return len(b), nil
	}

	record := append([]byte(nil), b...)
	for sub := range p.subs {
		sub.offer(record)
	}

	return len(b), nil
}

// Subscribe registers a new [Subscription]. Subscribing to a closed
// Publisher yields a subscription whose channel is already closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		pub: p,
		ch:  make(chan []byte, p.backlog),
	}

	if p.closed {
		sub.done = true
		close(sub.ch)

		return sub
	}

	p.subs[sub] = struct{}{}

	return sub
}

// Subscribers reports how many subscriptions are still receiving records.
func (p *Publisher) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.subs)
}

// Close ends every subscription. Records already queued remain readable.
// Closing twice is a no-op.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for sub := range p.subs {
		sub.end()
	}

	clear(p.subs)

	return nil
}

// Subscription receives records from a [Publisher].
type Subscription struct {
	pub  *Publisher
	ch   chan []byte
	done bool // guarded by pub.mu
}

// C returns the channel delivering records. It is closed when the
// subscription or its publisher is closed. Receivers must not modify the
// records.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close stops delivery and closes the channel. Records already queued
// remain readable. Closing twice is a no-op.
func (s *Subscription) Close() {
	s.pub.mu.Lock()
	defer s.pub.mu.Unlock()

	delete(s.pub.subs, s)
	s.end()
}

// offer queues record, discarding the oldest queued record when full.
// Callers hold pub.mu, which makes the publisher the only sender.
func (s *Subscription) offer(record []byte) {
	select {
	case s.ch <- record:
		return
	default:
	}

	select {
	case <-s.ch:
	default:
	}

	s.ch <- record
}

func (s *Subscription) end() {
	if s.done {
		return
	}

	s.done = true
	close(s.ch)
}
