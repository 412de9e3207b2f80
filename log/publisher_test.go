package log_test

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/log"
)

func drain(sub *log.Subscription) []string {
	var got []string

	for {
		select {
		case rec, ok := <-sub.C():
			if !ok {
				return got
			}

			got = append(got, string(rec))
		default:
			return got
		}
	}
}

func TestPublisherBacklog(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    []log.PublisherOption
		writes  []string
		want    []string
		backlog int
	}{
		"default": {
			writes:  []string{"a", "b"},
			want:    []string{"a", "b"},
			backlog: log.DefaultBacklog,
		},
		"keeps newest when full": {
			opts:    []log.PublisherOption{log.WithBufferSize(2)},
			writes:  []string{"a", "b", "c", "d"},
			want:    []string{"c", "d"},
			backlog: 2,
		},
		"zero becomes one": {
			opts:    []log.PublisherOption{log.WithBufferSize(0)},
			writes:  []string{"a", "b", "c"},
			want:    []string{"c"},
			backlog: 1,
		},
		"negative becomes one": {
			opts:    []log.PublisherOption{log.WithBufferSize(-3)},
			backlog: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := log.NewPublisher(tc.opts...)
			sub := pub.Subscribe()

			for _, w := range tc.writes {
				n, err := pub.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}

			assert.Equal(t, tc.backlog, cap(sub.C()))
			assert.Equal(t, tc.want, drain(sub))
		})
	}
}

func TestPublisherFanOut(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	first := pub.Subscribe()
	second := pub.Subscribe()

	buf := []byte("frame 1 late")
	_, err := pub.Write(buf)
	require.NoError(t, err)

	buf[0] = 'X'

	assert.Equal(t, []string{"frame 1 late"}, drain(first))
	assert.Equal(t, []string{"frame 1 late"}, drain(second))
	assert.Equal(t, 2, pub.Subscribers())
}

func TestPublisherWithoutSubscribers(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()

	n, err := pub.Write([]byte("nobody listens"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Zero(t, pub.Subscribers())
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()
	other := pub.Subscribe()

	_, err := pub.Write([]byte("queued"))
	require.NoError(t, err)

	sub.Close()
	sub.Close()

	_, err = pub.Write([]byte("after"))
	require.NoError(t, err)

	rec, ok := <-sub.C()
	require.True(t, ok)
	assert.Equal(t, "queued", string(rec))

	_, ok = <-sub.C()
	assert.False(t, ok)

	assert.Equal(t, 1, pub.Subscribers())
	assert.Equal(t, []string{"queued", "after"}, drain(other))
}

func TestPublisherClose(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	_, err := pub.Write([]byte("last words"))
	require.NoError(t, err)

	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	n, err := pub.Write([]byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	assert.Equal(t, []string{"last words"}, drain(sub))
	assert.Zero(t, pub.Subscribers())

	// Closing a subscription after its publisher must not panic.
	sub.Close()

	late := pub.Subscribe()
	_, ok := <-late.C()
	assert.False(t, ok)
}

func TestPublisherConcurrentUse(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher(log.WithBufferSize(4))
	logger := slog.New(log.NewHandler(pub, log.LevelDebug, log.FormatJSON))

	var wg sync.WaitGroup

	for range 4 {
		wg.Go(func() {
			for i := range 50 {
				logger.Debug("frame", slog.Int("index", i))
			}
		})
	}

	for range 4 {
		wg.Go(func() {
			sub := pub.Subscribe()
			for range 10 {
				select {
				case <-sub.C():
				default:
				}
			}

			sub.Close()
		})
	}

	wg.Wait()
	require.NoError(t, pub.Close())
	assert.Zero(t, pub.Subscribers())
}

func TestPublisherCarriesRecords(t *testing.T) {
	t.Parallel()

	pub := log.NewPublisher()
	t.Cleanup(func() { require.NoError(t, pub.Close()) })

	sub := pub.Subscribe()
	logger := slog.New(log.NewHandler(pub, log.LevelInfo, log.FormatJSON))

	logger.Info("decoded video", slog.Int("frames", 90))
	logger.Warn("audio unavailable")

	got := drain(sub)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], `"frames":90`)
	assert.Contains(t, got[1], `"msg":"audio unavailable"`)
}
