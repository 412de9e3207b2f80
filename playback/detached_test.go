package playback_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/asciivid/log"
	"go.jacobcolvin.com/asciivid/playback"
)

func subscribedLogger(t *testing.T) (*slog.Logger, *log.Subscription) {
	t.Helper()

	pub := log.NewPublisher()
	sub := pub.Subscribe()

	t.Cleanup(func() {
		sub.Close()
		require.NoError(t, pub.Close())
	})

	return slog.New(slog.NewTextHandler(pub, &slog.HandlerOptions{Level: slog.LevelDebug})), sub
}

func nextEntry(t *testing.T, sub *log.Subscription) string {
	t.Helper()

	select {
	case b := <-sub.C():
		return string(b)
	case <-time.After(5 * time.Second):
		t.Fatal("no log entry")
	}

	return ""
}

func TestDetachDoesNotJoin(t *testing.T) {
	t.Parallel()

	logger, sub := subscribedLogger(t)
	started := make(chan struct{})
	release := make(chan struct{})

	playback.Detach(logger, "blocker", func() error {
		close(started)
		<-release

		return nil
	})

	<-started
	close(release)

	assert.Contains(t, nextEntry(t, sub), "detached task finished")
}

func TestDetachLogsFailures(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		fn   func() error
		want []string
	}{
		"error": {
			fn:   func() error { return errors.New("no audio device") },
			want: []string{"detached task failed", "task=audio", "no audio device"},
		},
		"panic": {
			fn:   func() error { panic("decoder exploded") },
			want: []string{"detached task panicked", "task=audio", "decoder exploded"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			logger, sub := subscribedLogger(t)

			playback.Detach(logger, "audio", tc.fn)

			entry := nextEntry(t, sub)
			for _, w := range tc.want {
				assert.Contains(t, entry, w)
			}
		})
	}
}

func TestPlayWith(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		accompaniment func(release <-chan struct{}) error
	}{
		"accompaniment outlives playback": {
			accompaniment: func(release <-chan struct{}) error {
				<-release

				return nil
			},
		},
		"accompaniment fails immediately": {
			accompaniment: func(<-chan struct{}) error {
				return errors.New("no audio device")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			release := make(chan struct{})
			t.Cleanup(func() { close(release) })

			var buf bytes.Buffer

			clock := &fakeClock{}
			logger, _ := subscribedLogger(t)
			sched := playback.NewScheduler(&buf, playback.WithClock(clock), playback.WithLogger(logger))

			err := sched.PlayWith(sequence(t, 10, "a", "b"), func() error {
				return tc.accompaniment(release)
			})
			require.NoError(t, err)
			assert.Equal(t, playback.StateDone, sched.State())
			assert.Equal(t, 2, sched.Emitted())
		})
	}
}
