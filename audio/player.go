// Package audio plays an encoded soundtrack on the default output device.
//
// It is used only as a detached accompaniment to video playback: a [Player]
// blocks until the stream ends and has no relationship to the video clock.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var (
	// ErrUnsupportedCodec indicates a [Codec] the player cannot decode.
	ErrUnsupportedCodec = errors.New("unsupported audio codec")
	// ErrDecodeAudio indicates a blob that could not be decoded.
	ErrDecodeAudio = errors.New("decode audio")
	// ErrOutputDevice indicates the audio device could not be opened.
	ErrOutputDevice = errors.New("open audio device")
)

// Codec names an audio container format.
type Codec string

// Supported codecs.
const (
	CodecMP3 Codec = "mp3"
	CodecWAV Codec = "wav"
)

const defaultBuffer = 100 * time.Millisecond

// Player decodes and plays audio blobs.
//
// Create instances with [NewPlayer].
type Player struct {
	Logger *slog.Logger
	Codec  Codec
	// Buffer is the speaker buffer length. Larger buffers tolerate a busier
	// CPU at the cost of latency.
	Buffer time.Duration
}

// NewPlayer returns a [Player] for codec.
func NewPlayer(codec Codec, logger *slog.Logger) *Player {
	return &Player{
		Codec:  codec,
		Logger: logger,
		Buffer: defaultBuffer,
	}
}

// Decode decodes blob according to the player's codec.
func (p *Player) Decode(blob []byte) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	switch p.Codec {
	case CodecMP3, "":
		stream, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(blob)))
	case CodecWAV:
		stream, format, err = wav.Decode(bytes.NewReader(blob))
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedCodec, p.Codec)
	}

	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %w", ErrDecodeAudio, err)
	}

	return stream, format, nil
}

// Play decodes blob and plays it to the end, blocking until playback
// finishes.
func (p *Player) Play(blob []byte) error {
	stream, format, err := p.Decode(blob)
	if err != nil {
		return err
	}
	defer stream.Close() //nolint:errcheck // Closing a decoder over a byte slice.

	buffer := p.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	err = speaker.Init(format.SampleRate, format.SampleRate.N(buffer))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDevice, err)
	}
	defer speaker.Close()

	p.logger().Debug("playing audio",
		slog.String("codec", string(p.Codec)),
		slog.Int("sample_rate", int(format.SampleRate)),
		slog.Duration("length", format.SampleRate.D(stream.Len())),
	)

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}

func (p *Player) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}

	return p.Logger
}
