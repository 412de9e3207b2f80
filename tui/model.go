package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/asciivid/frames"
	"go.jacobcolvin.com/asciivid/log"
	"go.jacobcolvin.com/asciivid/pipeline"
	"go.jacobcolvin.com/asciivid/playback"
	"go.jacobcolvin.com/asciivid/render"
)

// TickMsg advances video playback by one frame.
type TickMsg struct{}

// LogMsg carries one log record for the status line.
type LogMsg struct {
	Entry []byte
}

// Option configures a [Model].
type Option func(*Model)

// WithLoop restarts videos from the first frame when they end.
func WithLoop(loop bool) Option {
	return func(m *Model) {
		m.loop = loop
	}
}

// WithLogs shows records from sub in the status line.
func WithLogs(sub *log.Subscription) Option {
	return func(m *Model) {
		m.logs = sub.C()
	}
}

// WithAutoSize re-fits stills to the window on every resize.
func WithAutoSize(auto bool) Option {
	return func(m *Model) {
		m.autoSize = auto
	}
}

// Model is the viewer state.
//
// Create instances with [NewImage] or [NewVideo].
type Model struct {
	img      image.Image
	logs     <-chan []byte
	frames   []string
	settings render.Settings
	still    string
	status   string
	interval time.Duration
	index    int
	width    int
	loop     bool
	done     bool
	paused   bool
	autoSize bool
	// ticking is set while a TickMsg is scheduled and not yet delivered.
	ticking bool
}

// NewImage returns a viewer for a still image rendered with s.
func NewImage(img image.Image, s render.Settings, opts ...Option) *Model {
	m := &Model{img: img, settings: s.Clone()}
	for _, opt := range opts {
		opt(m)
	}

	m.still = pipeline.RenderImage(m.img, m.settings)

	return m
}

// NewVideo returns a viewer for the frames of seq. The sequence is read, not
// drained.
func NewVideo(seq *frames.Sequence, opts ...Option) *Model {
	m := &Model{
		frames:   make([]string, 0, seq.Len()),
		interval: playback.Budget(seq.FPS()),
	}
	for _, f := range seq.Frames() {
		m.frames = append(m.frames, f)
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init starts playback and log delivery.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitLog())
}

// Update handles keys, resizes, ticks and log records.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p", "space", " ":
			m.paused = !m.paused
			if !m.paused && !m.ticking {
				return m, m.tick()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

		if m.img != nil && m.autoSize {
			m.settings = m.settings.WithSize(render.Size{
				W: max(1, msg.Width/2),
				H: max(1, msg.Height-1),
			})
			m.still = pipeline.RenderImage(m.img, m.settings)
		}

	case TickMsg:
		m.ticking = false

		if m.paused || m.done || len(m.frames) <= 1 {
			return m, nil
		}

		m.index++

		if m.index >= len(m.frames) {
			if !m.loop {
				m.index = len(m.frames) - 1
				m.done = true

				return m, nil
			}

			m.index = 0
		}

		return m, m.tick()

	case LogMsg:
		m.status = statusLine(msg.Entry)

		return m, m.waitLog()
	}

	return m, nil
}

// View renders the current frame and the status line.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Frame())
	v.AltScreen = true

	return v
}

// Frame returns the screen content: the current frame followed by the
// status line, if any.
func (m *Model) Frame() string {
	frame := m.still
	if m.img == nil && len(m.frames) > 0 {
		frame = m.frames[m.index]
	}

	if m.status == "" {
		return frame
	}

	status := m.status
	if m.width > 0 && len([]rune(status)) > m.width {
		status = string([]rune(status)[:m.width])
	}

	return frame + "\n" + status
}

// Index returns the current video frame index.
func (m *Model) Index() int {
	return m.index
}

// Done reports whether a non-looping video reached its last frame.
func (m *Model) Done() bool {
	return m.done
}

// Paused reports whether playback is paused.
func (m *Model) Paused() bool {
	return m.paused
}

func (m *Model) tick() tea.Cmd {
	if m.img != nil || len(m.frames) <= 1 || m.done {
		return nil
	}

	m.ticking = true

	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m *Model) waitLog() tea.Cmd {
	if m.logs == nil {
		return nil
	}

	logs := m.logs

	return func() tea.Msg {
		entry, ok := <-logs
		if !ok {
			return nil
		}

		return LogMsg{Entry: entry}
	}
}

// statusLine condenses a JSON log record to "LEVEL message". Anything else
// is shown as is.
func statusLine(entry []byte) string {
	var rec struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}

	err := json.Unmarshal(entry, &rec)
	if err != nil || rec.Msg == "" {
		return strings.TrimSpace(string(entry))
	}

	return strings.TrimSpace(rec.Level + " " + rec.Msg)
}

// Run shows m until the user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}

	return nil
}
