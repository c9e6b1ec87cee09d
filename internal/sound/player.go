package sound

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Compile-time interface check.
var _ domain.Cue = (*Player)(nil)

// Option configures the Player.
type Option func(*Player)

// WithBacklog sets how many cues may wait to be played. When the backlog
// is full the oldest waiting cue is dropped.
func WithBacklog(n int) Option {
	return func(p *Player) {
		p.queue.max = n
	}
}

// Player plays event cues through oto, one at a time, on its own
// goroutine. Play never blocks the caller.
type Player struct {
	ctx   *oto.Context
	log   *logger.Logger
	queue *backlog
	pcm   map[domain.EventKind][]byte

	mu     sync.Mutex
	active *oto.Player
}

// NewPlayer opens the audio device and renders every cue up front.
// Returns an error if the audio device is unavailable.
func NewPlayer(log *logger.Logger, opts ...Option) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	p := &Player{
		ctx:   ctx,
		log:   log,
		queue: newBacklog(4),
		pcm:   make(map[domain.EventKind][]byte),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, kind := range []domain.EventKind{
		domain.EventSpawned, domain.EventExpired, domain.EventFulfilled, domain.EventImpatient,
		domain.EventCollected, domain.EventWarning, domain.EventEnded,
	} {
		if notes := Melody(kind); notes != nil {
			p.pcm[kind] = Synth(notes, SampleRate)
		}
	}

	log.Debug("audio player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return p, nil
}

// Start begins the playback goroutine. It stops when ctx is cancelled.
func (p *Player) Start(ctx context.Context) {
	go p.loop(ctx)
	p.log.Info("sound cues started")
}

// Play queues the cue for ev. Events without a cue are ignored.
func (p *Player) Play(ctx context.Context, ev domain.Event) {
	if _, ok := p.pcm[ev.Kind]; !ok {
		return
	}
	if dropped := p.queue.push(ev.Kind); dropped {
		p.log.Debug("sound: backlog full, dropped oldest cue")
	}
}

// Stop interrupts the cue currently playing, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
	}
}

func (p *Player) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.Stop()
			p.log.Info("sound cues stopped")
			return
		case <-p.queue.notify:
			for {
				kind, ok := p.queue.pop()
				if !ok {
					break
				}
				p.playPCM(ctx, p.pcm[kind])
			}
		}
	}
}

// playPCM plays raw PCM synchronously.
func (p *Player) playPCM(ctx context.Context, pcm []byte) {
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()
	for player.IsPlaying() && ctx.Err() == nil {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	if err := player.Close(); err != nil {
		p.log.Warn("sound: closing player: %v", err)
	}
}

// backlog is a bounded FIFO of cues with a wake-up signal.
type backlog struct {
	mu     sync.Mutex
	items  []domain.EventKind
	max    int
	notify chan struct{}
}

func newBacklog(max int) *backlog {
	return &backlog{max: max, notify: make(chan struct{}, 1)}
}

// push appends kind, dropping the oldest entry when full. It reports
// whether something was dropped.
func (b *backlog) push(kind domain.EventKind) bool {
	b.mu.Lock()
	dropped := false
	if b.max > 0 && len(b.items) >= b.max {
		b.items = b.items[1:]
		dropped = true
	}
	b.items = append(b.items, kind)
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default: // already signaled
	}
	return dropped
}

func (b *backlog) pop() (domain.EventKind, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return 0, false
	}
	kind := b.items[0]
	b.items = b.items[1:]
	return kind, true
}

func (b *backlog) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
