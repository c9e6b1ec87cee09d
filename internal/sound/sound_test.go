package sound

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

func TestSynthLength(t *testing.T) {
	notes := []Note{{440, 100 * time.Millisecond}, {0, 50 * time.Millisecond}}
	pcm := Synth(notes, SampleRate)

	want := (SampleRate/10 + SampleRate/20) * 2
	if len(pcm) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(pcm))
	}

	// The rest is silent and the tone starts from zero.
	restStart := SampleRate / 10 * 2
	for i := restStart; i < len(pcm); i += 2 {
		if v := binary.LittleEndian.Uint16(pcm[i:]); v != 0 {
			t.Fatalf("rest sample %d is %d", i/2, int16(v))
		}
	}
	if v := binary.LittleEndian.Uint16(pcm); v != 0 {
		t.Fatalf("expected faded-in first sample, got %d", int16(v))
	}
}

func TestSynthStaysInRange(t *testing.T) {
	pcm := Synth([]Note{{1000, 20 * time.Millisecond}}, SampleRate)
	peak := 0
	for i := 0; i < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak == 0 || peak > int(amplitude)+1 {
		t.Fatalf("peak %d outside (0, %d]", peak, int(amplitude))
	}
}

func TestMelodies(t *testing.T) {
	loud := []domain.EventKind{
		domain.EventSpawned, domain.EventExpired, domain.EventFulfilled,
		domain.EventImpatient, domain.EventCollected, domain.EventWarning, domain.EventEnded,
	}
	for _, kind := range loud {
		if len(Melody(kind)) == 0 {
			t.Fatalf("%s has no cue", kind)
		}
	}
	if Melody(domain.EventKind(99)) != nil {
		t.Fatal("unknown kind should be silent")
	}
}

func TestBacklogDropsOldest(t *testing.T) {
	b := newBacklog(2)

	if b.push(domain.EventSpawned) || b.push(domain.EventExpired) {
		t.Fatal("dropped before the backlog was full")
	}
	if !b.push(domain.EventFulfilled) {
		t.Fatal("expected a drop once full")
	}
	if b.len() != 2 {
		t.Fatalf("expected 2 queued, got %d", b.len())
	}

	want := []domain.EventKind{domain.EventExpired, domain.EventFulfilled}
	for _, w := range want {
		got, ok := b.pop()
		if !ok || got != w {
			t.Fatalf("expected %s, got %s (%v)", w, got, ok)
		}
	}
	if _, ok := b.pop(); ok {
		t.Fatal("expected an empty backlog")
	}

	select {
	case <-b.notify:
	default:
		t.Fatal("push did not signal")
	}
}

func TestSilent(t *testing.T) {
	var cue domain.Cue = NewSilent(logger.New(logger.LevelOff, nil))
	cue.Play(context.Background(), domain.Event{Kind: domain.EventFulfilled})
}
