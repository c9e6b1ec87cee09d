// Package sound plays short tone cues for game events.
package sound

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hammamikhairi/brewrush/internal/domain"
)

// Output format shared by the synthesizer and the oto context.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Note is one tone of a cue. A zero frequency is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// amplitude keeps cues well below full scale.
const amplitude = 8192.0

// fade is the attack and release length applied to each note to avoid
// clicks at the edges.
const fade = 5 * time.Millisecond

// Synth renders notes as signed 16-bit little-endian mono PCM.
func Synth(notes []Note, rate int) []byte {
	total := 0
	for _, n := range notes {
		total += samples(n.Dur, rate)
	}
	out := make([]byte, 0, total*2)

	for _, n := range notes {
		count := samples(n.Dur, rate)
		ramp := samples(fade, rate)
		if ramp*2 > count {
			ramp = count / 2
		}
		for i := 0; i < count; i++ {
			var v float64
			if n.Freq > 0 {
				v = math.Sin(2 * math.Pi * n.Freq * float64(i) / float64(rate))
				switch {
				case i < ramp:
					v *= float64(i) / float64(ramp)
				case i >= count-ramp:
					v *= float64(count-1-i) / float64(ramp)
				}
			}
			out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*amplitude)))
		}
	}
	return out
}

func samples(d time.Duration, rate int) int {
	return int(d * time.Duration(rate) / time.Second)
}

// Melody returns the notes played for an event kind, or nil for events
// that stay silent.
func Melody(kind domain.EventKind) []Note {
	const ms = time.Millisecond
	switch kind {
	case domain.EventSpawned:
		return []Note{{660, 60 * ms}, {880, 80 * ms}}
	case domain.EventFulfilled:
		return []Note{{523, 70 * ms}, {659, 70 * ms}, {784, 70 * ms}, {1047, 140 * ms}}
	case domain.EventExpired:
		return []Note{{392, 120 * ms}, {0, 30 * ms}, {330, 180 * ms}}
	case domain.EventImpatient:
		return []Note{{880, 50 * ms}, {0, 50 * ms}, {880, 50 * ms}}
	case domain.EventCollected:
		return []Note{{1200, 30 * ms}}
	case domain.EventWarning:
		return []Note{{180, 120 * ms}}
	case domain.EventEnded:
		return []Note{{784, 150 * ms}, {659, 150 * ms}, {523, 150 * ms}, {392, 300 * ms}}
	default:
		return nil
	}
}
