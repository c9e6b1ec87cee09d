package sound

import (
	"context"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Compile-time interface check.
var _ domain.Cue = (*Silent)(nil)

// Silent is a cue that only logs. Used with -mute or when no audio
// device is available.
type Silent struct {
	log *logger.Logger
}

// NewSilent creates a silent cue.
func NewSilent(log *logger.Logger) *Silent {
	return &Silent{log: log}
}

// Play logs the event it would have played.
func (s *Silent) Play(ctx context.Context, ev domain.Event) {
	s.log.Debug("cue (muted): %s", ev.Kind)
}
