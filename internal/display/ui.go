package display

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/brewrush/internal/domain"
)

// Run plays one session in the alternate screen and returns the run's
// score line once the player leaves the game-over screen.
func Run(ctx context.Context, g Game) (domain.RunRecord, error) {
	p := tea.NewProgram(NewModel(ctx, g), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return domain.RunRecord{}, fmt.Errorf("running display: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return domain.RunRecord{}, fmt.Errorf("unexpected model %T", final)
	}
	return m.settle()
}

// settle records a run the event loop did not get to save, e.g. when the
// program was interrupted mid-game. A player who left from the title
// screen never played and leaves no record.
func (m Model) settle() (domain.RunRecord, error) {
	if m.screen == screenTitle {
		return m.session.Record(), nil
	}
	if !m.session.Status().Terminal() {
		m.session.Quit()
	}
	rec := m.session.Record()
	if !m.saved {
		// The save command may have raced the quit.
		if err := m.runs.Save(m.ctx, &rec); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return rec, fmt.Errorf("recording run: %w", err)
		}
	}
	return rec, m.err
}
