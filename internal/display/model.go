// Package display draws the shop in the terminal with Bubble Tea and
// drives the game clock from the Bubble Tea event loop.
//
// The [Model] owns the session: every tick message measures the wall
// time since the last one, polls at most one decoded key action and
// advances the session. Rendering only ever reads the returned snapshot.
package display

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/engine"
	"github.com/hammamikhairi/brewrush/internal/input"
	"github.com/hammamikhairi/brewrush/internal/logger"
	"github.com/hammamikhairi/brewrush/internal/timer"
)

// Minimum terminal size for the six-panel layout.
const (
	MinWidth  = 96
	MinHeight = 30
)

// Book is the recipe book as the display reads it.
type Book interface {
	Chapters() ([]string, map[string][]domain.RecipeSummary)
	Search(query string) []domain.RecipeSummary
}

// Game bundles what the display needs to run one session.
type Game struct {
	Session   *engine.Session
	Keys      input.KeyMap
	Book      Book
	Runs      domain.RunStore
	Cue       domain.Cue
	Tick      time.Duration
	Clock     timer.Clock
	Log       *logger.Logger
	SkipIntro bool
}

type screen int

const (
	screenTitle screen = iota
	screenPlay
	screenBook
	screenOver
)

// Messages.
type (
	tickMsg  time.Time
	savedMsg struct {
		best []domain.RunRecord
		err  error
	}
)

// Model is the Bubble Tea model of a game.
type Model struct {
	ctx     context.Context
	session *engine.Session
	decoder *input.Decoder
	keys    input.KeyMap
	book    Book
	runs    domain.RunStore
	cue     domain.Cue
	tick    time.Duration
	watch   *timer.Stopwatch
	log     *logger.Logger

	snap    domain.Snapshot
	total   time.Duration
	screen  screen
	chapter int // -1 is the table of contents
	carried bool
	help    help.Model
	bar     progress.Model
	width   int
	height  int

	saving bool
	saved  bool
	best   []domain.RunRecord
	err    error
}

// NewModel creates the model for g.
func NewModel(ctx context.Context, g Game) Model {
	if g.Tick <= 0 {
		g.Tick = 100 * time.Millisecond
	}
	if g.Clock == nil {
		g.Clock = timer.Real{}
	}
	log := g.Log.Named("display")

	bar := progress.New(progress.WithGradient("#fca5a5", "#bbf7d0"), progress.WithoutPercentage())
	h := help.New()

	m := Model{
		ctx:     ctx,
		session: g.Session,
		decoder: input.NewDecoder(g.Keys, log),
		keys:    g.Keys,
		book:    g.Book,
		runs:    g.Runs,
		cue:     g.Cue,
		tick:    g.Tick,
		watch:   timer.NewStopwatch(timer.WithClock(g.Clock), timer.WithMaxLap(time.Second)),
		log:     log,
		snap:    g.Session.Snapshot(),
		total:   g.Session.Snapshot().TimeRemaining,
		chapter: -1,
		help:    h,
		bar:     bar,
	}
	m.decoder.Observe(m.snap)
	if g.SkipIntro {
		m.screen = screenPlay
	}
	return m
}

// Snapshot returns the last snapshot the model rendered.
func (m Model) Snapshot() domain.Snapshot { return m.snap }

// Best returns the leaderboard loaded after the run was saved.
func (m Model) Best() []domain.RunRecord { return m.best }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		tea.SetWindowTitle("Brew Rush"),
	)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, ticks and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width / 3
		m.bar.Width = max(msg.Width/3-6, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.screen == screenOver {
			return m, nil
		}
		elapsed := m.watch.Lap()
		if m.screen == screenTitle {
			return m, m.tickCmd()
		}
		// The book does not pause the shop.
		return m.advance(elapsed)

	case savedMsg:
		m.saved = true
		m.best = msg.best
		if msg.err != nil {
			m.log.Error("recording run: %v", msg.err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) advance(elapsed time.Duration) (tea.Model, tea.Cmd) {
	var action domain.Action
	if m.screen == screenPlay {
		action = m.decoder.Poll()
	}

	snap, err := m.session.Advance(elapsed, action)
	m.snap = snap
	m.decoder.Observe(snap)
	for _, ev := range snap.Events {
		m.cue.Play(m.ctx, ev)
	}

	if err != nil {
		m.err = err
		m.log.Error("session aborted: %v", err)
	}
	if snap.Status.Terminal() {
		return m.finish()
	}
	return m, m.tickCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenTitle:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		m.screen = screenPlay
		m.watch.Reset()
		return m, nil

	case screenOver:
		return m, tea.Quit

	case screenBook:
		return m.bookKey(msg), nil
	}

	switch m.decoder.Feed(msg) {
	case input.CmdQuit:
		m.snap = m.session.Quit()
		for _, ev := range m.snap.Events {
			m.cue.Play(m.ctx, ev)
		}
		return m.finish()
	case input.CmdBook:
		m.screen = screenBook
		m.chapter = -1
		m.carried = false
	case input.CmdHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// bookKey navigates the recipe book: a digit opens a chapter, s lists
// the recipes that use what the witch carries, 8 returns to the contents,
// 9, esc or b closes the book.
func (m Model) bookKey(msg tea.KeyMsg) Model {
	titles, _ := m.book.Chapters()
	switch k := msg.String(); k {
	case "9", "esc", "b":
		m.screen = screenPlay
	case "8":
		m.chapter = -1
		m.carried = false
	case "s":
		m.carried = !m.carried
	case "ctrl+c", "q":
		m.screen = screenPlay
	default:
		if len(k) == 1 && k[0] >= '0' && k[0] <= '7' {
			if n := int(k[0] - '0'); n < len(titles) {
				m.chapter = n
				m.carried = false
			}
		}
	}
	return m
}

// carriedRecipes returns, in book order of first match, the recipes that
// call for any item in the bag.
func (m Model) carriedRecipes() []domain.RecipeSummary {
	seen := make(map[domain.RecipeID]bool)
	var out []domain.RecipeSummary
	for _, item := range input.Held(m.snap) {
		for _, r := range m.book.Search(string(item)) {
			if !seen[r.ID] {
				seen[r.ID] = true
				out = append(out, r)
			}
		}
	}
	return out
}

// finish moves to the game-over screen and records the run once.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.screen = screenOver
	if m.saving {
		return m, nil
	}
	m.saving = true
	return m, m.saveCmd(m.session.Record())
}

func (m Model) saveCmd(rec domain.RunRecord) tea.Cmd {
	ctx, runs := m.ctx, m.runs
	return func() tea.Msg {
		if err := runs.Save(ctx, &rec); err != nil {
			return savedMsg{err: err}
		}
		best, err := runs.Top(ctx, 5)
		return savedMsg{best: best, err: err}
	}
}
