// Brew Rush: a witch's potion shop against the clock.
//
// Usage:
//
//	brewrush [-config tuning.yaml] [-seed n] [-duration 5m] [-mute] [-verbose] [-quiet]
//	brewrush -scores
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/brewrush/internal/config"
	"github.com/hammamikhairi/brewrush/internal/customer"
	"github.com/hammamikhairi/brewrush/internal/display"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/engine"
	"github.com/hammamikhairi/brewrush/internal/input"
	"github.com/hammamikhairi/brewrush/internal/logger"
	"github.com/hammamikhairi/brewrush/internal/recipe"
	"github.com/hammamikhairi/brewrush/internal/sound"
	"github.com/hammamikhairi/brewrush/internal/storage"
	"github.com/hammamikhairi/brewrush/internal/timer"
	"github.com/hammamikhairi/brewrush/internal/world"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "YAML tuning file layered over the built-in defaults")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".brewrush/brewrush.log", "file to write logs to (use \"stderr\" to log to console)")
	dbPath := flag.String("db", ".brewrush/runs.db", "SQLite run ledger (empty keeps runs in memory)")
	mute := flag.Bool("mute", false, "disable sound cues")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	duration := flag.Duration("duration", 0, "session length, overrides the config")
	scores := flag.Bool("scores", false, "print the best and most recent runs, then exit")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if v := os.Getenv("BREWRUSH_LOG_LEVEL"); v != "" {
		l, err := logger.ParseLevel(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		logLevel = l
	}
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// The UI owns the terminal, so logs go to a file by default.
	logOut, closeLog := openLogFile(*logFile, os.Stderr)
	defer closeLog()

	// Audio and SQLite drivers may use the standard logger.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	cfg, err := loadConfig(*configPath, *seed, *duration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs, closeRuns := openRuns(*dbPath, log)
	defer closeRuns()

	if *scores {
		if err := printScores(ctx, os.Stdout, runs); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if w, h := display.TermSize(); w < display.MinWidth || h < display.MinHeight {
		fmt.Fprintf(os.Stderr, "The shop needs a terminal of at least %dx%d (yours is %dx%d).\n",
			display.MinWidth, display.MinHeight, w, h)
		os.Exit(1)
	}

	book, err := recipe.FromConfig(log, cfg.World.Recipes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: recipes: %v\n", err)
		os.Exit(1)
	}
	graph, err := world.FromConfig(log, cfg.World.Locations, cfg.Session.Home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: world: %v\n", err)
		os.Exit(1)
	}

	s := cfg.Session
	rngSeed := uint64(s.Seed)
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(rngSeed, rngSeed>>1))
	policy, err := customer.NewPolicy(s.SpawnPolicy, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	session, err := engine.New(book, graph, log,
		engine.WithRand(rng),
		engine.WithPolicy(policy),
		engine.WithDuration(s.Duration),
		engine.WithMaxCustomers(s.MaxCustomers),
		engine.WithInventoryCap(s.InventoryCap),
		engine.WithDeliverAt(domain.LocationID(s.DeliverAt)),
		engine.WithImpatientAt(s.ImpatientAt),
		engine.WithRestock(s.RestockEvery),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Info("seed %d, policy %s", rngSeed, s.SpawnPolicy)

	var cue domain.Cue = sound.NewSilent(log)
	if !*mute {
		player, err := sound.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, cues disabled: %v", err)
		} else {
			player.Start(ctx)
			defer player.Stop()
			cue = player
		}
	}

	// Bubble Tea owns the terminal and blocks until the player leaves.
	rec, err := display.Run(ctx, display.Game{
		Session: session,
		Keys:    input.DefaultKeyMap(),
		Book:    book,
		Runs:    runs,
		Cue:     cue,
		Tick:    s.Tick,
		Clock:   timer.Real{},
		Log:     log,
	})
	if err != nil {
		log.Error("display: %v", err)
	}
	cancel()

	fmt.Printf("Shop closed after %s: $%d from %d customers (%d walked out).\n",
		timer.Humanize(rec.Played), rec.Revenue, rec.Fulfilled, rec.Expired)
}

// openLogFile opens path for appending, creating its directory first.
// Problems are reported on warn and logging falls back to it. An empty
// path or "stderr" logs to warn directly.
func openLogFile(path string, warn io.Writer) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return warn, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(warn, "warning: could not create log directory %s: %v\n", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(warn, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return warn, func() {}
	}
	return f, func() { f.Close() }
}

// loadConfig layers the tuning file, BREWRUSH_* variables and flags.
func loadConfig(path string, seed int64, duration time.Duration) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Session.Seed = seed
	}
	if duration != 0 {
		cfg.Session.Duration = duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// openRuns opens the SQLite ledger, falling back to memory when path is
// empty or the database cannot be opened.
func openRuns(path string, log *logger.Logger) (domain.RunStore, func()) {
	if path == "" {
		return storage.NewMemoryStore(log), func() {}
	}
	db, err := storage.OpenSQLite(path, log)
	if err != nil {
		log.Error("run ledger unavailable, runs will not be kept: %v", err)
		return storage.NewMemoryStore(log), func() {}
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Error("closing run ledger: %v", err)
		}
	}
}

func printScores(ctx context.Context, w io.Writer, runs domain.RunStore) error {
	best, err := runs.Top(ctx, 10)
	if err != nil {
		return err
	}
	recent, err := runs.Recent(ctx, 5)
	if err != nil {
		return err
	}
	if len(best) == 0 {
		fmt.Fprintln(w, "No runs yet.")
		return nil
	}

	fmt.Fprintln(w, display.BannerStyle.Render("Best runs"))
	for i, r := range best {
		fmt.Fprintf(w, "%2d. $%-5d %2d served %2d lost  %s\n", i+1, r.Revenue, r.Fulfilled, r.Expired, r.StartedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, display.BannerStyle.Render("Recent runs"))
	for _, r := range recent {
		fmt.Fprintf(w, "    $%-5d %-7s %s  %s\n", r.Revenue, r.Reason, timer.Humanize(r.Played), r.StartedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
