package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/lane-siege/audio"
	"github.com/lixenwraith/lane-siege/config"
	"github.com/lixenwraith/lane-siege/engine"
	"github.com/lixenwraith/lane-siege/game"
	"github.com/lixenwraith/lane-siege/ledger"
	"github.com/lixenwraith/lane-siege/network"
	"github.com/lixenwraith/lane-siege/parameter"
	"github.com/lixenwraith/lane-siege/render"
	"github.com/lixenwraith/lane-siege/status"
)

var (
	levelFlag     = flag.String("level", "", "Level TOML file (default: built-in level)")
	builtinFlag   = flag.String("builtin", "meadow", "Built-in level name used when -level is empty")
	tickFlag      = flag.Duration("tick", parameter.TickInterval, "Simulation tick interval")
	debugFlag     = flag.Bool("debug", false, "Write debug logs to logs/")
	headlessFlag  = flag.Bool("headless", false, "Run without the terminal UI")
	listenFlag    = flag.String("listen", "", "Serve spectator snapshots on this address, e.g. :7777")
	ledgerFlag    = flag.String("ledger", "", "Record match outcomes in this SQLite file")
	profileFlag   = flag.String("profile", "", "Profile mode: cpu, mem")
	autostartFlag = flag.Bool("autostart", false, "Start the match without waiting for input")
	muteFlag      = flag.Bool("mute", false, "Start with audio muted")
)

// screen is restored by crash handlers before anything is printed
var screen tcell.Screen

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer crashGuard("LANE-SIEGE")

	flag.Parse()

	logFile, log := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	summary, err := run(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lane-siege: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(summary)
}

// run plays one match and returns its summary line once the screen is restored
func run(log *slog.Logger) (string, error) {
	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		return "", fmt.Errorf("unknown profile mode %q", *profileFlag)
	}

	loaded, err := loadLevel(log)
	if err != nil {
		return "", err
	}
	lvl := loaded.Level

	headless := *headlessFlag || !isatty.IsTerminal(os.Stdout.Fd())
	reg := status.NewRegistry()

	var stage *render.Stage
	opts := game.Options{Level: lvl, Policy: loaded.Policy, Log: log, Status: reg}
	if !headless {
		s, err := tcell.NewScreen()
		if err != nil {
			return "", fmt.Errorf("terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return "", fmt.Errorf("terminal: %w", err)
		}
		screen = s
		defer func() {
			screen.Fini()
			screen = nil
		}()
		stage = render.NewStage(s, lvl.Rows, lvl.Columns, lvl.CellSize)
		opts.Resolver = render.NewAtlas(stage)
	}

	sim, err := game.New(opts)
	if err != nil {
		return "", err
	}
	defer sim.Close()

	player := setupAudio(sim, headless, log)
	matchID, closeLedger, err := setupLedger(sim, log)
	if err != nil {
		return "", err
	}
	defer closeLedger()

	var hub *network.Hub
	if *listenFlag != "" {
		hub = network.NewHub(network.DebugConfig(*listenFlag), sim, matchID, reg, log.With("component", "hub"))
		sim.Subscribe(hub)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	scheduler := engine.NewClockScheduler(sim, *tickFlag, reg)
	scheduler.OnTick(func(uint64) {
		snap := sim.Snapshot()
		if stage != nil {
			stage.Draw(snap)
		}
		if hub != nil {
			hub.Tick(time.Now())
		}
		if headless && snap.Phase.Terminal() {
			cancel()
		}
	})

	if *autostartFlag || headless {
		sim.Start()
	}

	g.Go(func() error {
		defer crashGuard("SCHEDULER")
		return scheduler.Run(gctx)
	})
	if hub != nil {
		g.Go(func() error { return hub.Serve(gctx) })
	}
	if stage != nil {
		s := screen
		g.Go(func() error {
			defer crashGuard("EVENT POLLER")
			return inputLoop(gctx, s, sim, scheduler, player, cancel)
		})
		go func() {
			<-gctx.Done()
			s.PostEvent(tcell.NewEventInterrupt(nil))
		}()
	}

	log.Info("match running", "match", matchID, "level", lvl.Name, "headless", headless, "tick", *tickFlag)
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	summary := sim.Snapshot()
	log.Info("match finished", "phase", summary.Phase, "kills", summary.KillCount, "ticks", summary.Tick)
	return summaryLine(lvl.Name, summary), err
}

func loadLevel(log *slog.Logger) (*config.Loaded, error) {
	if *levelFlag != "" {
		return config.LoadFile(*levelFlag, log)
	}
	return config.Builtin(*builtinFlag, log)
}

func setupAudio(sim *game.Simulation, headless bool, log *slog.Logger) *audio.Player {
	cfg := audio.LoadAudioConfig()
	spk := audio.NewSpeaker()
	if headless {
		cfg.Enabled = false
	} else if cfg.Enabled {
		if err := spk.Init(cfg.SampleRate); err != nil {
			log.Warn("audio unavailable, continuing silent", "error", err)
			cfg.Enabled = false
		}
	}
	player := audio.NewPlayer(cfg, spk, log)
	if *muteFlag {
		player.ToggleMute()
	}
	sim.Subscribe(player)
	return player
}

// setupLedger subscribes the outcome hook when -ledger is set and returns the match id
func setupLedger(sim *game.Simulation, log *slog.Logger) (string, func(), error) {
	if *ledgerFlag == "" {
		return uuid.NewString(), func() {}, nil
	}
	l, err := ledger.Open(*ledgerFlag)
	if err != nil {
		return "", nil, err
	}
	lvl := sim.Level()
	hook := ledger.NewHook(l, lvl.Name, lvl.TotalWaves, log.With("component", "ledger"))
	sim.Subscribe(hook)
	return hook.MatchID(), func() { l.Close() }, nil
}

// inputLoop handles keys until ctx ends: Enter starts, p pauses, m mutes, q quits
func inputLoop(ctx context.Context, s tcell.Screen, sim *game.Simulation, sched *engine.ClockScheduler, player *audio.Player, quit context.CancelFunc) error {
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEnter:
				sim.Start()
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				quit()
				return nil
			case ev.Rune() == 'p':
				if sched.IsPaused() {
					sched.Resume()
				} else {
					sched.Pause()
				}
			case ev.Rune() == 'm':
				player.ToggleMute()
			}
		}
	}
}

func summaryLine(levelName string, snap engine.GameSnapshot) string {
	return fmt.Sprintf("%s: %s at wave %d/%d, %s kills, %d through, played %s",
		levelName, snap.Phase, snap.CurrentWave, snap.TotalWaves,
		humanize.Comma(int64(snap.KillCount)), snap.ReachedEndCount, snap.PlayTime.Truncate(time.Second))
}

// crashGuard restores the terminal and exits with the stack on panic
func crashGuard(where string) {
	if r := recover(); r != nil {
		if screen != nil {
			screen.Fini()
		}
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", where, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}
