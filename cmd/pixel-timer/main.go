package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/term"

	"github.com/lixenwraith/pixel-timer/audio"
	"github.com/lixenwraith/pixel-timer/config"
	"github.com/lixenwraith/pixel-timer/engine"
	"github.com/lixenwraith/pixel-timer/modes"
	"github.com/lixenwraith/pixel-timer/render"
	"github.com/lixenwraith/pixel-timer/timer"
)

var errNotTerminal = errors.New("stdout is not a terminal")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	return newRootCommand().ParseAndRun(ctx, args)
}

func newRootCommand() *ffcli.Command {
	cfg := config.Default()

	return &ffcli.Command{
		Name:       "pixel-timer",
		ShortUsage: "pixel-timer [flags]",
		ShortHelp:  "A countdown timer that fills the terminal with pixels",
		LongHelp: "Controls:\n" +
			"  0-9, Backspace   Edit the focused field\n" +
			"  Tab, Left/Right  Move between hours, minutes and seconds\n" +
			"  Up/Down          Adjust the focused field\n" +
			"  Enter            Start\n" +
			"  Space, click     Show or hide the remaining time\n" +
			"  r                Reset\n" +
			"  q, Esc, Ctrl-C   Quit\n\n" +
			"Every flag can also be set as " + config.EnvPrefix + "_<FLAG> or in the -config TOML file.",
		FlagSet: config.NewFlagSet("pixel-timer", &cfg),
		Options: config.Options(),
		Exec: func(ctx context.Context, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return execTimer(ctx, cfg)
		},
	}
}

func execTimer(ctx context.Context, cfg config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	// Read by tcell during Init
	switch cfg.Color {
	case config.Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case config.ColorTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic Recovery: Ensure terminal is reset even if the timer crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPIXEL-TIMER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground))
	screen.Clear()

	player := audio.NewPlayer(cfg.AudioConfig())
	if err := player.Initialize(); err != nil {
		// Non-fatal, the timer runs without sound
		log.Printf("Audio initialization failed: %v", err)
	}
	defer player.Close()

	loop := engine.NewLoop(engine.NewMonotonicTimeProvider())
	opts := cfg.TimerOptions()
	view := render.NewView(opts.CellSize, opts.Gap)
	ctrl := timer.NewController(loop, view, player, opts)
	ctrl.SetViewport(render.Viewport(screen.Size()))
	input := modes.NewInputHandler(ctrl, view)

	if cfg.Start > 0 {
		if err := ctrl.Start(cfg.Start); err != nil {
			return fmt.Errorf("start %v: %w", cfg.Start, err)
		}
	}

	eventChan := make(chan tcell.Event, 256)
	go func() {
		// Panic recovery for input polling goroutine to ensure terminal cleanup
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	log.Printf("pixel-timer: %dx%d cells at %d fps", ctrl.Grid().Columns, ctrl.Grid().Rows, cfg.FPS)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if !input.HandleEvent(ev) {
				return nil
			}

		case <-frameTicker.C:
			loop.RunFrame()
			view.Draw(screen, loop.Now())
			screen.Show()
		}
	}
}
