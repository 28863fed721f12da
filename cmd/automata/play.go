package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Replay an algorithm run in the terminal",
	Long: `Plays the selected algorithm step by step at a fixed cadence, showing the
pseudo-code with the active line, the narration, the queue and the result set.
Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, frontier, err := runOptions(cmd)
		if err != nil {
			return err
		}
		interval := cfg.Interval
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetDuration("interval")
		}
		gf, err := loadGraph(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		interactive := false
		width := tui.DefaultWidth
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			interactive = true
			if w, _, err := term.GetSize(int(f.Fd())); err == nil {
				width = w
			}
			tui.PrintBanner(out, automata.VersionString())
		}
		return runPlay(ctx, out, gf.Graph, alg, frontier, interval, interactive, width)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	addRunFlags(playCmd)
	playCmd.Flags().Duration("interval", time.Second, "Delay between steps (default from config)")
}

// runPlay drives a Visualizer until its run finishes or ctx is cancelled.
// When interactive, each step is rendered through glamour on a cleared screen;
// otherwise the raw markdown is written.
func runPlay(ctx context.Context, w io.Writer, g domain.Graph, alg domain.Algorithm, frontier traversal.Frontier, interval time.Duration, interactive bool, width int) error {
	changes := make(chan struct{}, 1)
	v := automata.NewVisualizer(g,
		playback.WithAlgorithm(alg),
		playback.WithTraversalOptions(traversal.WithFrontier(frontier)),
		playback.WithLogger(logger),
		playback.WithPlayerOptions(
			playback.WithInterval(interval),
			playback.WithOnChange(func(playback.Status) {
				select {
				case changes <- struct{}{}:
				default:
				}
			}),
		),
	)
	defer v.Close()

	render := func(md string) (string, error) { return md, nil }
	var output *termenv.Output
	if interactive {
		render = tui.NewRenderer(width)
		output = termenv.NewOutput(w)
	}

	last := -1
	show := func() (bool, error) {
		view := v.View()
		if view.Cursor == last {
			return view.Finished || view.Total == 0, nil
		}
		last = view.Cursor

		text, err := render(tui.StepMarkdown(view))
		if err != nil {
			return false, err
		}
		if output != nil {
			output.ClearScreen()
		}
		fmt.Fprintln(w, text)
		return view.Finished || view.Total == 0, nil
	}

	if done, err := show(); err != nil || done {
		return err
	}
	v.Player().Play()

	for {
		select {
		case <-ctx.Done():
			v.Player().Pause()
			logger.Info("playback interrupted", "cursor", last)
			return nil
		case <-changes:
			done, err := show()
			if err != nil {
				return err
			}
			if done {
				logger.Info("playback finished", "algorithm", alg, "steps", last+1)
				return nil
			}
		}
	}
}
