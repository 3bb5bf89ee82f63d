package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/commons/text"
	"github.com/spf13/cobra"

	"github.com/flicker-sh/flicker"
	"github.com/flicker-sh/flicker/proc"
	"github.com/flicker-sh/flicker/progress"
	"github.com/flicker-sh/flicker/shutdown"
	"github.com/flicker-sh/flicker/style"
	"github.com/flicker-sh/flicker/term"
	"github.com/flicker-sh/flicker/watch"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	go shutdown.WaitForSignal()

	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errStyle := lipgloss.NewRenderer(os.Stderr).NewStyle().Foreground(lipgloss.Color("9"))
		fmt.Fprintln(os.Stderr, errStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flicker",
		Short: "Watch background commands with an animated indicator",
		Long: `Flicker runs commands in the background, animates an indicator while they
run, and reports a colored verdict carrying the command's real exit code.
It can also keep an overall progress bar pinned above per-command output.`,
		Example: `  flicker run --label "Installing nginx" -- apt-get install -y nginx
  flicker bar -- "make fetch" "make build" "make test"
  flicker styles`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flicker.LoadConfig()
			if err != nil {
				return err
			}
			// Explicit flags win over the config file.
			if cmd.Flags().Changed("style") {
				cfg.Style = ""
			}
			if cmd.Flags().Changed("interval") {
				cfg.Interval = ""
			}
			if cmd.Flags().Changed("no-color") {
				cfg.NoColor = false
			}
			if err := cfg.Apply(); err != nil {
				return err
			}
			flicker.Flags.UseFlags()
			return nil
		},
	}

	flicker.BindAllFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newBarCommand())
	rootCmd.AddCommand(newStylesCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newRunCommand() *cobra.Command {
	var label, successLabel, failureLabel string
	var showOutput bool

	cmd := &cobra.Command{
		Use:   "run [flags] -- command [args...]",
		Short: "Run a command in the background and watch it to completion",
		Long: `Run launches the command, animates an indicator until it exits, and exits
with the command's own exit code so scripts can branch on it.`,
		Example: `  flicker run --label "Downloading" -- curl -fsSLO https://example.com/big.iso
  flicker run --style clock --failure "Transfer failed" -- rsync -a src/ dst/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := proc.New(args[0], args[1:]...)
			if showOutput {
				c = c.WithOutput(os.Stdout, os.Stdout)
			}
			h, err := c.Start()
			if err != nil {
				return err
			}

			if label == "" {
				label = strings.Join(args, " ")
			}
			if successLabel == "" {
				successLabel = label
			}
			if failureLabel == "" {
				failureLabel = label + " failed"
			}

			watcher := watch.New()
			watcher.SetNoColor(flicker.Flags.NoColor)

			started := time.Now()
			code, err := watcher.Watch(h, watch.Options{
				Label:        label,
				Style:        flicker.Flags.Style,
				SuccessLabel: successLabel,
				FailureLabel: failureLabel,
			})
			if err != nil {
				return err
			}

			logger.Debugf("%s finished with code %d in %s", label, code,
				text.HumanizeDuration(time.Since(started)))
			os.Exit(code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label shown next to the indicator")
	cmd.Flags().StringVar(&successLabel, "success", "", "Verdict label printed on success")
	cmd.Flags().StringVar(&failureLabel, "failure", "", "Verdict label printed on failure")
	cmd.Flags().BoolVar(&showOutput, "show-output", false,
		"Pass the command's output through to stdout instead of discarding it")

	return cmd
}

func newBarCommand() *cobra.Command {
	var width int
	var label string

	cmd := &cobra.Command{
		Use:   "bar [flags] -- command [command...]",
		Short: "Run shell commands serially under a pinned progress bar",
		Long: `Bar runs each argument as a shell command, one at a time, watching each to
completion. An overall progress bar stays pinned above the per-command
verdict lines and advances as commands finish.`,
		Example: `  flicker bar --label packages -- "apt-get -y install jq" "apt-get -y install ripgrep"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen := term.NewScreen()
			watcher := watch.NewWithScreen(screen)
			watcher.SetNoColor(flicker.Flags.NoColor)
			renderer := progress.NewWithScreen(screen)

			total := len(args)
			opts := progress.Options{Label: label, Width: width}
			if err := renderer.Render(0, total, opts); err != nil {
				return err
			}
			screen.Newline()

			started := time.Now()
			failures := 0
			linesBelow := 1
			for i, line := range args {
				h, err := proc.Startf("%s", line)
				if err != nil {
					return err
				}
				code, err := watcher.Watch(h, watch.Options{
					Label:        line,
					Style:        flicker.Flags.Style,
					SuccessLabel: line,
					FailureLabel: line,
				})
				if err != nil {
					return err
				}
				if code != 0 {
					failures++
				}
				linesBelow++

				pinned := opts
				pinned.LinesAbove = linesBelow
				if err := renderer.Render(i+1, total, pinned); err != nil {
					return err
				}
			}

			logger.Infof("completed %d/%d commands in %s", total-failures, total,
				text.HumanizeDuration(time.Since(started)))
			if failures > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", progress.DefaultWidth, "Bar width in glyphs")
	cmd.Flags().StringVarP(&label, "label", "l", "progress", "Bar label")

	return cmd
}

func newStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the registered indicator styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			nameStyle := lipgloss.NewStyle().Bold(true)
			for _, name := range style.Names() {
				st, err := style.Get(name)
				if err != nil {
					return err
				}
				suffix := ""
				if name == style.Default {
					suffix = " (default)"
				}
				fmt.Printf("%s  %s%s\n",
					nameStyle.Render(fmt.Sprintf("%-8s", name)),
					strings.Join(st.Frames, " "), suffix)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flicker %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
