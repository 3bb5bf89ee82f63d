package flicker

import (
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"

	"github.com/flicker-sh/flicker/style"
)

type AllFlags struct {
	WatchFlags
	logger.Flags
}

// WatchFlags holds the display options every command shares.
type WatchFlags struct {
	Style    string        // Indicator style name
	NoColor  bool          // Disable colored output
	Interval time.Duration // Frame interval shared by all styles
}

var Flags = AllFlags{
	WatchFlags: WatchFlags{
		Style:    style.Default,
		NoColor:  false,
		Interval: style.Interval,
	},
	Flags: logger.Flags{
		Level:       "info",
		LevelCount:  0,
		JsonLogs:    false,
		LogToStderr: true,
	},
}

// BindAllFlags adds the shared flags to a pflag set (for Cobra).
func BindAllFlags(flags *pflag.FlagSet) *AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVar(&Flags.Style, "style", Flags.Style,
		"Indicator style (braille, dots, blocks, arrows, clock)")
	flags.BoolVar(&Flags.NoColor, "no-color", Flags.NoColor,
		"Disable colored output")
	flags.DurationVar(&Flags.Interval, "interval", Flags.Interval,
		"Animation frame interval")

	return &Flags
}

// UseFlags applies the parsed flags process-wide.
func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	if a.Style != "" {
		style.Default = a.Style
	}
	if a.Interval > 0 {
		style.Interval = a.Interval
	}
}
