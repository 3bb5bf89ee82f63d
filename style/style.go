// Package style holds the catalog of indicator animation styles used by the
// watch animator. The catalog is closed: looking up a name that is not
// registered is an error, never a silent fallback.
package style

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
)

// ErrUnknown is returned when a style name is not in the catalog.
var ErrUnknown = errors.New("unknown indicator style")

// Interval is the frame cadence shared by every style. Config may override it
// process-wide; individual styles never carry their own timing.
var Interval = 100 * time.Millisecond

// Default names the style used when a caller omits one.
var Default = "braille"

// Style is a named, ordered set of animation frames.
type Style struct {
	Name   string
	Frames []string
}

var catalog = map[string]Style{
	"braille": {
		Name:   "braille",
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	},
	"dots": {
		Name:   "dots",
		Frames: []string{".  ", ".. ", "...", "   "},
	},
	"blocks": {
		Name:   "blocks",
		Frames: []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█", "▉", "▊", "▋", "▌", "▍", "▎"},
	},
	"arrows": {
		Name:   "arrows",
		Frames: []string{"←", "↖", "↑", "↗", "→", "↘", "↓", "↙"},
	},
	"clock": {
		Name:   "clock",
		Frames: []string{"🕐", "🕑", "🕒", "🕓", "🕔", "🕕", "🕖", "🕗", "🕘", "🕙", "🕚", "🕛"},
	},
}

// Get resolves a style by name. An empty name resolves to Default.
func Get(name string) (Style, error) {
	if name == "" {
		name = Default
	}
	s, ok := catalog[name]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return s, nil
}

// Names returns the registered style names in sorted order.
func Names() []string {
	names := lo.Keys(catalog)
	sort.Strings(names)
	return names
}
