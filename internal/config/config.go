package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/shineypaint/internal/session"
	"github.com/example/shineypaint/internal/theme"
	"github.com/example/shineypaint/internal/tool"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Pick bool
}

// Tools holds per-tool stroke widths. Zero means the built-in width.
type Tools struct {
	DrawWidth  int
	EraseWidth int
	ShapeWidth int
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	Width        int
	Height       int
	Background   color.RGBA
	Color        color.RGBA
	HistoryLimit int
	// PickRevert returns to the previous tool after a cancelled colour pick.
	PickRevert bool
	Tools      Tools
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:      "", // Default to empty to allow fallback to Env/Default
		Width:      800,
		Height:     600,
		Background: color.RGBA{255, 255, 255, 255},
		Color:      color.RGBA{0, 0, 0, 255},
		Themes:     make(map[string]*theme.Theme),
	}
}

// Session converts the configuration into session startup parameters.
func (c *Config) Session() session.Config {
	return session.Config{
		Width:      c.Width,
		Height:     c.Height,
		Background: theme.NRGBA(c.Background),
		Color:      theme.NRGBA(c.Color),
		Widths: tool.Widths{
			Draw:  c.Tools.DrawWidth,
			Erase: c.Tools.EraseWidth,
			Shape: c.Tools.ShapeWidth,
		},
		HistoryLimit:       c.HistoryLimit,
		RevertPickOnCancel: c.PickRevert,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	fmt.Fprintf(&sb, "background = %s\n", theme.Hex(c.Background))
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Color))
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "pick_revert = %v\n", c.PickRevert)
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	fmt.Fprintf(&sb, "draw_width = %d\n", c.Tools.DrawWidth)
	fmt.Fprintf(&sb, "erase_width = %d\n", c.Tools.EraseWidth)
	fmt.Fprintf(&sb, "shape_width = %d\n", c.Tools.ShapeWidth)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "pick = %v\n", c.Notify.Pick)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
