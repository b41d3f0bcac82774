// Package icon renders the symbols placed in front of CLI and TUI lines.
// The variant (emoji, nerd font glyphs, plain ASCII, kaomoji or squares)
// comes from the icons.variant config key.
package icon

import (
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) variant(name string) string {
	switch name {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	}
	return ""
}

// Get returns the rendering of i for the configured variant, or "" when
// either the icon or the variant is unknown.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.variant(viper.GetString(key.IconsVariant))
}
