// Package icon renders feedback symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/homestream-cli/homestream/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every supported variant identifier.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Fast
	Slow
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "🎉", nerd: "\uf00c", plain: "✓"},
	Fail:     {emoji: "💀", nerd: "\uf00d", plain: "✗"},
	Progress: {emoji: "⏳", nerd: "\uf110", plain: "..."},
	Fast:     {emoji: "🟢", nerd: "\uf111", plain: "✓"},
	Slow:     {emoji: "🔴", nerd: "\uf10c", plain: "✗"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	default:
		return d.plain
	}
}

// Get returns the rendered symbol for i.
func Get(i Icon) string {
	if d, ok := icons[i]; ok {
		return d.get()
	}
	return ""
}
