// Package provider manages the directory of VOD provider endpoints queried by the pipeline.
package provider

import (
	"strings"

	"github.com/homestream-cli/homestream/constant"
	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/key"
	"github.com/homestream-cli/homestream/log"
	"github.com/homestream-cli/homestream/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Provider is one directory entry. Labels are not unique; every entry is queried.
type Provider struct {
	Label string `json:"title"`
	// Endpoint always ends with "/".
	Endpoint string `json:"url"`
}

func (p *Provider) String() string {
	return p.Label
}

// Builtins returns the providers of the built-in directory.
func Builtins() []*Provider {
	return Parse(constant.DefaultDirectory)
}

// Directory returns the directory text in effect.
// The providers.directory setting wins, then the providers file, then the built-in list.
func Directory() string {
	if configured := viper.GetString(key.ProvidersDirectory); strings.TrimSpace(configured) != "" {
		return configured
	}

	path := where.Providers()
	if exists, err := filesystem.API().Exists(path); err == nil && exists {
		content, err := filesystem.API().ReadFile(path)
		if err != nil {
			log.Warnf("read provider directory %s: %v", path, err)
		} else if strings.TrimSpace(string(content)) != "" {
			return string(content)
		}
	}

	return constant.DefaultDirectory
}

// Load parses the directory in effect.
func Load() []*Provider {
	return Parse(Directory())
}

// Get finds the first provider with the given label in the directory in effect.
func Get(label string) (*Provider, bool) {
	return lo.Find(Load(), func(p *Provider) bool {
		return p.Label == label
	})
}
