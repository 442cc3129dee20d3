// Package main is the entry point of homestream.
package main

import (
	"github.com/homestream-cli/homestream/cmd"
	"github.com/homestream-cli/homestream/config"
	"github.com/homestream-cli/homestream/internal/cache"
	"github.com/homestream-cli/homestream/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		if removed, err := cache.Streams().Prune(); err != nil {
			log.Warnf("prune stream cache: %v", err)
		} else if removed > 0 {
			log.Infof("pruned %d expired stream lists", removed)
		}
	}()

	cmd.Execute()
}
