// Package main is the entry point of the zalukaj command.
package main

import (
	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/cmd"
	"github.com/zalukaj-cli/zalukaj/config"
	"github.com/zalukaj-cli/zalukaj/internal/cache"
	"github.com/zalukaj-cli/zalukaj/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
