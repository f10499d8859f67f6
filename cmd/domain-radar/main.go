package main

import (
	"os"

	"github.com/Kropiunig/domain-radar/cmd/domain-radar/commands"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
)

func main() {
	if err := commands.Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("domain-radar failed")
		os.Exit(1)
	}
}
