package cmd

import (
	"context"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-client/defs"
	"github.com/relex/slog-client/run"
	"github.com/relex/slog-client/util"
)

type runCommandState struct {
	Config      string `help:"Configuration file path"`
	MetricsAddr string `help:"The listener address to expose Prometheus metrics and debug information"`
	Local       bool   `help:"Use the null sink (discard records) instead of a configured sink address"`
	TestMode    bool   `help:"Use test mode: short sink timeouts"`
}

var runCmd = runCommandState{
	Config:      "config.yml",
	MetricsAddr: ":9341",
	Local:       false,
	TestMode:    false,
}

func (cmd *runCommandState) run(args []string) {
	if cmd.TestMode {
		defs.EnableTestMode()
	}

	msrv := util.LaunchMetricsListener(cmd.MetricsAddr)

	run.Run(cmd.Config, cmd.Local)

	if err := msrv.Shutdown(context.Background()); err != nil {
		logger.Errorf("error shutting down metrics listener: %v", err)
	}
}
