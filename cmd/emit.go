package cmd

import (
	"github.com/relex/slog-client/defs"
	"github.com/relex/slog-client/run"
)

type emitCommandState struct {
	Config string `help:"Configuration file path"`
	Input  string `help:"Input file path (one JSON record per line)"`
	Local  bool   `help:"Use the null sink (discard records) instead of a configured sink address"`
}

var emitCmd = emitCommandState{
	Config: "config.yml",
	Input:  "records.jsonl",
	Local:  false,
}

func (cmd *emitCommandState) run(_ []string) {
	defs.EnableTestMode()
	run.Emit(cmd.Config, cmd.Input, cmd.Local)
}
