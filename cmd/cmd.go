// Package cmd provides the list of commands of the shipper
package cmd

import (
	"github.com/relex/gotils/config"
)

func init() {
	config.AddParentCmdWithArgs("", "slog-client ships structured log records from services to a shared MongoDB datastore", &rootCmd, rootCmd.preRun, rootCmd.postRun)
	config.AddCmdWithArgs("run ...", "Ship records from standard input until EOF or signal", &runCmd, runCmd.run)
	config.AddCmdWithArgs("emit ...", "Ship records from a JSON-lines file and exit", &emitCmd, emitCmd.run)
}

// Execute parses the command line and runs the specified command
func Execute() {
	// trigger init

	config.Execute()
}
