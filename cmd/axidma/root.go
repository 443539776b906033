package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "axidma",
	Short: "axidma simulates memory-to-memory transfers over an AXI bus.",
	Long: `axidma assembles a cycle-level model of the DMA subsystem, drives ` +
		`it through its register file, and reports the outcome of the ` +
		`requested transfer.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
