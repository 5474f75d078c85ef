// Command ledgerctl runs key agreements offline and inspects a stored ledger.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ledgerctl: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	config, err := LoadConfig()
	c := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Simulate key agreements and inspect a stored ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return nil
		},
	}
	c.PersistentFlags().StringVar(&config.BadgerFilepath, "db", config.BadgerFilepath, "Path to the Badger directory")
	c.PersistentFlags().BoolVar(&config.Colours, "colours", config.Colours, "Colorize output")
	c.AddCommand(
		simulateCommand(&config),
		dumpCommand(&config),
		verifyCommand(&config),
		exportCommand(&config),
	)
	return c
}
