package main

import (
	"fmt"
	"io"
	"qkd-ledger/quantum"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	runsKey      = "runs"
	bitsKey      = "bits"
	keyLengthKey = "key-length"
	seedKey      = "seed"
)

type simulateOptions struct {
	Runs      int
	Bits      int
	KeyLength int
	Seed      *uint64
	Colours   bool
}

func simulateCommand(config *Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Run key agreements and print the sifting statistics",
		RunE: func(c *cobra.Command, _ []string) error {
			flags := c.Flags()
			options := simulateOptions{Colours: config.Colours}
			var err error
			if options.Runs, err = flags.GetInt(runsKey); err != nil {
				return err
			}
			if options.Bits, err = flags.GetInt(bitsKey); err != nil {
				return err
			}
			if options.KeyLength, err = flags.GetInt(keyLengthKey); err != nil {
				return err
			}
			if flags.Changed(seedKey) {
				seed, err := flags.GetUint64(seedKey)
				if err != nil {
					return err
				}
				options.Seed = &seed
			}
			return simulate(c.OutOrStdout(), options)
		},
	}
	flags := c.Flags()
	flags.Int(runsKey, 5, "Number of agreements to run")
	flags.Int(bitsKey, quantum.DefaultBits, "Positions drawn per agreement")
	flags.Int(keyLengthKey, quantum.DefaultKeyLength, "Maximum secret length")
	flags.Uint64(seedKey, 0, "Seed for reproducible runs")
	return c
}

func simulate(w io.Writer, options simulateOptions) error {
	if options.Runs <= 0 {
		return fmt.Errorf("--%s must be positive, got %d", runsKey, options.Runs)
	}
	simulator := quantum.NewSimulator(quantum.NewRandomSource(options.Seed), options.KeyLength)

	table := newTable(w, "Run", "Generated", "Sifted", "Length", "Secret")
	totalSifted := 0
	for run := 1; run <= options.Runs; run++ {
		agreement := simulator.RunAgreement(options.Bits)
		totalSifted += agreement.Sifted
		secret := agreement.Secret.String()
		if options.Colours {
			secret = color.Cyan.Render(secret)
		}
		table.Append([]string{
			strconv.Itoa(run),
			strconv.Itoa(agreement.Generated),
			strconv.Itoa(agreement.Sifted),
			strconv.Itoa(agreement.Secret.Len()),
			secret,
		})
	}
	table.Render()

	if options.Bits > 0 {
		rate := float64(totalSifted) / float64(options.Runs*options.Bits) * 100
		_, _ = fmt.Fprintf(w, "Sifting kept %.1f%% of the positions\n", rate)
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
