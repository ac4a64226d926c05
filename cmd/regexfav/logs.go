package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/regexfav/internal/app"
	"github.com/five82/regexfav/internal/logtail"
)

func newLogsCmd(g *globalFlags) *cobra.Command {
	var (
		lines int
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the regexfav log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := app.Bootstrap(g.options())
			if err != nil {
				return err
			}
			defer closeLog()

			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range tail {
				if !raw {
					line = logtail.Parse(line).Format()
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON lines unformatted")
	return cmd
}
