package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check provider configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, _, err := buildApp()
		if err != nil {
			return err
		}
		report := a.Health.Check(cmd.Context())
		printReport(cmd.OutOrStdout(), a.Health.Names(), report)
		if report.Status != healthuc.Healthy {
			return fmt.Errorf("status %s", report.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func printReport(w io.Writer, names []string, r healthuc.Report) {
	for _, name := range names {
		res := r.Checks[name]
		c := color.New(color.FgGreen)
		if res != healthuc.CheckOK {
			c = color.New(color.FgRed)
		}
		fmt.Fprintf(w, "%-8s ", name)
		c.Fprintln(w, res)
	}
}
