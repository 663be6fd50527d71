package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsilvagit/jobfit/internal/classifier"
	"github.com/rsilvagit/jobfit/internal/session"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <address>",
	Short: "Tell whether an address is a single job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decision := classifier.Classify(args[0])
		if cfg.JSON {
			out, err := json.Marshal(decision)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		status := session.StatusMessage(session.Snapshot{State: session.StateIdle, Address: args[0]})
		if decision.Eligible {
			fmt.Fprintf(cmd.OutOrStdout(), "eligible (%s): %s\n", decision.Pattern, status)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "not eligible (%s): %s\n", decision.Reason, status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
