package main

import (
	"github.com/spf13/cobra"
)

var extractFlags sourceFlags

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the job posting shown at an address",
	Example: `  jobfit extract --url https://www.linkedin.com/jobs/view/3912345678/
  jobfit extract --file posting.html --address https://www.linkedin.com/jobs/view/3912345678/`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := extractPosting(cmd.Context(), extractFlags, nil)
		return err
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	bindSource(extractCmd, &extractFlags)
}
