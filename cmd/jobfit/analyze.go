package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/analysis"
	"github.com/rsilvagit/jobfit/internal/model"
)

var (
	analyzeFlags sourceFlags
	resumePath   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract a job posting and score a resume against it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		resume, err := model.LoadResume(resumePath)
		if err != nil {
			return err
		}
		analyzer, err := newAnalyzer(ctx)
		if err != nil {
			return err
		}
		submitter := analysis.NewSubmitter(analyzer, log)

		if _, err := extractPosting(ctx, analyzeFlags, submitter); err != nil {
			return err
		}
		if !analyzeFlags.yes && !confirm("Submit resume for analysis?") {
			return nil
		}

		log.Info("submitting for analysis", zap.String("resume", resume.Name), zap.String("provider", cfg.Analysis.Provider))
		result, err := submitter.Submit(ctx, resume)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	bindSource(analyzeCmd, &analyzeFlags)
	analyzeCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file to score (pdf, docx, txt)")
	analyzeCmd.MarkFlagRequired("resume")
}

func printResult(w io.Writer, r analysis.Result) error {
	if msg, failed := r.Error.Get(); failed {
		return errors.New(msg)
	}
	title := r.JobTitle.OrElse("Job Position")
	if company, ok := r.Company.Get(); ok && company != "Company" {
		title += " at " + company
	}
	fmt.Fprintln(w, title)
	if score, ok := r.OverallScore.Get(); ok {
		fmt.Fprintf(w, "Overall score: %.0f (%s)\n", score, analysis.MatchLevel(score))
	} else {
		fmt.Fprintln(w, "Overall score: not reported")
	}
	if cfg.Debug {
		fmt.Fprintln(w, string(r.Raw))
	}
	return nil
}
