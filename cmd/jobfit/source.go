package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/rsilvagit/jobfit/internal/host"
	"github.com/rsilvagit/jobfit/internal/model"
	"github.com/rsilvagit/jobfit/internal/output"
	"github.com/rsilvagit/jobfit/internal/session"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

// sourceFlags select where the job page comes from.
type sourceFlags struct {
	url     string
	file    string
	address string
	yes     bool
}

func bindSource(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "fetch the job page from this address")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read the job page from a saved HTML file")
	cmd.Flags().StringVarP(&f.address, "address", "a", "", "address the saved HTML file was captured from")
	cmd.Flags().BoolVarP(&f.yes, "auto-approve", "y", false, "do not ask for confirmation")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsOneRequired("url", "file")
	cmd.MarkFlagsRequiredTogether("file", "address")
}

// openHost returns the host for f and a refresh func run before each retry.
func openHost(f sourceFlags) (host.Host, func() error, error) {
	if f.url != "" {
		client, err := newHTTPClient()
		if err != nil {
			return nil, nil, err
		}
		return host.NewWeb(client, f.url), func() error { return nil }, nil
	}

	read := func() (*os.File, error) {
		file, err := os.Open(f.file)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.file, err)
		}
		return file, nil
	}
	file, err := read()
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	snap, err := host.NewSnapshot(f.address, file)
	if err != nil {
		return nil, nil, err
	}
	refresh := func() error {
		file, err := read()
		if err != nil {
			return err
		}
		defer file.Close()
		return snap.Navigate(f.address, file)
	}
	return snap, refresh, nil
}

// extractPosting runs one extraction session over the selected source,
// offering a retry after each failure. extra also receives the posting.
func extractPosting(ctx context.Context, f sourceFlags, extra session.Publisher) (model.JobPosting, error) {
	h, refresh, err := openHost(f)
	if err != nil {
		return model.JobPosting{}, err
	}

	onward, release, err := publishers(ctx)
	defer release()
	if err != nil {
		return model.JobPosting{}, err
	}
	pubs := append(output.Multi{output.NewConsolePrinter(os.Stdout)}, onward...)
	if extra != nil {
		pubs = append(pubs, extra)
	}

	sess := session.New(h, newExtractor(), session.Options{
		SettleDelay: cfg.Session.SettleDelay,
		RetryDelay:  cfg.Session.RetryDelay,
		Publisher:   pubs,
		Logger:      log,
	})
	defer sess.Close()

	err = sess.Open(ctx)
	for err != nil {
		snap := sess.Snapshot()
		if snap.Failure == nil {
			return model.JobPosting{}, err
		}
		fmt.Fprintln(os.Stderr, snap.Failure.Message)
		if f.yes || !confirm("Retry extraction?") {
			return model.JobPosting{}, err
		}
		if err := refresh(); err != nil {
			return model.JobPosting{}, err
		}
		err = sess.Retry(ctx)
	}

	snap := sess.Snapshot()
	if snap.Posting == nil {
		return model.JobPosting{}, errors.New("extraction finished without a posting")
	}
	return *snap.Posting, nil
}

func confirm(label string) bool {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}
	_, answer, err := prompt.Run()
	if err != nil {
		return false
	}
	return answer == PromptYes
}
