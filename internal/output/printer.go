package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rsilvagit/jobfit/internal/model"
)

// ConsolePrinter writes a posting summary as an aligned table.
type ConsolePrinter struct {
	w io.Writer
}

func NewConsolePrinter(w io.Writer) *ConsolePrinter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsolePrinter{w: w}
}

func (cp *ConsolePrinter) Publish(_ context.Context, p model.JobPosting) error {
	w := tabwriter.NewWriter(cp.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TITLE\t%s\n", p.Title)
	fmt.Fprintf(w, "COMPANY\t%s\n", p.Company)
	fmt.Fprintf(w, "LOCATION\t%s\n", p.Location)
	fmt.Fprintf(w, "DESCRIPTION\t%d characters\n", p.DescriptionLength())
	for _, kv := range p.Supplementary.Entries() {
		fmt.Fprintf(w, "%s\t%s\n", badge(kv.Key), kv.Value)
	}
	fmt.Fprintf(w, "URL\t%s\n", p.SourceAddress)
	return w.Flush()
}

func badge(key string) string {
	switch key {
	case model.KeyWorkMode:
		return "WORK MODE"
	case model.KeyJobType:
		return "JOB TYPE"
	case model.KeyCompanyDetails:
		return "COMPANY SIZE"
	case model.KeyPostedDate:
		return "POSTED"
	case model.KeySeniority:
		return "SENIORITY"
	default:
		return key
	}
}
