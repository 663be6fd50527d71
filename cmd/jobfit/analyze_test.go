package main

import (
	"bytes"
	"testing"

	"github.com/rsilvagit/jobfit/internal/analysis"
	"github.com/rsilvagit/jobfit/internal/config"
	"github.com/rsilvagit/jobfit/internal/model"
)

func TestPrintResult(t *testing.T) {
	cfg = &config.Config{}

	tests := []struct {
		name    string
		result  analysis.Result
		want    string
		wantErr bool
	}{
		{
			name: "full report",
			result: analysis.Result{
				OverallScore: model.Some(83.4),
				JobTitle:     model.Some("Backend Engineer"),
				Company:      model.Some("Acme"),
			},
			want: "Backend Engineer at Acme\nOverall score: 83 (Excellent Match)\n",
		},
		{
			name:   "placeholder company and no score",
			result: analysis.Result{Company: model.Some("Company")},
			want:   "Job Position\nOverall score: not reported\n",
		},
		{
			name:    "failed analysis",
			result:  analysis.Result{Error: model.Some("Failed to analyze job match: boom")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printResult(&buf, tt.result)
			if (err != nil) != tt.wantErr {
				t.Fatalf("printResult error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && buf.String() != tt.want {
				t.Fatalf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
