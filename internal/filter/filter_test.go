package filter

import (
	"strings"
	"testing"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   Func
		text string
		want bool
	}{
		{name: "non empty accepts text", fn: NonEmpty, text: "x", want: true},
		{name: "non empty rejects empty", fn: NonEmpty, text: "", want: false},
		{name: "longer than is strict", fn: LongerThan(3), text: "abc", want: false},
		{name: "longer than accepts", fn: LongerThan(3), text: "abcd", want: true},
		{name: "longer than counts runes", fn: LongerThan(3), text: "ééé", want: false},
		{name: "shorter than is strict", fn: ShorterThan(3), text: "abc", want: false},
		{name: "shorter than accepts", fn: ShorterThan(3), text: "ab", want: true},
		{name: "excludes rejects duplicate", fn: Excludes("Acme Corp"), text: "Acme Corp", want: false},
		{name: "excludes rejects superset", fn: Excludes("Acme Corp"), text: "Acme Corp · Berlin", want: false},
		{name: "excludes accepts other", fn: Excludes("Acme Corp"), text: "Berlin, Germany", want: true},
		{name: "excludes with unresolved value", fn: Excludes(""), text: "Berlin", want: true},
		{name: "contains any", fn: ContainsAny("requirements", "experience"), text: "5 years experience", want: true},
		{name: "contains any is case sensitive", fn: ContainsAny("requirements"), text: "Requirements", want: false},
		{name: "all empty accepts", fn: All(), text: "", want: true},
		{name: "all combines", fn: All(NonEmpty, ShorterThan(100), Excludes("Acme")), text: "Remote", want: true},
		{name: "all short circuits on reject", fn: All(NonEmpty, ShorterThan(5)), text: strings.Repeat("a", 10), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.fn(tt.text); got != tt.want {
				t.Fatalf("expected %v for %q, got %v", tt.want, tt.text, got)
			}
		})
	}
}

func TestClassifyLastMatchWins(t *testing.T) {
	categories := []Category{
		{Name: "workMode", Keywords: []string{"Remote", "On-site", "Hybrid"}},
		{Name: "jobType", Keywords: []string{"Internship", "Full-time", "Part-time", "Contract"}},
	}

	got := Classify([]string{"On-site", "Full-time", "Hybrid", "Matches your preferences"}, categories)

	if got["workMode"] != "Hybrid" {
		t.Fatalf("expected last work mode to win, got %q", got["workMode"])
	}
	if got["jobType"] != "Full-time" {
		t.Fatalf("unexpected job type %q", got["jobType"])
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %v", got)
	}
}
