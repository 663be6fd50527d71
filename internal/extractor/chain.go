package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/rsilvagit/jobfit/internal/filter"
)

// Locator finds candidate elements for a field in a document.
type Locator struct {
	Selector string
	Find     func(doc *goquery.Document) *goquery.Selection
}

// Query locates the first element matching sel, like querySelector.
// It panics on an invalid selector; tables are static.
func Query(sel string) Locator {
	m := cascadia.MustCompile(sel)
	return Locator{
		Selector: sel,
		Find: func(doc *goquery.Document) *goquery.Selection {
			return doc.FindMatcher(m).First()
		},
	}
}

// QueryAll locates every element matching sel in document order.
func QueryAll(sel string) Locator {
	m := cascadia.MustCompile(sel)
	return Locator{
		Selector: sel,
		Find: func(doc *goquery.Document) *goquery.Selection {
			return doc.FindMatcher(m)
		},
	}
}

// Chain is an ordered list of locators for one field, most reliable first.
type Chain struct {
	Field    string
	Locators []Locator
	Accept   filter.Func
}

// Match is an accepted candidate.
type Match struct {
	Text     string
	Selector string
}

// Resolve walks the locators in order and returns the first element whose
// trimmed text is non-empty and accepted.
func (c Chain) Resolve(doc *goquery.Document) (Match, bool) {
	for _, loc := range c.Locators {
		var (
			found Match
			ok    bool
		)
		loc.Find(doc).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := textContent(s)
			if text == "" {
				return true
			}
			if c.Accept != nil && !c.Accept(text) {
				return true
			}
			found, ok = Match{Text: text, Selector: loc.Selector}, true
			return false
		})
		if ok {
			return found, true
		}
	}
	return Match{}, false
}

// Longest returns the longest non-empty candidate text any locator yields,
// ignoring Accept. Used to report why a chain failed.
func (c Chain) Longest(doc *goquery.Document) string {
	var best string
	for _, loc := range c.Locators {
		loc.Find(doc).Each(func(_ int, s *goquery.Selection) {
			if text := textContent(s); runeLen(text) > runeLen(best) {
				best = text
			}
		})
	}
	return best
}

func textContent(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func queries(selectors ...string) []Locator {
	out := make([]Locator, 0, len(selectors))
	for _, sel := range selectors {
		out = append(out, Query(sel))
	}
	return out
}
