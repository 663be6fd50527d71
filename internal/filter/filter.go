// Package filter holds the acceptance predicates applied to candidate text
// found by a selector chain.
package filter

import (
	"strings"
	"unicode/utf8"
)

// Func accepts or rejects a trimmed candidate text.
type Func func(text string) bool

// All combines predicates; every one must accept. No predicates accepts everything.
func All(fns ...Func) Func {
	return func(text string) bool {
		for _, fn := range fns {
			if fn != nil && !fn(text) {
				return false
			}
		}
		return true
	}
}

// NonEmpty rejects empty text.
func NonEmpty(text string) bool {
	return text != ""
}

// LongerThan accepts text with more than n characters.
func LongerThan(n int) Func {
	return func(text string) bool {
		return utf8.RuneCountInString(text) > n
	}
}

// ShorterThan accepts text with fewer than n characters.
func ShorterThan(n int) Func {
	return func(text string) bool {
		return utf8.RuneCountInString(text) < n
	}
}

// Excludes rejects text containing value. An empty value rejects nothing, so an
// unresolved field never blocks its neighbours.
func Excludes(value string) Func {
	return func(text string) bool {
		return value == "" || !strings.Contains(text, value)
	}
}

// ContainsAny accepts text containing at least one of the words.
func ContainsAny(words ...string) Func {
	return func(text string) bool {
		return containsAny(text, words)
	}
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}
