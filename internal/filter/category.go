package filter

// Category is a named bucket recognised by keywords in a label's text.
type Category struct {
	Name     string
	Keywords []string
}

// Classify returns, per category, the last text that matched it. Later labels
// overwrite earlier ones.
func Classify(texts []string, categories []Category) map[string]string {
	out := make(map[string]string)
	for _, text := range texts {
		for _, c := range categories {
			if containsAny(text, c.Keywords) {
				out[c.Name] = text
			}
		}
	}
	return out
}
