package output

import "strings"

// chunk packs parts into messages no longer than limit bytes. A single part
// over the limit is cut at a rune boundary that does not separate a
// backslash from the character it escapes.
func chunk(parts []string, limit int) []string {
	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	for _, p := range parts {
		for len(p) > limit {
			flush()
			cut := limit
			for cut > 0 && (!utf8Start(p[cut]) || danglingEscape(p[:cut])) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, p[:cut])
			p = p[cut:]
		}
		if current.Len()+len(p) > limit {
			flush()
		}
		current.WriteString(p)
	}
	flush()
	return chunks
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}

// danglingEscape reports whether s ends in an odd run of backslashes.
func danglingEscape(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// paragraphs splits a description into non-empty lines, each ending in a newline.
func paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line+"\n")
		}
	}
	return out
}
