package layout

import "strings"

// Wrap splits text into display lines no wider than maxWidth when drawn in
// font f. Newlines are paragraph breaks; every paragraph is wrapped on word
// boundaries on its own and a paragraph without words becomes one empty line.
// Words are never split: a word wider than maxWidth gets a line to itself.
func Wrap(m Measurer, f Font, text string, maxWidth float64) []string {
	text = strings.ReplaceAll(text, "\r", "")
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(m, f, para, maxWidth)...)
	}
	return lines
}

func wrapParagraph(m Measurer, f Font, para string, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.MeasureString(f, candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
