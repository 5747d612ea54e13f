package tui

import "strings"

const pageRuleWidth = 56

// renderPage lays out a titled page: a rule, the indented body (or a dash
// when empty), a second rule and the page hotkeys. ctrl+c is always listed.
func renderPage(title, body, hotKeys string) string {
	rule := "  " + strings.Repeat("─", pageRuleWidth)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n" + rule + "\n\n")

	if strings.TrimSpace(body) == "" {
		b.WriteString("  -\n")
	} else {
		for line := range strings.Lines(body) {
			b.WriteString("  " + strings.TrimRight(line, "\n") + "\n")
		}
	}

	b.WriteString("\n" + rule + "\n")
	if hotKeys = strings.TrimSpace(hotKeys); hotKeys != "" {
		b.WriteString("  " + helpStyle.Render(hotKeys) + "\n")
	}
	b.WriteString("  " + helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

// fitText shortens v to max runes, marking the cut with an ellipsis.
func fitText(v string, max int) string {
	r := []rune(v)
	switch {
	case max <= 0 || len(r) <= max:
		return v
	case max == 1:
		return string(r[:1])
	default:
		return string(r[:max-1]) + "…"
	}
}
