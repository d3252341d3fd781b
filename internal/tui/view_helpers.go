package tui

import (
	"strings"
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n\n")
	}

	b.WriteString(data)

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(hotKeys))
	}

	return appStyle.Render(b.String())
}
