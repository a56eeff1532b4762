package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(14)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))  // Green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// Pretty renders a human-readable overview of the metadata.
func Pretty(m *model.Metadata) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s", m.Name, m.Version)))
	b.WriteString("\n")
	if m.Description != "" {
		b.WriteString(faintStyle.Render(m.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			value = faintStyle.Render("-")
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	author := m.Author
	if m.AuthorEmail != "" {
		author = strings.TrimSpace(fmt.Sprintf("%s <%s>", m.Author, m.AuthorEmail))
	}
	row("Author", author)
	row("License", m.License)
	row("URL", m.URL)

	readme := "not found"
	if m.Readme.Found {
		readme = m.Readme.Path
		if m.Readme.Title != "" {
			readme = fmt.Sprintf("%s (%s)", m.Readme.Path, m.Readme.Title)
		}
	}
	row("README", readme)

	list := func(title string, items []string) {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(fmt.Sprintf("%s (%d):", title, len(items))))
		b.WriteString("\n")
		if len(items) == 0 {
			b.WriteString("  " + faintStyle.Render("none") + "\n")
			return
		}
		for _, item := range items {
			b.WriteString(fmt.Sprintf("  %s\n", item))
		}
	}
	list("Packages", m.Packages)
	list("Requirements", m.InstallRequires)
	list("Classifiers", m.Classifiers)

	if len(m.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("Warnings (%d):", len(m.Warnings))))
		b.WriteString("\n")
		for _, w := range m.Warnings {
			b.WriteString(fmt.Sprintf("  %s\n", warningStyle.Render(w)))
		}
	}

	return b.String()
}
