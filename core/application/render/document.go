package render

import (
	"strings"

	"github.com/hyperterse/dataexplorer/core/domain"
)

// Section is one query in a multi-query document.
type Section struct {
	Title       string
	Description string
	Table       string
}

// SectionsFromReports converts reports in order.
func SectionsFromReports(reports []*domain.Report) []Section {
	sections := make([]Section, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		sections = append(sections, Section{Title: r.Name, Description: r.Description, Table: r.Table})
	}
	return sections
}

// RenderDocument joins sections into one Markdown document, each under a
// second-level heading.
func RenderDocument(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("## ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		if s.Description != "" {
			b.WriteString(s.Description)
			b.WriteString("\n\n")
		}
		b.WriteString(s.Table)
	}
	return b.String()
}
