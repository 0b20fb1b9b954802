package bot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/omarshaarawi/statbot/internal/models"
)

// Telegram rejects messages over 4096 characters; leave headroom for the
// title and code fences.
const maxTableChars = 3800

// RenderAnswer turns a structured answer into Telegram Markdown. Tables go
// inside a fenced block so columns line up in the client's monospace font.
func RenderAnswer(a *models.Answer) string {
	switch a.Kind {
	case models.AnswerTable:
		return a.Title + "\n```\n" + renderTable(a.Table) + "```"
	case models.AnswerError:
		return a.Message
	default:
		return a.Content
	}
}

func renderTable(t *models.Table) string {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if pad := widths[i] - utf8.RuneCountInString(cell); pad > 0 && i < len(widths)-1 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Columns)
	sep := 0
	for _, w := range widths {
		sep += w
	}
	sep += 2 * (len(widths) - 1)
	sb.WriteString(strings.Repeat("-", sep) + "\n")

	for i, row := range t.Rows {
		if sb.Len() > maxTableChars {
			sb.WriteString(fmt.Sprintf("… and %d more rows\n", len(t.Rows)-i))
			break
		}
		writeRow(row)
	}
	return sb.String()
}
