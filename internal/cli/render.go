package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-profit-must-flow/internal/model"
	"github.com/Veraticus/the-profit-must-flow/internal/profit"
	"github.com/charmbracelet/lipgloss"
)

// RenderResult renders a calculation outcome. Success shows the four
// labelled figures in a box; failure shows the error message.
func RenderResult(result profit.Result) string {
	if !result.OK() {
		return FormatError(result.Message())
	}

	lines := make([]string, 0, 6)
	for _, f := range result.Summary.Figures() {
		lines = append(lines, LabelStyle.Render(f.Label+":")+f.Formatted())
	}
	lines = append(lines, "", SubtleStyle.Render(fmt.Sprintf("%d deposit rows, %d withdrawal rows",
		result.Summary.DepositCount, result.Summary.WithdrawalCount)))

	return lipgloss.JoinVertical(lipgloss.Left,
		FormatSuccess("Calculation successful"),
		RenderBox("Profit Summary", strings.Join(lines, "\n")),
	)
}

// RenderTable renders up to limit rows under the column headers.
// A limit of zero or less renders every row.
func RenderTable(rows model.TransactionSet, limit int) string {
	shown := rows
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
	}

	widths := make([]int, len(model.Columns))
	for i, col := range model.Columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range shown {
		for i, v := range row.Values() {
			widths[i] = max(widths[i], lipgloss.Width(v))
		}
	}

	var b strings.Builder
	b.WriteString(renderLine(model.Columns, widths, TableHeaderStyle))
	for _, row := range shown {
		b.WriteString("\n")
		b.WriteString(renderLine(row.Values(), widths, TableCellStyle))
	}

	if hidden := len(rows) - len(shown); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("… %d more rows", hidden)))
	}

	return b.String()
}

func renderLine(values []string, widths []int, style lipgloss.Style) string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = style.Width(widths[i] + style.GetPaddingRight()).Render(v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
