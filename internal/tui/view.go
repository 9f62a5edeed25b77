package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/unigrade/internal/grading"
	"github.com/verte-zerg/unigrade/internal/report"
)

var columnWidths = [colCount]int{22, 8, 10, 8}

const convertedWidth = 10

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cellStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	convertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	cardStyle      = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.confirming {
		return m.renderConfirm()
	}
	sections := []string{
		titleStyle.Render("unigrade") + headerStyle.Render("  percentage / 12-point grade calculator"),
		"",
		m.renderHeaderRow(),
	}
	for i := range m.courses {
		sections = append(sections, m.renderRow(i))
	}
	sections = append(sections, "", m.renderResults(), "", m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeaderRow() string {
	cells := []string{
		padCell("Name", columnWidths[colName]),
		padCell("System", columnWidths[colSystem]),
		padCell("Grade", columnWidths[colGrade]),
		padCell("Credits", columnWidths[colCredits]),
		padCell("Converted", convertedWidth),
	}
	return headerStyle.Render("  " + strings.Join(cells, " "))
}

func (m *Model) renderRow(i int) string {
	c := m.courses[i]
	marker := "  "
	if i == m.row {
		marker = "> "
	}
	values := [colCount]string{c.Name, c.System.Label(), c.Grade, c.Credits}
	cells := make([]string, 0, colCount+1)
	for col := 0; col < colCount; col++ {
		width := columnWidths[col]
		if i == m.row && col == m.col {
			if col == colSystem {
				cells = append(cells, focusStyle.Render(padCell(values[col], width)))
				continue
			}
			cells = append(cells, padCell(m.input.View(), width))
			continue
		}
		value := values[col]
		if value == "" && col != colSystem {
			cells = append(cells, mutedStyle.Render(padCell(placeholderFor(col, c.System), width)))
			continue
		}
		cells = append(cells, cellStyle.Render(padCell(value, width)))
	}
	res, ok := grading.Convert(c.System, c.Grade)
	label := report.ConvertedLabel(c.System, res, ok)
	if ok {
		cells = append(cells, convertedStyle.Render(padCell(label, convertedWidth)))
	} else {
		cells = append(cells, mutedStyle.Render(padCell(label, convertedWidth)))
	}
	return marker + strings.Join(cells, " ")
}

func (m *Model) renderResults() string {
	res, ok := grading.Aggregate(m.courses)
	if !ok {
		return headerStyle.Render("Enter a grade and credits to see your averages.")
	}
	cards := []string{
		metricCard("Percentage avg", report.FormatPercent(res.PercentAverage)),
		metricCard("12-point avg", report.FormatAverage(res.PointAverage)+" / 12"),
		metricCard("4.0 GPA", report.FormatAverage(res.GPAAverage)+" / 4.0"),
		metricCard("Credits", report.FormatCredits(res.TotalCredits)),
	}
	if m.width > 0 && m.width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderFooter() string {
	help := "tab/shift+tab: field  up/down: row  space: toggle system  ctrl+n: add  ctrl+d: remove  ctrl+x: clear all  esc: quit"
	footer := headerStyle.Render(help)
	if m.status == "" {
		return footer
	}
	if m.statusErr {
		return footer + "\n" + errorStyle.Render(m.status)
	}
	return footer + "\n" + okStyle.Render(m.status)
}

func (m *Model) renderConfirm() string {
	body := strings.Join([]string{
		cardValueStyle.Render("Clear all courses?"),
		"",
		fmt.Sprintf("This removes %s and cannot be undone.", pluralCourses(len(m.courses))),
		headerStyle.Render("y: clear  n/esc: cancel"),
	}, "\n")
	box := modalStyle.Render(body)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func pluralCourses(n int) string {
	if n == 1 {
		return "1 course"
	}
	return fmt.Sprintf("%d courses", n)
}

// padCell pads or truncates s to width terminal cells. Styled input views
// are measured with lipgloss so escape sequences do not count.
func padCell(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		if w == runewidth.StringWidth(s) {
			return runewidth.Truncate(s, width, "…")
		}
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

