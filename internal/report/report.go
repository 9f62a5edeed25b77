// Package report renders courses, results, and the conversion table as text.
package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/unigrade/internal/grading"
	"github.com/verte-zerg/unigrade/internal/model"
)

const shortIDLen = 8

// ConvertedLabel describes a converted grade in the opposite system:
// "B (8)" for percentage rows, "75%" for letter rows, "-" without a match.
func ConvertedLabel(system model.GradingSystem, res model.ConversionResult, ok bool) string {
	if !ok {
		return "-"
	}
	if system == model.Percentage {
		return fmt.Sprintf("%s (%d)", res.Letter, res.Points)
	}
	return fmt.Sprintf("%d%%", res.Percent)
}

// FormatPercent formats a percentage average.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatAverage formats a 12-point or 4.0 average.
func FormatAverage(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatCredits formats a credit total with one decimal.
func FormatCredits(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// ShortID truncates a course id for display.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// RenderCourses prints one row per course with its conversion.
func RenderCourses(w io.Writer, courses []model.Course) error {
	if len(courses) == 0 {
		_, err := fmt.Fprintln(w, "No courses.")
		return err
	}
	headers := []string{"ID", "Name", "System", "Grade", "Credits", "Converted", "Counted"}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		ev := grading.Evaluate(c)
		counted := "no"
		if ev.Counted {
			counted = "yes"
		}
		rows = append(rows, []string{
			ShortID(c.ID),
			c.Name,
			c.System.Label(),
			c.Grade,
			c.Credits,
			ConvertedLabel(c.System, ev.Result, ev.Converted),
			counted,
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{4: true}))
}

// RenderSummary prints the aggregate, or a notice when nothing counts.
func RenderSummary(w io.Writer, res model.AggregateResult, ok bool) error {
	if !ok {
		_, err := fmt.Fprintln(w, "No valid courses.")
		return err
	}
	lines := []string{
		"Results",
		fmt.Sprintf("Percentage average: %s", FormatPercent(res.PercentAverage)),
		fmt.Sprintf("12-point average:   %s / 12", FormatAverage(res.PointAverage)),
		fmt.Sprintf("4.0 GPA:            %s / 4.0", FormatAverage(res.GPAAverage)),
		fmt.Sprintf("Credits:            %s", FormatCredits(res.TotalCredits)),
		fmt.Sprintf("Courses counted:    %d", res.Counted),
	}
	return writeLines(w, lines)
}

// RenderConversion prints a single conversion result.
func RenderConversion(w io.Writer, res model.ConversionResult) error {
	_, err := fmt.Fprintf(w, "%s  %d/12  %d%%  %.1f GPA\n", res.Letter, res.Points, res.Percent, res.GPA)
	return err
}

// RenderConversionTable prints every band of the conversion table.
func RenderConversionTable(w io.Writer) error {
	headers := []string{"Range", "Letter", "Points", "Percent", "GPA"}
	bands := grading.Bands()
	rows := make([][]string, 0, len(bands))
	for _, b := range bands {
		rows = append(rows, []string{
			fmt.Sprintf("%d-%d", b.Min, b.Max),
			b.Letter,
			fmt.Sprintf("%d", b.Points),
			fmt.Sprintf("%d%%", b.Percent),
			fmt.Sprintf("%.1f", b.GPA),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true}))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
