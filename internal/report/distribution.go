package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/unigrade/internal/grading"
)

const (
	minBarWidth         = 10
	maxBarWidth         = 50
	terminalWidthBackup = 80
	barChar             = "#"
)

// BarWidthFor returns the bar width that fits a line of totalWidth cells.
// A non-positive totalWidth uses the terminal width.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	// letter column, course count and credit columns
	width := totalWidth - 24
	if width < minBarWidth {
		return minBarWidth
	}
	if width > maxBarWidth {
		return maxBarWidth
	}
	return width
}

// RenderDistribution prints credit share per letter as a bar chart.
func RenderDistribution(w io.Writer, shares []grading.LetterShare, barWidth int) error {
	if len(shares) == 0 {
		return nil
	}
	if barWidth <= 0 {
		barWidth = BarWidthFor(0)
	}
	total := 0.0
	for _, s := range shares {
		total += s.Credits
	}
	if _, err := fmt.Fprintln(w, "Distribution (by credits)"); err != nil {
		return err
	}
	for _, s := range shares {
		n := 0
		if total > 0 {
			n = int(math.Round(s.Credits / total * float64(barWidth)))
		}
		if n == 0 && s.Credits > 0 {
			n = 1
		}
		line := fmt.Sprintf("%-2s %s %s (%d, %s cr)",
			s.Letter,
			strings.Repeat(barChar, n),
			strings.Repeat(" ", barWidth-n),
			s.Courses,
			FormatCredits(s.Credits),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
