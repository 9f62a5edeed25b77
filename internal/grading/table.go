// Package grading converts grades between the percentage and 12-point
// scales and aggregates credit-weighted averages.
package grading

import (
	"strings"

	"github.com/verte-zerg/unigrade/internal/model"
)

// bands is sorted descending by Min and partitions [0, 100]. Percent is the
// value reported when converting a letter back to the percentage scale; it is
// a fixed reference value, not the range midpoint.
var bands = [...]model.ConversionBand{
	{Min: 90, Max: 100, Letter: "A+", Points: 12, Percent: 95, GPA: 4.0},
	{Min: 85, Max: 89, Letter: "A", Points: 11, Percent: 89, GPA: 3.9},
	{Min: 80, Max: 84, Letter: "A-", Points: 10, Percent: 83, GPA: 3.7},
	{Min: 77, Max: 79, Letter: "B+", Points: 9, Percent: 78, GPA: 3.3},
	{Min: 73, Max: 76, Letter: "B", Points: 8, Percent: 75, GPA: 3.0},
	{Min: 70, Max: 72, Letter: "B-", Points: 7, Percent: 72, GPA: 2.7},
	{Min: 67, Max: 69, Letter: "C+", Points: 6, Percent: 68, GPA: 2.3},
	{Min: 63, Max: 66, Letter: "C", Points: 5, Percent: 65, GPA: 2.0},
	{Min: 60, Max: 62, Letter: "C-", Points: 4, Percent: 62, GPA: 1.7},
	{Min: 57, Max: 59, Letter: "D+", Points: 3, Percent: 58, GPA: 1.3},
	{Min: 53, Max: 56, Letter: "D", Points: 2, Percent: 55, GPA: 1.0},
	{Min: 50, Max: 52, Letter: "D-", Points: 1, Percent: 52, GPA: 0.7},
	{Min: 0, Max: 49, Letter: "F", Points: 0, Percent: 32, GPA: 0.0},
}

// Bands returns a copy of the conversion table in descending order.
func Bands() []model.ConversionBand {
	out := make([]model.ConversionBand, len(bands))
	copy(out, bands[:])
	return out
}

// LookupByPercentage returns the band whose inclusive range contains value.
// No clamping is applied: values outside [0, 100], NaN, and fractions that
// fall between two integer ranges match nothing.
func LookupByPercentage(value float64) (model.ConversionBand, bool) {
	for _, b := range bands {
		if value >= float64(b.Min) && value <= float64(b.Max) {
			return b, true
		}
	}
	return model.ConversionBand{}, false
}

// BandForLetter returns the band for an exact letter, ignoring case and
// surrounding whitespace.
func BandForLetter(letter string) (model.ConversionBand, bool) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return model.ConversionBand{}, false
	}
	for _, b := range bands {
		if b.Letter == letter {
			return b, true
		}
	}
	return model.ConversionBand{}, false
}

// Letters returns the canonical letters from best to worst.
func Letters() []string {
	out := make([]string, len(bands))
	for i, b := range bands {
		out[i] = b.Letter
	}
	return out
}
