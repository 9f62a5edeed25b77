package grading

import (
	"errors"
	"math"

	"github.com/verte-zerg/unigrade/internal/model"
)

// ErrNoMatch is returned by callers that need an error for an unconvertible grade.
var ErrNoMatch = errors.New("grade does not match any band")

// Convert expresses a grade recorded under system in every scale. Empty,
// unparseable, and unrecognized grades report false.
func Convert(system model.GradingSystem, grade string) (model.ConversionResult, bool) {
	band, _, ok := match(system, grade)
	if !ok {
		return model.ConversionResult{}, false
	}
	return resultFor(band), true
}

// match resolves a grade to its band. For percentage grades it also returns
// the parsed value so aggregation can use the raw number.
func match(system model.GradingSystem, grade string) (model.ConversionBand, float64, bool) {
	if grade == "" {
		return model.ConversionBand{}, 0, false
	}
	switch system {
	case model.Percentage:
		value, ok := ParseNumber(grade)
		if !ok {
			return model.ConversionBand{}, 0, false
		}
		band, ok := LookupByPercentage(value)
		if !ok {
			return model.ConversionBand{}, 0, false
		}
		return band, value, true
	case model.PointScale:
		band, ok := BandForLetter(grade)
		if !ok {
			return model.ConversionBand{}, 0, false
		}
		return band, float64(band.Percent), true
	default:
		return model.ConversionBand{}, 0, false
	}
}

func resultFor(band model.ConversionBand) model.ConversionResult {
	return model.ConversionResult{
		Letter:  band.Letter,
		Points:  band.Points,
		Percent: band.Percent,
		GPA:     band.GPA,
	}
}

// ParseCredits parses a credit weight from its leading number, so "0.5cr"
// is 0.5. Only finite values above zero count.
func ParseCredits(credits string) (float64, bool) {
	w, ok := ParseNumber(credits)
	if !ok || math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0, false
	}
	return w, true
}
