// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// GradingSystem identifies the convention a grade was recorded under.
type GradingSystem string

const (
	// Percentage is the 0-100 scale.
	Percentage GradingSystem = "percentage"
	// PointScale is the 12-point letter scale.
	PointScale GradingSystem = "points"
)

// Systems lists the supported grading systems in display order.
var Systems = []GradingSystem{Percentage, PointScale}

// ParseGradingSystem parses a system name or one of its aliases.
func ParseGradingSystem(s string) (GradingSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent", "pct", "%":
		return Percentage, nil
	case "points", "point", "letter", "12pt":
		return PointScale, nil
	default:
		names := make([]string, 0, len(Systems))
		for _, sys := range Systems {
			names = append(names, string(sys))
		}
		return "", fmt.Errorf("unknown grading system %q (use %s)", s, strings.Join(names, " or "))
	}
}

// Valid reports whether s is one of the supported systems.
func (s GradingSystem) Valid() bool {
	return s == Percentage || s == PointScale
}

// Other returns the opposite system.
func (s GradingSystem) Other() GradingSystem {
	if s == Percentage {
		return PointScale
	}
	return Percentage
}

// Label returns a short human-readable label.
func (s GradingSystem) Label() string {
	switch s {
	case Percentage:
		return "0-100"
	case PointScale:
		return "12-pt"
	default:
		return string(s)
	}
}

// Course is one user-entered row. Grade and Credits hold the raw text as
// entered; they are interpreted only at conversion time.
type Course struct {
	ID      string
	Name    string
	System  GradingSystem
	Grade   string
	Credits string
}

// ConversionBand is one row of the conversion table.
type ConversionBand struct {
	Min     int
	Max     int
	Letter  string
	Points  int
	Percent int
	GPA     float64
}

// ConversionResult is a grade expressed in every scale.
type ConversionResult struct {
	Letter  string
	Points  int
	Percent int
	GPA     float64
}

// AggregateResult summarizes the counted courses.
type AggregateResult struct {
	PercentAverage float64
	PointAverage   float64
	GPAAverage     float64
	TotalCredits   float64
	Counted        int
}

// Config defines resolved application settings. The flag tag names the CLI
// flag reported in validation errors.
type Config struct {
	System    string `flag:"system" validate:"required,oneof=percentage points"`
	Credits   string `flag:"credits" validate:"omitempty,credits"`
	DBPath    string `flag:"db" validate:"required"`
	LogLevel  string `flag:"log-level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `flag:"log-format" validate:"oneof=pretty json"`
}
