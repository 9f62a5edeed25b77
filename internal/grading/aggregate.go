package grading

import (
	"math"

	"github.com/verte-zerg/unigrade/internal/model"
)

// Evaluation is the per-row outcome shared by the editor and the aggregate.
type Evaluation struct {
	Result    model.ConversionResult
	Converted bool
	// Percent is the row's percentage contribution: the raw grade for
	// percentage rows, the band reference value for letter rows.
	Percent float64
	Credits float64
	// Counted is true when the row contributes to Aggregate.
	Counted bool
}

// Evaluate converts one course and checks whether it counts toward the aggregate.
func Evaluate(c model.Course) Evaluation {
	var ev Evaluation
	band, percent, ok := match(c.System, c.Grade)
	if ok {
		ev.Result = resultFor(band)
		ev.Converted = true
		ev.Percent = percent
	}
	credits, creditsOK := ParseCredits(c.Credits)
	if creditsOK {
		ev.Credits = credits
	}
	ev.Counted = ok && creditsOK
	return ev
}

// Aggregate computes credit-weighted averages over the valid courses.
// Rows with an empty or unrecognized grade or a non-positive credit weight
// are skipped. It reports false when no row counts.
func Aggregate(courses []model.Course) (model.AggregateResult, bool) {
	var percentSum, pointSum, gpaSum, totalCredits float64
	counted := 0
	for _, c := range courses {
		ev := Evaluate(c)
		if !ev.Counted {
			continue
		}
		w := ev.Credits
		percentSum += ev.Percent * w
		pointSum += float64(ev.Result.Points) * w
		gpaSum += ev.Result.GPA * w
		totalCredits += w
		counted++
	}
	if counted == 0 {
		return model.AggregateResult{}, false
	}
	return model.AggregateResult{
		PercentAverage: round2(percentSum / totalCredits),
		PointAverage:   round2(pointSum / totalCredits),
		GPAAverage:     round2(gpaSum / totalCredits),
		TotalCredits:   totalCredits,
		Counted:        counted,
	}, true
}

// LetterShare is the number of counted courses and credits for one letter.
type LetterShare struct {
	Letter  string
	Courses int
	Credits float64
}

// Distribution groups counted courses by letter in table order. Letters
// without courses are omitted.
func Distribution(courses []model.Course) []LetterShare {
	byLetter := map[string]*LetterShare{}
	for _, c := range courses {
		ev := Evaluate(c)
		if !ev.Counted {
			continue
		}
		share, ok := byLetter[ev.Result.Letter]
		if !ok {
			share = &LetterShare{Letter: ev.Result.Letter}
			byLetter[ev.Result.Letter] = share
		}
		share.Courses++
		share.Credits += ev.Credits
	}
	out := make([]LetterShare, 0, len(byLetter))
	for _, b := range bands {
		if share, ok := byLetter[b.Letter]; ok {
			out = append(out, *share)
		}
	}
	return out
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
