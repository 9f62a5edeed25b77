package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/unigrade/internal/model"
)

func TestFormatForPath(t *testing.T) {
	if f, err := FormatForPath("courses.JSON"); err != nil || f != FormatJSON {
		t.Fatalf("expected json, got %q err=%v", f, err)
	}
	if f, err := FormatForPath("/tmp/courses.toml"); err != nil || f != FormatTOML {
		t.Fatalf("expected toml, got %q err=%v", f, err)
	}
	if _, err := FormatForPath("courses.csv"); err == nil {
		t.Fatalf("expected error for csv")
	}
}

func TestEncodeDecodeKeepsOrder(t *testing.T) {
	courses := []model.Course{
		{ID: "b", Name: "PSYCH 101", System: model.PointScale, Grade: "A-", Credits: "0.5"},
		{ID: "a", Name: "MATH 135", System: model.Percentage, Grade: "88", Credits: "0.5"},
	}
	for _, format := range []Format{FormatJSON, FormatTOML} {
		var buf bytes.Buffer
		if err := EncodeCourses(&buf, format, courses); err != nil {
			t.Fatalf("%s encode: %v", format, err)
		}
		got, dropped, err := DecodeCourses(&buf, format)
		if err != nil {
			t.Fatalf("%s decode: %v", format, err)
		}
		if dropped != 0 || len(got) != 2 {
			t.Fatalf("%s: expected 2 courses and no drops, got %d/%d", format, len(got), dropped)
		}
		if got[0] != courses[0] || got[1] != courses[1] {
			t.Fatalf("%s: unexpected courses %+v", format, got)
		}
	}
}

func TestDecodeJSONDropsBadRecords(t *testing.T) {
	input := `[
		{"id": 1, "name": "MATH 135", "system": "percentage", "grade": "76", "credits": 0.5},
		{"id": 2, "name": "bad system", "system": "UW", "grade": "76", "credits": "0.5"},
		"not a record",
		{"id": 3, "name": ["bad"], "system": "points", "grade": "B"},
		{"name": "no id", "system": "letter", "grade": "c+", "credits": "1"}
	]`
	got, dropped, err := DecodeCourses(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dropped != 3 {
		t.Fatalf("expected 3 dropped, got %d", dropped)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 courses, got %+v", got)
	}
	if got[0].ID != "1" || got[0].Credits != "0.5" || got[0].System != model.Percentage {
		t.Fatalf("unexpected first course: %+v", got[0])
	}
	if got[1].ID == "" || got[1].System != model.PointScale || got[1].Grade != "c+" {
		t.Fatalf("unexpected second course: %+v", got[1])
	}
}

func TestDecodeJSONWrappedObject(t *testing.T) {
	input := `{"courses": [{"id": "x", "system": "points", "grade": "A"}]}`
	got, dropped, err := DecodeCourses(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dropped != 0 || len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("unexpected result: %+v dropped=%d", got, dropped)
	}
}

func TestDecodeRejectsMalformedDocument(t *testing.T) {
	if _, _, err := DecodeCourses(strings.NewReader("{not json"), FormatJSON); err == nil {
		t.Fatalf("expected json error")
	}
	if _, _, err := DecodeCourses(strings.NewReader("[[course"), FormatTOML); err == nil {
		t.Fatalf("expected toml error")
	}
}

func TestDecodeTOMLDropsBadRecords(t *testing.T) {
	input := `
[[course]]
id = "a"
name = "MATH 135"
system = "percentage"
grade = "91"
credits = 0.5

[[course]]
id = "b"
system = 12
grade = "A"

[[course]]
id = "c"
system = "points"
grade = "B"
credits = "1.0"
`
	got, dropped, err := DecodeCourses(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected courses: %+v", got)
	}
	if got[0].Credits != "0.5" {
		t.Fatalf("expected numeric credits to load as text, got %q", got[0].Credits)
	}
}
