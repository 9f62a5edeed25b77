package model

import (
	"strings"
	"testing"
)

func TestParseGradingSystemAliases(t *testing.T) {
	cases := map[string]GradingSystem{
		"percentage": Percentage,
		" PCT ":      Percentage,
		"%":          Percentage,
		"points":     PointScale,
		"Letter":     PointScale,
		"12pt":       PointScale,
	}
	for in, want := range cases {
		got, err := ParseGradingSystem(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseGradingSystem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseGradingSystemListsSystems(t *testing.T) {
	_, err := ParseGradingSystem("gpa")
	if err == nil {
		t.Fatalf("expected unknown system error")
	}
	if !strings.Contains(err.Error(), "use percentage or points") {
		t.Fatalf("expected supported systems in error, got %q", err)
	}
}

func TestOtherToggles(t *testing.T) {
	for _, sys := range Systems {
		if !sys.Valid() || sys.Other() == sys || sys.Other().Other() != sys {
			t.Fatalf("unexpected toggle for %q", sys)
		}
	}
}
