package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Letter", "Points", "Range"}
	rows := [][]string{
		{"A+", "12", "90-100"},
		{"F", "0", "0-49"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Letter  Points  Range" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "A+          12  90-100" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "F            0  0-49" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "Grade"}, [][]string{{"数学", "A"}, {"Math", "B"}}, nil)
	if lines[1] != "数学  A" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "Math  B" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
