package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/unigrade/internal/model"
)

type fakeStore struct {
	saved   [][]model.Course
	cleared int
	saveErr error
}

func (f *fakeStore) SaveCourses(_ context.Context, courses []model.Course) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, append([]model.Course(nil), courses...))
	return nil
}

func (f *fakeStore) ClearCourses(context.Context) error {
	f.cleared++
	return nil
}

func (f *fakeStore) last() []model.Course {
	if len(f.saved) == 0 {
		return nil
	}
	return f.saved[len(f.saved)-1]
}

func newTestModel(st *fakeStore, courses []model.Course) *Model {
	return NewModel(st, zerolog.Nop(), courses, model.Percentage, "0.5")
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, key tea.KeyType) {
	m.Update(tea.KeyMsg{Type: key})
}

func TestNewModelEnsuresRow(t *testing.T) {
	m := newTestModel(&fakeStore{}, nil)
	courses := m.Courses()
	if len(courses) != 1 {
		t.Fatalf("expected 1 blank course, got %d", len(courses))
	}
	if courses[0].System != model.Percentage || courses[0].Credits != "0.5" || courses[0].ID == "" {
		t.Fatalf("unexpected blank course: %+v", courses[0])
	}
}

func TestTypingGradeSaves(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(st, nil)
	typeText(m, "MATH 135")
	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	typeText(m, "76")

	got := m.Courses()[0]
	if got.Name != "MATH 135" || got.Grade != "76" {
		t.Fatalf("unexpected course after typing: %+v", got)
	}
	saved := st.last()
	if len(saved) != 1 || saved[0].Grade != "76" {
		t.Fatalf("expected saved grade 76, got %+v", saved)
	}
	if !strings.Contains(m.View(), "B (8)") {
		t.Fatalf("expected converted label in view:\n%s", m.View())
	}
}

func TestToggleSystem(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(st, nil)
	press(m, tea.KeyTab)
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.Courses()[0].System; got != model.PointScale {
		t.Fatalf("expected points system, got %q", got)
	}
	if len(st.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(st.saved))
	}
	typeText(m, "s")
	if got := m.Courses()[0].System; got != model.Percentage {
		t.Fatalf("expected percentage system, got %q", got)
	}
}

func TestAddAndRemoveCourse(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(st, nil)
	press(m, tea.KeyCtrlN)
	if len(m.Courses()) != 2 || m.row != 1 {
		t.Fatalf("expected 2 courses with focus on the new row, got %d row %d", len(m.Courses()), m.row)
	}
	press(m, tea.KeyCtrlD)
	if len(m.Courses()) != 1 || m.row != 0 {
		t.Fatalf("expected 1 course after remove, got %d row %d", len(m.Courses()), m.row)
	}
	press(m, tea.KeyCtrlD)
	if len(m.Courses()) != 1 {
		t.Fatalf("expected last course to stay")
	}
	if !m.statusErr || m.status != "Cannot remove the last course" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestClearAllConfirm(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(st, []model.Course{
		{ID: "a", Name: "A", System: model.Percentage, Grade: "80", Credits: "1"},
		{ID: "b", Name: "B", System: model.PointScale, Grade: "B", Credits: "1"},
	})
	press(m, tea.KeyCtrlX)
	if !m.confirming || !strings.Contains(m.View(), "Clear all courses?") {
		t.Fatalf("expected confirm modal")
	}
	typeText(m, "n")
	if m.confirming || st.cleared != 0 || len(m.Courses()) != 2 {
		t.Fatalf("cancel should keep courses")
	}
	press(m, tea.KeyCtrlX)
	press(m, tea.KeyEnter)
	if !m.confirming || st.cleared != 0 {
		t.Fatalf("enter should not confirm the clear")
	}
	typeText(m, "y")
	if st.cleared != 1 {
		t.Fatalf("expected one clear, got %d", st.cleared)
	}
	courses := m.Courses()
	if len(courses) != 1 || courses[0].Grade != "" || courses[0].ID == "a" {
		t.Fatalf("expected one fresh blank course, got %+v", courses)
	}
}

func TestSaveErrorShowsStatus(t *testing.T) {
	st := &fakeStore{saveErr: errors.New("disk full")}
	m := newTestModel(st, nil)
	typeText(m, "x")
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected save error status, got %q", m.status)
	}
	if m.Courses()[0].Name != "x" {
		t.Fatalf("edit should stay in memory after a failed save")
	}
}

func TestRenderResults(t *testing.T) {
	m := newTestModel(&fakeStore{}, []model.Course{
		{ID: "1", System: model.Percentage, Grade: "90", Credits: "1"},
		{ID: "2", System: model.PointScale, Grade: "C", Credits: "1"},
	})
	out := m.renderResults()
	for _, want := range []string{"77.50%", "8.50 / 12", "3.00 / 4.0", "2.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in results:\n%s", want, out)
		}
	}

	empty := newTestModel(&fakeStore{}, nil)
	if !strings.Contains(empty.renderResults(), "Enter a grade and credits") {
		t.Fatalf("expected empty results hint")
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("ab", 4); got != "ab  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := padCell("abcdef", 4); got != "abc…" {
		t.Fatalf("expected truncation, got %q", got)
	}
}
