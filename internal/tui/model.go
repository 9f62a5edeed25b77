// Package tui provides the Bubble Tea course editor.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/unigrade/internal/courselist"
	"github.com/verte-zerg/unigrade/internal/model"
)

const (
	colName = iota
	colSystem
	colGrade
	colCredits
	colCount
)

const statusTimeout = 2 * time.Second

// CourseStore persists the course list.
type CourseStore interface {
	SaveCourses(ctx context.Context, courses []model.Course) error
	ClearCourses(ctx context.Context) error
}

type clearStatusMsg struct {
	seq int
}

// Model implements the Bubble Tea course editor.
type Model struct {
	store   CourseStore
	log     zerolog.Logger
	system  model.GradingSystem
	credits string

	courses []model.Course
	row     int
	col     int
	input   textinput.Model

	confirming bool

	status    string
	statusErr bool
	statusSeq int

	width  int
	height int
}

// NewModel constructs an editor over courses. New rows use system and credits
// as their defaults.
func NewModel(st CourseStore, log zerolog.Logger, courses []model.Course, system model.GradingSystem, credits string) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorBlink)

	m := &Model{
		store:   st,
		log:     log,
		system:  system,
		credits: credits,
		courses: courselist.Ensure(append([]model.Course(nil), courses...), system, credits),
		input:   input,
	}
	m.focusCell()
	return m
}

// Courses returns the current course list.
func (m *Model) Courses() []model.Course {
	return append([]model.Course(nil), m.courses...)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateEditor(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		return m, m.clearAll()
	case "n", "N", "esc":
		m.confirming = false
		return m, nil
	}
	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		return m, m.moveCol(1)
	case tea.KeyShiftTab:
		return m, m.moveCol(-1)
	case tea.KeyUp:
		return m, m.moveRow(-1)
	case tea.KeyDown:
		return m, m.moveRow(1)
	case tea.KeyCtrlN:
		return m, m.addCourse()
	case tea.KeyCtrlD:
		return m, m.removeCourse()
	case tea.KeyCtrlX:
		m.confirming = true
		return m, nil
	}

	if m.col == colSystem {
		switch msg.String() {
		case " ", "space", "enter", "s", "left", "right", "h", "l":
			m.toggleSystem()
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		return m, m.moveRow(1)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.setField(m.col, after)
	}
	return m, cmd
}

func (m *Model) current() model.Course {
	return m.courses[m.row]
}

func (m *Model) fieldValue(col int) string {
	c := m.current()
	switch col {
	case colName:
		return c.Name
	case colGrade:
		return c.Grade
	case colCredits:
		return c.Credits
	default:
		return ""
	}
}

func (m *Model) setField(col int, value string) {
	id := m.current().ID
	updated, ok := courselist.Update(m.courses, id, func(c *model.Course) {
		switch col {
		case colName:
			c.Name = value
		case colGrade:
			c.Grade = value
		case colCredits:
			c.Credits = value
		}
	})
	if !ok {
		return
	}
	m.courses = updated
	m.save()
}

func (m *Model) toggleSystem() {
	id := m.current().ID
	updated, ok := courselist.Update(m.courses, id, func(c *model.Course) {
		c.System = c.System.Other()
	})
	if !ok {
		return
	}
	m.courses = updated
	m.save()
}

func (m *Model) focusCell() tea.Cmd {
	if m.col == colSystem {
		m.input.Blur()
		return nil
	}
	m.input.Width = columnWidths[m.col] - 1
	m.input.SetValue(m.fieldValue(m.col))
	m.input.Placeholder = placeholderFor(m.col, m.current().System)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) moveCol(delta int) tea.Cmd {
	next := m.col + delta
	switch {
	case next >= colCount:
		if m.row < len(m.courses)-1 {
			m.row++
			next = 0
		} else {
			next = colCount - 1
		}
	case next < 0:
		if m.row > 0 {
			m.row--
			next = colCount - 1
		} else {
			next = 0
		}
	}
	m.col = next
	return m.focusCell()
}

func (m *Model) moveRow(delta int) tea.Cmd {
	next := m.row + delta
	if next < 0 || next >= len(m.courses) {
		return nil
	}
	m.row = next
	return m.focusCell()
}

func (m *Model) addCourse() tea.Cmd {
	m.courses = courselist.Add(m.courses, courselist.New(m.system, m.credits))
	m.row = len(m.courses) - 1
	m.col = colName
	m.save()
	return m.focusCell()
}

func (m *Model) removeCourse() tea.Cmd {
	updated, err := courselist.Remove(m.courses, m.current().ID)
	if err != nil {
		if errors.Is(err, courselist.ErrLastCourse) {
			return m.setStatus("Cannot remove the last course", true)
		}
		return m.setStatus(err.Error(), true)
	}
	m.courses = updated
	if m.row >= len(m.courses) {
		m.row = len(m.courses) - 1
	}
	m.save()
	return tea.Batch(m.focusCell(), m.setStatus("Course removed", false))
}

func (m *Model) clearAll() tea.Cmd {
	if err := m.store.ClearCourses(context.Background()); err != nil {
		m.log.Error().Err(err).Msg("failed to clear courses")
		return m.setStatus("Clear failed: "+err.Error(), true)
	}
	m.courses = courselist.Ensure(nil, m.system, m.credits)
	m.row = 0
	m.col = colName
	m.log.Info().Msg("cleared all courses")
	return tea.Batch(m.focusCell(), m.setStatus("All courses cleared", false))
}

func (m *Model) save() {
	if err := m.store.SaveCourses(context.Background(), m.courses); err != nil {
		m.log.Error().Err(err).Int("courses", len(m.courses)).Msg("failed to save courses")
		m.status = "Save failed: " + err.Error()
		m.statusErr = true
		m.statusSeq++
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func placeholderFor(col int, system model.GradingSystem) string {
	switch col {
	case colName:
		return "e.g. MATH 135"
	case colGrade:
		if system == model.Percentage {
			return "0-100"
		}
		return "A+, B, C-"
	case colCredits:
		return "0.5"
	default:
		return ""
	}
}
