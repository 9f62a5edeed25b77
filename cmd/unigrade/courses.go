package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/unigrade/internal/courselist"
	"github.com/verte-zerg/unigrade/internal/grading"
	"github.com/verte-zerg/unigrade/internal/logger"
	"github.com/verte-zerg/unigrade/internal/model"
	"github.com/verte-zerg/unigrade/internal/report"
	"github.com/verte-zerg/unigrade/internal/store"
)

var (
	courseName  string
	courseGrade string
	clearYes    bool
)

// session carries what a store-backed subcommand needs.
type session struct {
	ctx     context.Context
	cfg     model.Config
	log     zerolog.Logger
	store   *store.Store
	courses []model.Course
	out     io.Writer
}

func (s *session) save(courses []model.Course) error {
	if err := s.store.SaveCourses(s.ctx, courses); err != nil {
		return fmt.Errorf("failed to save courses: %w", err)
	}
	s.courses = courses
	s.log.Debug().Int("courses", len(courses)).Msg("saved courses")
	return nil
}

func withCourses(fn func(s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		log := logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		st, courses, err := openCourses(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer closeStore(st, log)
		return fn(&session{
			ctx:     cmd.Context(),
			cfg:     cfg,
			log:     log,
			store:   st,
			courses: courses,
			out:     cmd.OutOrStdout(),
		}, args)
	}
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <grade>",
		Short: "Convert a single grade",
		Long: "Convert a percentage (0-100) or a 12-point letter grade.\n" +
			"Letters are detected automatically unless --system is set.",
		Args: cobra.ExactArgs(1),
		RunE: runConvertCmd,
	}
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	grade := args[0]
	system := model.GradingSystem(cfg.System)
	if !cmd.Flags().Changed("system") {
		system = detectSystem(grade, system)
	}
	res, ok := grading.Convert(system, grade)
	if !ok {
		return fmt.Errorf("failed to convert %q as %s: %w", grade, system, grading.ErrNoMatch)
	}
	if err := report.RenderConversion(cmd.OutOrStdout(), res); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// detectSystem picks the scale a bare grade is written in. Text that starts
// with a number is a percentage, known letters use the 12-point scale, and
// anything else keeps fallback.
func detectSystem(grade string, fallback model.GradingSystem) model.GradingSystem {
	if _, ok := grading.ParseNumber(grade); ok {
		return model.Percentage
	}
	if _, ok := grading.BandForLetter(grade); ok {
		return model.PointScale
	}
	return fallback
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Show the conversion table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := report.RenderConversionTable(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show saved courses with averages",
		Args:  cobra.NoArgs,
		RunE:  withCourses(runSummary),
	}
}

func runSummary(s *session, _ []string) error {
	if err := report.RenderCourses(s.out, s.courses); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	res, ok := grading.Aggregate(s.courses)
	if _, err := fmt.Fprintln(s.out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderSummary(s.out, res, ok); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintln(s.out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderDistribution(s.out, grading.Distribution(s.courses), 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved courses",
		Args:  cobra.NoArgs,
		RunE: withCourses(func(s *session, _ []string) error {
			if err := report.RenderCourses(s.out, s.courses); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		}),
	}
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course",
		Args:  cobra.NoArgs,
		RunE:  withCourses(runAdd),
	}
	cmd.Flags().StringVar(&courseName, "name", "", "course name")
	cmd.Flags().StringVar(&courseGrade, "grade", "", "grade in the course's system")
	return cmd
}

func runAdd(s *session, _ []string) error {
	c := courselist.New(model.GradingSystem(s.cfg.System), s.cfg.Credits)
	c.Name = courseName
	c.Grade = courseGrade
	if err := s.save(courselist.Add(s.courses, c)); err != nil {
		return err
	}
	s.log.Info().Str("id", c.ID).Str("system", string(c.System)).Msg("added course")
	_, err := fmt.Fprintf(s.out, "Added %s  %s\n", report.ShortID(c.ID), describeCourse(c))
	return err
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update a course",
		Long:  "Update a course by id or unique id prefix. Only the given flags change.",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&courseName, "name", "", "course name")
	cmd.Flags().StringVar(&courseGrade, "grade", "", "grade in the course's system")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		changes := courseChanges{
			name:    c.Flags().Changed("name"),
			grade:   c.Flags().Changed("grade"),
			system:  c.Flags().Changed("system"),
			credits: c.Flags().Changed("credits"),
		}
		if !changes.any() {
			return fmt.Errorf("nothing to update (use --name, --grade, --system, or --credits)")
		}
		return withCourses(func(s *session, args []string) error {
			return runSet(s, args[0], changes)
		})(c, args)
	}
	return cmd
}

type courseChanges struct {
	name, grade, system, credits bool
}

func (c courseChanges) any() bool {
	return c.name || c.grade || c.system || c.credits
}

func runSet(s *session, id string, changes courseChanges) error {
	target, err := courselist.Find(s.courses, id)
	if err != nil {
		return fmt.Errorf("failed to find course %q: %w", id, err)
	}
	updated, _ := courselist.Update(s.courses, target.ID, func(c *model.Course) {
		if changes.name {
			c.Name = courseName
		}
		if changes.grade {
			c.Grade = courseGrade
		}
		if changes.system {
			c.System = model.GradingSystem(s.cfg.System)
		}
		if changes.credits {
			c.Credits = s.cfg.Credits
		}
	})
	if err := s.save(updated); err != nil {
		return err
	}
	after, err := courselist.Find(updated, target.ID)
	if err != nil {
		return fmt.Errorf("failed to find course %q: %w", id, err)
	}
	s.log.Info().Str("id", after.ID).Msg("updated course")
	_, err = fmt.Fprintf(s.out, "Updated %s  %s\n", report.ShortID(after.ID), describeCourse(after))
	return err
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a course",
		Args:    cobra.ExactArgs(1),
		RunE:    withCourses(runRemove),
	}
}

func runRemove(s *session, args []string) error {
	target, err := courselist.Find(s.courses, args[0])
	if err != nil {
		return fmt.Errorf("failed to find course %q: %w", args[0], err)
	}
	updated, err := courselist.Remove(s.courses, target.ID)
	if err != nil {
		if errors.Is(err, courselist.ErrLastCourse) {
			return fmt.Errorf("%w (use 'unigrade clear' to start over)", err)
		}
		return fmt.Errorf("failed to remove course: %w", err)
	}
	if err := s.save(updated); err != nil {
		return err
	}
	s.log.Info().Str("id", target.ID).Msg("removed course")
	_, err = fmt.Fprintf(s.out, "Removed %s\n", report.ShortID(target.ID))
	return err
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all courses",
		Args:  cobra.NoArgs,
		RunE:  withCourses(runClear),
	}
	cmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runClear(s *session, _ []string) error {
	if !clearYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to clear without a terminal (use --yes)")
		}
		confirmed, err := confirm(os.Stdin, fmt.Sprintf("Clear all %d courses? [y/N] ", len(s.courses)))
		if err != nil {
			return err
		}
		if !confirmed {
			logErrf("Aborted.\n")
			return nil
		}
	}
	if err := s.store.ClearCourses(s.ctx); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}
	s.log.Info().Int("courses", len(s.courses)).Msg("cleared all courses")
	_, err := fmt.Fprintln(s.out, "All courses cleared.")
	return err
}

func confirm(in io.Reader, prompt string) (bool, error) {
	logErrf("%s", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func describeCourse(c model.Course) string {
	name := c.Name
	if name == "" {
		name = "(unnamed)"
	}
	ev := grading.Evaluate(c)
	return fmt.Sprintf("%s  %s %s  %s",
		name,
		c.System.Label(),
		c.Grade,
		report.ConvertedLabel(c.System, ev.Result, ev.Converted),
	)
}
