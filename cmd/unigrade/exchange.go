package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/unigrade/internal/model"
	"github.com/verte-zerg/unigrade/internal/store"
)

var importAppend bool

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export courses to a .json or .toml file",
		Args:  cobra.ExactArgs(1),
		RunE:  withCourses(runExport),
	}
}

func runExport(s *session, args []string) error {
	path := args[0]
	format, err := store.FormatForPath(path)
	if err != nil {
		return err
	}
	if err := writeExport(path, format, s.courses); err != nil {
		return err
	}
	s.log.Info().Str("path", path).Int("courses", len(s.courses)).Msg("exported courses")
	_, err = fmt.Fprintf(s.out, "Exported %d courses to %s\n", len(s.courses), path)
	return err
}

func writeExport(path string, format store.Format, courses []model.Course) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "unigrade-export-*")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := store.EncodeCourses(tmpFile, format, courses); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import courses from a .json or .toml file",
		Long: "Import courses from a .json or .toml file. Records that cannot be read\n" +
			"are skipped. The saved list is replaced unless --append is set.",
		Args: cobra.ExactArgs(1),
		RunE: withCourses(runImport),
	}
	cmd.Flags().BoolVar(&importAppend, "append", false, "append to the saved courses instead of replacing them")
	return cmd
}

func runImport(s *session, args []string) error {
	path := args[0]
	format, err := store.FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort file close.
			_ = cerr
		}
	}()

	imported, dropped, err := store.DecodeCourses(f, format)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Str("path", path).Msg("skipped unreadable course records")
	}

	var base []model.Course
	if importAppend {
		base = s.courses
	}
	merged := mergeCourses(base, imported)
	if err := s.save(merged); err != nil {
		return err
	}
	s.log.Info().Str("path", path).Int("imported", len(imported)).Bool("append", importAppend).Msg("imported courses")
	_, err = fmt.Fprintf(s.out, "Imported %d courses (%d skipped), %d saved\n", len(imported), dropped, len(merged))
	return err
}

// mergeCourses appends imported to base, giving fresh ids to courses whose id
// is already taken.
func mergeCourses(base, imported []model.Course) []model.Course {
	out := make([]model.Course, 0, len(base)+len(imported))
	seen := make(map[string]struct{}, len(base)+len(imported))
	for _, c := range base {
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	for _, c := range imported {
		if _, taken := seen[c.ID]; taken || c.ID == "" {
			c.ID = uuid.NewString()
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
