// Package main provides the CLI entrypoint for unigrade.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/unigrade/internal/config"
	"github.com/verte-zerg/unigrade/internal/logger"
	"github.com/verte-zerg/unigrade/internal/model"
	"github.com/verte-zerg/unigrade/internal/store"
	"github.com/verte-zerg/unigrade/internal/tui"
)

const (
	defaultSystem    = string(model.Percentage)
	defaultCredits   = ""
	defaultLogLevel  = "warn"
	defaultLogFormat = "pretty"
	dotEnvPath       = ".env"
)

var (
	rootSystem    string
	rootCredits   string
	rootDBPath    string
	rootLogLevel  string
	rootLogFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "unigrade",
		Short:         "Percentage and 12-point grade calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runEditorCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootSystem, "system", defaultSystem, "grading system for new courses (percentage or points)")
	flags.StringVar(&rootCredits, "credits", defaultCredits, "credits for new courses")
	flags.StringVar(&rootDBPath, "db", config.DefaultDBPath(), "course database path")
	flags.StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&rootLogFormat, "log-format", defaultLogFormat, "log format (pretty or json)")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// resolveConfig merges built-in defaults, the config file, the environment,
// and flags, in increasing priority.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	if err := config.LoadDotEnv(dotEnvPath); err != nil {
		return model.Config{}, fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)

	applyStringConfig(cmd, "system", &rootSystem, fileCfg.Courses.System)
	applyStringConfig(cmd, "credits", &rootCredits, fileCfg.Courses.Credits)
	applyStringConfig(cmd, "db", &rootDBPath, fileCfg.Store.Path)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &rootLogFormat, fileCfg.Log.Format)

	cfg := model.Config{
		System:    rootSystem,
		Credits:   strings.TrimSpace(rootCredits),
		DBPath:    rootDBPath,
		LogLevel:  strings.ToLower(rootLogLevel),
		LogFormat: strings.ToLower(rootLogFormat),
	}
	if system, err := model.ParseGradingSystem(cfg.System); err == nil {
		cfg.System = string(system)
	}
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runEditorCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// Log lines are held until the alternate screen closes.
	var logBuf bytes.Buffer
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, &logBuf)
	defer flushLog(&logBuf)

	st, courses, err := openCourses(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	m := tui.NewModel(st, log, courses, model.GradingSystem(cfg.System), cfg.Credits)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// openCourses opens the store and loads the saved course list.
func openCourses(ctx context.Context, cfg model.Config, log zerolog.Logger) (*store.Store, []model.Course, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	courses, dropped, err := st.LoadCourses(ctx)
	if err != nil {
		closeStore(st, log)
		return nil, nil, fmt.Errorf("failed to load courses: %w", err)
	}
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Str("db", cfg.DBPath).Msg("skipped unreadable course rows")
	}
	log.Debug().Int("courses", len(courses)).Str("db", cfg.DBPath).Msg("loaded courses")
	return st, courses, nil
}

func closeStore(st *store.Store, log zerolog.Logger) {
	if cerr := st.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close db")
	}
}

func flushLog(buf *bytes.Buffer) {
	if buf.Len() == 0 {
		return
	}
	if _, err := io.Copy(os.Stderr, buf); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# unigrade configuration
# Uncomment a value to enable it. CLI flags override config values,
# and UNIGRADE_* environment variables override this file.

[courses]
# system = %q    # Grading system for new courses (percentage or points)
# credits = "0.5"          # Credits for new courses

[store]
# path = %q

[log]
# level = %q               # trace, debug, info, warn, error
# format = %q            # pretty or json
`,
		defaultSystem,
		config.DefaultDBPath(),
		defaultLogLevel,
		defaultLogFormat,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
