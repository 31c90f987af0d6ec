package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/penwyp/go-atak-replay/internal/application/replay"
	"github.com/penwyp/go-atak-replay/internal/config"
	"github.com/penwyp/go-atak-replay/internal/data/scanner"
	"github.com/penwyp/go-atak-replay/internal/presentation/layout"
	"github.com/penwyp/go-atak-replay/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Logging related
	debug bool

	// Settings file
	configPath string

	// Display related
	timezone    string
	layoutStyle string

	// Startup state
	startPlaying bool
	zoom         float64

	rootCmd = &cobra.Command{
		Use:   "go-atak-replay [log-file]",
		Short: "Replay recorded ATAK position logs on a terminal map",
		Long: `go-atak-replay reads a snapshot log written by the ATAK position logger and
replays it on a terminal map. Each entity is drawn at its last known position
for the selected moment and colored by the tag derived from its name.

Examples:
  go-atak-replay                                 # Replay atak_logs/data.log
  go-atak-replay exercise.log --play             # Start playing immediately
  go-atak-replay --config replay.yaml            # Custom palette and intervals
  go-atak-replay --timezone Pacific/Auckland     # Label times in local time
  go-atak-replay export --index 0 -o json        # Print the first snapshot`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReplay,
	}
)

const defaultLogFile = "~/.go-atak-replay/logs/app.log"

// appLogFile is where the application log is written
var appLogFile = defaultLogFile

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML settings file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "UTC",
		"Timezone for displayed times (e.g., Pacific/Auckland, Local)")

	rootCmd.Flags().StringVar(&layoutStyle, "layout", layout.StyleFull,
		"Screen layout (full, minimal)")
	rootCmd.Flags().BoolVar(&startPlaying, "play", false,
		"Start playing instead of paused")
	rootCmd.Flags().Float64Var(&zoom, "zoom", 0,
		"Initial map zoom (1-20, default from settings)")
}

// setup initializes logging and the display timezone, then loads settings
func setup() (*config.Settings, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(appLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := util.InitializeTimeProvider(timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	settings, err := config.Load(resolvedConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func resolvedConfigPath() string {
	path := config.ResolvePath(configPath)
	if path == "" {
		return ""
	}
	return expandPath(path)
}

// logFileArg returns the log file argument or the default
func logFileArg(args []string) string {
	if len(args) > 0 {
		return expandPath(args[0])
	}
	return replay.DefaultLogFile
}

// resolveLogFile maps a directory argument to the newest log inside it
func resolveLogFile(args []string) (string, error) {
	logFile, err := scanner.ResolveLogPath(logFileArg(args))
	if err != nil {
		return "", fmt.Errorf("failed to load log file: %w", err)
	}
	return logFile, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	settings, err := setup()
	if err != nil {
		return err
	}
	defer util.CloseLogger()

	logFile, err := resolveLogFile(args)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive replay needs a terminal; use 'export' to print snapshots")
	}

	cfg := &replay.ReplayConfig{
		LogFile:     logFile,
		ConfigFile:  resolvedConfigPath(),
		Settings:    settings,
		Timezone:    timezone,
		LayoutStyle: layoutStyle,
		Play:        startPlaying,
		Zoom:        zoom,
	}

	orchestrator, err := replay.NewOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
