package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"imgv/internal/logger"
)

// cliOptions holds the raw flag values; only flags the user set override the config
type cliOptions struct {
	configPath    string
	recursive     bool
	caseSensitive bool
	archives      bool
	sortMethod    string
	width         int
	height        int
	logLevel      string
	logFile       string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cliOptions{})
}

func newRootCmd(opts *cliOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imgv [path]",
		Short: "A minimal image viewer",
		Long: `imgv shows the images of a directory one at a time.

When path names a file, the viewer opens its directory and starts on that
file. Without a path the current directory is used.

Default keys (rebind them under keybindings in the config file):
` + describeKeybindings(GetDefaultKeybindings()),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			defer logger.Sync()

			session := prepareSession(firstArg(args), cfg)
			return runViewer(session, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file, .yaml, .yml, .toml or .json (default is "+ConfigDir()+"/config.yaml)")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "include images in subdirectories")
	flags.BoolVar(&opts.caseSensitive, "case-sensitive", false, "match file extensions case-sensitively")
	flags.BoolVar(&opts.archives, "archives", false, "list images inside zip, rar and 7z archives")
	flags.StringVar(&opts.sortMethod, "sort", "natural", "sort order: "+strings.Join(sortKeys(), ", "))
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")

	rootCmd.Flags().IntVar(&opts.width, "width", defaultWidth, "window width")
	rootCmd.Flags().IntVar(&opts.height, "height", defaultHeight, "window height")

	rootCmd.AddCommand(NewListCmd(opts))

	return rootCmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// setup loads the configuration, applies flags and starts logging
func setup(flags *pflag.FlagSet, opts *cliOptions) (Config, error) {
	result := loadConfig(opts.configPath)
	cfg := result.Config

	if err := applyFlags(flags, opts, &cfg); err != nil {
		return cfg, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return cfg, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logConfigResult(result)

	return cfg, nil
}

// applyFlags overrides config values with the flags that were set explicitly
func applyFlags(flags *pflag.FlagSet, opts *cliOptions, cfg *Config) error {
	if flags.Changed("recursive") {
		cfg.Recursive = opts.recursive
	}
	if flags.Changed("case-sensitive") {
		cfg.CaseSensitive = opts.caseSensitive
	}
	if flags.Changed("archives") {
		cfg.Archives = opts.archives
	}
	if flags.Changed("sort") {
		strategy, err := ParseSortStrategy(opts.sortMethod)
		if err != nil {
			return err
		}
		cfg.SortMethod = strategy.Key()
	}
	if flags.Changed("width") {
		if opts.width < minWidth {
			return fmt.Errorf("--width must be at least %d", minWidth)
		}
		cfg.WindowWidth = opts.width
	}
	if flags.Changed("height") {
		if opts.height < minHeight {
			return fmt.Errorf("--height must be at least %d", minHeight)
		}
		cfg.WindowHeight = opts.height
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	return nil
}

// prepareSession resolves the argument and scans it. Missing paths and
// empty directories are logged, never fatal.
func prepareSession(arg string, cfg Config) *Session {
	target, err := resolveTarget(arg)
	if err != nil {
		logger.Warn("Path not found, using current directory",
			zap.String("path", arg),
			zap.String("fallback", target.Dir),
			zap.Error(err))
	}

	scanner, err := NewScanner(cfg.ScanOptions())
	if err != nil {
		// The extension patterns are constants; this only fails on a broken build
		logger.Error("Cannot build scanner", zap.Error(err))
		return &Session{Target: target, Cursor: NewCursor(0)}
	}

	session, err := openSession(target, scanner)
	if errors.Is(err, ErrEmptyDirectory) {
		logger.Info("No images found", zap.String("dir", target.Dir))
	}
	return session
}

// runViewer opens the window and blocks until it is closed
func runViewer(session *Session, cfg Config) error {
	if err := InitGraphics(); err != nil {
		logger.Warn("Font unavailable, text will not be drawn", zap.Error(err))
	}

	logger.Info("Starting viewer",
		zap.String("dir", session.Target.Dir),
		zap.Int("images", len(session.Entries)),
		zap.Int("start", session.Cursor.Index()))

	ebiten.SetWindowTitle(windowTitleBase)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(NewGame(session, cfg))
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
